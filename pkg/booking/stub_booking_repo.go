package booking

import (
	"context"
	"time"
)

// StubRepository is an in-memory Repository used by service tests and by
// the booking-import tests in the schedule packages.
type StubRepository struct {
	bookings map[int]Booking
	nextId   int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{bookings: make(map[int]Booking), nextId: 1}
}

func (s *StubRepository) Cleanup() {
	s.bookings = make(map[int]Booking)
	s.nextId = 1
}

func (s *StubRepository) List(_ context.Context) ([]Booking, error) {
	var out []Booking
	for _, b := range s.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (s *StubRepository) ListApprovedBetween(_ context.Context, from, to time.Time) ([]Booking, error) {
	var out []Booking
	for _, b := range s.bookings {
		if b.Status != StatusApproved {
			continue
		}
		if b.EventDate.Before(from) || b.EventDate.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *StubRepository) Get(_ context.Context, id int) (Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return Booking{}, ErrBookingNotFound
	}
	return b, nil
}

func (s *StubRepository) Create(_ context.Context, booking Booking) (Booking, error) {
	booking.Id = s.nextId
	s.nextId++
	s.bookings[booking.Id] = booking
	return booking, nil
}

func (s *StubRepository) Update(_ context.Context, booking Booking) (Booking, error) {
	if _, ok := s.bookings[booking.Id]; !ok {
		return Booking{}, ErrBookingNotFound
	}
	s.bookings[booking.Id] = booking
	return booking, nil
}

func (s *StubRepository) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := s.bookings[id]; !ok {
		return false, nil
	}
	delete(s.bookings, id)
	return true, nil
}
