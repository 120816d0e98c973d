package booking

import (
	"context"
	"time"
)

type Service interface {
	List(ctx context.Context) ([]Booking, error)
	ListApprovedBetween(ctx context.Context, from, to time.Time) ([]Booking, error)
	Get(ctx context.Context, id int) (Booking, error)
	Create(ctx context.Context, booking Booking) (Booking, error)
	Update(ctx context.Context, booking Booking) (Booking, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Booking, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) ListApprovedBetween(ctx context.Context, from, to time.Time) ([]Booking, error) {
	return s.repo.ListApprovedBetween(ctx, from, to)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Booking, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, booking Booking) (Booking, error) {
	if booking.Status == "" {
		booking.Status = StatusPending
	}
	if err := booking.Validate(); err != nil {
		return Booking{}, err
	}
	return s.repo.Create(ctx, booking)
}

func (s *ServiceImpl) Update(ctx context.Context, booking Booking) (Booking, error) {
	if err := booking.Validate(); err != nil {
		return Booking{}, err
	}
	return s.repo.Update(ctx, booking)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
