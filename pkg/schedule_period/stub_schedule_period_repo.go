package schedule_period

import (
	"context"
	"sort"
)

// StubRepository is an in-memory Repository for service tests.
type StubRepository struct {
	periods map[int]SchedulePeriod
	nextId  int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{periods: make(map[int]SchedulePeriod), nextId: 1}
}

func (s *StubRepository) Cleanup() {
	s.periods = make(map[int]SchedulePeriod)
	s.nextId = 1
}

func (s *StubRepository) List(_ context.Context, ministryId int) ([]SchedulePeriod, error) {
	var out []SchedulePeriod
	for _, p := range s.periods {
		if ministryId == 0 || p.MinistryId == ministryId {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year > out[j].Year
		}
		return out[i].Month > out[j].Month
	})
	return out, nil
}

func (s *StubRepository) Get(_ context.Context, id int) (SchedulePeriod, error) {
	p, ok := s.periods[id]
	if !ok {
		return SchedulePeriod{}, ErrPeriodNotFound
	}
	return p, nil
}

func (s *StubRepository) GetByToken(_ context.Context, token string) (SchedulePeriod, error) {
	for _, p := range s.periods {
		if p.AvailabilityToken == token {
			return p, nil
		}
	}
	return SchedulePeriod{}, ErrPeriodNotFound
}

func (s *StubRepository) Create(_ context.Context, period SchedulePeriod) (SchedulePeriod, error) {
	for _, p := range s.periods {
		if p.MinistryId == period.MinistryId && p.Month == period.Month && p.Year == period.Year {
			return SchedulePeriod{}, ErrPeriodExists
		}
	}
	period.Id = s.nextId
	s.nextId++
	s.periods[period.Id] = period
	return period, nil
}

func (s *StubRepository) Update(_ context.Context, period SchedulePeriod) (SchedulePeriod, error) {
	if _, ok := s.periods[period.Id]; !ok {
		return SchedulePeriod{}, ErrPeriodNotFound
	}
	s.periods[period.Id] = period
	return period, nil
}

func (s *StubRepository) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := s.periods[id]; !ok {
		return false, nil
	}
	delete(s.periods, id)
	return true, nil
}
