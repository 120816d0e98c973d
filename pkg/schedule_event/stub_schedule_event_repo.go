package schedule_event

import (
	"context"
	"sort"
)

// StubRepository is an in-memory Repository for service tests. Assigned
// holds the ids of events that have at least one assignment so that
// CountUnassigned can be exercised without the assignment tables.
type StubRepository struct {
	events   map[int]ScheduleEvent
	Assigned map[int]bool
	nextId   int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		events:   make(map[int]ScheduleEvent),
		Assigned: make(map[int]bool),
		nextId:   1,
	}
}

func (s *StubRepository) Cleanup() {
	s.events = make(map[int]ScheduleEvent)
	s.Assigned = make(map[int]bool)
	s.nextId = 1
}

func (s *StubRepository) ListByPeriod(_ context.Context, periodId int) ([]ScheduleEvent, error) {
	var out []ScheduleEvent
	for _, e := range s.events {
		if e.PeriodId == periodId {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].EventDate.Equal(out[j].EventDate) {
			return out[i].EventDate.Before(out[j].EventDate)
		}
		if out[i].EventTime != out[j].EventTime {
			return out[i].EventTime < out[j].EventTime
		}
		return out[i].Title < out[j].Title
	})
	return out, nil
}

func (s *StubRepository) Get(_ context.Context, id int) (ScheduleEvent, error) {
	e, ok := s.events[id]
	if !ok {
		return ScheduleEvent{}, ErrScheduleEventNotFound
	}
	return e, nil
}

func (s *StubRepository) Create(_ context.Context, event ScheduleEvent) (ScheduleEvent, error) {
	event.Id = s.nextId
	s.nextId++
	s.events[event.Id] = event
	return event, nil
}

func (s *StubRepository) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := s.events[id]; !ok {
		return false, nil
	}
	delete(s.events, id)
	return true, nil
}

func (s *StubRepository) CountByPeriod(_ context.Context, periodId int) (int, error) {
	count := 0
	for _, e := range s.events {
		if e.PeriodId == periodId {
			count++
		}
	}
	return count, nil
}

func (s *StubRepository) CountUnassigned(_ context.Context, periodId int) (int, error) {
	count := 0
	for _, e := range s.events {
		if e.PeriodId == periodId && !s.Assigned[e.Id] {
			count++
		}
	}
	return count, nil
}
