package assignment

import (
	"context"
	"sort"
)

// StubRepository is an in-memory Repository for service tests. EventPeriod
// maps event ids to period ids, standing in for the schedule_event join.
type StubRepository struct {
	assignments map[int]ScheduleAssignment
	EventPeriod map[int]int
	nextId      int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		assignments: make(map[int]ScheduleAssignment),
		EventPeriod: make(map[int]int),
		nextId:      1,
	}
}

func (s *StubRepository) Cleanup() {
	s.assignments = make(map[int]ScheduleAssignment)
	s.EventPeriod = make(map[int]int)
	s.nextId = 1
}

func (s *StubRepository) ListByEvent(_ context.Context, eventId int) ([]ScheduleAssignment, error) {
	var out []ScheduleAssignment
	for _, a := range s.assignments {
		if a.EventId == eventId {
			out = append(out, a)
		}
	}
	sortAssignments(out)
	return out, nil
}

func (s *StubRepository) ListByPeriod(_ context.Context, periodId int) ([]ScheduleAssignment, error) {
	var out []ScheduleAssignment
	for _, a := range s.assignments {
		if s.EventPeriod[a.EventId] == periodId {
			out = append(out, a)
		}
	}
	sortAssignments(out)
	return out, nil
}

func (s *StubRepository) Upsert(_ context.Context, assignment ScheduleAssignment) (ScheduleAssignment, error) {
	for id, existing := range s.assignments {
		if existing.EventId == assignment.EventId && existing.AreaId == assignment.AreaId {
			assignment.Id = id
			s.assignments[id] = assignment
			return assignment, nil
		}
	}
	assignment.Id = s.nextId
	s.nextId++
	s.assignments[assignment.Id] = assignment
	return assignment, nil
}

func (s *StubRepository) Delete(_ context.Context, id int) (bool, error) {
	if _, ok := s.assignments[id]; !ok {
		return false, nil
	}
	delete(s.assignments, id)
	return true, nil
}

func (s *StubRepository) DeleteByEventAndArea(_ context.Context, eventId, areaId int) (bool, error) {
	for id, a := range s.assignments {
		if a.EventId == eventId && a.AreaId == areaId {
			delete(s.assignments, id)
			return true, nil
		}
	}
	return false, nil
}

func sortAssignments(assignments []ScheduleAssignment) {
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].EventId != assignments[j].EventId {
			return assignments[i].EventId < assignments[j].EventId
		}
		return assignments[i].AreaId < assignments[j].AreaId
	})
}
