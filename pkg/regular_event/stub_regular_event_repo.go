package regular_event

import "context"

// StubRepository is an in-memory Repository used by service tests and by
// the schedule generation tests in other packages.
type StubRepository struct {
	events map[int]RegularEvent
	nextId int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{events: make(map[int]RegularEvent), nextId: 1}
}

func (s *StubRepository) Cleanup() {
	s.events = make(map[int]RegularEvent)
	s.nextId = 1
}

func (s *StubRepository) List(_ context.Context) ([]RegularEvent, error) {
	var out []RegularEvent
	for _, e := range s.events {
		if e.IsActive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *StubRepository) ListByMinistry(_ context.Context, ministryId int) ([]RegularEvent, error) {
	var out []RegularEvent
	for _, e := range s.events {
		if !e.IsActive {
			continue
		}
		for _, id := range e.MinistryIds {
			if id == ministryId {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (s *StubRepository) Get(_ context.Context, id int) (RegularEvent, error) {
	e, ok := s.events[id]
	if !ok || !e.IsActive {
		return RegularEvent{}, ErrRegularEventNotFound
	}
	return e, nil
}

func (s *StubRepository) Create(_ context.Context, event RegularEvent) (RegularEvent, error) {
	event.Id = s.nextId
	event.IsActive = true
	s.nextId++
	s.events[event.Id] = event
	return event, nil
}

func (s *StubRepository) Update(_ context.Context, event RegularEvent) (RegularEvent, error) {
	existing, ok := s.events[event.Id]
	if !ok || !existing.IsActive {
		return RegularEvent{}, ErrRegularEventNotFound
	}
	event.IsActive = true
	s.events[event.Id] = event
	return event, nil
}

func (s *StubRepository) Delete(_ context.Context, id int) (bool, error) {
	e, ok := s.events[id]
	if !ok || !e.IsActive {
		return false, nil
	}
	e.IsActive = false
	s.events[id] = e
	return true, nil
}
