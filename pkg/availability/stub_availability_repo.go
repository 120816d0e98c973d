package availability

import (
	"context"
	"sort"
	"time"
)

// StubRepository is an in-memory Repository for service tests. EventPeriod
// maps event ids to period ids, standing in for the schedule_event join.
type StubRepository struct {
	entries     map[int]ServantAvailability
	EventPeriod map[int]int
	nextId      int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		entries:     make(map[int]ServantAvailability),
		EventPeriod: make(map[int]int),
		nextId:      1,
	}
}

func (s *StubRepository) Cleanup() {
	s.entries = make(map[int]ServantAvailability)
	s.EventPeriod = make(map[int]int)
	s.nextId = 1
}

func (s *StubRepository) ListByPeriod(_ context.Context, periodId int) ([]ServantAvailability, error) {
	var out []ServantAvailability
	for _, e := range s.entries {
		if s.EventPeriod[e.EventId] == periodId {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func (s *StubRepository) ListByServantAndPeriod(_ context.Context, servantId, periodId int) ([]ServantAvailability, error) {
	var out []ServantAvailability
	for _, e := range s.entries {
		if e.ServantId == servantId && s.EventPeriod[e.EventId] == periodId {
			out = append(out, e)
		}
	}
	sortEntries(out)
	return out, nil
}

func (s *StubRepository) ReplaceForServant(_ context.Context, periodId, servantId int, entries []ServantAvailability) error {
	for id, e := range s.entries {
		if e.ServantId == servantId && s.EventPeriod[e.EventId] == periodId {
			delete(s.entries, id)
		}
	}
	for _, e := range entries {
		e.Id = s.nextId
		e.ServantId = servantId
		e.SubmittedAt = time.Now()
		s.nextId++
		s.entries[e.Id] = e
	}
	return nil
}

func sortEntries(entries []ServantAvailability) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].ServantId != entries[j].ServantId {
			return entries[i].ServantId < entries[j].ServantId
		}
		return entries[i].EventId < entries[j].EventId
	})
}
