package area

import "context"

// StubRepository is an in-memory Repository used by service tests.
type StubRepository struct {
	areas  map[int]Area
	nextId int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{areas: make(map[int]Area), nextId: 1}
}

func (s *StubRepository) Cleanup() {
	s.areas = make(map[int]Area)
	s.nextId = 1
}

func (s *StubRepository) ListByMinistry(_ context.Context, ministryId int) ([]Area, error) {
	var out []Area
	for _, a := range s.areas {
		if a.IsActive && a.MinistryId == ministryId {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *StubRepository) Get(_ context.Context, id int) (Area, error) {
	a, ok := s.areas[id]
	if !ok || !a.IsActive {
		return Area{}, ErrAreaNotFound
	}
	return a, nil
}

func (s *StubRepository) Create(_ context.Context, area Area) (Area, error) {
	area.Id = s.nextId
	area.IsActive = true
	s.nextId++
	s.areas[area.Id] = area
	return area, nil
}

func (s *StubRepository) Update(_ context.Context, area Area) (Area, error) {
	existing, ok := s.areas[area.Id]
	if !ok || !existing.IsActive {
		return Area{}, ErrAreaNotFound
	}
	area.MinistryId = existing.MinistryId
	area.IsActive = true
	s.areas[area.Id] = area
	return area, nil
}

func (s *StubRepository) Delete(_ context.Context, id int) (bool, error) {
	a, ok := s.areas[id]
	if !ok || !a.IsActive {
		return false, nil
	}
	a.IsActive = false
	s.areas[id] = a
	return true, nil
}
