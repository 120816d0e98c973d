package servant

import "context"

// StubRepository is an in-memory Repository used by service tests.
// AreaMinistry maps area ids to ministry ids for ListByMinistry.
type StubRepository struct {
	servants     map[int]Servant
	AreaMinistry map[int]int
	nextId       int
}

func NewStubServantRepo() *StubRepository {
	return &StubRepository{
		servants:     make(map[int]Servant),
		AreaMinistry: make(map[int]int),
		nextId:       1,
	}
}

func (s *StubRepository) Cleanup() {
	s.servants = make(map[int]Servant)
	s.AreaMinistry = make(map[int]int)
	s.nextId = 1
}

func (s *StubRepository) ListByArea(_ context.Context, areaId int) ([]Servant, error) {
	var out []Servant
	for _, sv := range s.servants {
		if sv.IsActive && sv.AreaId == areaId {
			out = append(out, sv)
		}
	}
	return out, nil
}

func (s *StubRepository) ListByMinistry(_ context.Context, ministryId int) ([]Servant, error) {
	var out []Servant
	for _, sv := range s.servants {
		if sv.IsActive && s.AreaMinistry[sv.AreaId] == ministryId {
			out = append(out, sv)
		}
	}
	return out, nil
}

func (s *StubRepository) Get(_ context.Context, id int) (Servant, error) {
	sv, ok := s.servants[id]
	if !ok || !sv.IsActive {
		return Servant{}, ErrServantNotFound
	}
	return sv, nil
}

func (s *StubRepository) Create(_ context.Context, servant Servant) (Servant, error) {
	servant.Id = s.nextId
	servant.IsActive = true
	s.nextId++
	s.servants[servant.Id] = servant
	return servant, nil
}

func (s *StubRepository) Update(_ context.Context, servant Servant) (Servant, error) {
	existing, ok := s.servants[servant.Id]
	if !ok || !existing.IsActive {
		return Servant{}, ErrServantNotFound
	}
	servant.IsActive = true
	s.servants[servant.Id] = servant
	return servant, nil
}

func (s *StubRepository) Delete(_ context.Context, id int) (bool, error) {
	sv, ok := s.servants[id]
	if !ok || !sv.IsActive {
		return false, nil
	}
	sv.IsActive = false
	s.servants[id] = sv
	return true, nil
}
