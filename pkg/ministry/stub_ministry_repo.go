package ministry

import (
	"context"
)

// StubRepository is an in-memory Repository used by service tests.
type StubRepository struct {
	ministries map[int]Ministry
	nextId     int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{ministries: make(map[int]Ministry), nextId: 1}
}

func (s *StubRepository) Cleanup() {
	s.ministries = make(map[int]Ministry)
	s.nextId = 1
}

func (s *StubRepository) List(_ context.Context) ([]Ministry, error) {
	var out []Ministry
	for _, m := range s.ministries {
		if m.IsActive {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *StubRepository) Get(_ context.Context, id int) (Ministry, error) {
	m, ok := s.ministries[id]
	if !ok || !m.IsActive {
		return Ministry{}, ErrMinistryNotFound
	}
	return m, nil
}

func (s *StubRepository) Create(_ context.Context, ministry Ministry) (Ministry, error) {
	for _, m := range s.ministries {
		if m.IsActive && m.Name == ministry.Name {
			return Ministry{}, ErrMinistryExists
		}
	}
	ministry.Id = s.nextId
	ministry.IsActive = true
	s.nextId++
	s.ministries[ministry.Id] = ministry
	return ministry, nil
}

func (s *StubRepository) Update(_ context.Context, ministry Ministry) (Ministry, error) {
	existing, ok := s.ministries[ministry.Id]
	if !ok || !existing.IsActive {
		return Ministry{}, ErrMinistryNotFound
	}
	for _, m := range s.ministries {
		if m.IsActive && m.Id != ministry.Id && m.Name == ministry.Name {
			return Ministry{}, ErrMinistryExists
		}
	}
	ministry.IsActive = true
	s.ministries[ministry.Id] = ministry
	return ministry, nil
}

func (s *StubRepository) Delete(_ context.Context, id int) (bool, error) {
	m, ok := s.ministries[id]
	if !ok || !m.IsActive {
		return false, nil
	}
	m.IsActive = false
	s.ministries[id] = m
	return true, nil
}
