package ministry

import (
	"context"
	"fmt"
)

type Service interface {
	List(ctx context.Context) ([]Ministry, error)
	Get(ctx context.Context, id int) (Ministry, error)
	Create(ctx context.Context, ministry Ministry) (Ministry, error)
	Update(ctx context.Context, ministry Ministry) (Ministry, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Ministry, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Ministry, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, ministry Ministry) (Ministry, error) {
	if ministry.Name == "" {
		return Ministry{}, fmt.Errorf("ministry name is required")
	}
	return s.repo.Create(ctx, ministry)
}

func (s *ServiceImpl) Update(ctx context.Context, ministry Ministry) (Ministry, error) {
	if ministry.Name == "" {
		return Ministry{}, fmt.Errorf("ministry name is required")
	}
	return s.repo.Update(ctx, ministry)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
