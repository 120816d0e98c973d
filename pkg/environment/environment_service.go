package environment

import (
	"context"
	"fmt"
)

type Service interface {
	List(ctx context.Context) ([]Environment, error)
	Get(ctx context.Context, id int) (Environment, error)
	Create(ctx context.Context, env Environment) (Environment, error)
	Update(ctx context.Context, env Environment) (Environment, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Environment, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Environment, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, env Environment) (Environment, error) {
	if env.Name == "" {
		return Environment{}, fmt.Errorf("environment name is required")
	}
	return s.repo.Create(ctx, env)
}

func (s *ServiceImpl) Update(ctx context.Context, env Environment) (Environment, error) {
	if env.Name == "" {
		return Environment{}, fmt.Errorf("environment name is required")
	}
	return s.repo.Update(ctx, env)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
