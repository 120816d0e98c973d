package regular_event

import (
	"context"
)

type Service interface {
	List(ctx context.Context) ([]RegularEvent, error)
	ListByMinistry(ctx context.Context, ministryId int) ([]RegularEvent, error)
	Get(ctx context.Context, id int) (RegularEvent, error)
	Create(ctx context.Context, event RegularEvent) (RegularEvent, error)
	Update(ctx context.Context, event RegularEvent) (RegularEvent, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) List(ctx context.Context) ([]RegularEvent, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) ListByMinistry(ctx context.Context, ministryId int) ([]RegularEvent, error) {
	return s.repo.ListByMinistry(ctx, ministryId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (RegularEvent, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, event RegularEvent) (RegularEvent, error) {
	if err := event.Validate(); err != nil {
		return RegularEvent{}, err
	}
	return s.repo.Create(ctx, event)
}

func (s *ServiceImpl) Update(ctx context.Context, event RegularEvent) (RegularEvent, error) {
	if err := event.Validate(); err != nil {
		return RegularEvent{}, err
	}
	return s.repo.Update(ctx, event)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
