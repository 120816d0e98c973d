package area

import (
	"context"
	"errors"
	"fmt"
)

var ErrInvalidCapacity = errors.New("max servants must be at least 1 when set")

type Service interface {
	ListByMinistry(ctx context.Context, ministryId int) ([]Area, error)
	Get(ctx context.Context, id int) (Area, error)
	Create(ctx context.Context, area Area) (Area, error)
	Update(ctx context.Context, area Area) (Area, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListByMinistry(ctx context.Context, ministryId int) ([]Area, error) {
	return s.repo.ListByMinistry(ctx, ministryId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Area, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, area Area) (Area, error) {
	if err := validate(area); err != nil {
		return Area{}, err
	}
	return s.repo.Create(ctx, area)
}

func (s *ServiceImpl) Update(ctx context.Context, area Area) (Area, error) {
	if err := validate(area); err != nil {
		return Area{}, err
	}
	return s.repo.Update(ctx, area)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func validate(area Area) error {
	if area.Name == "" {
		return fmt.Errorf("area name is required")
	}
	if area.MinServants < 0 {
		return fmt.Errorf("min servants must not be negative")
	}
	if area.MaxServants != nil && *area.MaxServants < 1 {
		return ErrInvalidCapacity
	}
	if area.MaxServants != nil && *area.MaxServants < area.MinServants {
		return fmt.Errorf("max servants must not be lower than min servants")
	}
	return nil
}
