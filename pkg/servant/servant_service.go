package servant

import (
	"context"
	"fmt"
)

type Service interface {
	ListByArea(ctx context.Context, areaId int) ([]Servant, error)
	ListByMinistry(ctx context.Context, ministryId int) ([]Servant, error)
	Get(ctx context.Context, id int) (Servant, error)
	Create(ctx context.Context, servant Servant) (Servant, error)
	Update(ctx context.Context, servant Servant) (Servant, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type ServiceImpl struct {
	repo Repository
}

func NewServantService(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListByArea(ctx context.Context, areaId int) ([]Servant, error) {
	return s.repo.ListByArea(ctx, areaId)
}

func (s *ServiceImpl) ListByMinistry(ctx context.Context, ministryId int) ([]Servant, error) {
	return s.repo.ListByMinistry(ctx, ministryId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (Servant, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) Create(ctx context.Context, servant Servant) (Servant, error) {
	if servant.Name == "" {
		return Servant{}, fmt.Errorf("servant name is required")
	}
	if servant.AreaId == 0 {
		return Servant{}, fmt.Errorf("servant area is required")
	}
	return s.repo.Create(ctx, servant)
}

func (s *ServiceImpl) Update(ctx context.Context, servant Servant) (Servant, error) {
	if servant.Name == "" {
		return Servant{}, fmt.Errorf("servant name is required")
	}
	return s.repo.Update(ctx, servant)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}
