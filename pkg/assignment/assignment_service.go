package assignment

import (
	"context"
	"errors"

	"github.com/ekklesia/ekklesia/pkg/schedule_event"
	"github.com/ekklesia/ekklesia/pkg/schedule_period"
)

// ErrPeriodClosed guards assignment changes on closed periods. Published
// periods stay editable so leaders can handle last-minute swaps.
var ErrPeriodClosed = errors.New("schedule period is closed")

type Service interface {
	ListByEvent(ctx context.Context, eventId int) ([]ScheduleAssignment, error)
	ListByPeriod(ctx context.Context, periodId int) ([]ScheduleAssignment, error)
	Assign(ctx context.Context, assignment ScheduleAssignment) (ScheduleAssignment, error)
	Delete(ctx context.Context, id int) (bool, error)
	DeleteByEventAndArea(ctx context.Context, eventId, areaId int) (bool, error)
}

type ServiceImpl struct {
	repo    Repository
	events  schedule_event.Repository
	periods schedule_period.Repository
}

func NewService(repo Repository, events schedule_event.Repository, periods schedule_period.Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo, events: events, periods: periods}
}

func (s *ServiceImpl) ListByEvent(ctx context.Context, eventId int) ([]ScheduleAssignment, error) {
	return s.repo.ListByEvent(ctx, eventId)
}

func (s *ServiceImpl) ListByPeriod(ctx context.Context, periodId int) ([]ScheduleAssignment, error) {
	return s.repo.ListByPeriod(ctx, periodId)
}

// Assign puts a servant on duty for an event's area. The area's previous
// servant, if any, is replaced.
func (s *ServiceImpl) Assign(ctx context.Context, assignment ScheduleAssignment) (ScheduleAssignment, error) {
	if err := assignment.Validate(); err != nil {
		return ScheduleAssignment{}, err
	}
	event, err := s.events.Get(ctx, assignment.EventId)
	if err != nil {
		return ScheduleAssignment{}, err
	}
	period, err := s.periods.Get(ctx, event.PeriodId)
	if err != nil {
		return ScheduleAssignment{}, err
	}
	if period.Status == schedule_period.StatusClosed {
		return ScheduleAssignment{}, ErrPeriodClosed
	}
	return s.repo.Upsert(ctx, assignment)
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	return s.repo.Delete(ctx, id)
}

func (s *ServiceImpl) DeleteByEventAndArea(ctx context.Context, eventId, areaId int) (bool, error) {
	return s.repo.DeleteByEventAndArea(ctx, eventId, areaId)
}
