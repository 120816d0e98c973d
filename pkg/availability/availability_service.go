package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/ekklesia/ekklesia/internal/utils"
	"github.com/ekklesia/ekklesia/pkg/schedule_event"
	"github.com/ekklesia/ekklesia/pkg/schedule_period"
	"github.com/ekklesia/ekklesia/pkg/servant"
)

var (
	// ErrFormClosed is returned when the period is not collecting availability.
	ErrFormClosed = errors.New("availability collection is not open for this period")
	// ErrDeadlinePassed is returned once the availability deadline is over.
	ErrDeadlinePassed = errors.New("the availability deadline has passed")
	// ErrServantNotInMinistry guards submissions for servants of other ministries.
	ErrServantNotInMinistry = errors.New("servant does not serve in this ministry")
	// ErrUnknownEvent guards entries referencing events outside the period.
	ErrUnknownEvent = errors.New("entry references an event outside this period")
)

// Form is everything the public availability page needs: the period, its
// events, the servants who may answer and the answers given so far.
type Form struct {
	Period   schedule_period.SchedulePeriod
	Events   []schedule_event.ScheduleEvent
	Servants []servant.Servant
	Entries  []ServantAvailability
}

// ServantProvider supplies the active servants of a ministry.
type ServantProvider interface {
	ListByMinistry(ctx context.Context, ministryId int) ([]servant.Servant, error)
}

type Service interface {
	GetForm(ctx context.Context, token string) (Form, error)
	Submit(ctx context.Context, token string, servantId int, entries []ServantAvailability) error
	ListByPeriod(ctx context.Context, periodId int) ([]ServantAvailability, error)
}

type ServiceImpl struct {
	repo     Repository
	periods  schedule_period.Repository
	events   schedule_event.Repository
	servants ServantProvider
	clock    utils.Clock
}

func NewService(
	repo Repository,
	periods schedule_period.Repository,
	events schedule_event.Repository,
	servants ServantProvider,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		repo:     repo,
		periods:  periods,
		events:   events,
		servants: servants,
		clock:    clock,
	}
}

// GetForm resolves the availability form behind a token. The form is only
// served while the period is collecting and the deadline, when set, has not
// passed.
func (s *ServiceImpl) GetForm(ctx context.Context, token string) (Form, error) {
	period, err := s.openPeriod(ctx, token)
	if err != nil {
		return Form{}, err
	}

	events, err := s.events.ListByPeriod(ctx, period.Id)
	if err != nil {
		return Form{}, err
	}
	servants, err := s.servants.ListByMinistry(ctx, period.MinistryId)
	if err != nil {
		return Form{}, err
	}
	entries, err := s.repo.ListByPeriod(ctx, period.Id)
	if err != nil {
		return Form{}, err
	}
	return Form{Period: period, Events: events, Servants: servants, Entries: entries}, nil
}

// Submit stores one servant's answers for the period, replacing any previous
// submission by the same servant in full.
func (s *ServiceImpl) Submit(ctx context.Context, token string, servantId int, entries []ServantAvailability) error {
	period, err := s.openPeriod(ctx, token)
	if err != nil {
		return err
	}

	servants, err := s.servants.ListByMinistry(ctx, period.MinistryId)
	if err != nil {
		return err
	}
	known := false
	for _, sv := range servants {
		if sv.Id == servantId {
			known = true
			break
		}
	}
	if !known {
		return ErrServantNotInMinistry
	}

	events, err := s.events.ListByPeriod(ctx, period.Id)
	if err != nil {
		return err
	}
	eventIds := make(map[int]bool, len(events))
	for _, e := range events {
		eventIds[e.Id] = true
	}
	for _, entry := range entries {
		if !eventIds[entry.EventId] {
			return fmt.Errorf("%w: event %d", ErrUnknownEvent, entry.EventId)
		}
	}

	return s.repo.ReplaceForServant(ctx, period.Id, servantId, entries)
}

func (s *ServiceImpl) ListByPeriod(ctx context.Context, periodId int) ([]ServantAvailability, error) {
	return s.repo.ListByPeriod(ctx, periodId)
}

func (s *ServiceImpl) openPeriod(ctx context.Context, token string) (schedule_period.SchedulePeriod, error) {
	period, err := s.periods.GetByToken(ctx, token)
	if err != nil {
		return schedule_period.SchedulePeriod{}, err
	}
	if period.Status != schedule_period.StatusCollecting {
		return schedule_period.SchedulePeriod{}, ErrFormClosed
	}
	if period.AvailabilityDeadline != nil && s.clock.Now().After(*period.AvailabilityDeadline) {
		return schedule_period.SchedulePeriod{}, ErrDeadlinePassed
	}
	return period, nil
}
