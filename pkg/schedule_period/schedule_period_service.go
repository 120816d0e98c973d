package schedule_period

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ekklesia/ekklesia/internal/event_bus"
	"github.com/ekklesia/ekklesia/internal/utils"
	"github.com/ekklesia/ekklesia/pkg/booking"
	"github.com/ekklesia/ekklesia/pkg/regular_event"
	"github.com/ekklesia/ekklesia/pkg/schedule_event"
)

var (
	// ErrNoEvents blocks publishing a period that has no events at all.
	ErrNoEvents = errors.New("schedule period has no events")
	// ErrPeriodLocked guards event changes on published and closed periods.
	ErrPeriodLocked = errors.New("schedule period is published and can no longer be changed")
	// ErrEventNotDeletable guards deletion of events outside the draft stage.
	ErrEventNotDeletable = errors.New("events can only be deleted while the period is in draft")
)

// UnassignedEventsError blocks publishing while events without any
// assignment remain, and reports how many are left.
type UnassignedEventsError struct {
	Count int
}

func (e *UnassignedEventsError) Error() string {
	return fmt.Sprintf("%d event(s) have no assignment yet", e.Count)
}

// TemplateProvider supplies the recurring event templates of a ministry.
type TemplateProvider interface {
	ListByMinistry(ctx context.Context, ministryId int) ([]regular_event.RegularEvent, error)
}

// BookingProvider supplies approved facility bookings for a date range.
type BookingProvider interface {
	ListApprovedBetween(ctx context.Context, from, to time.Time) ([]booking.Booking, error)
}

type Service interface {
	List(ctx context.Context, ministryId int) ([]SchedulePeriod, error)
	Get(ctx context.Context, id int) (SchedulePeriod, error)
	GetByToken(ctx context.Context, token string) (SchedulePeriod, error)
	Create(ctx context.Context, period SchedulePeriod) (SchedulePeriod, error)
	Update(ctx context.Context, period SchedulePeriod) (SchedulePeriod, error)
	Delete(ctx context.Context, id int) (bool, error)
	Publish(ctx context.Context, id int) (SchedulePeriod, error)

	GenerateEvents(ctx context.Context, periodId int) (int, error)
	ImportBookings(ctx context.Context, periodId int) (int, error)
	ListEvents(ctx context.Context, periodId int) ([]schedule_event.ScheduleEvent, error)
	AddEvent(ctx context.Context, periodId int, event schedule_event.ScheduleEvent) (schedule_event.ScheduleEvent, error)
	DeleteEvent(ctx context.Context, eventId int) (bool, error)
}

type ServiceImpl struct {
	repo      Repository
	events    schedule_event.Repository
	templates TemplateProvider
	bookings  BookingProvider
	bus       *event_bus.EventBus
	clock     utils.Clock
}

func NewService(
	repo Repository,
	events schedule_event.Repository,
	templates TemplateProvider,
	bookings BookingProvider,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		repo:      repo,
		events:    events,
		templates: templates,
		bookings:  bookings,
		bus:       bus,
		clock:     clock,
	}
}

func (s *ServiceImpl) List(ctx context.Context, ministryId int) ([]SchedulePeriod, error) {
	return s.repo.List(ctx, ministryId)
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (SchedulePeriod, error) {
	return s.repo.Get(ctx, id)
}

func (s *ServiceImpl) GetByToken(ctx context.Context, token string) (SchedulePeriod, error) {
	return s.repo.GetByToken(ctx, token)
}

// Create opens a new period in draft, stamps its month bounds, issues the
// availability token and generates the fixed events up front. Generation
// failures do not fail the create; events can be regenerated on demand.
func (s *ServiceImpl) Create(ctx context.Context, period SchedulePeriod) (SchedulePeriod, error) {
	if err := period.Validate(); err != nil {
		return SchedulePeriod{}, err
	}
	period.Status = StatusDraft
	period.StartDate, period.EndDate = period.MonthBounds()
	period.AvailabilityToken = utils.NewOpaqueToken()
	period.PublishedAt = nil

	created, err := s.repo.Create(ctx, period)
	if err != nil {
		return SchedulePeriod{}, err
	}

	if _, err := s.GenerateEvents(ctx, created.Id); err != nil {
		log.Errorf("Failed to generate events for new period %d: %v", created.Id, err)
	}
	return created, nil
}

// Update applies deadline and notes changes and routes status changes
// through the transition table. Moving to published runs the publish checks.
func (s *ServiceImpl) Update(ctx context.Context, period SchedulePeriod) (SchedulePeriod, error) {
	current, err := s.repo.Get(ctx, period.Id)
	if err != nil {
		return SchedulePeriod{}, err
	}

	next := current
	next.AvailabilityDeadline = period.AvailabilityDeadline
	next.Notes = period.Notes

	if period.Status != "" && period.Status != current.Status {
		if !current.Status.CanTransitionTo(period.Status) {
			return SchedulePeriod{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, period.Status)
		}
		if period.Status == StatusPublished {
			if err := s.publishChecks(ctx, current.Id); err != nil {
				return SchedulePeriod{}, err
			}
			now := s.clock.Now()
			next.PublishedAt = &now
		}
		next.Status = period.Status
	}

	updated, err := s.repo.Update(ctx, next)
	if err != nil {
		return SchedulePeriod{}, err
	}
	if updated.Status != current.Status {
		s.notifyStatusChanged(ctx, current.Status, updated)
	}
	return updated, nil
}

// Delete removes a period and, through the schema's cascades, its events,
// availability entries and assignments. Published periods cannot be deleted.
func (s *ServiceImpl) Delete(ctx context.Context, id int) (bool, error) {
	period, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPeriodNotFound) {
			return false, nil
		}
		return false, err
	}
	if period.Status == StatusPublished || period.Status == StatusClosed {
		return false, ErrPeriodLocked
	}
	return s.repo.Delete(ctx, id)
}

// Publish moves a period to published after verifying it has events and
// that none of them is left without an assignment. Publishing an already
// published period is a conflict, not a no-op.
func (s *ServiceImpl) Publish(ctx context.Context, id int) (SchedulePeriod, error) {
	period, err := s.repo.Get(ctx, id)
	if err != nil {
		return SchedulePeriod{}, err
	}
	if period.Status == StatusPublished {
		return SchedulePeriod{}, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, period.Status, StatusPublished)
	}
	period.Status = StatusPublished
	return s.Update(ctx, period)
}

// GenerateEvents expands the ministry's recurring templates (or the default
// schedule) over the period's month and inserts the occurrences that do not
// exist yet. Repeated calls are idempotent: an event is identified by its
// date, time and title within the period.
func (s *ServiceImpl) GenerateEvents(ctx context.Context, periodId int) (int, error) {
	period, err := s.repo.Get(ctx, periodId)
	if err != nil {
		return 0, err
	}
	if period.Status == StatusPublished || period.Status == StatusClosed {
		return 0, ErrPeriodLocked
	}

	templates, err := s.templates.ListByMinistry(ctx, period.MinistryId)
	if err != nil {
		return 0, err
	}
	generated := schedule_event.BuildFixedEvents(period.Id, period.StartDate, period.EndDate, templates)

	existing, err := s.existingKeys(ctx, period.Id)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, event := range generated {
		if existing[event.Key()] {
			continue
		}
		if _, err := s.events.Create(ctx, event); err != nil {
			return created, err
		}
		existing[event.Key()] = true
		created++
	}

	if created > 0 {
		s.publishEvent(ctx, event_bus.ScheduleEventsGeneratedEvent,
			event_bus.ScheduleEventsGenerated{PeriodId: period.Id, Created: created})
	}
	return created, nil
}

// ImportBookings copies approved facility bookings that fall inside the
// period into the schedule as imported events. A booking already imported
// (matched by external id) or colliding with an existing event's date, time
// and title is skipped.
func (s *ServiceImpl) ImportBookings(ctx context.Context, periodId int) (int, error) {
	period, err := s.repo.Get(ctx, periodId)
	if err != nil {
		return 0, err
	}
	if period.Status == StatusPublished || period.Status == StatusClosed {
		return 0, ErrPeriodLocked
	}

	bookings, err := s.bookings.ListApprovedBetween(ctx, period.StartDate, period.EndDate)
	if err != nil {
		return 0, err
	}

	current, err := s.events.ListByPeriod(ctx, period.Id)
	if err != nil {
		return 0, err
	}
	keys := make(map[schedule_event.Key]bool, len(current))
	externalIds := make(map[string]bool)
	for _, event := range current {
		keys[event.Key()] = true
		if event.ExternalId != nil {
			externalIds[*event.ExternalId] = true
		}
	}

	created := 0
	for _, b := range bookings {
		externalId := fmt.Sprintf("booking-%d", b.Id)
		if externalIds[externalId] {
			continue
		}
		event := schedule_event.ScheduleEvent{
			PeriodId:   period.Id,
			Title:      b.Title,
			EventDate:  b.EventDate,
			EventTime:  b.EventTime,
			EventType:  schedule_event.TypeImported,
			Source:     schedule_event.SourceBookingSystem,
			ExternalId: &externalId,
		}
		if keys[event.Key()] {
			continue
		}
		if _, err := s.events.Create(ctx, event); err != nil {
			return created, err
		}
		keys[event.Key()] = true
		externalIds[externalId] = true
		created++
	}
	return created, nil
}

func (s *ServiceImpl) ListEvents(ctx context.Context, periodId int) ([]schedule_event.ScheduleEvent, error) {
	if _, err := s.repo.Get(ctx, periodId); err != nil {
		return nil, err
	}
	return s.events.ListByPeriod(ctx, periodId)
}

// AddEvent inserts a one-off event into the period. Duplicates of an
// existing date, time and title are rejected.
func (s *ServiceImpl) AddEvent(ctx context.Context, periodId int, event schedule_event.ScheduleEvent) (schedule_event.ScheduleEvent, error) {
	period, err := s.repo.Get(ctx, periodId)
	if err != nil {
		return schedule_event.ScheduleEvent{}, err
	}
	if period.Status == StatusPublished || period.Status == StatusClosed {
		return schedule_event.ScheduleEvent{}, ErrPeriodLocked
	}

	event.PeriodId = period.Id
	if event.EventType == "" {
		event.EventType = schedule_event.TypeSpecial
	}
	if event.Source == "" {
		event.Source = schedule_event.SourceManual
	}
	if err := event.Validate(); err != nil {
		return schedule_event.ScheduleEvent{}, err
	}
	if event.EventDate.Before(period.StartDate) || event.EventDate.After(period.EndDate) {
		return schedule_event.ScheduleEvent{}, fmt.Errorf("event date %s is outside the period", event.EventDate.Format(time.DateOnly))
	}

	existing, err := s.existingKeys(ctx, period.Id)
	if err != nil {
		return schedule_event.ScheduleEvent{}, err
	}
	if existing[event.Key()] {
		return schedule_event.ScheduleEvent{}, fmt.Errorf("an event with the same date, time and title already exists")
	}
	return s.events.Create(ctx, event)
}

// DeleteEvent removes an event, but only while its period is still in draft.
func (s *ServiceImpl) DeleteEvent(ctx context.Context, eventId int) (bool, error) {
	event, err := s.events.Get(ctx, eventId)
	if err != nil {
		if errors.Is(err, schedule_event.ErrScheduleEventNotFound) {
			return false, nil
		}
		return false, err
	}
	period, err := s.repo.Get(ctx, event.PeriodId)
	if err != nil {
		return false, err
	}
	if period.Status != StatusDraft {
		return false, ErrEventNotDeletable
	}
	return s.events.Delete(ctx, eventId)
}

func (s *ServiceImpl) publishChecks(ctx context.Context, periodId int) error {
	total, err := s.events.CountByPeriod(ctx, periodId)
	if err != nil {
		return err
	}
	if total == 0 {
		return ErrNoEvents
	}
	unassigned, err := s.events.CountUnassigned(ctx, periodId)
	if err != nil {
		return err
	}
	if unassigned > 0 {
		return &UnassignedEventsError{Count: unassigned}
	}
	return nil
}

func (s *ServiceImpl) existingKeys(ctx context.Context, periodId int) (map[schedule_event.Key]bool, error) {
	current, err := s.events.ListByPeriod(ctx, periodId)
	if err != nil {
		return nil, err
	}
	keys := make(map[schedule_event.Key]bool, len(current))
	for _, event := range current {
		keys[event.Key()] = true
	}
	return keys, nil
}

func (s *ServiceImpl) notifyStatusChanged(ctx context.Context, from Status, period SchedulePeriod) {
	s.publishEvent(ctx, event_bus.SchedulePeriodStatusChangedEvent, event_bus.SchedulePeriodStatusChanged{
		PeriodId:          period.Id,
		MinistryId:        period.MinistryId,
		Month:             period.Month,
		Year:              period.Year,
		From:              string(from),
		To:                string(period.Status),
		AvailabilityToken: period.AvailabilityToken,
		Deadline:          period.AvailabilityDeadline,
	})
}

func (s *ServiceImpl) publishEvent(ctx context.Context, eventType event_bus.EventType, data any) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, data)); err != nil {
		log.Errorf("Failed to publish %s event: %v", eventType, err)
	}
}
