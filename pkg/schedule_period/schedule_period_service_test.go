package schedule_period

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekklesia/ekklesia/internal/event_bus"
	"github.com/ekklesia/ekklesia/internal/utils"
	"github.com/ekklesia/ekklesia/pkg/booking"
	"github.com/ekklesia/ekklesia/pkg/regular_event"
	"github.com/ekklesia/ekklesia/pkg/schedule_event"
)

type serviceFixture struct {
	service   *ServiceImpl
	periods   *StubRepository
	events    *schedule_event.StubRepository
	templates *regular_event.StubRepository
	bookings  *booking.StubRepository
	bus       *event_bus.EventBus
	clock     *utils.MockClock
}

func newFixture() serviceFixture {
	periods := NewStubRepository()
	events := schedule_event.NewStubRepository()
	templates := regular_event.NewStubRepository()
	bookings := booking.NewStubRepository()
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.February, 15, 12, 0, 0, 0, time.UTC)}
	service := NewService(periods, events, templates, bookings, bus, clock)
	return serviceFixture{service, periods, events, templates, bookings, bus, clock}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("should open the period in draft with month bounds and a token", func(t *testing.T) {
		// given
		f := newFixture()

		// when
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})

		// then
		require.NoError(t, err)
		assert.Equal(t, StatusDraft, created.Status)
		assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), created.StartDate)
		assert.Equal(t, time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC), created.EndDate)
		assert.NotEmpty(t, created.AvailabilityToken)
		assert.Nil(t, created.PublishedAt)
	})

	t.Run("should generate the default schedule when the ministry has no templates", func(t *testing.T) {
		// given
		f := newFixture()

		// when
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})

		// then
		require.NoError(t, err)
		events, err := f.events.ListByPeriod(ctx, created.Id)
		require.NoError(t, err)
		// March 2025: 5 Sundays x 2 services, 5 fasting services (Mar 3-7),
		// 3 Wednesday prayer services (Mar 12, 19, 26)
		assert.Len(t, events, 18)
	})

	t.Run("should refuse a second period for the same ministry and month", func(t *testing.T) {
		// given
		f := newFixture()
		_, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)

		// when
		_, err = f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})

		// then
		assert.ErrorIs(t, err, ErrPeriodExists)
	})

	t.Run("should issue a different token to every period", func(t *testing.T) {
		// given
		f := newFixture()

		// when
		first, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)
		second, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 4, Year: 2025})
		require.NoError(t, err)

		// then
		assert.NotEqual(t, first.AvailabilityToken, second.AvailabilityToken)
	})
}

func TestServiceGenerateEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("should use the ministry's templates when they exist", func(t *testing.T) {
		// given
		f := newFixture()
		_, err := f.templates.Create(ctx, regular_event.RegularEvent{
			Title: "Youth meeting", DayOfWeek: time.Friday, EventTime: "18:30", MinistryIds: []int{1},
		})
		require.NoError(t, err)

		// when
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})

		// then
		require.NoError(t, err)
		events, err := f.events.ListByPeriod(ctx, created.Id)
		require.NoError(t, err)
		// Fridays in March 2025: 7, 14, 21, 28
		assert.Len(t, events, 4)
		for _, e := range events {
			assert.Equal(t, "Youth meeting", e.Title)
		}
	})

	t.Run("should be idempotent across repeated runs", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)

		// when
		added, err := f.service.GenerateEvents(ctx, created.Id)

		// then
		require.NoError(t, err)
		assert.Zero(t, added)
		count, err := f.events.CountByPeriod(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, 18, count)
	})

	t.Run("should refuse regeneration on a published period", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)
		created.Status = StatusPublished
		_, err = f.periods.Update(ctx, created)
		require.NoError(t, err)

		// when
		_, err = f.service.GenerateEvents(ctx, created.Id)

		// then
		assert.ErrorIs(t, err, ErrPeriodLocked)
	})
}

func TestServiceImportBookings(t *testing.T) {
	ctx := context.Background()

	t.Run("should import approved bookings that fall inside the period", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)
		_, err = f.bookings.Create(ctx, booking.Booking{
			Title: "Wedding", EventDate: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			EventTime: "14:00", Status: booking.StatusApproved,
		})
		require.NoError(t, err)
		_, err = f.bookings.Create(ctx, booking.Booking{
			Title: "Concert", EventDate: time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC),
			EventTime: "19:00", Status: booking.StatusPending,
		})
		require.NoError(t, err)

		// when
		imported, err := f.service.ImportBookings(ctx, created.Id)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, imported)
		events, err := f.events.ListByPeriod(ctx, created.Id)
		require.NoError(t, err)
		var wedding *schedule_event.ScheduleEvent
		for i := range events {
			if events[i].Title == "Wedding" {
				wedding = &events[i]
			}
		}
		require.NotNil(t, wedding)
		assert.Equal(t, schedule_event.TypeImported, wedding.EventType)
		assert.Equal(t, schedule_event.SourceBookingSystem, wedding.Source)
		require.NotNil(t, wedding.ExternalId)
	})

	t.Run("should skip bookings that were already imported", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)
		_, err = f.bookings.Create(ctx, booking.Booking{
			Title: "Wedding", EventDate: time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			EventTime: "14:00", Status: booking.StatusApproved,
		})
		require.NoError(t, err)
		_, err = f.service.ImportBookings(ctx, created.Id)
		require.NoError(t, err)

		// when
		imported, err := f.service.ImportBookings(ctx, created.Id)

		// then
		require.NoError(t, err)
		assert.Zero(t, imported)
	})
}

func TestServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("should move the status along the lifecycle", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)

		// when
		created.Status = StatusCollecting
		updated, err := f.service.Update(ctx, created)

		// then
		require.NoError(t, err)
		assert.Equal(t, StatusCollecting, updated.Status)
	})

	t.Run("should publish a status change on the event bus", func(t *testing.T) {
		// given
		f := newFixture()
		var received []event_bus.SchedulePeriodStatusChanged
		event_bus.SubscribeTyped(f.bus, event_bus.SchedulePeriodStatusChangedEvent,
			func(e event_bus.EventT[event_bus.SchedulePeriodStatusChanged]) error {
				received = append(received, e.Data)
				return nil
			})
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)

		// when
		created.Status = StatusCollecting
		_, err = f.service.Update(ctx, created)

		// then
		require.NoError(t, err)
		require.Len(t, received, 1)
		assert.Equal(t, "draft", received[0].From)
		assert.Equal(t, "collecting", received[0].To)
		assert.Equal(t, created.AvailabilityToken, received[0].AvailabilityToken)
	})

	t.Run("should refuse skipping lifecycle stages", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)

		// when
		created.Status = StatusPublished
		_, err = f.service.Update(ctx, created)

		// then
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestServicePublish(t *testing.T) {
	ctx := context.Background()

	advanceToScheduling := func(t *testing.T, f serviceFixture, period SchedulePeriod) SchedulePeriod {
		t.Helper()
		for _, status := range []Status{StatusCollecting, StatusScheduling} {
			period.Status = status
			updated, err := f.service.Update(ctx, period)
			require.NoError(t, err)
			period = updated
		}
		return period
	}

	t.Run("should refuse publishing while events have no assignment", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)
		advanceToScheduling(t, f, created)

		// when
		_, err = f.service.Publish(ctx, created.Id)

		// then
		var unassigned *UnassignedEventsError
		require.ErrorAs(t, err, &unassigned)
		assert.Equal(t, 18, unassigned.Count)
	})

	t.Run("should refuse publishing an empty period", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)
		events, err := f.events.ListByPeriod(ctx, created.Id)
		require.NoError(t, err)
		for _, e := range events {
			_, err := f.events.Delete(ctx, e.Id)
			require.NoError(t, err)
		}
		advanceToScheduling(t, f, created)

		// when
		_, err = f.service.Publish(ctx, created.Id)

		// then
		assert.ErrorIs(t, err, ErrNoEvents)
	})

	t.Run("should publish and stamp the publication time when all events are assigned", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)
		events, err := f.events.ListByPeriod(ctx, created.Id)
		require.NoError(t, err)
		for _, e := range events {
			f.events.Assigned[e.Id] = true
		}
		advanceToScheduling(t, f, created)

		// when
		published, err := f.service.Publish(ctx, created.Id)

		// then
		require.NoError(t, err)
		assert.Equal(t, StatusPublished, published.Status)
		require.NotNil(t, published.PublishedAt)
		assert.Equal(t, f.clock.FixedNow, *published.PublishedAt)
	})

	t.Run("should refuse publishing a period that is already published", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)
		events, err := f.events.ListByPeriod(ctx, created.Id)
		require.NoError(t, err)
		for _, e := range events {
			f.events.Assigned[e.Id] = true
		}
		advanceToScheduling(t, f, created)
		published, err := f.service.Publish(ctx, created.Id)
		require.NoError(t, err)

		// when
		_, err = f.service.Publish(ctx, created.Id)

		// then
		assert.ErrorIs(t, err, ErrInvalidTransition)
		fetched, err := f.service.Get(ctx, created.Id)
		require.NoError(t, err)
		require.NotNil(t, fetched.PublishedAt)
		assert.Equal(t, *published.PublishedAt, *fetched.PublishedAt)
	})
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("should delete a draft period", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)

		// when
		deleted, err := f.service.Delete(ctx, created.Id)

		// then
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("should refuse deleting a published period", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)
		created.Status = StatusPublished
		_, err = f.periods.Update(ctx, created)
		require.NoError(t, err)

		// when
		_, err = f.service.Delete(ctx, created.Id)

		// then
		assert.ErrorIs(t, err, ErrPeriodLocked)
	})
}

func TestServiceEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("should add a one-off event inside the period", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)

		// when
		event, err := f.service.AddEvent(ctx, created.Id, schedule_event.ScheduleEvent{
			Title: "Easter rehearsal", EventDate: time.Date(2025, time.March, 22, 0, 0, 0, 0, time.UTC), EventTime: "16:00",
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, schedule_event.TypeSpecial, event.EventType)
		assert.Equal(t, schedule_event.SourceManual, event.Source)
	})

	t.Run("should refuse an event outside the period's month", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)

		// when
		_, err = f.service.AddEvent(ctx, created.Id, schedule_event.ScheduleEvent{
			Title: "Stray", EventDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), EventTime: "10:00",
		})

		// then
		assert.Error(t, err)
	})

	t.Run("should refuse a duplicate of an existing event", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)

		// when: same date, time and title as a generated Sunday service
		_, err = f.service.AddEvent(ctx, created.Id, schedule_event.ScheduleEvent{
			Title: "Sunday morning service", EventDate: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC), EventTime: "10:00",
		})

		// then
		assert.Error(t, err)
	})

	t.Run("should only delete events while the period is in draft", func(t *testing.T) {
		// given
		f := newFixture()
		created, err := f.service.Create(ctx, SchedulePeriod{MinistryId: 1, Month: 3, Year: 2025})
		require.NoError(t, err)
		events, err := f.events.ListByPeriod(ctx, created.Id)
		require.NoError(t, err)
		require.NotEmpty(t, events)

		// when: draft
		deleted, err := f.service.DeleteEvent(ctx, events[0].Id)
		require.NoError(t, err)
		assert.True(t, deleted)

		// when: collecting
		created.Status = StatusCollecting
		_, err = f.service.Update(ctx, created)
		require.NoError(t, err)
		_, err = f.service.DeleteEvent(ctx, events[1].Id)

		// then
		assert.ErrorIs(t, err, ErrEventNotDeletable)
	})
}
