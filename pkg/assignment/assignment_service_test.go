package assignment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekklesia/ekklesia/pkg/schedule_event"
	"github.com/ekklesia/ekklesia/pkg/schedule_period"
)

type fixture struct {
	service *ServiceImpl
	repo    *StubRepository
	events  *schedule_event.StubRepository
	periods *schedule_period.StubRepository
	period  schedule_period.SchedulePeriod
	event   schedule_event.ScheduleEvent
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()

	repo := NewStubRepository()
	events := schedule_event.NewStubRepository()
	periods := schedule_period.NewStubRepository()
	service := NewService(repo, events, periods)

	period, err := periods.Create(ctx, schedule_period.SchedulePeriod{
		MinistryId:        1,
		Month:             3,
		Year:              2025,
		Status:            schedule_period.StatusScheduling,
		StartDate:         time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		AvailabilityToken: "token",
	})
	require.NoError(t, err)

	event, err := events.Create(ctx, schedule_event.ScheduleEvent{
		PeriodId:  period.Id,
		Title:     "Sunday morning service",
		EventDate: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
		EventTime: "10:00",
		EventType: schedule_event.TypeRegular,
		Source:    schedule_event.SourceRegularCalendar,
	})
	require.NoError(t, err)
	repo.EventPeriod[event.Id] = period.Id

	return fixture{service, repo, events, periods, period, event}
}

func TestServiceAssign(t *testing.T) {
	ctx := context.Background()

	t.Run("should assign a servant to an area", func(t *testing.T) {
		// given
		f := newFixture(t)

		// when
		stored, err := f.service.Assign(ctx, ScheduleAssignment{EventId: f.event.Id, AreaId: 1, ServantId: 7})

		// then
		require.NoError(t, err)
		assert.NotZero(t, stored.Id)
		assert.Equal(t, 7, stored.ServantId)
	})

	t.Run("should replace the previous servant of the same area", func(t *testing.T) {
		// given
		f := newFixture(t)
		first, err := f.service.Assign(ctx, ScheduleAssignment{EventId: f.event.Id, AreaId: 1, ServantId: 7})
		require.NoError(t, err)

		// when
		second, err := f.service.Assign(ctx, ScheduleAssignment{EventId: f.event.Id, AreaId: 1, ServantId: 8})

		// then
		require.NoError(t, err)
		assert.Equal(t, first.Id, second.Id)
		assignments, err := f.service.ListByEvent(ctx, f.event.Id)
		require.NoError(t, err)
		require.Len(t, assignments, 1)
		assert.Equal(t, 8, assignments[0].ServantId)
	})

	t.Run("should keep assignments of other areas untouched", func(t *testing.T) {
		// given
		f := newFixture(t)
		_, err := f.service.Assign(ctx, ScheduleAssignment{EventId: f.event.Id, AreaId: 1, ServantId: 7})
		require.NoError(t, err)

		// when
		_, err = f.service.Assign(ctx, ScheduleAssignment{EventId: f.event.Id, AreaId: 2, ServantId: 8})

		// then
		require.NoError(t, err)
		assignments, err := f.service.ListByEvent(ctx, f.event.Id)
		require.NoError(t, err)
		assert.Len(t, assignments, 2)
	})

	t.Run("should refuse assignments for unknown events", func(t *testing.T) {
		// given
		f := newFixture(t)

		// when
		_, err := f.service.Assign(ctx, ScheduleAssignment{EventId: 999, AreaId: 1, ServantId: 7})

		// then
		assert.ErrorIs(t, err, schedule_event.ErrScheduleEventNotFound)
	})

	t.Run("should still allow changes on a published period", func(t *testing.T) {
		// given
		f := newFixture(t)
		f.period.Status = schedule_period.StatusPublished
		_, err := f.periods.Update(ctx, f.period)
		require.NoError(t, err)

		// when
		_, err = f.service.Assign(ctx, ScheduleAssignment{EventId: f.event.Id, AreaId: 1, ServantId: 7})

		// then
		assert.NoError(t, err)
	})

	t.Run("should refuse changes on a closed period", func(t *testing.T) {
		// given
		f := newFixture(t)
		f.period.Status = schedule_period.StatusClosed
		_, err := f.periods.Update(ctx, f.period)
		require.NoError(t, err)

		// when
		_, err = f.service.Assign(ctx, ScheduleAssignment{EventId: f.event.Id, AreaId: 1, ServantId: 7})

		// then
		assert.ErrorIs(t, err, ErrPeriodClosed)
	})
}

func TestServiceDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("should clear an area by event and area id", func(t *testing.T) {
		// given
		f := newFixture(t)
		_, err := f.service.Assign(ctx, ScheduleAssignment{EventId: f.event.Id, AreaId: 1, ServantId: 7})
		require.NoError(t, err)

		// when
		deleted, err := f.service.DeleteByEventAndArea(ctx, f.event.Id, 1)

		// then
		require.NoError(t, err)
		assert.True(t, deleted)
		assignments, err := f.service.ListByEvent(ctx, f.event.Id)
		require.NoError(t, err)
		assert.Empty(t, assignments)
	})

	t.Run("should report a missing assignment", func(t *testing.T) {
		// given
		f := newFixture(t)

		// when
		deleted, err := f.service.Delete(ctx, 42)

		// then
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
