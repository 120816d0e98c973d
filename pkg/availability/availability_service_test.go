package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekklesia/ekklesia/internal/utils"
	"github.com/ekklesia/ekklesia/pkg/schedule_event"
	"github.com/ekklesia/ekklesia/pkg/schedule_period"
	"github.com/ekklesia/ekklesia/pkg/servant"
)

type fixture struct {
	service  *ServiceImpl
	repo     *StubRepository
	periods  *schedule_period.StubRepository
	events   *schedule_event.StubRepository
	servants *servant.StubRepository
	clock    *utils.MockClock
}

// newCollectingPeriod seeds one collecting period for ministry 1 with two
// events and two servants, and returns the fixture and the period.
func newCollectingPeriod(t *testing.T) (fixture, schedule_period.SchedulePeriod) {
	t.Helper()
	ctx := context.Background()

	repo := NewStubRepository()
	periods := schedule_period.NewStubRepository()
	events := schedule_event.NewStubRepository()
	servants := servant.NewStubServantRepo()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.February, 15, 12, 0, 0, 0, time.UTC)}
	service := NewService(repo, periods, events, servants, clock)

	period, err := periods.Create(ctx, schedule_period.SchedulePeriod{
		MinistryId:        1,
		Month:             3,
		Year:              2025,
		Status:            schedule_period.StatusCollecting,
		StartDate:         time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
		AvailabilityToken: "test-token",
	})
	require.NoError(t, err)

	for _, day := range []int{2, 9} {
		event, err := events.Create(ctx, schedule_event.ScheduleEvent{
			PeriodId:  period.Id,
			Title:     "Sunday morning service",
			EventDate: time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC),
			EventTime: "10:00",
			EventType: schedule_event.TypeRegular,
			Source:    schedule_event.SourceRegularCalendar,
		})
		require.NoError(t, err)
		repo.EventPeriod[event.Id] = period.Id
	}

	servants.AreaMinistry[1] = 1
	for _, name := range []string{"Anna", "Ben"} {
		_, err := servants.Create(ctx, servant.Servant{AreaId: 1, Name: name})
		require.NoError(t, err)
	}

	return fixture{service, repo, periods, events, servants, clock}, period
}

func TestServiceGetForm(t *testing.T) {
	ctx := context.Background()

	t.Run("should serve the form while the period is collecting", func(t *testing.T) {
		// given
		f, _ := newCollectingPeriod(t)

		// when
		form, err := f.service.GetForm(ctx, "test-token")

		// then
		require.NoError(t, err)
		assert.Len(t, form.Events, 2)
		assert.Len(t, form.Servants, 2)
		assert.Empty(t, form.Entries)
	})

	t.Run("should return not found for an unknown token", func(t *testing.T) {
		// given
		f, _ := newCollectingPeriod(t)

		// when
		_, err := f.service.GetForm(ctx, "wrong-token")

		// then
		assert.ErrorIs(t, err, schedule_period.ErrPeriodNotFound)
	})

	t.Run("should refuse the form outside the collecting stage", func(t *testing.T) {
		// given
		f, period := newCollectingPeriod(t)
		period.Status = schedule_period.StatusDraft
		_, err := f.periods.Update(ctx, period)
		require.NoError(t, err)

		// when
		_, err = f.service.GetForm(ctx, "test-token")

		// then
		assert.ErrorIs(t, err, ErrFormClosed)
	})

	t.Run("should refuse the form after the deadline", func(t *testing.T) {
		// given
		f, period := newCollectingPeriod(t)
		deadline := time.Date(2025, time.February, 10, 23, 59, 0, 0, time.UTC)
		period.AvailabilityDeadline = &deadline
		_, err := f.periods.Update(ctx, period)
		require.NoError(t, err)

		// when
		_, err = f.service.GetForm(ctx, "test-token")

		// then
		assert.ErrorIs(t, err, ErrDeadlinePassed)
	})

	t.Run("should still serve the form at exactly the deadline", func(t *testing.T) {
		// given
		f, period := newCollectingPeriod(t)
		deadline := f.clock.FixedNow
		period.AvailabilityDeadline = &deadline
		_, err := f.periods.Update(ctx, period)
		require.NoError(t, err)

		// when
		form, err := f.service.GetForm(ctx, "test-token")

		// then
		require.NoError(t, err)
		assert.Len(t, form.Events, 2)
	})
}

func TestServiceSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("should store a servant's answers", func(t *testing.T) {
		// given
		f, period := newCollectingPeriod(t)
		form, err := f.service.GetForm(ctx, "test-token")
		require.NoError(t, err)

		// when
		err = f.service.Submit(ctx, "test-token", 1, []ServantAvailability{
			{ServantId: 1, EventId: form.Events[0].Id, IsAvailable: true},
			{ServantId: 1, EventId: form.Events[1].Id, IsAvailable: false, Note: "traveling"},
		})

		// then
		require.NoError(t, err)
		entries, err := f.repo.ListByServantAndPeriod(ctx, 1, period.Id)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.True(t, entries[0].IsAvailable)
		assert.False(t, entries[1].IsAvailable)
		assert.Equal(t, "traveling", entries[1].Note)
		assert.False(t, entries[0].SubmittedAt.IsZero())
	})

	t.Run("should replace the previous submission in full", func(t *testing.T) {
		// given
		f, period := newCollectingPeriod(t)
		form, err := f.service.GetForm(ctx, "test-token")
		require.NoError(t, err)
		err = f.service.Submit(ctx, "test-token", 1, []ServantAvailability{
			{ServantId: 1, EventId: form.Events[0].Id, IsAvailable: true},
			{ServantId: 1, EventId: form.Events[1].Id, IsAvailable: true},
		})
		require.NoError(t, err)

		// when: the second submission only answers one event
		err = f.service.Submit(ctx, "test-token", 1, []ServantAvailability{
			{ServantId: 1, EventId: form.Events[1].Id, IsAvailable: false},
		})

		// then
		require.NoError(t, err)
		entries, err := f.repo.ListByServantAndPeriod(ctx, 1, period.Id)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, form.Events[1].Id, entries[0].EventId)
		assert.False(t, entries[0].IsAvailable)
	})

	t.Run("should not touch other servants' submissions", func(t *testing.T) {
		// given
		f, period := newCollectingPeriod(t)
		form, err := f.service.GetForm(ctx, "test-token")
		require.NoError(t, err)
		err = f.service.Submit(ctx, "test-token", 2, []ServantAvailability{
			{ServantId: 2, EventId: form.Events[0].Id, IsAvailable: true},
		})
		require.NoError(t, err)

		// when
		err = f.service.Submit(ctx, "test-token", 1, []ServantAvailability{
			{ServantId: 1, EventId: form.Events[0].Id, IsAvailable: false},
		})

		// then
		require.NoError(t, err)
		entries, err := f.repo.ListByServantAndPeriod(ctx, 2, period.Id)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, entries[0].IsAvailable)
	})

	t.Run("should refuse a servant from another ministry", func(t *testing.T) {
		// given
		f, _ := newCollectingPeriod(t)
		f.servants.AreaMinistry[2] = 99
		outsider, err := f.servants.Create(ctx, servant.Servant{AreaId: 2, Name: "Chris"})
		require.NoError(t, err)
		form, err := f.service.GetForm(ctx, "test-token")
		require.NoError(t, err)

		// when
		err = f.service.Submit(ctx, "test-token", outsider.Id, []ServantAvailability{
			{ServantId: outsider.Id, EventId: form.Events[0].Id, IsAvailable: true},
		})

		// then
		assert.ErrorIs(t, err, ErrServantNotInMinistry)
	})

	t.Run("should refuse entries for events of another period", func(t *testing.T) {
		// given
		f, _ := newCollectingPeriod(t)

		// when
		err := f.service.Submit(ctx, "test-token", 1, []ServantAvailability{
			{ServantId: 1, EventId: 999, IsAvailable: true},
		})

		// then
		assert.ErrorIs(t, err, ErrUnknownEvent)
	})
}
