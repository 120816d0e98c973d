package schedule_period

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekklesia/ekklesia/internal/test_utils"
	"github.com/ekklesia/ekklesia/pkg/ministry"
	"github.com/ekklesia/ekklesia/pkg/schedule_event"
)

func newPeriod(ministryId, month, year int, token string) SchedulePeriod {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return SchedulePeriod{
		MinistryId:        ministryId,
		Month:             month,
		Year:              year,
		Status:            StatusDraft,
		StartDate:         start,
		EndDate:           start.AddDate(0, 1, -1),
		AvailabilityToken: token,
	}
}

func TestRepositoryImpl(t *testing.T) {
	db := test_utils.SetupTestDB(t)
	ctx := context.Background()

	repository := NewRepository(db)
	eventRepository := schedule_event.NewRepository(db)

	worship, err := ministry.NewRepository(db).Create(ctx, ministry.Ministry{Name: "Worship"})
	require.NoError(t, err)

	t.Run("should create and read back a period", func(t *testing.T) {
		// when
		created, err := repository.Create(ctx, newPeriod(worship.Id, 3, 2025, "token-read"))

		// then
		require.NoError(t, err)
		require.NotZero(t, created.Id)

		fetched, err := repository.Get(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, StatusDraft, fetched.Status)
		assert.Equal(t, 3, fetched.Month)
		assert.Equal(t, 2025, fetched.Year)
		assert.True(t, fetched.StartDate.Equal(created.StartDate))
		assert.True(t, fetched.EndDate.Equal(created.EndDate))
		assert.Nil(t, fetched.PublishedAt)

		byToken, err := repository.GetByToken(ctx, "token-read")
		require.NoError(t, err)
		assert.Equal(t, created.Id, byToken.Id)
	})

	t.Run("should refuse a second period for the same ministry and month", func(t *testing.T) {
		// given
		_, err := repository.Create(ctx, newPeriod(worship.Id, 4, 2025, "token-dup-a"))
		require.NoError(t, err)

		// when
		_, err = repository.Create(ctx, newPeriod(worship.Id, 4, 2025, "token-dup-b"))

		// then
		assert.ErrorIs(t, err, ErrPeriodExists)
	})

	t.Run("should persist status, deadline and publication time", func(t *testing.T) {
		// given
		created, err := repository.Create(ctx, newPeriod(worship.Id, 5, 2025, "token-update"))
		require.NoError(t, err)

		deadline := time.Date(2025, time.April, 20, 23, 59, 0, 0, time.UTC)
		publishedAt := time.Date(2025, time.April, 25, 10, 0, 0, 0, time.UTC)
		created.Status = StatusPublished
		created.AvailabilityDeadline = &deadline
		created.Notes = "Easter month"
		created.PublishedAt = &publishedAt

		// when
		_, err = repository.Update(ctx, created)

		// then
		require.NoError(t, err)
		fetched, err := repository.Get(ctx, created.Id)
		require.NoError(t, err)
		assert.Equal(t, StatusPublished, fetched.Status)
		assert.Equal(t, "Easter month", fetched.Notes)
		require.NotNil(t, fetched.AvailabilityDeadline)
		assert.True(t, fetched.AvailabilityDeadline.Equal(deadline))
		require.NotNil(t, fetched.PublishedAt)
		assert.True(t, fetched.PublishedAt.Equal(publishedAt))
	})

	t.Run("should delete a period together with its events", func(t *testing.T) {
		// given
		created, err := repository.Create(ctx, newPeriod(worship.Id, 6, 2025, "token-delete"))
		require.NoError(t, err)
		event, err := eventRepository.Create(ctx, schedule_event.ScheduleEvent{
			PeriodId:  created.Id,
			Title:     "Sunday morning service",
			EventDate: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
			EventTime: "10:00",
			EventType: schedule_event.TypeRegular,
			Source:    schedule_event.SourceRegularCalendar,
		})
		require.NoError(t, err)

		// when
		deleted, err := repository.Delete(ctx, created.Id)

		// then
		require.NoError(t, err)
		assert.True(t, deleted)
		_, err = repository.Get(ctx, created.Id)
		assert.ErrorIs(t, err, ErrPeriodNotFound)
		_, err = eventRepository.Get(ctx, event.Id)
		assert.ErrorIs(t, err, schedule_event.ErrScheduleEventNotFound)
	})

	t.Run("should round-trip event times as HH:MM", func(t *testing.T) {
		// given
		created, err := repository.Create(ctx, newPeriod(worship.Id, 7, 2025, "token-times"))
		require.NoError(t, err)

		// when
		event, err := eventRepository.Create(ctx, schedule_event.ScheduleEvent{
			PeriodId:  created.Id,
			Title:     "Prayer service",
			EventDate: time.Date(2025, time.July, 9, 0, 0, 0, 0, time.UTC),
			EventTime: "19:00",
			EventType: schedule_event.TypeRegular,
			Source:    schedule_event.SourceRegularCalendar,
		})

		// then
		require.NoError(t, err)
		fetched, err := eventRepository.Get(ctx, event.Id)
		require.NoError(t, err)
		assert.Equal(t, "19:00", fetched.EventTime)
	})

	t.Run("should count events without any assignment", func(t *testing.T) {
		// given
		created, err := repository.Create(ctx, newPeriod(worship.Id, 8, 2025, "token-unassigned"))
		require.NoError(t, err)
		var eventIds []int
		for _, day := range []int{3, 10} {
			event, err := eventRepository.Create(ctx, schedule_event.ScheduleEvent{
				PeriodId:  created.Id,
				Title:     "Sunday morning service",
				EventDate: time.Date(2025, time.August, day, 0, 0, 0, 0, time.UTC),
				EventTime: "10:00",
				EventType: schedule_event.TypeRegular,
				Source:    schedule_event.SourceRegularCalendar,
			})
			require.NoError(t, err)
			eventIds = append(eventIds, event.Id)
		}
		areaId := insertArea(t, db, worship.Id)
		servantId := insertServant(t, db, areaId)
		_, err = db.Exec(ctx,
			"INSERT INTO schedule_assignment (event_id, area_id, servant_id) VALUES ($1, $2, $3)",
			eventIds[0], areaId, servantId)
		require.NoError(t, err)

		// when
		unassigned, err := eventRepository.CountUnassigned(ctx, created.Id)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, unassigned)
	})
}

func insertArea(t *testing.T, db *pgxpool.Pool, ministryId int) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO area (ministry_id, name, min_servants) VALUES ($1, 'Sound', 1) RETURNING id",
		ministryId).Scan(&id)
	require.NoError(t, err)
	return id
}

func insertServant(t *testing.T, db *pgxpool.Pool, areaId int) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		"INSERT INTO servant (area_id, name) VALUES ($1, 'Anna') RETURNING id",
		areaId).Scan(&id)
	require.NoError(t, err)
	return id
}
