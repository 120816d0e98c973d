package schedule_event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrScheduleEventNotFound = errors.New("schedule event not found")

type Repository interface {
	ListByPeriod(ctx context.Context, periodId int) ([]ScheduleEvent, error)
	Get(ctx context.Context, id int) (ScheduleEvent, error)
	Create(ctx context.Context, event ScheduleEvent) (ScheduleEvent, error)
	Delete(ctx context.Context, id int) (bool, error)
	CountByPeriod(ctx context.Context, periodId int) (int, error)
	CountUnassigned(ctx context.Context, periodId int) (int, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, period_id, title, event_date, to_char(event_time, 'HH24:MI'), event_type, source, external_id`

func (r *RepositoryImpl) ListByPeriod(ctx context.Context, periodId int) ([]ScheduleEvent, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+selectColumns+" FROM schedule_event WHERE period_id = $1 ORDER BY event_date, event_time, title",
		periodId)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule events: %w", err)
	}
	defer rows.Close()

	var events []ScheduleEvent
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (ScheduleEvent, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+selectColumns+" FROM schedule_event WHERE id = $1", id)
	event, err := scanEvent(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return ScheduleEvent{}, ErrScheduleEventNotFound
	}
	return event, err
}

func (r *RepositoryImpl) Create(ctx context.Context, event ScheduleEvent) (ScheduleEvent, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO schedule_event (period_id, title, event_date, event_time, event_type, source, external_id)
		 VALUES ($1, $2, $3, $4::time, $5, $6, $7)
		 RETURNING id`,
		event.PeriodId, event.Title, event.EventDate, event.EventTime,
		string(event.EventType), string(event.Source), event.ExternalId,
	).Scan(&event.Id)
	if err != nil {
		return ScheduleEvent{}, fmt.Errorf("failed to create schedule event: %w", err)
	}
	return event, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM schedule_event WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete schedule event: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) CountByPeriod(ctx context.Context, periodId int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM schedule_event WHERE period_id = $1", periodId).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count schedule events: %w", err)
	}
	return count, nil
}

// CountUnassigned returns the number of events in the period that have no
// assignment at all. Events with at least one assigned area do not count,
// even when other areas remain open.
func (r *RepositoryImpl) CountUnassigned(ctx context.Context, periodId int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM schedule_event e
		 LEFT JOIN schedule_assignment a ON a.event_id = e.id
		 WHERE e.period_id = $1 AND a.id IS NULL`,
		periodId).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unassigned events: %w", err)
	}
	return count, nil
}

func scanEvent(row pgx.Row) (ScheduleEvent, error) {
	var event ScheduleEvent
	var eventDate time.Time
	var eventType, source string
	var externalId sql.NullString
	err := row.Scan(&event.Id, &event.PeriodId, &event.Title, &eventDate,
		&event.EventTime, &eventType, &source, &externalId)
	if err != nil {
		return ScheduleEvent{}, err
	}
	event.EventDate = eventDate
	event.EventType = EventType(eventType)
	event.Source = Source(source)
	if externalId.Valid {
		event.ExternalId = &externalId.String
	}
	return event, nil
}
