package regular_event

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrRegularEventNotFound = errors.New("regular event not found")

type Repository interface {
	List(ctx context.Context) ([]RegularEvent, error)
	ListByMinistry(ctx context.Context, ministryId int) ([]RegularEvent, error)
	Get(ctx context.Context, id int) (RegularEvent, error)
	Create(ctx context.Context, event RegularEvent) (RegularEvent, error)
	Update(ctx context.Context, event RegularEvent) (RegularEvent, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) List(ctx context.Context) ([]RegularEvent, error) {
	query := `SELECT id, title, day_of_week, to_char(event_time, 'HH24:MI'), week_of_month
              FROM regular_event WHERE is_active ORDER BY day_of_week, event_time`
	return r.queryEvents(ctx, query)
}

func (r *RepositoryImpl) ListByMinistry(ctx context.Context, ministryId int) ([]RegularEvent, error) {
	query := `SELECT e.id, e.title, e.day_of_week, to_char(e.event_time, 'HH24:MI'), e.week_of_month
              FROM regular_event e
              JOIN regular_event_ministry em ON em.regular_event_id = e.id
              WHERE em.ministry_id = $1 AND e.is_active
              ORDER BY e.day_of_week, e.event_time`
	return r.queryEvents(ctx, query, ministryId)
}

func (r *RepositoryImpl) queryEvents(ctx context.Context, query string, args ...any) ([]RegularEvent, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query regular events: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var events []RegularEvent
	for rows.Next() {
		var e RegularEvent
		var weekOfMonth sql.NullInt64
		if err := rows.Scan(&e.Id, &e.Title, &e.DayOfWeek, &e.EventTime, &weekOfMonth); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		if weekOfMonth.Valid {
			v := int(weekOfMonth.Int64)
			e.WeekOfMonth = &v
		}
		e.IsActive = true
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return events, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (RegularEvent, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return RegularEvent{}, err
	}
	defer tx.Rollback(ctx)

	query := `SELECT id, title, day_of_week, to_char(event_time, 'HH24:MI'), week_of_month
              FROM regular_event WHERE id = $1 AND is_active`
	var e RegularEvent
	var weekOfMonth sql.NullInt64
	err = tx.QueryRow(ctx, query, id).Scan(&e.Id, &e.Title, &e.DayOfWeek, &e.EventTime, &weekOfMonth)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RegularEvent{}, ErrRegularEventNotFound
		}
		err := fmt.Errorf("could not query regular event: %w", err)
		log.Error(err)
		return RegularEvent{}, err
	}
	if weekOfMonth.Valid {
		v := int(weekOfMonth.Int64)
		e.WeekOfMonth = &v
	}
	e.IsActive = true

	e.MinistryIds, err = r.ministryIds(ctx, tx, id)
	if err != nil {
		return RegularEvent{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return RegularEvent{}, fmt.Errorf("could not commit transaction: %w", err)
	}
	return e, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, event RegularEvent) (RegularEvent, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return RegularEvent{}, err
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO regular_event (title, day_of_week, event_time, week_of_month)
              VALUES ($1, $2, $3::time, $4) RETURNING id`
	err = tx.QueryRow(ctx, query, event.Title, event.DayOfWeek, event.EventTime, event.WeekOfMonth).Scan(&event.Id)
	if err != nil {
		err := fmt.Errorf("could not create regular event: %w", err)
		log.Error(err)
		return RegularEvent{}, err
	}

	if err := r.replaceMinistries(ctx, tx, event.Id, event.MinistryIds); err != nil {
		return RegularEvent{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return RegularEvent{}, fmt.Errorf("could not commit transaction: %w", err)
	}
	event.IsActive = true
	return event, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, event RegularEvent) (RegularEvent, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return RegularEvent{}, err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE regular_event SET title = $1, day_of_week = $2, event_time = $3::time, week_of_month = $4
              WHERE id = $5 AND is_active`
	result, err := tx.Exec(ctx, query, event.Title, event.DayOfWeek, event.EventTime, event.WeekOfMonth, event.Id)
	if err != nil {
		err := fmt.Errorf("could not update regular event: %w", err)
		log.Error(err)
		return RegularEvent{}, err
	}
	if result.RowsAffected() == 0 {
		return RegularEvent{}, ErrRegularEventNotFound
	}

	if err := r.replaceMinistries(ctx, tx, event.Id, event.MinistryIds); err != nil {
		return RegularEvent{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return RegularEvent{}, fmt.Errorf("could not commit transaction: %w", err)
	}
	event.IsActive = true
	return event, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	query := `UPDATE regular_event SET is_active = FALSE WHERE id = $1 AND is_active`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete regular event: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func (r *RepositoryImpl) replaceMinistries(ctx context.Context, tx pgx.Tx, eventId int, ministryIds []int) error {
	_, err := tx.Exec(ctx, `DELETE FROM regular_event_ministry WHERE regular_event_id = $1`, eventId)
	if err != nil {
		err := fmt.Errorf("could not clear ministry links: %w", err)
		log.Error(err)
		return err
	}
	for _, ministryId := range ministryIds {
		_, err := tx.Exec(ctx,
			`INSERT INTO regular_event_ministry (regular_event_id, ministry_id) VALUES ($1, $2)`,
			eventId, ministryId,
		)
		if err != nil {
			err := fmt.Errorf("could not link ministry %d: %w", ministryId, err)
			log.Error(err)
			return err
		}
	}
	return nil
}

func (r *RepositoryImpl) ministryIds(ctx context.Context, tx pgx.Tx, eventId int) ([]int, error) {
	rows, err := tx.Query(ctx,
		`SELECT ministry_id FROM regular_event_ministry WHERE regular_event_id = $1 ORDER BY ministry_id`, eventId)
	if err != nil {
		err := fmt.Errorf("could not query ministry links: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
