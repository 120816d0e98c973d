package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	ListByPeriod(ctx context.Context, periodId int) ([]ServantAvailability, error)
	ListByServantAndPeriod(ctx context.Context, servantId, periodId int) ([]ServantAvailability, error)
	ReplaceForServant(ctx context.Context, periodId, servantId int, entries []ServantAvailability) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListByPeriod(ctx context.Context, periodId int) ([]ServantAvailability, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.servant_id, a.event_id, a.is_available, a.notes, a.submitted_at
		 FROM servant_availability a
		 JOIN schedule_event e ON e.id = a.event_id
		 WHERE e.period_id = $1
		 ORDER BY a.servant_id, a.event_id`,
		periodId)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *RepositoryImpl) ListByServantAndPeriod(ctx context.Context, servantId, periodId int) ([]ServantAvailability, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.servant_id, a.event_id, a.is_available, a.notes, a.submitted_at
		 FROM servant_availability a
		 JOIN schedule_event e ON e.id = a.event_id
		 WHERE a.servant_id = $1 AND e.period_id = $2
		 ORDER BY a.event_id`,
		servantId, periodId)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ReplaceForServant removes every answer the servant gave for the period and
// inserts the new set in one transaction, so a resubmission fully replaces
// the previous one.
func (r *RepositoryImpl) ReplaceForServant(ctx context.Context, periodId, servantId int, entries []ServantAvailability) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM servant_availability
		 WHERE servant_id = $1
		   AND event_id IN (SELECT id FROM schedule_event WHERE period_id = $2)`,
		servantId, periodId)
	if err != nil {
		return fmt.Errorf("failed to clear previous availability: %w", err)
	}

	for _, entry := range entries {
		_, err = tx.Exec(ctx,
			`INSERT INTO servant_availability (servant_id, event_id, is_available, notes)
			 VALUES ($1, $2, $3, $4)`,
			servantId, entry.EventId, entry.IsAvailable, entry.Note)
		if err != nil {
			return fmt.Errorf("failed to store availability: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func scanEntries(rows pgx.Rows) ([]ServantAvailability, error) {
	var entries []ServantAvailability
	for rows.Next() {
		var entry ServantAvailability
		var note sql.NullString
		if err := rows.Scan(&entry.Id, &entry.ServantId, &entry.EventId, &entry.IsAvailable, &note, &entry.SubmittedAt); err != nil {
			return nil, err
		}
		if note.Valid {
			entry.Note = note.String
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
