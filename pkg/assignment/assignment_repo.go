package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrAssignmentNotFound = errors.New("assignment not found")

type Repository interface {
	ListByEvent(ctx context.Context, eventId int) ([]ScheduleAssignment, error)
	ListByPeriod(ctx context.Context, periodId int) ([]ScheduleAssignment, error)
	Upsert(ctx context.Context, assignment ScheduleAssignment) (ScheduleAssignment, error)
	Delete(ctx context.Context, id int) (bool, error)
	DeleteByEventAndArea(ctx context.Context, eventId, areaId int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListByEvent(ctx context.Context, eventId int) ([]ScheduleAssignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, event_id, area_id, servant_id, note
		 FROM schedule_assignment WHERE event_id = $1 ORDER BY area_id`,
		eventId)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

func (r *RepositoryImpl) ListByPeriod(ctx context.Context, periodId int) ([]ScheduleAssignment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT a.id, a.event_id, a.area_id, a.servant_id, a.note
		 FROM schedule_assignment a
		 JOIN schedule_event e ON e.id = a.event_id
		 WHERE e.period_id = $1
		 ORDER BY a.event_id, a.area_id`,
		periodId)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()
	return scanAssignments(rows)
}

// Upsert inserts the assignment or, when the event and area are already
// taken, replaces the servant and note of the existing row.
func (r *RepositoryImpl) Upsert(ctx context.Context, assignment ScheduleAssignment) (ScheduleAssignment, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO schedule_assignment (event_id, area_id, servant_id, note)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (event_id, area_id)
		 DO UPDATE SET servant_id = EXCLUDED.servant_id, note = EXCLUDED.note
		 RETURNING id`,
		assignment.EventId, assignment.AreaId, assignment.ServantId, assignment.Note,
	).Scan(&assignment.Id)
	if err != nil {
		return ScheduleAssignment{}, fmt.Errorf("failed to store assignment: %w", err)
	}
	return assignment, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM schedule_assignment WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *RepositoryImpl) DeleteByEventAndArea(ctx context.Context, eventId, areaId int) (bool, error) {
	tag, err := r.db.Exec(ctx,
		"DELETE FROM schedule_assignment WHERE event_id = $1 AND area_id = $2",
		eventId, areaId)
	if err != nil {
		return false, fmt.Errorf("failed to delete assignment: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanAssignments(rows pgx.Rows) ([]ScheduleAssignment, error) {
	var assignments []ScheduleAssignment
	for rows.Next() {
		var a ScheduleAssignment
		var note sql.NullString
		if err := rows.Scan(&a.Id, &a.EventId, &a.AreaId, &a.ServantId, &note); err != nil {
			return nil, err
		}
		if note.Valid {
			a.Note = note.String
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
