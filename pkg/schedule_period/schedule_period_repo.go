package schedule_period

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrPeriodNotFound = errors.New("schedule period not found")
	ErrPeriodExists   = errors.New("schedule period already exists for this ministry and month")
)

type Repository interface {
	List(ctx context.Context, ministryId int) ([]SchedulePeriod, error)
	Get(ctx context.Context, id int) (SchedulePeriod, error)
	GetByToken(ctx context.Context, token string) (SchedulePeriod, error)
	Create(ctx context.Context, period SchedulePeriod) (SchedulePeriod, error)
	Update(ctx context.Context, period SchedulePeriod) (SchedulePeriod, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const periodColumns = `id, ministry_id, month, year, status, start_date, end_date,
	availability_deadline, availability_token, notes, published_at`

// List returns periods for a ministry, or all periods when ministryId is 0,
// newest month first.
func (r *RepositoryImpl) List(ctx context.Context, ministryId int) ([]SchedulePeriod, error) {
	query := "SELECT " + periodColumns + " FROM schedule_period"
	var args []any
	if ministryId != 0 {
		query += " WHERE ministry_id = $1"
		args = append(args, ministryId)
	}
	query += " ORDER BY year DESC, month DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule periods: %w", err)
	}
	defer rows.Close()

	var periods []SchedulePeriod
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (SchedulePeriod, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+periodColumns+" FROM schedule_period WHERE id = $1", id)
	period, err := scanPeriod(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return SchedulePeriod{}, ErrPeriodNotFound
	}
	return period, err
}

func (r *RepositoryImpl) GetByToken(ctx context.Context, token string) (SchedulePeriod, error) {
	row := r.db.QueryRow(ctx,
		"SELECT "+periodColumns+" FROM schedule_period WHERE availability_token = $1", token)
	period, err := scanPeriod(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return SchedulePeriod{}, ErrPeriodNotFound
	}
	return period, err
}

func (r *RepositoryImpl) Create(ctx context.Context, period SchedulePeriod) (SchedulePeriod, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO schedule_period
		 (ministry_id, month, year, status, start_date, end_date, availability_deadline, availability_token, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		period.MinistryId, period.Month, period.Year, string(period.Status),
		period.StartDate, period.EndDate, period.AvailabilityDeadline,
		period.AvailabilityToken, period.Notes,
	).Scan(&period.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return SchedulePeriod{}, ErrPeriodExists
		}
		return SchedulePeriod{}, fmt.Errorf("failed to create schedule period: %w", err)
	}
	return period, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, period SchedulePeriod) (SchedulePeriod, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE schedule_period
		 SET status = $1, availability_deadline = $2, notes = $3, published_at = $4
		 WHERE id = $5`,
		string(period.Status), period.AvailabilityDeadline, period.Notes,
		period.PublishedAt, period.Id)
	if err != nil {
		return SchedulePeriod{}, fmt.Errorf("failed to update schedule period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return SchedulePeriod{}, ErrPeriodNotFound
	}
	return period, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM schedule_period WHERE id = $1", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete schedule period: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanPeriod(row pgx.Row) (SchedulePeriod, error) {
	var period SchedulePeriod
	var status string
	var deadline, publishedAt sql.NullTime
	var notes sql.NullString
	err := row.Scan(&period.Id, &period.MinistryId, &period.Month, &period.Year,
		&status, &period.StartDate, &period.EndDate,
		&deadline, &period.AvailabilityToken, &notes, &publishedAt)
	if err != nil {
		return SchedulePeriod{}, err
	}
	period.Status = Status(status)
	if deadline.Valid {
		d := deadline.Time.In(time.UTC)
		period.AvailabilityDeadline = &d
	}
	if publishedAt.Valid {
		p := publishedAt.Time.In(time.UTC)
		period.PublishedAt = &p
	}
	if notes.Valid {
		period.Notes = notes.String
	}
	return period, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
