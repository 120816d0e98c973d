package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrBookingNotFound = errors.New("booking not found")

type Repository interface {
	List(ctx context.Context) ([]Booking, error)
	ListApprovedBetween(ctx context.Context, from, to time.Time) ([]Booking, error)
	Get(ctx context.Context, id int) (Booking, error)
	Create(ctx context.Context, booking Booking) (Booking, error)
	Update(ctx context.Context, booking Booking) (Booking, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const selectColumns = `id, environment_id, title, event_date, to_char(event_time, 'HH24:MI'), status, requested_by`

func (r *RepositoryImpl) List(ctx context.Context) ([]Booking, error) {
	query := `SELECT ` + selectColumns + ` FROM booking ORDER BY event_date, event_time`
	return r.queryBookings(ctx, query)
}

// ListApprovedBetween returns approved bookings with a date inside [from, to].
func (r *RepositoryImpl) ListApprovedBetween(ctx context.Context, from, to time.Time) ([]Booking, error) {
	query := `SELECT ` + selectColumns + ` FROM booking
              WHERE status = 'approved' AND event_date BETWEEN $1 AND $2
              ORDER BY event_date, event_time`
	return r.queryBookings(ctx, query, from, to)
}

func (r *RepositoryImpl) queryBookings(ctx context.Context, query string, args ...any) ([]Booking, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query bookings: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.Id, &b.EnvironmentId, &b.Title, &b.EventDate, &b.EventTime, &b.Status, &b.RequestedBy); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return bookings, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Booking, error) {
	query := `SELECT ` + selectColumns + ` FROM booking WHERE id = $1`
	var b Booking
	err := r.db.QueryRow(ctx, query, id).Scan(&b.Id, &b.EnvironmentId, &b.Title, &b.EventDate, &b.EventTime, &b.Status, &b.RequestedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Booking{}, ErrBookingNotFound
		}
		err := fmt.Errorf("could not query booking: %w", err)
		log.Error(err)
		return Booking{}, err
	}
	return b, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, booking Booking) (Booking, error) {
	query := `INSERT INTO booking (environment_id, title, event_date, event_time, status, requested_by)
              VALUES ($1, $2, $3, $4::time, $5, $6) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		booking.EnvironmentId, booking.Title, booking.EventDate, booking.EventTime, booking.Status, booking.RequestedBy,
	).Scan(&booking.Id)
	if err != nil {
		err := fmt.Errorf("could not create booking: %w", err)
		log.Error(err)
		return Booking{}, err
	}
	return booking, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, booking Booking) (Booking, error) {
	query := `UPDATE booking SET environment_id = $1, title = $2, event_date = $3, event_time = $4::time, status = $5
              WHERE id = $6`
	result, err := r.db.Exec(ctx, query,
		booking.EnvironmentId, booking.Title, booking.EventDate, booking.EventTime, booking.Status, booking.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update booking: %w", err)
		log.Error(err)
		return Booking{}, err
	}
	if result.RowsAffected() == 0 {
		return Booking{}, ErrBookingNotFound
	}
	return booking, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	query := `DELETE FROM booking WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete booking: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
