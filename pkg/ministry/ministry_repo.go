package ministry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrMinistryNotFound = errors.New("ministry not found")
var ErrMinistryExists = errors.New("ministry with this name already exists")

type Repository interface {
	List(ctx context.Context) ([]Ministry, error)
	Get(ctx context.Context, id int) (Ministry, error)
	Create(ctx context.Context, ministry Ministry) (Ministry, error)
	Update(ctx context.Context, ministry Ministry) (Ministry, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) List(ctx context.Context) ([]Ministry, error) {
	query := `SELECT id, name, color, is_active FROM ministry WHERE is_active ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query ministries: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var ministries []Ministry
	for rows.Next() {
		var m Ministry
		if err := rows.Scan(&m.Id, &m.Name, &m.Color, &m.IsActive); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		ministries = append(ministries, m)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return ministries, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Ministry, error) {
	query := `SELECT id, name, color, is_active FROM ministry WHERE id = $1`
	var m Ministry
	err := r.db.QueryRow(ctx, query, id).Scan(&m.Id, &m.Name, &m.Color, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Ministry{}, ErrMinistryNotFound
		}
		err := fmt.Errorf("could not query ministry: %w", err)
		log.Error(err)
		return Ministry{}, err
	}
	return m, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, ministry Ministry) (Ministry, error) {
	query := `INSERT INTO ministry (name, color) VALUES ($1, $2) RETURNING id`
	err := r.db.QueryRow(ctx, query, ministry.Name, ministry.Color).Scan(&ministry.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return Ministry{}, ErrMinistryExists
		}
		err := fmt.Errorf("could not create ministry: %w", err)
		log.Error(err)
		return Ministry{}, err
	}
	ministry.IsActive = true
	return ministry, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, ministry Ministry) (Ministry, error) {
	query := `UPDATE ministry SET name = $1, color = $2 WHERE id = $3 AND is_active`
	result, err := r.db.Exec(ctx, query, ministry.Name, ministry.Color, ministry.Id)
	if err != nil {
		if isUniqueViolation(err) {
			return Ministry{}, ErrMinistryExists
		}
		err := fmt.Errorf("could not update ministry: %w", err)
		log.Error(err)
		return Ministry{}, err
	}
	if result.RowsAffected() == 0 {
		return Ministry{}, ErrMinistryNotFound
	}
	ministry.IsActive = true
	return ministry, nil
}

// Delete deactivates the ministry. Rows stay behind so that published periods
// keep their historical reference.
func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	query := `UPDATE ministry SET is_active = FALSE WHERE id = $1 AND is_active`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete ministry: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
