package area

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrAreaNotFound = errors.New("area not found")

type Repository interface {
	ListByMinistry(ctx context.Context, ministryId int) ([]Area, error)
	Get(ctx context.Context, id int) (Area, error)
	Create(ctx context.Context, area Area) (Area, error)
	Update(ctx context.Context, area Area) (Area, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListByMinistry(ctx context.Context, ministryId int) ([]Area, error) {
	query := `SELECT id, ministry_id, name, min_servants, max_servants, order_index, is_active
              FROM area WHERE ministry_id = $1 AND is_active ORDER BY order_index, name`
	rows, err := r.db.Query(ctx, query, ministryId)
	if err != nil {
		err := fmt.Errorf("could not query areas: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var areas []Area
	for rows.Next() {
		a, err := scanArea(rows)
		if err != nil {
			return nil, err
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return areas, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Area, error) {
	query := `SELECT id, ministry_id, name, min_servants, max_servants, order_index, is_active
              FROM area WHERE id = $1 AND is_active`
	row := r.db.QueryRow(ctx, query, id)
	a, err := scanArea(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Area{}, ErrAreaNotFound
		}
		return Area{}, err
	}
	return a, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, area Area) (Area, error) {
	query := `INSERT INTO area (ministry_id, name, min_servants, max_servants, order_index)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		area.MinistryId, area.Name, area.MinServants, area.MaxServants, area.OrderIndex,
	).Scan(&area.Id)
	if err != nil {
		err := fmt.Errorf("could not create area: %w", err)
		log.Error(err)
		return Area{}, err
	}
	area.IsActive = true
	return area, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, area Area) (Area, error) {
	query := `UPDATE area SET name = $1, min_servants = $2, max_servants = $3, order_index = $4
              WHERE id = $5 AND is_active`
	result, err := r.db.Exec(ctx, query,
		area.Name, area.MinServants, area.MaxServants, area.OrderIndex, area.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update area: %w", err)
		log.Error(err)
		return Area{}, err
	}
	if result.RowsAffected() == 0 {
		return Area{}, ErrAreaNotFound
	}
	area.IsActive = true
	return area, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	query := `UPDATE area SET is_active = FALSE WHERE id = $1 AND is_active`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete area: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}

func scanArea(row pgx.Row) (Area, error) {
	var a Area
	var maxServants sql.NullInt64
	if err := row.Scan(&a.Id, &a.MinistryId, &a.Name, &a.MinServants, &maxServants, &a.OrderIndex, &a.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Area{}, pgx.ErrNoRows
		}
		err := fmt.Errorf("error scanning row: %w", err)
		log.Error(err)
		return Area{}, err
	}
	if maxServants.Valid {
		v := int(maxServants.Int64)
		a.MaxServants = &v
	}
	return a, nil
}
