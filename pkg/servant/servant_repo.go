package servant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrServantNotFound = errors.New("servant not found")

type Repository interface {
	ListByArea(ctx context.Context, areaId int) ([]Servant, error)
	ListByMinistry(ctx context.Context, ministryId int) ([]Servant, error)
	Get(ctx context.Context, id int) (Servant, error)
	Create(ctx context.Context, servant Servant) (Servant, error)
	Update(ctx context.Context, servant Servant) (Servant, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewServantRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ListByArea(ctx context.Context, areaId int) ([]Servant, error) {
	query := `SELECT id, area_id, name, email, phone, is_leader, is_active
              FROM servant WHERE area_id = $1 AND is_active ORDER BY name`
	return r.list(ctx, query, areaId)
}

// ListByMinistry returns every active servant across the ministry's areas.
// Used by the availability form and the invitation mailer.
func (r *RepositoryImpl) ListByMinistry(ctx context.Context, ministryId int) ([]Servant, error) {
	query := `SELECT s.id, s.area_id, s.name, s.email, s.phone, s.is_leader, s.is_active
              FROM servant s
              JOIN area a ON a.id = s.area_id
              WHERE a.ministry_id = $1 AND s.is_active AND a.is_active
              ORDER BY a.order_index, s.name`
	return r.list(ctx, query, ministryId)
}

func (r *RepositoryImpl) list(ctx context.Context, query string, arg any) ([]Servant, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		err := fmt.Errorf("could not query servants: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var servants []Servant
	for rows.Next() {
		var s Servant
		if err := rows.Scan(&s.Id, &s.AreaId, &s.Name, &s.Email, &s.Phone, &s.IsLeader, &s.IsActive); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		servants = append(servants, s)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return servants, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Servant, error) {
	query := `SELECT id, area_id, name, email, phone, is_leader, is_active
              FROM servant WHERE id = $1 AND is_active`
	var s Servant
	err := r.db.QueryRow(ctx, query, id).Scan(&s.Id, &s.AreaId, &s.Name, &s.Email, &s.Phone, &s.IsLeader, &s.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Servant{}, ErrServantNotFound
		}
		err := fmt.Errorf("could not query servant: %w", err)
		log.Error(err)
		return Servant{}, err
	}
	return s, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, servant Servant) (Servant, error) {
	query := `INSERT INTO servant (area_id, name, email, phone, is_leader)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		servant.AreaId, servant.Name, servant.Email, servant.Phone, servant.IsLeader,
	).Scan(&servant.Id)
	if err != nil {
		err := fmt.Errorf("could not create servant: %w", err)
		log.Error(err)
		return Servant{}, err
	}
	servant.IsActive = true
	return servant, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, servant Servant) (Servant, error) {
	query := `UPDATE servant SET area_id = $1, name = $2, email = $3, phone = $4, is_leader = $5
              WHERE id = $6 AND is_active`
	result, err := r.db.Exec(ctx, query,
		servant.AreaId, servant.Name, servant.Email, servant.Phone, servant.IsLeader, servant.Id,
	)
	if err != nil {
		err := fmt.Errorf("could not update servant: %w", err)
		log.Error(err)
		return Servant{}, err
	}
	if result.RowsAffected() == 0 {
		return Servant{}, ErrServantNotFound
	}
	servant.IsActive = true
	return servant, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	query := `UPDATE servant SET is_active = FALSE WHERE id = $1 AND is_active`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete servant: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
