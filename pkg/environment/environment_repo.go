package environment

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrEnvironmentNotFound = errors.New("environment not found")
var ErrEnvironmentExists = errors.New("environment with this name already exists")

type Repository interface {
	List(ctx context.Context) ([]Environment, error)
	Get(ctx context.Context, id int) (Environment, error)
	Create(ctx context.Context, env Environment) (Environment, error)
	Update(ctx context.Context, env Environment) (Environment, error)
	Delete(ctx context.Context, id int) (bool, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) List(ctx context.Context) ([]Environment, error) {
	query := `SELECT id, name, description, capacity, is_active FROM environment WHERE is_active ORDER BY name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query environments: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var environments []Environment
	for rows.Next() {
		var e Environment
		if err := rows.Scan(&e.Id, &e.Name, &e.Description, &e.Capacity, &e.IsActive); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		environments = append(environments, e)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return environments, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (Environment, error) {
	query := `SELECT id, name, description, capacity, is_active FROM environment WHERE id = $1 AND is_active`
	var e Environment
	err := r.db.QueryRow(ctx, query, id).Scan(&e.Id, &e.Name, &e.Description, &e.Capacity, &e.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Environment{}, ErrEnvironmentNotFound
		}
		err := fmt.Errorf("could not query environment: %w", err)
		log.Error(err)
		return Environment{}, err
	}
	return e, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, env Environment) (Environment, error) {
	query := `INSERT INTO environment (name, description, capacity) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRow(ctx, query, env.Name, env.Description, env.Capacity).Scan(&env.Id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Environment{}, ErrEnvironmentExists
		}
		err := fmt.Errorf("could not create environment: %w", err)
		log.Error(err)
		return Environment{}, err
	}
	env.IsActive = true
	return env, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, env Environment) (Environment, error) {
	query := `UPDATE environment SET name = $1, description = $2, capacity = $3 WHERE id = $4 AND is_active`
	result, err := r.db.Exec(ctx, query, env.Name, env.Description, env.Capacity, env.Id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Environment{}, ErrEnvironmentExists
		}
		err := fmt.Errorf("could not update environment: %w", err)
		log.Error(err)
		return Environment{}, err
	}
	if result.RowsAffected() == 0 {
		return Environment{}, ErrEnvironmentNotFound
	}
	env.IsActive = true
	return env, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id int) (bool, error) {
	query := `UPDATE environment SET is_active = FALSE WHERE id = $1 AND is_active`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not delete environment: %w", err)
		log.Error(err)
		return false, err
	}
	return result.RowsAffected() == 1, nil
}
