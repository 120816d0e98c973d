package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	GetByUid(ctx context.Context, uid string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	Update(ctx context.Context, user User) (User, error)
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) GetByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, email FROM staff_user WHERE uid = $1`
	var u User
	err := r.db.QueryRow(ctx, query, uid).Scan(&u.Id, &u.Uid, &u.Username, &u.DisplayName, &u.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		err := fmt.Errorf("could not query user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return u, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, user User) (User, error) {
	query := `INSERT INTO staff_user (uid, username, display_name, email) VALUES ($1, $2, $3, $4) RETURNING id`
	err := r.db.QueryRow(ctx, query, user.Uid, user.Username, user.DisplayName, user.Email).Scan(&user.Id)
	if err != nil {
		err := fmt.Errorf("could not create user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, user User) (User, error) {
	query := `UPDATE staff_user SET display_name = $1, email = $2 WHERE id = $3`
	result, err := r.db.Exec(ctx, query, user.DisplayName, user.Email, user.Id)
	if err != nil {
		err := fmt.Errorf("could not update user: %w", err)
		log.Error(err)
		return User{}, err
	}
	if result.RowsAffected() == 0 {
		return User{}, ErrUserNotFound
	}
	return user, nil
}
