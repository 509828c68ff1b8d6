package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adanyl0v/go-task-manager/internal/models"
	"github.com/adanyl0v/go-task-manager/internal/services"
)

type UserStore struct {
	pgPool *pgxpool.Pool
}

func NewUserStore(pgPool *pgxpool.Pool) *UserStore {
	return &UserStore{pgPool: pgPool}
}

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (id,
                   username,
                   email,
                   password,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := s.pgPool.Exec(
		ctx,
		insertUserQuery,
		user.ID,
		user.Username,
		user.Email,
		user.Password,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// The constraint name tells the two 409s apart.
			switch pgErr.ConstraintName {
			case "users_username_key":
				return services.ErrUsernameTaken
			case "users_email_key":
				return services.ErrEmailRegistered
			}
			return services.ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (s *UserStore) ByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{Username: username}

	const selectUserByUsernameQuery = `
SELECT id,
       email,
       password,
       created_at,
       updated_at
FROM users
WHERE username = $1
`
	err := s.pgPool.QueryRow(
		ctx,
		selectUserByUsernameQuery,
		username,
	).Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserStore) List(ctx context.Context) ([]*models.User, error) {
	const selectUsersQuery = `
SELECT id,
       username,
       email,
       created_at,
       updated_at
FROM users
ORDER BY username
`
	rows, err := s.pgPool.Query(ctx, selectUsersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err = rows.Scan(
			&user.ID,
			&user.Username,
			&user.Email,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
