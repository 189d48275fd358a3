package user

import (
	"context"
	"errors"
	"resetme/internal/core/domain/user"
	"resetme/internal/db"

	"github.com/jackc/pgx/v4"
)

type PgxSessionRepository struct {
	db db.Querier
}

func NewPgxSessionRepository(db db.Querier) *PgxSessionRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxSessionRepository{db: db}
}

func (r *PgxSessionRepository) Create(ctx context.Context, token user.SessionToken, userID user.ID) error {
	_, err := r.db.Exec(
		ctx,
		`INSERT INTO session (token, user_id) VALUES ($1, $2)`,
		string(token),
		int64(userID),
	)
	return err
}

func (r *PgxSessionRepository) GetUserByToken(ctx context.Context, token user.SessionToken) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT u.id, u.email, u.password_hash, u.created_at
		 FROM session AS s JOIN "user" AS u ON u.id = s.user_id
		 WHERE s.token = $1`,
		string(token),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrSessionDoesNotExist
	}
	if err != nil {
		return u, err
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}
