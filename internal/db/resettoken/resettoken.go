package resettoken

import (
	"context"
	"database/sql"
	"errors"
	c "resetme/internal/core/domain/common"
	"resetme/internal/core/domain/resettoken"
	"resetme/internal/core/domain/user"
	"resetme/internal/db"
	"time"

	"github.com/jackc/pgx/v4"
)

type PgxRequestRepository struct {
	db db.Querier
}

func NewPgxRepository(db db.Querier) *PgxRequestRepository {
	if db == nil {
		panic("Argument db must not be nil.")
	}
	return &PgxRequestRepository{db: db}
}

func (r *PgxRequestRepository) Create(
	ctx context.Context,
	input resettoken.CreateRequestInput,
) (req resettoken.Request, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO reset_request (user_id, token_hash, requested_at, expires_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, user_id, token_hash, requested_at, expires_at, used_at`,
		int64(input.UserID),
		string(input.TokenHash),
		input.RequestedAt,
		input.ExpiresAt,
	)
	return scanRequest(row)
}

func (r *PgxRequestRepository) GetByTokenHash(
	ctx context.Context,
	hash resettoken.TokenHash,
) (req resettoken.Request, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT id, user_id, token_hash, requested_at, expires_at, used_at
		 FROM reset_request WHERE token_hash = $1`,
		string(hash),
	)
	req, err = scanRequest(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return req, resettoken.ErrTokenMalformed
	}
	return req, err
}

func (r *PgxRequestRepository) MarkUsed(ctx context.Context, id int64, at time.Time) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE reset_request SET used_at = $1 WHERE id = $2 AND used_at IS NULL`,
		at,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return resettoken.ErrTokenUsed
	}
	return nil
}

func (r *PgxRequestRepository) HasActiveForUser(
	ctx context.Context,
	userID user.ID,
	now time.Time,
) (bool, error) {
	var exists bool
	err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM reset_request
		   WHERE user_id = $1 AND used_at IS NULL AND expires_at > $2
		 )`,
		int64(userID),
		now,
	).Scan(&exists)
	return exists, err
}

func scanRequest(row pgx.Row) (req resettoken.Request, err error) {
	var userID int64
	var tokenHash string
	var usedAt sql.NullTime
	err = row.Scan(&req.ID, &userID, &tokenHash, &req.RequestedAt, &req.ExpiresAt, &usedAt)
	if err != nil {
		return req, err
	}
	req.UserID = user.ID(userID)
	req.TokenHash = resettoken.TokenHash(tokenHash)
	req.UsedAt = c.NewOptional(usedAt.Time, usedAt.Valid)
	return req, nil
}
