package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/hahn-software/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, firstname, lastname, password_hash, role, created_at, updated_at`

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	var role string
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	user.Role = model.Role(role)
	return &user, nil
}

func (db *Postgres) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE lower(email) = lower($1)
	`
	return scanUser(db.Pool.QueryRow(ctx, query, email))
}

func (db *Postgres) GetUserByID(ctx context.Context, userID int64) (*model.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return scanUser(db.Pool.QueryRow(ctx, query, userID))
}

const insertUserQuery = `
	INSERT INTO users (email, firstname, lastname, password_hash, role, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
`

const insertTokenQuery = `
	INSERT INTO tokens (user_id, token_hash, token_type, expired, revoked, created_at)
	VALUES ($1, $2, 'ACCESS', FALSE, FALSE, NOW())
`

// CreateUserWithToken persists a new user together with its first access
// token record. Either both rows are written or neither is.
func (db *Postgres) CreateUserWithToken(ctx context.Context, user *model.User, tokenHash string) (*model.User, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return nil, translate(err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	created, err := scanUser(tx.QueryRow(ctx, insertUserQuery+` RETURNING `+userColumns,
		user.Email, user.FirstName, user.LastName, user.PasswordHash, string(user.Role)))
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, insertTokenQuery, created.ID, tokenHash); err != nil {
		return nil, translate(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, translate(err)
	}
	return created, nil
}

// FindOrCreateUser returns the user with user.Email, inserting it first when
// absent. Concurrent callers for the same email converge on one row.
func (db *Postgres) FindOrCreateUser(ctx context.Context, user *model.User) (*model.User, bool, error) {
	query := insertUserQuery + `
		ON CONFLICT DO NOTHING
		RETURNING ` + userColumns
	created, err := scanUser(db.Pool.QueryRow(ctx, query,
		user.Email, user.FirstName, user.LastName, user.PasswordHash, string(user.Role)))
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	existing, err := db.GetUserByEmail(ctx, user.Email)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (db *Postgres) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1
	`, userID, passwordHash)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user id=%d", ErrNotFound, userID)
	}
	return nil
}

func (db *Postgres) SaveToken(ctx context.Context, userID int64, tokenHash string) error {
	_, err := db.Pool.Exec(ctx, insertTokenQuery, userID, tokenHash)
	return translate(err)
}

// RotateAccessToken revokes every valid access token of the user and records
// tokenHash as the only valid one, in a single transaction. The user row is
// locked first so concurrent rotations for one user run one after another.
// It returns the number of records that were revoked.
func (db *Postgres) RotateAccessToken(ctx context.Context, userID int64, tokenHash string) (int64, error) {
	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return 0, translate(err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var lockedID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID).Scan(&lockedID); err != nil {
		return 0, translate(err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE tokens
		SET expired = TRUE, revoked = TRUE
		WHERE user_id = $1 AND expired = FALSE AND revoked = FALSE
	`, userID)
	if err != nil {
		return 0, translate(err)
	}

	if _, err := tx.Exec(ctx, insertTokenQuery, userID, tokenHash); err != nil {
		return 0, translate(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}

func (db *Postgres) GetTokenByHash(ctx context.Context, tokenHash string) (*model.TokenRecord, error) {
	query := `
		SELECT id, user_id, token_hash, token_type, expired, revoked, created_at
		FROM tokens
		WHERE token_hash = $1
	`
	var token model.TokenRecord
	var kind string
	err := db.Pool.QueryRow(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.UserID,
		&token.TokenHash,
		&kind,
		&token.Expired,
		&token.Revoked,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	token.Kind = model.TokenKind(kind)
	return &token, nil
}

func (db *Postgres) RevokeTokenByHash(ctx context.Context, tokenHash string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE tokens
		SET expired = TRUE, revoked = TRUE
		WHERE token_hash = $1 AND (expired = FALSE OR revoked = FALSE)
	`, tokenHash)
	return translate(err)
}
