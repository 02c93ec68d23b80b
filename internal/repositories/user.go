package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodmix/internal/models"
	"github.com/desertthunder/moodmix/internal/shared"
	"github.com/mattn/go-sqlite3"
)

// SQLUserStore implements [UserStore] on the SQLite users table.
//
// The primary key on username makes registration an atomic per-key insert.
type SQLUserStore struct {
	db *sql.DB
}

// NewSQLUserStore creates a new [SQLUserStore]. The users migration must already be applied.
func NewSQLUserStore(db *sql.DB) *SQLUserStore {
	return &SQLUserStore{db: db}
}

func (r *SQLUserStore) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := validate(username, password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		username, hash, now,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && isDuplicateKey(sqliteErr) {
			return nil, fmt.Errorf("%w: %s", shared.ErrConflict, username)
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &models.User{Username: username, PasswordHash: hash, CreatedAt: now}, nil
}

func (r *SQLUserStore) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	u, err := r.Get(ctx, username)
	if errors.Is(err, shared.ErrUserNotFound) {
		return nil, shared.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return verify(u, password)
}

func (r *SQLUserStore) Get(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx,
		`SELECT username, password_hash, created_at FROM users WHERE username = ?`, username,
	).Scan(&u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrUserNotFound, username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &u, nil
}

func isDuplicateKey(err sqlite3.Error) bool {
	return err.ExtendedCode == sqlite3.ErrConstraintPrimaryKey || err.ExtendedCode == sqlite3.ErrConstraintUnique
}
