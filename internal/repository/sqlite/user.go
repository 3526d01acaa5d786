package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pawhaus/dog-adoption/internal/apperror"
	"github.com/pawhaus/dog-adoption/internal/model"
	"github.com/pawhaus/dog-adoption/internal/repository"
	"github.com/rs/xid"
)

// UserStore implements repository.UserRepository on top of the shared pool.
type UserStore struct {
	db *DB
}

// COMPILE-TIME INTERFACE CHECK:
// `var _ X = (*Y)(nil)` assigns a nil *Y to a variable of interface type X.
// If *Y doesn't implement X, the compiler errors immediately instead of at
// some distant call site. Standard Go practice for interface implementations.
var _ repository.UserRepository = (*UserStore)(nil)

// Create inserts a new user.
//
// ID GENERATION WITH xid:
// xid generates 20-char, URL-safe, time-sortable IDs — e.g. "cv37rs3pp9olc6atsptg".
// Sortability matters here: "insertion order" queries can simply order by
// (created_at, id) and ties resolve chronologically.
//
// DUPLICATE USERNAMES:
// The UNIQUE constraint on username is the source of truth for uniqueness.
// Checking with a prior SELECT would race with concurrent registrations;
// letting the INSERT fail and translating the constraint error is both
// simpler and correct.
func (s *UserStore) Create(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	user.CreatedAt = time.Now().UTC()

	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, created_at)
		 VALUES (?, ?, ?, ?)`,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("Username already taken")
		}
		return fmt.Errorf("sqlite: creating user %q: %w", user.Username, err)
	}

	return nil
}

// GetByUsername retrieves a user by their (unique) username.
// Returns apperror.ErrNotFound if no such user exists — the auth service
// folds that into "Invalid credentials" so login never reveals whether the
// username or the password was wrong.
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := s.db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at
		 FROM users WHERE username = ?`,
		username,
	).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite: getting user %q: %w", username, err)
	}

	return &u, nil
}

// GetByID retrieves a user by their internal ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User

	err := s.db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, created_at
		 FROM users WHERE id = ?`,
		id,
	).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("User")
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", id, err)
	}

	return &u, nil
}

// isUniqueViolation reports whether err is SQLite's UNIQUE constraint error.
//
// modernc.org/sqlite doesn't export a typed constraint error we can check
// with errors.As, so we match the stable message prefix SQLite has used
// since forever: "UNIQUE constraint failed: <table>.<column>".
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
