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

// DogStore implements repository.DogRepository on top of the shared pool.
type DogStore struct {
	db *DB
}

var _ repository.DogRepository = (*DogStore)(nil)

const dogColumns = `id, name, description, owner_id, adopted_by, adopted_message, status, created_at`

// Create inserts a new adoption listing.
//
// POINTER RECEIVER ON THE MODEL:
// We take *model.Dog so we can fill in the generated ID, status and
// timestamp — after Create() returns, the caller's struct is the complete
// record as persisted.
func (s *DogStore) Create(ctx context.Context, dog *model.Dog) error {
	dog.ID = xid.New().String()
	dog.Status = model.StatusAvailable
	dog.CreatedAt = time.Now().UTC()

	// adopted_by is stored as NULL while available (see the CHECK
	// constraint in sqlite.go), so it is not part of the INSERT.
	_, err := s.db.conn.ExecContext(ctx,
		`INSERT INTO dogs (id, name, description, owner_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		dog.ID,
		dog.Name,
		dog.Description,
		dog.OwnerID,
		dog.Status,
		dog.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating dog: %w", err)
	}

	return nil
}

// GetByID retrieves a single dog by its ID.
// Returns apperror.ErrNotFound if the dog doesn't exist.
func (s *DogStore) GetByID(ctx context.Context, id string) (*model.Dog, error) {
	row := s.db.conn.QueryRowContext(ctx,
		`SELECT `+dogColumns+` FROM dogs WHERE id = ?`, id)

	dog, err := scanDog(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("Dog")
		}
		return nil, fmt.Errorf("sqlite: getting dog %s: %w", id, err)
	}

	return dog, nil
}

// List returns one page of dogs matching the filter plus the total match
// count. Results come back in insertion order — xid IDs are time-sortable,
// so (created_at, id) gives a stable chronological ordering even when two
// dogs share a created_at timestamp.
//
// BUILDING THE WHERE CLAUSE:
// The clause is assembled from a fixed set of conditions with ? placeholders;
// only the VALUES are dynamic, never the SQL text, so there's no injection
// surface despite the string concatenation.
func (s *DogStore) List(ctx context.Context, filter repository.DogFilter, opts repository.ListOptions) ([]model.Dog, int, error) {
	where, args := buildDogFilter(filter)

	// Total first — the page count in the response is computed from it.
	var total int
	err := s.db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM dogs`+where, args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: counting dogs: %w", err)
	}

	rows, err := s.db.conn.QueryContext(ctx,
		`SELECT `+dogColumns+` FROM dogs`+where+`
		 ORDER BY created_at, id
		 LIMIT ? OFFSET ?`,
		append(args, opts.Limit, opts.Offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("sqlite: listing dogs: %w", err)
	}
	// sql.Rows holds a pool connection — forgetting Close() leaks it.
	defer rows.Close()

	dogs := make([]model.Dog, 0, opts.Limit)
	for rows.Next() {
		dog, err := scanDog(rows.Scan)
		if err != nil {
			return nil, 0, fmt.Errorf("sqlite: scanning dog row: %w", err)
		}
		dogs = append(dogs, *dog)
	}

	// rows.Err() catches errors that happened DURING iteration
	// (e.g. the connection dropping mid-result-set).
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("sqlite: iterating dogs: %w", err)
	}

	return dogs, total, nil
}

// MarkAdopted atomically transitions an available dog to adopted.
//
// THE CONDITIONAL UPDATE IS THE CONCURRENCY GUARANTEE:
// The WHERE clause includes `status = 'available'`, so the read-check-write
// sequence in the service collapses to a single compare-and-swap here. Two
// concurrent adopters both pass the service-level checks, but SQLite
// serialises the writes: the first UPDATE matches and flips the row, the
// second matches zero rows and its caller gets the conflict error.
func (s *DogStore) MarkAdopted(ctx context.Context, id, adopterID, message string) error {
	result, err := s.db.conn.ExecContext(ctx,
		`UPDATE dogs
		 SET adopted_by = ?, adopted_message = ?, status = ?
		 WHERE id = ? AND status = ?`,
		adopterID,
		message,
		model.StatusAdopted,
		id,
		model.StatusAvailable,
	)
	if err != nil {
		return fmt.Errorf("sqlite: adopting dog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		// The service verified the dog existed and was available just
		// before this call, so zero rows means we lost a race.
		return apperror.Conflict("Dog already adopted")
	}

	return nil
}

// DeleteAvailable permanently removes a dog, guarded by the same
// status condition as MarkAdopted: a dog that got adopted between the
// service's check and this DELETE stays in the database.
func (s *DogStore) DeleteAvailable(ctx context.Context, id string) error {
	result, err := s.db.conn.ExecContext(ctx,
		`DELETE FROM dogs WHERE id = ? AND status = ?`,
		id,
		model.StatusAvailable,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting dog %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.Conflict("Cannot remove adopted dog")
	}

	return nil
}

// buildDogFilter translates a DogFilter into a WHERE clause and its args.
// Returns an empty clause when the filter is empty.
func buildDogFilter(filter repository.DogFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.OwnerID != "" {
		conds = append(conds, "owner_id = ?")
		args = append(args, filter.OwnerID)
	}
	if filter.AdoptedBy != "" {
		conds = append(conds, "adopted_by = ?")
		args = append(args, filter.AdoptedBy)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// scanDog reads one dogs row into a model.Dog.
//
// It takes the Scan function itself (works for both *sql.Row and *sql.Rows)
// so GetByID and List share the NULL handling: adopted_by is NULL while the
// dog is available, which Go models as sql.NullString — the empty string on
// the struct means "no adopter".
func scanDog(scan func(...any) error) (*model.Dog, error) {
	var d model.Dog
	var adoptedBy sql.NullString

	err := scan(
		&d.ID,
		&d.Name,
		&d.Description,
		&d.OwnerID,
		&adoptedBy,
		&d.AdoptedMessage,
		&d.Status,
		&d.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.AdoptedBy = adoptedBy.String
	return &d, nil
}
