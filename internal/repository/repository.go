// Package repository defines the storage interfaces the rest of the app
// programs against. Concrete implementations live in subpackages (sqlite).
package repository

import (
	"context"

	"github.com/pawhaus/dog-adoption/internal/model"
)

// ListOptions carries pagination for list queries.
// Limit and Offset are assumed already normalized by the service layer
// (Limit > 0, Offset >= 0).
type ListOptions struct {
	Limit  int
	Offset int
}

// DogFilter narrows a dog listing. Zero-value fields are ignored, so the
// same List method serves /dogs (status=available), /dogs/registered
// (owner, optional status) and /dogs/adopted (adoptedBy).
type DogFilter struct {
	Status    model.DogStatus
	OwnerID   string
	AdoptedBy string
}

type UserRepository interface {
	// Create inserts a new user. Returns apperror.ErrConflict if the
	// username is already taken (UNIQUE constraint).
	Create(ctx context.Context, user *model.User) error
	// GetByUsername returns apperror.ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// DogRepository persists adoption listings.
//
// The two mutating operations on existing dogs — MarkAdopted and
// DeleteAvailable — are CONDITIONAL: they only take effect while the dog is
// still available, in a single statement. That is what makes the
// check-then-act sequence in the service safe under concurrency: two
// simultaneous adopters race on one UPDATE, and exactly one wins.
type DogRepository interface {
	Create(ctx context.Context, dog *model.Dog) error
	// GetByID returns apperror.ErrNotFound if no dog with that ID exists.
	GetByID(ctx context.Context, id string) (*model.Dog, error)
	// List returns one page of dogs matching the filter, in insertion
	// order, plus the total number of matches (for page-count math).
	List(ctx context.Context, filter DogFilter, opts ListOptions) ([]model.Dog, int, error)
	// MarkAdopted atomically flips an available dog to adopted, binding
	// the adopter and message. Returns apperror.ErrConflict if the dog is
	// no longer available (a concurrent adopter won the race).
	MarkAdopted(ctx context.Context, id, adopterID, message string) error
	// DeleteAvailable permanently removes a dog, but only while it is
	// still available. Returns apperror.ErrConflict if the dog was
	// adopted in the meantime.
	DeleteAvailable(ctx context.Context, id string) error
}
