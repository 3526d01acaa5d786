package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pawhaus/dog-adoption/internal/apperror"
	"github.com/pawhaus/dog-adoption/internal/model"
	"github.com/pawhaus/dog-adoption/internal/repository"
)

// Pagination defaults. There is deliberately NO maximum page size: the API
// contract lets a caller request arbitrarily large pages.
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// DogPage is one page of listings plus the counts the API returns with it.
type DogPage struct {
	Dogs        []model.Dog `json:"dogs"`
	Total       int         `json:"total"`
	Pages       int         `json:"pages"`
	CurrentPage int         `json:"currentPage"`
}

// DogService owns the adoption lifecycle: the single available→adopted
// transition, the ownership rules around it, and the listing queries.
type DogService struct {
	dogs   repository.DogRepository
	logger *slog.Logger
}

func NewDogService(dogs repository.DogRepository, logger *slog.Logger) *DogService {
	return &DogService{
		dogs:   dogs,
		logger: logger,
	}
}

// Register creates a new adoption listing owned by ownerID.
// Name and description are both required.
func (s *DogService) Register(ctx context.Context, ownerID, name, description string) (*model.Dog, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if description == "" {
		return nil, apperror.ValidationFailed("description", "description is required")
	}

	dog := &model.Dog{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	}

	if err := s.dogs.Create(ctx, dog); err != nil {
		s.logger.Error("failed to register dog",
			slog.String("ownerID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("registering dog: %w", err)
	}

	s.logger.Info("dog registered",
		slog.String("dogID", dog.ID),
		slog.String("ownerID", ownerID),
	)

	return dog, nil
}

// Adopt transitions an available dog to adopted on behalf of adopterID.
//
// CHECK ORDER IS PART OF THE CONTRACT:
//  1. existence        → not-found error
//  2. already adopted  → conflict
//  3. self-adoption    → conflict (fires even on an available dog: an owner
//     can never adopt their own listing)
//
// Existence before state before ownership keeps error precedence
// deterministic — a caller probing a missing dog always sees 404, never a
// state or ownership error.
//
// The final persistence step is conditional on the dog still being
// available (see repository.DogRepository.MarkAdopted), so a concurrent
// adopter who slips between our check and our write surfaces as the same
// "already adopted" conflict rather than a silent overwrite.
func (s *DogService) Adopt(ctx context.Context, dogID, adopterID, message string) (*model.Dog, error) {
	dog, err := s.dogs.GetByID(ctx, dogID)
	if err != nil {
		return nil, err
	}

	if dog.Status == model.StatusAdopted {
		return nil, apperror.Conflict("Dog already adopted")
	}
	if dog.OwnerID == adopterID {
		return nil, apperror.Conflict("Cannot adopt your own dog")
	}

	if err := s.dogs.MarkAdopted(ctx, dogID, adopterID, message); err != nil {
		return nil, err
	}

	s.logger.Info("dog adopted",
		slog.String("dogID", dogID),
		slog.String("adopterID", adopterID),
	)

	dog.AdoptedBy = adopterID
	dog.AdoptedMessage = message
	dog.Status = model.StatusAdopted
	return dog, nil
}

// Remove permanently deletes a listing on behalf of requesterID.
//
// CHECK ORDER, AGAIN DELIBERATE:
//  1. existence       → not-found error
//  2. adopted block   → conflict — checked BEFORE ownership, so a non-owner
//     poking at an adopted dog sees "cannot remove" rather than learning
//     anything about who owns it
//  3. ownership       → forbidden
//
// Adopted dogs can never be removed, not even by their owner. The DELETE is
// conditional on status like MarkAdopted, closing the same race window.
func (s *DogService) Remove(ctx context.Context, dogID, requesterID string) error {
	dog, err := s.dogs.GetByID(ctx, dogID)
	if err != nil {
		return err
	}

	if dog.Status == model.StatusAdopted {
		return apperror.Conflict("Cannot remove adopted dog")
	}
	if dog.OwnerID != requesterID {
		return apperror.Forbidden("Not authorized")
	}

	if err := s.dogs.DeleteAvailable(ctx, dogID); err != nil {
		return err
	}

	s.logger.Info("dog removed",
		slog.String("dogID", dogID),
		slog.String("ownerID", requesterID),
	)

	return nil
}

// ListAvailable returns one page of dogs currently up for adoption, in
// insertion order.
func (s *DogService) ListAvailable(ctx context.Context, page, limit int) (*DogPage, error) {
	return s.list(ctx, repository.DogFilter{Status: model.StatusAvailable}, page, limit)
}

// ListByOwner returns dogs registered by ownerID, optionally narrowed to a
// status. statusFilter may be empty (no filter), "available" or "adopted".
func (s *DogService) ListByOwner(ctx context.Context, ownerID, statusFilter string, page, limit int) (*DogPage, error) {
	filter := repository.DogFilter{OwnerID: ownerID}

	switch statusFilter {
	case "":
		// no status filter
	case string(model.StatusAvailable), string(model.StatusAdopted):
		filter.Status = model.DogStatus(statusFilter)
	default:
		return nil, apperror.ValidationFailed("status",
			"status must be 'available' or 'adopted'")
	}

	return s.list(ctx, filter, page, limit)
}

// ListAdoptedBy returns dogs that adopterID has adopted.
func (s *DogService) ListAdoptedBy(ctx context.Context, adopterID string, page, limit int) (*DogPage, error) {
	return s.list(ctx, repository.DogFilter{AdoptedBy: adopterID}, page, limit)
}

// list runs a filtered query with the shared pagination contract:
// page is 1-based and defaults to 1, limit defaults to 10, skip is
// (page-1)*limit, and pages is ceil(total/limit).
func (s *DogService) list(ctx context.Context, filter repository.DogFilter, page, limit int) (*DogPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}

	dogs, total, err := s.dogs.List(ctx, filter, repository.ListOptions{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		s.logger.Error("failed to list dogs", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing dogs: %w", err)
	}

	return &DogPage{
		Dogs:        dogs,
		Total:       total,
		Pages:       (total + limit - 1) / limit, // ceil without floats
		CurrentPage: page,
	}, nil
}
