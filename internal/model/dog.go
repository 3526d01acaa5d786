// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// DogStatus is the adoption state of a listing.
//
// WHY A NAMED STRING TYPE (not plain string)?
// A named type gives the compiler something to check: a function taking a
// DogStatus won't silently accept any random string. We still serialize it
// as a plain string in JSON and in the database, so there's no conversion
// cost at the boundaries.
//
// The lifecycle has exactly one transition:
//
//	available → adopted
//
// There is no reverse transition and no other state. Once adopted, the
// record is immutable (and can no longer be deleted).
type DogStatus string

const (
	StatusAvailable DogStatus = "available"
	StatusAdopted   DogStatus = "adopted"
)

// Dog represents an adoption listing.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize
// this struct. Field names follow the API's wire contract (camelCase).
//
// WHY `adoptedBy` WITH omitempty?
// While a dog is available, AdoptedBy is the empty string. The invariant is:
//
//	Status == adopted  ⇔  AdoptedBy != ""
//
// omitempty keeps the field out of the JSON for available dogs, so clients
// never see a misleading empty adopter.
//
// OwnerID is set once at registration and never changes. OwnerID and
// AdoptedBy are always distinct — a user cannot adopt their own dog.
type Dog struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	OwnerID        string    `json:"ownerId"`
	AdoptedBy      string    `json:"adoptedBy,omitempty"`
	AdoptedMessage string    `json:"adoptedMessage,omitempty"`
	Status         DogStatus `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}
