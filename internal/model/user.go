// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Users authenticate with a username and password. We never store the
// password itself — only its bcrypt hash (see internal/auth/password.go).
//
// WHY `json:"-"` ON PasswordHash?
// The dash tells encoding/json to NEVER serialize this field. Handlers
// return User values directly in a couple of places, and a struct tag is a
// stronger guarantee than remembering to blank the field at every call site.
//
// The UNIQUE constraint on username in the DB ensures one account per name.
// A User is immutable after registration — there are no profile edits.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
