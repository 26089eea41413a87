package store

import (
	"context"
	"time"
)

// KVRepo is a string key/value store. Progress blobs and the current
// session live here.
type KVRepo interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set inserts or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// User is a locally registered account.
type User struct {
	UID          string
	Email        string
	DisplayName  string
	PasswordHash string
	Provider     string
	CreatedAt    time.Time
}

// UserRepo manages local accounts.
type UserRepo interface {
	// Create inserts u. A taken email returns ErrDuplicate.
	Create(ctx context.Context, u User) error

	// ByEmail looks an account up by its normalized email, or ErrNotFound.
	ByEmail(ctx context.Context, email string) (*User, error)

	// ByUID looks an account up by uid, or ErrNotFound.
	ByUID(ctx context.Context, uid string) (*User, error)
}

// Attempt is one completed simulation run in the history log.
type Attempt struct {
	ID             int64
	UID            string
	RunID          string
	SimulationID   string
	Score          int
	TotalQuestions int
	TimeSpent      int
	Attempts       int
	CompletedAt    time.Time
}

// QueryOpts filters and paginates history queries.
type QueryOpts struct {
	Limit        int    // max results (0 = unlimited)
	SimulationID string // only this simulation when set
	Before       int64  // id < Before when non-zero
}

// AttemptRepo is the append-only attempt history.
type AttemptRepo interface {
	// Append records a completed attempt and returns its id.
	Append(ctx context.Context, a Attempt) (int64, error)

	// Recent returns attempts for uid, newest first.
	Recent(ctx context.Context, uid string, opts QueryOpts) ([]Attempt, error)

	// DeleteAll removes every attempt recorded for uid.
	DeleteAll(ctx context.Context, uid string) error
}
