// internal/store/store.go

// Package store owns create/read/list/delete of application records and the
// uniqueness contract over email and Discord ID. One concrete backend is wired
// at startup; callers only see this interface.
package store

import (
	"context"

	"competition-intake/internal/models"
)

// Store is the capability surface over the application-record namespace.
// Returned records are copies; mutating them never touches persisted state.
type Store interface {
	// Create assigns a fresh id and server-side timestamp, persists the record
	// and returns it. Fails with DUPLICATE_EMAIL or DUPLICATE_DISCORD_ID when a
	// live record already holds the normalized value; email is checked first,
	// so a submission matching both reports the email duplicate.
	Create(ctx context.Context, sub *models.Submission) (*models.Application, error)

	// List returns every live record in unspecified order. Records that fail to
	// parse are dropped from the result, never failing the whole call.
	List(ctx context.Context) ([]models.Application, error)

	// GetByID looks a record up by its derived key.
	GetByID(ctx context.Context, id string) (*models.Application, error)

	// DeleteByID removes the record and its uniqueness reservations. Deleting a
	// missing id reports APPLICATION_NOT_FOUND so the caller can distinguish,
	// but a second delete leaves the store unchanged either way.
	DeleteByID(ctx context.Context, id string) error

	// ExistsByEmail reports whether a live record holds the normalized email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByDiscordID reports whether a live record holds the normalized ID.
	ExistsByDiscordID(ctx context.Context, discordID string) (bool, error)
}
