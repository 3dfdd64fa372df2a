// Package store provides explicit persistence interfaces for the gadget
// inventory. Services receive these by injection; production wires the GORM
// implementation, tests the in-memory one.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/imf-ops/gadget-api/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateCodename surfaces the unique-constraint backstop on
	// gadgets.codename when the allocator's pre-check lost a race.
	ErrDuplicateCodename = errors.New("codename already in use")

	// ErrConflict means a conditional transition found its guard already
	// violated: a concurrent caller committed first.
	ErrConflict = errors.New("gadget state changed concurrently")
)

type GadgetStore interface {
	FindByID(id uuid.UUID) (*models.Gadget, error)
	FindByCodename(codename string) (*models.Gadget, error)
	Insert(gadget *models.Gadget) error
	Update(gadget *models.Gadget) error
	// ListByStatus returns gadgets newest-first; an empty status returns all.
	ListByStatus(status string) ([]models.Gadget, error)

	// Decommission and ActivateSelfDestruct are conditional single-statement
	// transitions. Concurrent calls serialize at the store: the loser of the
	// race gets ErrConflict rather than a double commit.
	Decommission(id uuid.UUID, at time.Time) (*models.Gadget, error)
	ActivateSelfDestruct(id uuid.UUID, at time.Time) (*models.Gadget, error)
}

type UserStore interface {
	FindByID(id uuid.UUID) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Insert(user *models.User) error
}

type RefreshTokenStore interface {
	Insert(token *models.RefreshToken) error
	// FindActiveByHash only returns tokens not yet revoked.
	FindActiveByHash(hash string) (*models.RefreshToken, error)
	Revoke(id uuid.UUID) error
	RevokeByHash(hash string) error
}
