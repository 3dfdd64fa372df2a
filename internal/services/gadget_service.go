package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/imf-ops/gadget-api/internal/generators"
	"github.com/imf-ops/gadget-api/internal/models"
	"github.com/imf-ops/gadget-api/internal/store"
)

var (
	ErrValidation            = errors.New("invalid gadget data")
	ErrGadgetNotFound        = errors.New("gadget not found")
	ErrGadgetDecommissioned  = errors.New("gadget has been decommissioned and cannot be modified")
	ErrAlreadyDecommissioned = errors.New("gadget already decommissioned")
	ErrAlreadyDestroyed      = errors.New("gadget already destroyed")
	ErrSelfDestructActive    = errors.New("self-destruct sequence already initiated")
)

// GadgetPatch is a partial update; nil fields are left untouched. Status may
// move freely between AVAILABLE, DEPLOYED and DESTROYED; only decommission
// and self-destruct are one-way gates.
type GadgetPatch struct {
	Name        *string
	Description *string
	Status      *string
}

// GadgetService owns the gadget lifecycle state machine. It never logs and
// never commits a partial transition: every operation applies its full effect
// through a single store write or returns with the record unchanged.
type GadgetService struct {
	gadgets store.GadgetStore
	gen     *generators.Generator
}

func NewGadgetService(gadgets store.GadgetStore, gen *generators.Generator) *GadgetService {
	return &GadgetService{gadgets: gadgets, gen: gen}
}

// Create allocates a unique codename and inserts the gadget as AVAILABLE.
// Codename-space exhaustion surfaces as generators.ErrCodenameExhausted;
// callers should treat it as transient and retry the whole request.
func (s *GadgetService) Create(name, description string) (*models.Gadget, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	codename, err := s.gen.UniqueCodename(func(candidate string) (bool, error) {
		_, err := s.gadgets.FindByCodename(candidate)
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	gadget := models.Gadget{
		ID:          uuid.New(),
		Name:        name,
		Codename:    codename,
		Description: description,
		Status:      models.StatusAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The exists pre-check above is best-effort; a concurrent creation can
	// still win the codename. The store's unique constraint catches that,
	// and the caller retries just like on exhaustion.
	if err := s.gadgets.Insert(&gadget); err != nil {
		if errors.Is(err, store.ErrDuplicateCodename) {
			return nil, generators.ErrCodenameExhausted
		}
		return nil, err
	}

	return &gadget, nil
}

// Update applies a partial patch. Decommissioned gadgets reject every patch;
// codename and creation time are immutable regardless of input.
func (s *GadgetService) Update(id uuid.UUID, patch GadgetPatch) (*models.Gadget, error) {
	gadget, err := s.findGadget(id)
	if err != nil {
		return nil, err
	}
	if gadget.Terminal() {
		return nil, ErrGadgetDecommissioned
	}

	if patch.Name != nil {
		if err := validateName(*patch.Name); err != nil {
			return nil, err
		}
		gadget.Name = *patch.Name
	}
	if patch.Description != nil {
		if err := validateDescription(*patch.Description); err != nil {
			return nil, err
		}
		gadget.Description = *patch.Description
	}
	if patch.Status != nil {
		switch *patch.Status {
		case models.StatusAvailable, models.StatusDeployed, models.StatusDestroyed:
			gadget.Status = *patch.Status
		default:
			return nil, fmt.Errorf("%w: status must be one of AVAILABLE, DEPLOYED, DESTROYED", ErrValidation)
		}
	}

	gadget.UpdatedAt = time.Now()
	if err := s.gadgets.Update(gadget); err != nil {
		return nil, err
	}
	return gadget, nil
}

// Decommission soft-retires the gadget. Irreversible: the record is kept and
// its codename stays reserved forever.
func (s *GadgetService) Decommission(id uuid.UUID) (*models.Gadget, error) {
	gadget, err := s.findGadget(id)
	if err != nil {
		return nil, err
	}
	if gadget.Status == models.StatusDecommissioned {
		return nil, ErrAlreadyDecommissioned
	}

	updated, err := s.gadgets.Decommission(id, time.Now())
	if err != nil {
		// A concurrent decommission won the race; from this caller's view
		// the gadget is already terminal.
		if errors.Is(err, store.ErrConflict) {
			return nil, ErrAlreadyDecommissioned
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGadgetNotFound
		}
		return nil, err
	}
	return updated, nil
}

// SelfDestruct destroys the gadget and returns a one-time confirmation code.
// The code is an acknowledgment token only: it is never persisted and never
// re-verified, and the transition commits immediately.
func (s *GadgetService) SelfDestruct(id uuid.UUID) (*models.Gadget, string, error) {
	gadget, err := s.findGadget(id)
	if err != nil {
		return nil, "", err
	}
	switch {
	case gadget.Status == models.StatusDecommissioned:
		return nil, "", ErrAlreadyDecommissioned
	case gadget.Status == models.StatusDestroyed:
		return nil, "", ErrAlreadyDestroyed
	case gadget.SelfDestructActivated:
		return nil, "", ErrSelfDestructActive
	}

	confirmationCode := s.gen.ConfirmationCode()

	updated, err := s.gadgets.ActivateSelfDestruct(id, time.Now())
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, "", ErrSelfDestructActive
		}
		if errors.Is(err, store.ErrNotFound) {
			return nil, "", ErrGadgetNotFound
		}
		return nil, "", err
	}
	return updated, confirmationCode, nil
}

func (s *GadgetService) Get(id uuid.UUID) (*models.Gadget, error) {
	return s.findGadget(id)
}

// List returns gadgets newest-first, optionally filtered by status. The
// filter is case-insensitive on input but matches the stored vocabulary
// case-sensitively; an unknown value simply matches nothing.
func (s *GadgetService) List(statusFilter string) ([]models.Gadget, error) {
	return s.gadgets.ListByStatus(strings.ToUpper(statusFilter))
}

func (s *GadgetService) findGadget(id uuid.UUID) (*models.Gadget, error) {
	gadget, err := s.gadgets.FindByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrGadgetNotFound
		}
		return nil, err
	}
	return gadget, nil
}

func validateName(name string) error {
	if len(name) < 3 || len(name) > 100 {
		return fmt.Errorf("%w: name must be between 3 and 100 characters", ErrValidation)
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) > 500 {
		return fmt.Errorf("%w: description must be at most 500 characters", ErrValidation)
	}
	return nil
}
