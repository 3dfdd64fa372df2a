package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imf-ops/gadget-api/internal/models"
)

// memoryGadgetStore keeps gadgets in a map guarded by a mutex. The mutex is
// what makes the conditional transitions race-free here, standing in for the
// single-statement UPDATE the Postgres implementation relies on.
type memoryGadgetStore struct {
	mu        sync.RWMutex
	gadgets   map[uuid.UUID]*models.Gadget
	codenames map[string]uuid.UUID
}

func NewMemoryGadgetStore() GadgetStore {
	return &memoryGadgetStore{
		gadgets:   make(map[uuid.UUID]*models.Gadget),
		codenames: make(map[string]uuid.UUID),
	}
}

func (s *memoryGadgetStore) FindByID(id uuid.UUID) (*models.Gadget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gadget, ok := s.gadgets[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *gadget
	return &copied, nil
}

func (s *memoryGadgetStore) FindByCodename(codename string) (*models.Gadget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.codenames[codename]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *s.gadgets[id]
	return &copied, nil
}

func (s *memoryGadgetStore) Insert(gadget *models.Gadget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.codenames[gadget.Codename]; taken {
		return ErrDuplicateCodename
	}
	copied := *gadget
	s.gadgets[copied.ID] = &copied
	s.codenames[copied.Codename] = copied.ID
	return nil
}

func (s *memoryGadgetStore) Update(gadget *models.Gadget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.gadgets[gadget.ID]
	if !ok {
		return ErrNotFound
	}
	copied := *gadget
	// Codename is immutable; keep the index consistent even if the caller
	// handed us a stale copy.
	copied.Codename = existing.Codename
	s.gadgets[copied.ID] = &copied
	return nil
}

func (s *memoryGadgetStore) ListByStatus(status string) ([]models.Gadget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	gadgets := make([]models.Gadget, 0, len(s.gadgets))
	for _, g := range s.gadgets {
		if status != "" && g.Status != status {
			continue
		}
		gadgets = append(gadgets, *g)
	}
	sort.Slice(gadgets, func(i, j int) bool {
		return gadgets[i].CreatedAt.After(gadgets[j].CreatedAt)
	})
	return gadgets, nil
}

func (s *memoryGadgetStore) Decommission(id uuid.UUID, at time.Time) (*models.Gadget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gadget, ok := s.gadgets[id]
	if !ok {
		return nil, ErrNotFound
	}
	if gadget.Status == models.StatusDecommissioned {
		return nil, ErrConflict
	}
	gadget.Status = models.StatusDecommissioned
	decommissionedAt := at
	gadget.DecommissionedAt = &decommissionedAt
	gadget.UpdatedAt = at
	copied := *gadget
	return &copied, nil
}

func (s *memoryGadgetStore) ActivateSelfDestruct(id uuid.UUID, at time.Time) (*models.Gadget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gadget, ok := s.gadgets[id]
	if !ok {
		return nil, ErrNotFound
	}
	if gadget.Status == models.StatusDecommissioned ||
		gadget.Status == models.StatusDestroyed ||
		gadget.SelfDestructActivated {
		return nil, ErrConflict
	}
	gadget.Status = models.StatusDestroyed
	gadget.SelfDestructActivated = true
	selfDestructAt := at
	gadget.SelfDestructAt = &selfDestructAt
	gadget.UpdatedAt = at
	copied := *gadget
	return &copied, nil
}

type memoryUserStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
}

func NewMemoryUserStore() UserStore {
	return &memoryUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *memoryUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memoryUserStore) FindByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUserStore) Insert(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *user
	s.users[copied.ID] = &copied
	return nil
}

type memoryRefreshTokenStore struct {
	mu     sync.RWMutex
	tokens map[uuid.UUID]*models.RefreshToken
}

func NewMemoryRefreshTokenStore() RefreshTokenStore {
	return &memoryRefreshTokenStore{tokens: make(map[uuid.UUID]*models.RefreshToken)}
}

func (s *memoryRefreshTokenStore) Insert(token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *token
	s.tokens[copied.ID] = &copied
	return nil
}

func (s *memoryRefreshTokenStore) FindActiveByHash(hash string) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, token := range s.tokens {
		if token.TokenHash == hash && !token.Revoked {
			copied := *token
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryRefreshTokenStore) Revoke(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.tokens[id]; ok {
		token.Revoked = true
	}
	return nil
}

func (s *memoryRefreshTokenStore) RevokeByHash(hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, token := range s.tokens {
		if token.TokenHash == hash {
			token.Revoked = true
		}
	}
	return nil
}
