package store

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/imf-ops/gadget-api/internal/models"
)

func newGadget(status string) *models.Gadget {
	return &models.Gadget{
		ID:        uuid.New(),
		Name:      "Explosive Gum",
		Codename:  "The Nightingale",
		Status:    status,
		CreatedAt: time.Now(),
	}
}

func TestMemoryGadgetStore_InsertDuplicateCodename(t *testing.T) {
	s := NewMemoryGadgetStore()
	if err := s.Insert(newGadget(models.StatusAvailable)); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	dup := newGadget(models.StatusAvailable)
	if err := s.Insert(dup); !errors.Is(err, ErrDuplicateCodename) {
		t.Errorf("Insert(duplicate codename) error = %v, want ErrDuplicateCodename", err)
	}
}

func TestMemoryGadgetStore_FindByCodename(t *testing.T) {
	s := NewMemoryGadgetStore()
	gadget := newGadget(models.StatusAvailable)
	if err := s.Insert(gadget); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	found, err := s.FindByCodename("The Nightingale")
	if err != nil {
		t.Fatalf("FindByCodename() error = %v", err)
	}
	if found.ID != gadget.ID {
		t.Errorf("FindByCodename() id = %s, want %s", found.ID, gadget.ID)
	}

	if _, err := s.FindByCodename("Ghost Kraken"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FindByCodename(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryGadgetStore_DecommissionConflict(t *testing.T) {
	s := NewMemoryGadgetStore()
	gadget := newGadget(models.StatusAvailable)
	if err := s.Insert(gadget); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	updated, err := s.Decommission(gadget.ID, time.Now())
	if err != nil {
		t.Fatalf("Decommission() error = %v", err)
	}
	if updated.Status != models.StatusDecommissioned {
		t.Errorf("status = %q, want DECOMMISSIONED", updated.Status)
	}
	if updated.DecommissionedAt == nil {
		t.Error("DecommissionedAt not set")
	}

	if _, err := s.Decommission(gadget.ID, time.Now()); !errors.Is(err, ErrConflict) {
		t.Errorf("second Decommission() error = %v, want ErrConflict", err)
	}

	if _, err := s.Decommission(uuid.New(), time.Now()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Decommission(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryGadgetStore_ActivateSelfDestructGuards(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(*models.Gadget)
		wantErr error
	}{
		{"available", func(g *models.Gadget) {}, nil},
		{"deployed", func(g *models.Gadget) { g.Status = models.StatusDeployed }, nil},
		{"destroyed", func(g *models.Gadget) { g.Status = models.StatusDestroyed }, ErrConflict},
		{"decommissioned", func(g *models.Gadget) { g.Status = models.StatusDecommissioned }, ErrConflict},
		{"flag already set", func(g *models.Gadget) { g.SelfDestructActivated = true }, ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewMemoryGadgetStore()
			gadget := newGadget(models.StatusAvailable)
			tt.prepare(gadget)
			if err := s.Insert(gadget); err != nil {
				t.Fatalf("Insert() error = %v", err)
			}

			updated, err := s.ActivateSelfDestruct(gadget.ID, time.Now())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ActivateSelfDestruct() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ActivateSelfDestruct() error = %v", err)
			}
			if updated.Status != models.StatusDestroyed {
				t.Errorf("status = %q, want DESTROYED", updated.Status)
			}
			if !updated.SelfDestructActivated {
				t.Error("SelfDestructActivated not set")
			}
			if updated.SelfDestructAt == nil {
				t.Error("SelfDestructAt not set")
			}
		})
	}
}

func TestMemoryGadgetStore_ListByStatus(t *testing.T) {
	s := NewMemoryGadgetStore()
	statuses := []string{models.StatusAvailable, models.StatusDeployed, models.StatusAvailable}
	for i, status := range statuses {
		g := newGadget(status)
		g.Codename = g.Codename + string(rune('A'+i))
		g.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		if err := s.Insert(g); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	all, err := s.ListByStatus("")
	if err != nil {
		t.Fatalf("ListByStatus() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("ListByStatus(\"\") count = %d, want 3", len(all))
	}
	// Newest first.
	if !all[0].CreatedAt.After(all[2].CreatedAt) {
		t.Error("ListByStatus() not sorted newest-first")
	}

	available, err := s.ListByStatus(models.StatusAvailable)
	if err != nil {
		t.Fatalf("ListByStatus(AVAILABLE) error = %v", err)
	}
	if len(available) != 2 {
		t.Errorf("ListByStatus(AVAILABLE) count = %d, want 2", len(available))
	}

	// Stored vocabulary is case-sensitive; a lowercase filter matches nothing.
	none, err := s.ListByStatus("available")
	if err != nil {
		t.Fatalf("ListByStatus(available) error = %v", err)
	}
	if len(none) != 0 {
		t.Errorf("ListByStatus(lowercase) count = %d, want 0", len(none))
	}
}

func TestMemoryGadgetStore_UpdateKeepsCodename(t *testing.T) {
	s := NewMemoryGadgetStore()
	gadget := newGadget(models.StatusAvailable)
	if err := s.Insert(gadget); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	stale := *gadget
	stale.Codename = "Crimson Nova"
	stale.Name = "Exploding Pen"
	if err := s.Update(&stale); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	found, err := s.FindByID(gadget.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if found.Codename != "The Nightingale" {
		t.Errorf("codename = %q, want immutable %q", found.Codename, "The Nightingale")
	}
	if found.Name != "Exploding Pen" {
		t.Errorf("name = %q, want %q", found.Name, "Exploding Pen")
	}
}
