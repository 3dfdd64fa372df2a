package models

import (
	"time"

	"github.com/google/uuid"
)

// Gadget statuses. Stored verbatim; DECOMMISSIONED is terminal for every
// ordinary update, and DESTROYED is only reachable through update or
// self-destruct.
const (
	StatusAvailable      = "AVAILABLE"
	StatusDeployed       = "DEPLOYED"
	StatusDestroyed      = "DESTROYED"
	StatusDecommissioned = "DECOMMISSIONED"
)

// Gadget is a tracked physical asset. Codename and CreatedAt never change
// after creation; codenames are never reused, even for decommissioned
// gadgets, which is why records are soft-retired rather than deleted.
type Gadget struct {
	ID                    uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name                  string     `gorm:"size:100;not null" json:"name"`
	Codename              string     `gorm:"size:100;not null;uniqueIndex" json:"codename"`
	Description           string     `gorm:"size:500" json:"description,omitempty"`
	Status                string     `gorm:"size:20;not null;default:'AVAILABLE';index" json:"status"`
	SelfDestructActivated bool       `gorm:"not null;default:false" json:"self_destruct_activated"`
	SelfDestructAt        *time.Time `json:"self_destruct_at,omitempty"`
	DecommissionedAt      *time.Time `json:"decommissioned_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// ValidStatus reports whether s is one of the four gadget statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusAvailable, StatusDeployed, StatusDestroyed, StatusDecommissioned:
		return true
	}
	return false
}

// Terminal reports whether the gadget can no longer be mutated by ordinary
// update operations.
func (g *Gadget) Terminal() bool {
	return g.Status == StatusDecommissioned
}
