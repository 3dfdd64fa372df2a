package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm/clause"

	"github.com/imf-ops/gadget-api/internal/auth"
	"github.com/imf-ops/gadget-api/internal/models"
)

// Seed creates the standard operative accounts and sample gadgets. Idempotent:
// existing rows are left untouched, so codenames and credentials survive
// repeated boots.
func Seed() error {
	users := []struct {
		email    string
		password string
		role     auth.Role
	}{
		{"admin@imf.gov", "admin123456", auth.RoleAdmin},
		{"handler@imf.gov", "handler123456", auth.RoleHandler},
		{"agent@imf.gov", "agent123456", auth.RoleAgent},
	}

	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash seed password: %w", err)
		}
		user := models.User{
			ID:       uuid.New(),
			Email:    u.email,
			Password: string(hash),
			Role:     string(u.role),
		}
		result := DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).Create(&user)
		if result.Error != nil {
			return fmt.Errorf("failed to seed user %s: %w", u.email, result.Error)
		}
	}

	decommissionedAt := time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)
	gadgets := []models.Gadget{
		{
			Name:        "Explosive Gum",
			Codename:    "The Nightingale",
			Description: "Chewing gum that explodes with the force of a grenade when activated",
			Status:      models.StatusAvailable,
		},
		{
			Name:        "Face Mask Printer",
			Codename:    "Project Phantom",
			Description: "Portable device that creates realistic face masks for disguise",
			Status:      models.StatusDeployed,
		},
		{
			Name:        "Magnetic Climbing Gloves",
			Codename:    "Operation Spider",
			Description: "Gloves that allow climbing on any metal surface",
			Status:      models.StatusAvailable,
		},
		{
			Name:        "Sonic Screwdriver",
			Codename:    "The Kraken",
			Description: "Multi-tool that can unlock doors, disable electronics, and more",
			Status:      models.StatusDestroyed,
		},
		{
			Name:             "Invisible Ink Pen",
			Codename:         "Shadow Cipher",
			Description:      "Pen that writes with ink only visible under specific light wavelengths",
			Status:           models.StatusDecommissioned,
			DecommissionedAt: &decommissionedAt,
		},
	}

	for i := range gadgets {
		gadgets[i].ID = uuid.New()
		result := DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "codename"}},
			DoNothing: true,
		}).Create(&gadgets[i])
		if result.Error != nil {
			return fmt.Errorf("failed to seed gadget %s: %w", gadgets[i].Codename, result.Error)
		}
	}

	slog.Info("database seeding completed", "users", len(users), "gadgets", len(gadgets))
	return nil
}
