package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/imf-ops/gadget-api/internal/models"
)

const pgUniqueViolation = "23505"

type gormGadgetStore struct {
	db *gorm.DB
}

func NewGormGadgetStore(db *gorm.DB) GadgetStore {
	return &gormGadgetStore{db: db}
}

func (s *gormGadgetStore) FindByID(id uuid.UUID) (*models.Gadget, error) {
	var gadget models.Gadget
	if err := s.db.First(&gadget, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load gadget: %w", err)
	}
	return &gadget, nil
}

func (s *gormGadgetStore) FindByCodename(codename string) (*models.Gadget, error) {
	var gadget models.Gadget
	if err := s.db.First(&gadget, "codename = ?", codename).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load gadget by codename: %w", err)
	}
	return &gadget, nil
}

func (s *gormGadgetStore) Insert(gadget *models.Gadget) error {
	if err := s.db.Create(gadget).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateCodename
		}
		return fmt.Errorf("failed to insert gadget: %w", err)
	}
	return nil
}

func (s *gormGadgetStore) Update(gadget *models.Gadget) error {
	if err := s.db.Save(gadget).Error; err != nil {
		return fmt.Errorf("failed to update gadget: %w", err)
	}
	return nil
}

func (s *gormGadgetStore) ListByStatus(status string) ([]models.Gadget, error) {
	var gadgets []models.Gadget
	query := s.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&gadgets).Error; err != nil {
		return nil, fmt.Errorf("failed to list gadgets: %w", err)
	}
	return gadgets, nil
}

func (s *gormGadgetStore) Decommission(id uuid.UUID, at time.Time) (*models.Gadget, error) {
	result := s.db.Model(&models.Gadget{}).
		Where("id = ? AND status <> ?", id, models.StatusDecommissioned).
		Updates(map[string]interface{}{
			"status":            models.StatusDecommissioned,
			"decommissioned_at": at,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to decommission gadget: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := s.FindByID(id); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	return s.FindByID(id)
}

func (s *gormGadgetStore) ActivateSelfDestruct(id uuid.UUID, at time.Time) (*models.Gadget, error) {
	result := s.db.Model(&models.Gadget{}).
		Where("id = ? AND status NOT IN ? AND self_destruct_activated = false",
			id, []string{models.StatusDecommissioned, models.StatusDestroyed}).
		Updates(map[string]interface{}{
			"status":                  models.StatusDestroyed,
			"self_destruct_activated": true,
			"self_destruct_at":        at,
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to activate self-destruct: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := s.FindByID(id); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	return s.FindByID(id)
}

type gormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) UserStore {
	return &gormUserStore{db: db}
}

func (s *gormUserStore) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *gormUserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load user by email: %w", err)
	}
	return &user, nil
}

func (s *gormUserStore) Insert(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

type gormRefreshTokenStore struct {
	db *gorm.DB
}

func NewGormRefreshTokenStore(db *gorm.DB) RefreshTokenStore {
	return &gormRefreshTokenStore{db: db}
}

func (s *gormRefreshTokenStore) Insert(token *models.RefreshToken) error {
	if err := s.db.Create(token).Error; err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *gormRefreshTokenStore) FindActiveByHash(hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := s.db.First(&token, "token_hash = ? AND revoked = false", hash).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load refresh token: %w", err)
	}
	return &token, nil
}

func (s *gormRefreshTokenStore) Revoke(id uuid.UUID) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("id = ?", id).
		Update("revoked", true).Error
}

func (s *gormRefreshTokenStore) RevokeByHash(hash string) error {
	return s.db.Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).
		Update("revoked", true).Error
}
