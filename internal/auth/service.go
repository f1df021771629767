package auth

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/db/models"
)

// Service answers authorization questions from the stored roles.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// RoleOf loads the role of the staff user with its grants.
func (s *Service) RoleOf(userID uint64) (*models.Role, error) {
	var user models.User

	err := s.db.Select("id", "role_id").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	return s.Role(user.RoleID)
}

// Role loads a role with its grants.
func (s *Service) Role(roleID uint64) (*models.Role, error) {
	var role models.Role

	err := s.db.Preload("Permissions").First(&role, roleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRoleNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load role: %w", err)
	}

	return &role, nil
}

// Allowed reports whether the staff user's role grants action on module.
// Any lookup failure is returned as error and must be treated as deny.
func (s *Service) Allowed(userID uint64, action, module string) (bool, error) {
	role, err := s.RoleOf(userID)
	if err != nil {
		return false, err
	}

	return role.Can(action, module), nil
}

// ReplaceGrants writes the grants of a role, dropping the previous ones.
func (s *Service) ReplaceGrants(roleID uint64, grants []models.RolePermission) error {
	return s.db.Transaction(func(tx *gorm.DB) error { //nolint:wrapcheck
		if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("failed to drop grants: %w", err)
		}

		if len(grants) == 0 {
			return nil
		}

		rows := make([]models.RolePermission, len(grants))
		for i, g := range grants {
			rows[i] = models.RolePermission{RoleID: roleID, Module: g.Module, Actions: g.Actions}
		}

		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to write grants: %w", err)
		}

		return nil
	})
}
