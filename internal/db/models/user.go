package models

import (
	"github.com/alexedwards/argon2id"
	"github.com/rs/zerolog/log"
)

// User is a staff account of the admin panel.
// Users hold exactly one role which decides what they may do.
type User struct {
	Model
	// Name is the display name.
	Name string `gorm:"size:255;not null" json:"name" validate:"required"`
	// Email is the unique login name.
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email" validate:"required"`
	// Password is the Argon2id hashed password. It is never sent back to clients.
	Password string `gorm:"size:255" json:"password,omitempty" validate:"required"`
	// RoleID is the ID of the role assigned to this user.
	RoleID uint64 `gorm:"column:role_id;index" json:"role_id" validate:"required"`
	// Role is loaded on demand by the permission gate.
	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	// ProfileImage is the stored file name of the avatar.
	ProfileImage string `gorm:"size:255" json:"profileImage"`
	// Token is the most recently issued bearer token, used by the profile lookup.
	Token string `gorm:"type:text" json:"token,omitempty"`
}

// HashPassword hashes a plaintext password using the Argon2id algorithm.
// This function should be used when creating or updating passwords of users and customers.
func HashPassword(password string) string {
	hashedPassword, err := argon2id.CreateHash(password, argon2id.DefaultParams)
	if err != nil {
		log.Fatal().Msgf("failed to hash password: %v", err)
	}

	return hashedPassword
}

// VerifyPassword verifies a plaintext password against the user's stored hashed password.
// It uses constant-time comparison to prevent timing attacks.
func (u *User) VerifyPassword(password string) bool {
	return verifyHash(password, u.Password)
}

func verifyHash(password, hash string) bool {
	if hash == "" {
		return false
	}

	match, err := argon2id.ComparePasswordAndHash(password, hash)
	if err != nil {
		log.Error().Msgf("failed to verify password: %v", err)
		return false
	}

	return match
}
