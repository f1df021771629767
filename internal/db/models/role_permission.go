package models

// RolePermission is the grant of a role for one module.
// The unique index on (role_id, module) keeps a single grant per module.
type RolePermission struct {
	ID uint64 `gorm:"primaryKey" json:"-"`
	// RoleID is the ID of the role owning this grant.
	RoleID uint64 `gorm:"not null;uniqueIndex:idx_role_module" json:"-"`
	// Module is the permission module label, e.g. "Blog Category".
	Module string `gorm:"size:64;not null;uniqueIndex:idx_role_module" json:"module" validate:"required"`
	// Actions lists the granted actions.
	Actions []string `gorm:"serializer:json;type:text" json:"permission"`
}

// TableName specifies the database table name for the RolePermission model.
func (RolePermission) TableName() string {
	return "role_permissions"
}
