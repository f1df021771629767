package models

// Role is a named set of grants. Every staff user holds exactly one role.
type Role struct {
	Model
	// Name is the unique name of the role (e.g., "Super Admin").
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name" validate:"required,min=2,max=255"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255" json:"description"`
	// Permissions holds at most one grant per module.
	Permissions []RolePermission `gorm:"foreignKey:RoleID" json:"permissions" validate:"required,min=1,dive"`
}

// TableName specifies the database table name for the Role model.
func (Role) TableName() string {
	return "roles"
}

// Can reports whether the role grants action on module.
// Module names compare case-sensitively.
func (r *Role) Can(action, module string) bool {
	for i := range r.Permissions {
		if r.Permissions[i].Module != module {
			continue
		}

		for _, a := range r.Permissions[i].Actions {
			if a == action {
				return true
			}
		}

		return false
	}

	return false
}

// DuplicateModule returns the first module that appears in more than one grant.
func (r *Role) DuplicateModule() (string, bool) {
	seen := make(map[string]struct{}, len(r.Permissions))

	for i := range r.Permissions {
		m := r.Permissions[i].Module
		if _, ok := seen[m]; ok {
			return m, true
		}

		seen[m] = struct{}{}
	}

	return "", false
}
