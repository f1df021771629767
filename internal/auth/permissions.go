package auth

// Actions a grant can allow.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionView   = "view"
)

// Module labels. They are stored in role grants and compared case-sensitively.
const (
	ModuleDashboard    = "Dashboard"
	ModuleCategory     = "Category"
	ModuleSize         = "Size"
	ModuleColors       = "Colors"
	ModuleCountry      = "Country"
	ModuleProduct      = "Product"
	ModuleBlog         = "Blog"
	ModuleBlogCategory = "Blog Category"
	ModuleTag          = "Tag"
	ModuleFaq          = "Faq"
	ModuleService      = "Service"
	ModuleCustomer     = "Customer"
	ModuleRole         = "Role"
	ModuleUsers        = "Users"
	ModuleCurrency     = "Currency"
	ModuleCoupon       = "Coupon"
	ModuleTax          = "Tax"
	ModuleOrderStatus  = "Order Status"
	ModuleExample      = "Example"
	ModuleOrders       = "Orders"
	ModuleSetting      = "Setting"
)

// Grant is one module and its allowed actions.
type Grant struct {
	Module  string
	Actions []string
}

// FullGrants returns the grant table of the "Super Admin" role.
func FullGrants() []Grant {
	crud := []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete}

	grants := []Grant{{Module: ModuleDashboard, Actions: []string{ActionRead}}}

	for _, m := range []string{
		ModuleCategory, ModuleSize, ModuleColors, ModuleCountry, ModuleProduct,
		ModuleBlog, ModuleBlogCategory, ModuleTag, ModuleFaq, ModuleService,
		ModuleCustomer, ModuleRole, ModuleUsers, ModuleCurrency, ModuleCoupon,
		ModuleTax, ModuleOrderStatus, ModuleExample,
	} {
		grants = append(grants, Grant{Module: m, Actions: crud})
	}

	return append(grants,
		Grant{Module: ModuleOrders, Actions: []string{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionView}},
		Grant{Module: ModuleSetting, Actions: []string{ActionRead, ActionUpdate}},
	)
}
