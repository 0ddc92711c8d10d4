package entities

// Role is the workspace-assigned role of the actor performing an operation.
// Role assignments come from the external workspace/identity provider; the
// service treats them as opaque but gate-checks every operation against them.

type Role string

const (
	RoleCustomer   Role = "customer"
	RoleSales      Role = "sales"
	RoleTech       Role = "tech"
	RoleConsultant Role = "consultant"
)

// KnownRole reports whether r is one of the roles the workflow understands.
func KnownRole(r Role) bool {
	switch r {
	case RoleCustomer, RoleSales, RoleTech, RoleConsultant:
		return true
	}
	return false
}

// Actor identifies who is calling an operation. There is no ambient identity;
// every workflow operation takes an explicit Actor.
type Actor struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}
