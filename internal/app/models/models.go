package models

// Role defines the user role type
type Role string

const (
	RoleStudent              Role = "student"
	RolePlacementCoordinator Role = "placementCoordinator"
	RoleAdmin                Role = "admin"
)

// Roles lists every assignable role
var Roles = []Role{RoleStudent, RolePlacementCoordinator, RoleAdmin}

// IsValid reports whether r is one of the enumerated roles
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RolePlacementCoordinator, RoleAdmin:
		return true
	}
	return false
}

// Label is the short name shown in listings
func (r Role) Label() string {
	switch r {
	case RoleStudent:
		return "Student"
	case RolePlacementCoordinator:
		return "PC"
	case RoleAdmin:
		return "Admin"
	}
	return string(r)
}

// NotPlaced is the company reference used for students without a placement
const NotPlaced = "np"
