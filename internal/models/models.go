package models

import "strings"

type Role string

const (
	RoleVolunteer  Role = "volunteer"
	RoleNGO        Role = "ngo"
	RoleGovernment Role = "government"
	RoleAdmin      Role = "admin"
)

// ParseUserType accepts only the roles that can self-register.
func ParseUserType(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleVolunteer:
		return RoleVolunteer, true
	case RoleNGO:
		return RoleNGO, true
	case RoleGovernment:
		return RoleGovernment, true
	}
	return "", false
}

func (r Role) Valid() bool {
	switch r {
	case RoleVolunteer, RoleNGO, RoleGovernment, RoleAdmin:
		return true
	}
	return false
}

// AutoApproved reports whether accounts of this role skip the approval gate.
func (r Role) AutoApproved() bool {
	return r == RoleGovernment || r == RoleAdmin
}

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
