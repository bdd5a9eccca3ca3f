package models

import "time"

var (
	DefaultVolunteerInterests = []string{"General"}
	DefaultNGOInterests       = []string{"Education", "Technology"}
)

// Account is the single stored identity for every role. Exactly one of the
// role payloads is set and it matches Role.
type Account struct {
	ID                string
	Email             string
	PasswordHash      string
	Name              string
	Phone             string
	Address           string
	Role              Role
	Active            bool
	Approved          bool
	MustResetPassword bool
	ProfilePictureURL string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Volunteer  *VolunteerProfile
	NGO        *NGOProfile
	Government *GovernmentProfile
}

type VolunteerProfile struct {
	Interests []string
	Skills    []string
	NGOID     string
}

type NGOProfile struct {
	Organization       string
	RegistrationNumber string
	Website            string
	Interests          []string
}

type GovernmentProfile struct {
	Department  string
	Designation string
	Experience  int
}

// ReadyForLogin is the approval gate: active, approved unless the role is
// auto-approved, and not waiting on a forced password reset.
func (a *Account) ReadyForLogin() bool {
	if !a.Active || a.MustResetPassword {
		return false
	}
	return a.Approved || a.Role.AutoApproved()
}

// Summary is the identity subset returned after registration.
func (a *Account) Summary() map[string]any {
	return map[string]any{
		"id":       a.ID,
		"email":    a.Email,
		"name":     a.Name,
		"userType": a.Role,
	}
}

// ApprovalView is returned by approval endpoints.
func (a *Account) ApprovalView() map[string]any {
	v := a.Summary()
	v["isApproved"] = a.Approved
	return v
}

// LoginView is the role-shaped projection sent with a session token.
func (a *Account) LoginView() map[string]any {
	v := map[string]any{
		"_id":        a.ID,
		"email":      a.Email,
		"name":       a.Name,
		"userType":   a.Role,
		"isActive":   a.Active,
		"isApproved": a.Approved,
	}
	switch {
	case a.NGO != nil:
		v["organization"] = a.NGO.Organization
		v["registrationNumber"] = a.NGO.RegistrationNumber
		v["website"] = a.NGO.Website
	case a.Volunteer != nil:
		v["interests"] = nonNil(a.Volunteer.Interests)
		v["skills"] = nonNil(a.Volunteer.Skills)
	case a.Government != nil:
		v["department"] = a.Government.Department
		v["designation"] = a.Government.Designation
	}
	return v
}

// Profile is the full public record, used by listings and /users/me.
func (a *Account) Profile() map[string]any {
	v := a.LoginView()
	v["phone"] = a.Phone
	v["address"] = a.Address
	v["createdAt"] = a.CreatedAt
	if a.ProfilePictureURL != "" {
		v["profilePictureUrl"] = a.ProfilePictureURL
	}
	switch {
	case a.NGO != nil:
		v["interests"] = nonNil(a.NGO.Interests)
	case a.Volunteer != nil:
		if a.Volunteer.NGOID != "" {
			v["ngoId"] = a.Volunteer.NGOID
		}
	case a.Government != nil:
		v["experience"] = a.Government.Experience
	}
	return v
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
