package service

import (
	"context"
	"errors"
	"strings"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
	"go.uber.org/zap"
)

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	UserType string
	Phone    string
	Address  string

	// volunteer
	Interests []string
	Skills    []string
	NGOID     string

	// ngo
	Organization       string
	RegistrationNumber string
	Website            string

	// government; nil means absent
	Department  string
	Designation string
	Experience  *int
}

// Register creates an account for one of the self-registering roles.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	in.Email = models.NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)

	if d := missing(
		[2]string{"email", in.Email},
		[2]string{"password", in.Password},
		[2]string{"name", in.Name},
		[2]string{"userType", strings.TrimSpace(in.UserType)},
	); d != nil {
		return nil, validation("Missing required fields", d)
	}
	role, ok := models.ParseUserType(in.UserType)
	if !ok {
		return nil, validation("Invalid user type", nil)
	}
	if err := checkRoleFields(role, &in); err != nil {
		return nil, err
	}

	if _, _, err := s.resolver.Resolve(ctx, in.Email); err == nil {
		return nil, newError(KindConflict, "Email already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, internal(err, "check existing email")
	}

	if in.NGOID != "" && role == models.RoleVolunteer {
		ngo, err := s.accounts.GetAccountByID(ctx, in.NGOID)
		if err != nil || ngo.Role != models.RoleNGO {
			return nil, validation("NGO not found", map[string]string{"ngoId": "Unknown NGO"})
		}
	}

	hash, err := utils.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, internal(err, "hash password")
	}

	now := s.now().UTC()
	a := &models.Account{
		ID:           utils.GenerateID(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Role:         role,
		Active:       true,
		Approved:     role.AutoApproved(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch role {
	case models.RoleVolunteer:
		a.Volunteer = &models.VolunteerProfile{
			Interests: orDefault(in.Interests, models.DefaultVolunteerInterests),
			Skills:    orDefault(in.Skills, []string{}),
			NGOID:     in.NGOID,
		}
	case models.RoleNGO:
		a.NGO = &models.NGOProfile{
			Organization:       strings.TrimSpace(in.Organization),
			RegistrationNumber: strings.TrimSpace(in.RegistrationNumber),
			Website:            strings.TrimSpace(in.Website),
			Interests:          orDefault(in.Interests, models.DefaultNGOInterests),
		}
	case models.RoleGovernment:
		a.Government = &models.GovernmentProfile{
			Department:  strings.TrimSpace(in.Department),
			Designation: strings.TrimSpace(in.Designation),
			Experience:  *in.Experience,
		}
	}

	if err := s.accounts.CreateAccount(ctx, a); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, newError(KindConflict, "Email already registered")
		}
		return nil, internal(err, "create account")
	}
	s.log.Info("account registered",
		zap.String("id", a.ID),
		zap.String("email", a.Email),
		zap.String("role", string(role)),
		zap.Bool("approved", a.Approved))
	return a, nil
}

func checkRoleFields(role models.Role, in *RegisterInput) error {
	var d map[string]string
	switch role {
	case models.RoleVolunteer:
		d = missing(
			[2]string{"phone", strings.TrimSpace(in.Phone)},
			[2]string{"address", strings.TrimSpace(in.Address)},
		)
	case models.RoleNGO:
		d = missing(
			[2]string{"organization", strings.TrimSpace(in.Organization)},
			[2]string{"registrationNumber", strings.TrimSpace(in.RegistrationNumber)},
			[2]string{"website", strings.TrimSpace(in.Website)},
		)
	case models.RoleGovernment:
		d = missing(
			[2]string{"department", strings.TrimSpace(in.Department)},
			[2]string{"designation", strings.TrimSpace(in.Designation)},
		)
		if in.Experience == nil {
			if d == nil {
				d = map[string]string{}
			}
			d["experience"] = "Experience is required"
		} else if *in.Experience < 0 {
			return validation("Experience must be a positive number",
				map[string]string{"experience": "Experience must be a positive number"})
		}
	}
	if d != nil {
		return validation("Missing required fields for "+string(role), d)
	}
	return nil
}

func orDefault(v, def []string) []string {
	if len(v) == 0 {
		return append([]string{}, def...)
	}
	return v
}
