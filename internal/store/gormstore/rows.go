package gormstore

import (
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"gorm.io/datatypes"
)

// accountRow flattens the role payloads into nullable columns on one table
// so the email uniqueIndex covers every role.
type accountRow struct {
	ID                string `gorm:"primaryKey;size:36"`
	Email             string `gorm:"uniqueIndex;not null"`
	PasswordHash      string `gorm:"not null;default:''"`
	Name              string
	Phone             string
	Address           string
	Role              string `gorm:"type:text;not null;index:idx_role_created,priority:1"`
	Active            bool   `gorm:"not null"`
	Approved          bool   `gorm:"not null"`
	MustResetPassword bool   `gorm:"not null"`
	ProfilePictureURL string
	CreatedAt         time.Time `gorm:"index:idx_role_created,priority:2,sort:desc"`
	UpdatedAt         time.Time

	Interests          datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Skills             datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	NGOID              *string                     `gorm:"size:36;index"`
	Organization       *string
	RegistrationNumber *string
	Website            *string
	Department         *string
	Designation        *string
	Experience         *int
}

func (accountRow) TableName() string { return "accounts" }

type projectRow struct {
	ID                string `gorm:"primaryKey;size:36"`
	NGOID             string `gorm:"size:36;not null;index"`
	Title             string `gorm:"not null"`
	Description       string
	Status            string `gorm:"type:text;not null;index"`
	Progress          int
	StartDate         time.Time
	EndDate           time.Time
	RequiredSkills    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Location          string
	MaxVolunteers     int
	CurrentVolunteers int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (projectRow) TableName() string { return "projects" }

func strPtr(s string) *string { return &s }

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func toAccountRow(a *models.Account) *accountRow {
	r := &accountRow{
		ID:                a.ID,
		Email:             models.NormalizeEmail(a.Email),
		PasswordHash:      a.PasswordHash,
		Name:              a.Name,
		Phone:             a.Phone,
		Address:           a.Address,
		Role:              string(a.Role),
		Active:            a.Active,
		Approved:          a.Approved,
		MustResetPassword: a.MustResetPassword,
		ProfilePictureURL: a.ProfilePictureURL,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	switch {
	case a.Volunteer != nil:
		r.Interests = a.Volunteer.Interests
		r.Skills = a.Volunteer.Skills
		if a.Volunteer.NGOID != "" {
			r.NGOID = strPtr(a.Volunteer.NGOID)
		}
	case a.NGO != nil:
		r.Interests = a.NGO.Interests
		r.Organization = strPtr(a.NGO.Organization)
		r.RegistrationNumber = strPtr(a.NGO.RegistrationNumber)
		r.Website = strPtr(a.NGO.Website)
	case a.Government != nil:
		exp := a.Government.Experience
		r.Department = strPtr(a.Government.Department)
		r.Designation = strPtr(a.Government.Designation)
		r.Experience = &exp
	}
	return r
}

func (r *accountRow) toModel() *models.Account {
	a := &models.Account{
		ID:                r.ID,
		Email:             r.Email,
		PasswordHash:      r.PasswordHash,
		Name:              r.Name,
		Phone:             r.Phone,
		Address:           r.Address,
		Role:              models.Role(r.Role),
		Active:            r.Active,
		Approved:          r.Approved,
		MustResetPassword: r.MustResetPassword,
		ProfilePictureURL: r.ProfilePictureURL,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
	switch a.Role {
	case models.RoleVolunteer:
		a.Volunteer = &models.VolunteerProfile{
			Interests: []string(r.Interests),
			Skills:    []string(r.Skills),
			NGOID:     deref(r.NGOID),
		}
	case models.RoleNGO:
		a.NGO = &models.NGOProfile{
			Organization:       deref(r.Organization),
			RegistrationNumber: deref(r.RegistrationNumber),
			Website:            deref(r.Website),
			Interests:          []string(r.Interests),
		}
	case models.RoleGovernment:
		g := &models.GovernmentProfile{
			Department:  deref(r.Department),
			Designation: deref(r.Designation),
		}
		if r.Experience != nil {
			g.Experience = *r.Experience
		}
		a.Government = g
	}
	return a
}

func toProjectRow(p *models.Project) *projectRow {
	return &projectRow{
		ID:                p.ID,
		NGOID:             p.NGOID,
		Title:             p.Title,
		Description:       p.Description,
		Status:            string(p.Status),
		Progress:          p.Progress,
		StartDate:         p.StartDate,
		EndDate:           p.EndDate,
		RequiredSkills:    p.RequiredSkills,
		Location:          p.Location,
		MaxVolunteers:     p.MaxVolunteers,
		CurrentVolunteers: p.CurrentVolunteers,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (r *projectRow) toModel() *models.Project {
	return &models.Project{
		ID:                r.ID,
		NGOID:             r.NGOID,
		Title:             r.Title,
		Description:       r.Description,
		Status:            models.ProjectStatus(r.Status),
		Progress:          r.Progress,
		StartDate:         r.StartDate,
		EndDate:           r.EndDate,
		RequiredSkills:    []string(r.RequiredSkills),
		Location:          r.Location,
		MaxVolunteers:     r.MaxVolunteers,
		CurrentVolunteers: r.CurrentVolunteers,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}
