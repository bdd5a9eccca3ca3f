package mongostore

import (
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/models"
)

// Documents are kept separate from the domain models so the bson layout can
// evolve without touching the API.

type accountDoc struct {
	ID                string         `bson:"_id"`
	Email             string         `bson:"email"`
	PasswordHash      string         `bson:"password_hash"`
	Name              string         `bson:"name"`
	Phone             string         `bson:"phone,omitempty"`
	Address           string         `bson:"address,omitempty"`
	Role              string         `bson:"role"`
	IsActive          bool           `bson:"is_active"`
	IsApproved        bool           `bson:"is_approved"`
	MustResetPassword bool           `bson:"must_reset_password"`
	ProfilePictureURL string         `bson:"profile_picture_url,omitempty"`
	CreatedAt         time.Time      `bson:"created_at"`
	UpdatedAt         time.Time      `bson:"updated_at"`
	Volunteer         *volunteerDoc  `bson:"volunteer,omitempty"`
	NGO               *ngoDoc        `bson:"ngo,omitempty"`
	Government        *governmentDoc `bson:"government,omitempty"`
}

type volunteerDoc struct {
	Interests []string `bson:"interests"`
	Skills    []string `bson:"skills"`
	NGOID     string   `bson:"ngo_id,omitempty"`
}

type ngoDoc struct {
	Organization       string   `bson:"organization"`
	RegistrationNumber string   `bson:"registration_number"`
	Website            string   `bson:"website"`
	Interests          []string `bson:"interests"`
}

type governmentDoc struct {
	Department  string `bson:"department"`
	Designation string `bson:"designation"`
	Experience  int    `bson:"experience"`
}

type projectDoc struct {
	ID                string    `bson:"_id"`
	NGOID             string    `bson:"ngo_id"`
	Title             string    `bson:"title"`
	Description       string    `bson:"description"`
	Status            string    `bson:"status"`
	Progress          int       `bson:"progress"`
	StartDate         time.Time `bson:"start_date"`
	EndDate           time.Time `bson:"end_date"`
	RequiredSkills    []string  `bson:"required_skills"`
	Location          string    `bson:"location"`
	MaxVolunteers     int       `bson:"max_volunteers"`
	CurrentVolunteers int       `bson:"current_volunteers"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

func toAccountDoc(a *models.Account) accountDoc {
	d := accountDoc{
		ID:                a.ID,
		Email:             models.NormalizeEmail(a.Email),
		PasswordHash:      a.PasswordHash,
		Name:              a.Name,
		Phone:             a.Phone,
		Address:           a.Address,
		Role:              string(a.Role),
		IsActive:          a.Active,
		IsApproved:        a.Approved,
		MustResetPassword: a.MustResetPassword,
		ProfilePictureURL: a.ProfilePictureURL,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if v := a.Volunteer; v != nil {
		d.Volunteer = &volunteerDoc{Interests: v.Interests, Skills: v.Skills, NGOID: v.NGOID}
	}
	if n := a.NGO; n != nil {
		d.NGO = &ngoDoc{
			Organization:       n.Organization,
			RegistrationNumber: n.RegistrationNumber,
			Website:            n.Website,
			Interests:          n.Interests,
		}
	}
	if g := a.Government; g != nil {
		d.Government = &governmentDoc{Department: g.Department, Designation: g.Designation, Experience: g.Experience}
	}
	return d
}

func (d *accountDoc) toModel() *models.Account {
	a := &models.Account{
		ID:                d.ID,
		Email:             d.Email,
		PasswordHash:      d.PasswordHash,
		Name:              d.Name,
		Phone:             d.Phone,
		Address:           d.Address,
		Role:              models.Role(d.Role),
		Active:            d.IsActive,
		Approved:          d.IsApproved,
		MustResetPassword: d.MustResetPassword,
		ProfilePictureURL: d.ProfilePictureURL,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if v := d.Volunteer; v != nil {
		a.Volunteer = &models.VolunteerProfile{Interests: v.Interests, Skills: v.Skills, NGOID: v.NGOID}
	}
	if n := d.NGO; n != nil {
		a.NGO = &models.NGOProfile{
			Organization:       n.Organization,
			RegistrationNumber: n.RegistrationNumber,
			Website:            n.Website,
			Interests:          n.Interests,
		}
	}
	if g := d.Government; g != nil {
		a.Government = &models.GovernmentProfile{Department: g.Department, Designation: g.Designation, Experience: g.Experience}
	}
	return a
}

func toProjectDoc(p *models.Project) projectDoc {
	return projectDoc{
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

func (d *projectDoc) toModel() *models.Project {
	return &models.Project{
		ID:                d.ID,
		NGOID:             d.NGOID,
		Title:             d.Title,
		Description:       d.Description,
		Status:            models.ProjectStatus(d.Status),
		Progress:          d.Progress,
		StartDate:         d.StartDate,
		EndDate:           d.EndDate,
		RequiredSkills:    d.RequiredSkills,
		Location:          d.Location,
		MaxVolunteers:     d.MaxVolunteers,
		CurrentVolunteers: d.CurrentVolunteers,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
}
