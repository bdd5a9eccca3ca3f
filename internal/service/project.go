package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/htmlsanitize"
	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
	"go.uber.org/zap"
)

type ProjectService struct {
	projects store.ProjectStore
	accounts store.AccountStore
	log      *zap.Logger
	now      func() time.Time
}

func NewProjectService(projects store.ProjectStore, accounts store.AccountStore, logger *zap.Logger) *ProjectService {
	return &ProjectService{projects: projects, accounts: accounts, log: logger, now: time.Now}
}

// ProjectInput carries create and partial-update fields; nil means absent.
type ProjectInput struct {
	Title             *string
	Description       *string
	NGOID             *string
	Status            *string
	Progress          *int
	StartDate         *time.Time
	EndDate           *time.Time
	RequiredSkills    []string
	Location          *string
	MaxVolunteers     *int
	CurrentVolunteers *int
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func (s *ProjectService) ListByNGO(ctx context.Context, ngoID string) ([]*models.Project, error) {
	if strings.TrimSpace(ngoID) == "" {
		return nil, validation("NGO ID is required", nil)
	}
	list, err := s.projects.ListProjectsByNGO(ctx, ngoID)
	if err != nil {
		return nil, internal(err, "list projects")
	}
	return list, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := s.projects.GetProjectByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(KindNotFound, "Project not found")
		}
		return nil, internal(err, "load project")
	}
	return p, nil
}

func canManage(caller *models.Account, ngoID string) bool {
	if caller == nil {
		return false
	}
	return caller.Role == models.RoleAdmin || (caller.Role == models.RoleNGO && caller.ID == ngoID)
}

func (s *ProjectService) Create(ctx context.Context, caller *models.Account, in ProjectInput) (*models.Project, error) {
	d := map[string]string{}
	for field, v := range map[string]string{
		"title":       str(in.Title),
		"description": str(in.Description),
		"ngoId":       str(in.NGOID),
		"location":    str(in.Location),
	} {
		if v == "" {
			d[field] = field + " is required"
		}
	}
	if in.StartDate == nil {
		d["startDate"] = "startDate is required"
	}
	if in.EndDate == nil {
		d["endDate"] = "endDate is required"
	}
	if in.MaxVolunteers == nil {
		d["maxVolunteers"] = "maxVolunteers is required"
	}
	if len(d) > 0 {
		return nil, validation("Missing required fields", d)
	}

	ngoID := str(in.NGOID)
	if !canManage(caller, ngoID) {
		return nil, newError(KindForbidden, "You can only manage your own projects")
	}
	ngo, err := s.accounts.GetAccountByID(ctx, ngoID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, internal(err, "load ngo")
	}
	if err != nil || ngo.Role != models.RoleNGO {
		return nil, newError(KindNotFound, "NGO not found")
	}

	now := s.now().UTC()
	p := &models.Project{
		ID:             utils.GenerateID(),
		NGOID:          ngoID,
		Status:         models.ProjectActive,
		RequiredSkills: []string{},
		CreatedAt:      now,
	}
	apply(p, in)
	p.UpdatedAt = now
	if err := validateProject(p); err != nil {
		return nil, err
	}
	if err := s.projects.CreateProject(ctx, p); err != nil {
		return nil, internal(err, "create project")
	}
	s.log.Info("project created", zap.String("id", p.ID), zap.String("ngo_id", ngoID))
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, caller *models.Account, id string, in ProjectInput) (*models.Project, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManage(caller, p.NGOID) {
		return nil, newError(KindForbidden, "You can only manage your own projects")
	}
	// ownership does not move between NGOs
	in.NGOID = nil
	apply(p, in)
	p.UpdatedAt = s.now().UTC()
	if err := validateProject(p); err != nil {
		return nil, err
	}
	if err := s.projects.SaveProject(ctx, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(KindNotFound, "Project not found")
		}
		return nil, internal(err, "save project")
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, caller *models.Account, id string) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !canManage(caller, p.NGOID) {
		return newError(KindForbidden, "You can only manage your own projects")
	}
	if err := s.projects.DeleteProject(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return newError(KindNotFound, "Project not found")
		}
		return internal(err, "delete project")
	}
	s.log.Info("project deleted", zap.String("id", id), zap.String("by", caller.ID))
	return nil
}

func apply(p *models.Project, in ProjectInput) {
	if in.Title != nil {
		p.Title = htmlsanitize.PlainText(*in.Title)
	}
	if in.Description != nil {
		p.Description = htmlsanitize.Sanitize(*in.Description)
	}
	if in.NGOID != nil {
		p.NGOID = strings.TrimSpace(*in.NGOID)
	}
	if in.Status != nil {
		p.Status = models.ProjectStatus(strings.ToLower(strings.TrimSpace(*in.Status)))
	}
	if in.Progress != nil {
		p.Progress = *in.Progress
	}
	if in.StartDate != nil {
		p.StartDate = in.StartDate.UTC()
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate.UTC()
	}
	if in.RequiredSkills != nil {
		p.RequiredSkills = in.RequiredSkills
	}
	if in.Location != nil {
		p.Location = htmlsanitize.PlainText(*in.Location)
	}
	if in.MaxVolunteers != nil {
		p.MaxVolunteers = *in.MaxVolunteers
	}
	if in.CurrentVolunteers != nil {
		p.CurrentVolunteers = *in.CurrentVolunteers
	}
}

func validateProject(p *models.Project) error {
	d := map[string]string{}
	if p.Title == "" {
		d["title"] = "title is required"
	}
	if p.Description == "" {
		d["description"] = "description is required"
	}
	if p.Location == "" {
		d["location"] = "location is required"
	}
	if !p.Status.Valid() {
		d["status"] = "status must be active, completed or on-hold"
	}
	if p.Progress < 0 || p.Progress > 100 {
		d["progress"] = "progress must be between 0 and 100"
	}
	if p.EndDate.Before(p.StartDate) {
		d["endDate"] = "endDate must not be before startDate"
	}
	if p.MaxVolunteers < 1 {
		d["maxVolunteers"] = "maxVolunteers must be at least 1"
	}
	if p.CurrentVolunteers < 0 || p.CurrentVolunteers > p.MaxVolunteers {
		d["currentVolunteers"] = "currentVolunteers must be between 0 and maxVolunteers"
	}
	if len(d) > 0 {
		return validation("Invalid project", d)
	}
	return nil
}
