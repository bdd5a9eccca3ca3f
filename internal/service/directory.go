package service

import (
	"context"
	"errors"
	"strings"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"go.uber.org/zap"
)

// DirectoryService serves NGO and volunteer listings plus admin reporting.
type DirectoryService struct {
	accounts store.AccountStore
	projects store.ProjectStore
	log      *zap.Logger
}

func NewDirectoryService(accounts store.AccountStore, projects store.ProjectStore, logger *zap.Logger) *DirectoryService {
	return &DirectoryService{accounts: accounts, projects: projects, log: logger}
}

func boolPtr(b bool) *bool { return &b }

/* ------------------ NGOs ------------------ */

// ApprovedNGOs lists approved NGOs, newest first.
func (s *DirectoryService) ApprovedNGOs(ctx context.Context) ([]*models.Account, error) {
	list, err := s.accounts.ListAccounts(ctx, store.AccountFilter{
		Roles:    []models.Role{models.RoleNGO},
		Approved: boolPtr(true),
	})
	if err != nil {
		return nil, internal(err, "list ngos")
	}
	return list, nil
}

type NGOStats struct {
	TotalNGOs        int64 `json:"totalNGOs"`
	PendingApprovals int64 `json:"pendingApprovals"`
	ApprovedNGOs     int64 `json:"approvedNGOs"`
	ActiveNGOs       int64 `json:"activeNGOs"`
}

func (s *DirectoryService) NGOStats(ctx context.Context) (*NGOStats, error) {
	rs, err := s.roleStats(ctx, models.RoleNGO)
	if err != nil {
		return nil, err
	}
	return &NGOStats{
		TotalNGOs:        rs.Total,
		PendingApprovals: rs.Pending,
		ApprovedNGOs:     rs.Approved,
		ActiveNGOs:       rs.Active,
	}, nil
}

func (s *DirectoryService) getRole(ctx context.Context, id string, role models.Role, notFoundMsg string) (*models.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, newError(KindNotFound, notFoundMsg)
	}
	a, err := s.accounts.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(KindNotFound, notFoundMsg)
		}
		return nil, internal(err, "load "+string(role))
	}
	if a.Role != role {
		return nil, newError(KindNotFound, notFoundMsg)
	}
	return a, nil
}

func (s *DirectoryService) GetNGO(ctx context.Context, id string) (*models.Account, error) {
	return s.getRole(ctx, id, models.RoleNGO, "NGO not found")
}

// ApproveNGO approves by id; already approved NGOs are returned untouched.
func (s *DirectoryService) ApproveNGO(ctx context.Context, id string) (*models.Account, error) {
	ngo, err := s.GetNGO(ctx, id)
	if err != nil {
		return nil, err
	}
	if ngo.Approved {
		return ngo, nil
	}
	updated, err := s.accounts.SetApproved(ctx, ngo.ID, true)
	if err != nil {
		return nil, internal(err, "approve ngo")
	}
	s.log.Info("ngo approved", zap.String("id", ngo.ID))
	return updated, nil
}

/* ------------------ Accounts ------------------ */

// SetAccountActive deactivates or reactivates any account. An admin cannot
// deactivate their own account.
func (s *DirectoryService) SetAccountActive(ctx context.Context, caller *models.Account, id string, active bool) (*models.Account, error) {
	if strings.TrimSpace(id) == "" {
		return nil, newError(KindNotFound, "User not found")
	}
	if caller != nil && caller.ID == id && !active {
		return nil, newError(KindForbidden, "You cannot deactivate your own account")
	}
	a, err := s.accounts.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(KindNotFound, "User not found")
		}
		return nil, internal(err, "load account")
	}
	if a.Active == active {
		return a, nil
	}
	if err := s.accounts.SetActive(ctx, a.ID, active); err != nil {
		return nil, internal(err, "set account active")
	}
	a.Active = active
	s.log.Info("account active flag changed", zap.String("id", a.ID), zap.Bool("active", active))
	return a, nil
}

/* ------------------ Volunteers ------------------ */

func (s *DirectoryService) VolunteersByNGO(ctx context.Context, ngoID string) ([]*models.Account, error) {
	if strings.TrimSpace(ngoID) == "" {
		return nil, validation("NGO ID is required", nil)
	}
	list, err := s.accounts.ListAccounts(ctx, store.AccountFilter{
		Roles: []models.Role{models.RoleVolunteer},
		NGOID: ngoID,
	})
	if err != nil {
		return nil, internal(err, "list volunteers")
	}
	return list, nil
}

// GetVolunteer returns the volunteer and, when linked and still present,
// its NGO.
func (s *DirectoryService) GetVolunteer(ctx context.Context, id string) (*models.Account, *models.Account, error) {
	v, err := s.getRole(ctx, id, models.RoleVolunteer, "Volunteer not found")
	if err != nil {
		return nil, nil, err
	}
	if v.Volunteer == nil || v.Volunteer.NGOID == "" {
		return v, nil, nil
	}
	ngo, err := s.GetNGO(ctx, v.Volunteer.NGOID)
	if err != nil {
		if AsError(err).Kind == KindNotFound {
			return v, nil, nil
		}
		return nil, nil, err
	}
	return v, ngo, nil
}

// SetVolunteerApproval accepts or rejects a volunteer on behalf of the NGO
// it signed up with. Only that NGO or an admin may do so.
func (s *DirectoryService) SetVolunteerApproval(ctx context.Context, caller *models.Account, volunteerID, ngoID string, approved bool) (*models.Account, error) {
	if strings.TrimSpace(volunteerID) == "" || strings.TrimSpace(ngoID) == "" {
		return nil, validation("Volunteer ID and NGO ID are required", nil)
	}
	if caller == nil {
		return nil, newError(KindUnauthorized, "unauthorized")
	}
	if caller.Role != models.RoleAdmin && !(caller.Role == models.RoleNGO && caller.ID == ngoID) {
		return nil, newError(KindForbidden, "Only the volunteer's NGO or an admin can do this")
	}
	v, err := s.getRole(ctx, volunteerID, models.RoleVolunteer, "Volunteer not found")
	if err != nil {
		return nil, err
	}
	if v.Volunteer == nil || v.Volunteer.NGOID != ngoID {
		return nil, newError(KindNotFound, "Volunteer not found")
	}
	if v.Approved == approved {
		return v, nil
	}
	updated, err := s.accounts.SetApproved(ctx, v.ID, approved)
	if err != nil {
		return nil, internal(err, "set volunteer approval")
	}
	s.log.Info("volunteer approval changed",
		zap.String("id", v.ID),
		zap.String("ngo_id", ngoID),
		zap.Bool("approved", approved),
		zap.String("by", caller.ID))
	return updated, nil
}

/* ------------------ Admin reporting ------------------ */

// PendingApprovals lists volunteer and NGO accounts awaiting approval.
func (s *DirectoryService) PendingApprovals(ctx context.Context) ([]*models.Account, error) {
	list, err := s.accounts.ListAccounts(ctx, store.AccountFilter{
		Roles:    []models.Role{models.RoleVolunteer, models.RoleNGO},
		Approved: boolPtr(false),
	})
	if err != nil {
		return nil, internal(err, "list pending approvals")
	}
	return list, nil
}

type RoleStats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
	Active   int64 `json:"active"`
}

type Statistics struct {
	Accounts      map[models.Role]RoleStats       `json:"accounts"`
	Projects      map[models.ProjectStatus]int64 `json:"projects"`
	TotalProjects int64                          `json:"totalProjects"`
}

func (s *DirectoryService) roleStats(ctx context.Context, role models.Role) (RoleStats, error) {
	roles := []models.Role{role}
	var rs RoleStats
	var err error
	if rs.Total, err = s.accounts.CountAccounts(ctx, store.AccountFilter{Roles: roles}); err != nil {
		return rs, internal(err, "count accounts")
	}
	if rs.Approved, err = s.accounts.CountAccounts(ctx, store.AccountFilter{Roles: roles, Approved: boolPtr(true)}); err != nil {
		return rs, internal(err, "count approved")
	}
	if rs.Active, err = s.accounts.CountAccounts(ctx, store.AccountFilter{Roles: roles, Active: boolPtr(true)}); err != nil {
		return rs, internal(err, "count active")
	}
	rs.Pending = rs.Total - rs.Approved
	return rs, nil
}

func (s *DirectoryService) Statistics(ctx context.Context) (*Statistics, error) {
	out := &Statistics{Accounts: map[models.Role]RoleStats{}}
	for _, role := range []models.Role{models.RoleVolunteer, models.RoleNGO, models.RoleGovernment} {
		rs, err := s.roleStats(ctx, role)
		if err != nil {
			return nil, err
		}
		out.Accounts[role] = rs
	}
	counts, err := s.projects.CountProjectsByStatus(ctx)
	if err != nil {
		return nil, internal(err, "count projects")
	}
	out.Projects = map[models.ProjectStatus]int64{
		models.ProjectActive:    0,
		models.ProjectCompleted: 0,
		models.ProjectOnHold:    0,
	}
	for st, n := range counts {
		out.Projects[st] = n
		out.TotalProjects += n
	}
	return out, nil
}
