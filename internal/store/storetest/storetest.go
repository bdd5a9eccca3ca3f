// Package storetest is a behavioural suite run against every store backend.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
)

func newAccount(email string, role models.Role) *models.Account {
	now := time.Now().UTC().Truncate(time.Millisecond)
	a := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: "hash",
		Name:         "Test " + string(role),
		Role:         role,
		Active:       true,
		Approved:     role.AutoApproved(),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	switch role {
	case models.RoleVolunteer:
		a.Volunteer = &models.VolunteerProfile{Interests: []string{"General"}, Skills: []string{"go"}}
	case models.RoleNGO:
		a.NGO = &models.NGOProfile{Organization: "Org", RegistrationNumber: "R-1", Interests: []string{"Education"}}
	case models.RoleGovernment:
		a.Government = &models.GovernmentProfile{Department: "Health", Designation: "Officer", Experience: 3}
	}
	return a
}

// Run exercises s. The store must be empty.
func Run(t *testing.T, ctx context.Context, s *store.Store) {
	t.Run("EmailUniqueAcrossRoles", func(t *testing.T) {
		if err := s.Accounts.CreateAccount(ctx, newAccount("dup@example.org", models.RoleVolunteer)); err != nil {
			t.Fatalf("create: %v", err)
		}
		err := s.Accounts.CreateAccount(ctx, newAccount("dup@example.org", models.RoleNGO))
		if !errors.Is(err, store.ErrDuplicateEmail) {
			t.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	t.Run("LookupRoundTrip", func(t *testing.T) {
		a := newAccount("Gov@Example.org", models.RoleGovernment)
		if err := s.Accounts.CreateAccount(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := s.Accounts.GetAccountByEmail(ctx, "gov@example.org")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.ID != a.ID || got.Government == nil || got.Government.Experience != 3 {
			t.Fatalf("unexpected account: %+v", got)
		}
		if _, err := s.Accounts.GetAccountByEmailAndRole(ctx, "gov@example.org", models.RoleNGO); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for wrong role, got %v", err)
		}
	})

	t.Run("ApproveAndFilter", func(t *testing.T) {
		ngo := newAccount("ngo@example.org", models.RoleNGO)
		if err := s.Accounts.CreateAccount(ctx, ngo); err != nil {
			t.Fatalf("create: %v", err)
		}
		f := false
		pending, err := s.Accounts.CountAccounts(ctx, store.AccountFilter{Roles: []models.Role{models.RoleNGO}, Approved: &f})
		if err != nil || pending != 1 {
			t.Fatalf("pending = %d, %v", pending, err)
		}
		got, err := s.Accounts.SetApproved(ctx, ngo.ID, true)
		if err != nil || !got.Approved {
			t.Fatalf("approve: %+v, %v", got, err)
		}
		if _, err := s.Accounts.SetApproved(ctx, "missing", true); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("InactiveAccountStaysInactive", func(t *testing.T) {
		a := newAccount("off@example.org", models.RoleVolunteer)
		a.Active = false
		if err := s.Accounts.CreateAccount(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
		got, err := s.Accounts.GetAccountByID(ctx, a.ID)
		if err != nil || got.Active {
			t.Fatalf("expected inactive account, got %+v, %v", got, err)
		}
		if err := s.Accounts.SetActive(ctx, a.ID, true); err != nil {
			t.Fatalf("activate: %v", err)
		}
		if got, _ = s.Accounts.GetAccountByID(ctx, a.ID); !got.Active {
			t.Fatal("expected account to be active")
		}
		if err := s.Accounts.SetActive(ctx, a.ID, false); err != nil {
			t.Fatalf("deactivate: %v", err)
		}
		if got, _ = s.Accounts.GetAccountByID(ctx, a.ID); got.Active {
			t.Fatal("expected account to be inactive again")
		}
	})

	t.Run("PasswordAndReset", func(t *testing.T) {
		a := newAccount("reset@example.org", models.RoleVolunteer)
		a.PasswordHash = ""
		if err := s.Accounts.CreateAccount(ctx, a); err != nil {
			t.Fatalf("create: %v", err)
		}
		n, err := s.Accounts.MarkMustReset(ctx, store.AccountFilter{NoPassword: true})
		if err != nil || n != 1 {
			t.Fatalf("mark = %d, %v", n, err)
		}
		if err := s.Accounts.UpdatePassword(ctx, a.ID, "newhash"); err != nil {
			t.Fatalf("update: %v", err)
		}
		got, _ := s.Accounts.GetAccountByID(ctx, a.ID)
		if got.MustResetPassword || got.PasswordHash != "newhash" {
			t.Fatalf("unexpected after reset: %+v", got)
		}
	})

	t.Run("Projects", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		p := &models.Project{
			ID: uuid.NewString(), NGOID: "ngo-1", Title: "Clean river",
			Status: models.ProjectActive, StartDate: now, EndDate: now.Add(24 * time.Hour),
			MaxVolunteers: 5, CreatedAt: now, UpdatedAt: now,
		}
		if err := s.Projects.CreateProject(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
		p.Status = models.ProjectCompleted
		p.Progress = 100
		if err := s.Projects.SaveProject(ctx, p); err != nil {
			t.Fatalf("save: %v", err)
		}
		list, err := s.Projects.ListProjectsByNGO(ctx, "ngo-1")
		if err != nil || len(list) != 1 || list[0].Progress != 100 {
			t.Fatalf("list: %+v, %v", list, err)
		}
		counts, err := s.Projects.CountProjectsByStatus(ctx)
		if err != nil || counts[models.ProjectCompleted] != 1 {
			t.Fatalf("counts: %v, %v", counts, err)
		}
		if err := s.Projects.DeleteProject(ctx, p.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := s.Projects.GetProjectByID(ctx, p.ID); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}
