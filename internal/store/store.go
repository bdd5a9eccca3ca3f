package store

import (
	"context"
	"errors"

	"github.com/madhava-poojari/community-portal-api/internal/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when the unique email index rejects an insert.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

// AccountFilter selects accounts for listing and counting. Nil fields are
// not constrained.
type AccountFilter struct {
	Roles      []models.Role
	Approved   *bool
	Active     *bool
	NGOID      string
	NoPassword bool
}

type AccountStore interface {
	CreateAccount(ctx context.Context, a *models.Account) error
	GetAccountByID(ctx context.Context, id string) (*models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccountByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.Account, error)
	SetApproved(ctx context.Context, id string, approved bool) (*models.Account, error)
	SetActive(ctx context.Context, id string, active bool) error
	UpdatePassword(ctx context.Context, id, hash string) error
	SetProfilePicture(ctx context.Context, id, key string) error
	ListAccounts(ctx context.Context, f AccountFilter) ([]*models.Account, error)
	CountAccounts(ctx context.Context, f AccountFilter) (int64, error)
	MarkMustReset(ctx context.Context, f AccountFilter) (int64, error)
}

type ProjectStore interface {
	CreateProject(ctx context.Context, p *models.Project) error
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	ListProjectsByNGO(ctx context.Context, ngoID string) ([]*models.Project, error)
	SaveProject(ctx context.Context, p *models.Project) error
	DeleteProject(ctx context.Context, id string) error
	CountProjectsByStatus(ctx context.Context) (map[models.ProjectStatus]int64, error)
}

// Store bundles the backends used by the API. Ping and Close come from the
// concrete driver.
type Store struct {
	Accounts AccountStore
	Projects ProjectStore

	PingFn  func(ctx context.Context) error
	CloseFn func(ctx context.Context) error
}

func (s *Store) Ping(ctx context.Context) error {
	if s.PingFn == nil {
		return nil
	}
	return s.PingFn(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn(ctx)
}
