// Package memstore is an in-memory store used by service and handler tests.
// It enforces the same email uniqueness as the real backends.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
)

type Store struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
	byEmail  map[string]string
	projects map[string]*models.Project

	// Writes counts mutating account calls, so tests can assert no-ops.
	Writes int
}

func New() *Store {
	return &Store{
		accounts: map[string]*models.Account{},
		byEmail:  map[string]string{},
		projects: map[string]*models.Project{},
	}
}

// Bundle wraps s as a *store.Store.
func (s *Store) Bundle() *store.Store {
	return &store.Store{Accounts: s, Projects: s}
}

func cloneAccount(a *models.Account) *models.Account {
	c := *a
	if a.Volunteer != nil {
		v := *a.Volunteer
		v.Interests = append([]string(nil), a.Volunteer.Interests...)
		v.Skills = append([]string(nil), a.Volunteer.Skills...)
		c.Volunteer = &v
	}
	if a.NGO != nil {
		n := *a.NGO
		n.Interests = append([]string(nil), a.NGO.Interests...)
		c.NGO = &n
	}
	if a.Government != nil {
		g := *a.Government
		c.Government = &g
	}
	return &c
}

func (s *Store) CreateAccount(_ context.Context, a *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := models.NormalizeEmail(a.Email)
	if _, ok := s.byEmail[email]; ok {
		return store.ErrDuplicateEmail
	}
	c := cloneAccount(a)
	c.Email = email
	s.accounts[c.ID] = c
	s.byEmail[email] = c.ID
	s.Writes++
	return nil
}

func (s *Store) GetAccountByID(_ context.Context, id string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return cloneAccount(a), nil
}

func (s *Store) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	s.mu.RLock()
	id, ok := s.byEmail[models.NormalizeEmail(email)]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	return s.GetAccountByID(ctx, id)
}

func (s *Store) GetAccountByEmailAndRole(ctx context.Context, email string, role models.Role) (*models.Account, error) {
	a, err := s.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if a.Role != role {
		return nil, store.ErrNotFound
	}
	return a, nil
}

func (s *Store) mutate(id string, fn func(a *models.Account)) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	fn(a)
	a.UpdatedAt = time.Now().UTC()
	s.Writes++
	return cloneAccount(a), nil
}

func (s *Store) SetApproved(_ context.Context, id string, approved bool) (*models.Account, error) {
	return s.mutate(id, func(a *models.Account) { a.Approved = approved })
}

func (s *Store) SetActive(_ context.Context, id string, active bool) error {
	_, err := s.mutate(id, func(a *models.Account) { a.Active = active })
	return err
}

func (s *Store) UpdatePassword(_ context.Context, id, hash string) error {
	_, err := s.mutate(id, func(a *models.Account) {
		a.PasswordHash = hash
		a.MustResetPassword = false
	})
	return err
}

func (s *Store) SetProfilePicture(_ context.Context, id, key string) error {
	_, err := s.mutate(id, func(a *models.Account) { a.ProfilePictureURL = key })
	return err
}

func matches(a *models.Account, f store.AccountFilter) bool {
	if len(f.Roles) > 0 {
		found := false
		for _, r := range f.Roles {
			if a.Role == r {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Approved != nil && a.Approved != *f.Approved {
		return false
	}
	if f.Active != nil && a.Active != *f.Active {
		return false
	}
	if f.NGOID != "" && (a.Volunteer == nil || a.Volunteer.NGOID != f.NGOID) {
		return false
	}
	if f.NoPassword && a.PasswordHash != "" {
		return false
	}
	return true
}

func (s *Store) ListAccounts(_ context.Context, f store.AccountFilter) ([]*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Account
	for _, a := range s.accounts {
		if matches(a, f) {
			out = append(out, cloneAccount(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CountAccounts(ctx context.Context, f store.AccountFilter) (int64, error) {
	list, err := s.ListAccounts(ctx, f)
	return int64(len(list)), err
}

func (s *Store) MarkMustReset(_ context.Context, f store.AccountFilter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.accounts {
		if matches(a, f) {
			a.MustResetPassword = true
			n++
		}
	}
	return n, nil
}

func (s *Store) CreateProject(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *p
	s.projects[p.ID] = &c
	return nil
}

func (s *Store) GetProjectByID(_ context.Context, id string) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s *Store) ListProjectsByNGO(_ context.Context, ngoID string) ([]*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Project
	for _, p := range s.projects {
		if p.NGOID == ngoID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) SaveProject(_ context.Context, p *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[p.ID]; !ok {
		return store.ErrNotFound
	}
	c := *p
	s.projects[p.ID] = &c
	return nil
}

func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *Store) CountProjectsByStatus(_ context.Context) (map[models.ProjectStatus]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[models.ProjectStatus]int64{}
	for _, p := range s.projects {
		out[p.Status]++
	}
	return out, nil
}
