package service

import (
	"context"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
)

// Resolver maps an email to the one account that owns it. It returns
// store.ErrNotFound unchanged so callers pick their own user-facing error.
type Resolver struct {
	accounts store.AccountStore
}

func NewResolver(accounts store.AccountStore) *Resolver {
	return &Resolver{accounts: accounts}
}

func (r *Resolver) Resolve(ctx context.Context, email string) (*models.Account, models.Role, error) {
	a, err := r.accounts.GetAccountByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	return a, a.Role, nil
}

// ResolveAs only matches an account holding role.
func (r *Resolver) ResolveAs(ctx context.Context, email string, role models.Role) (*models.Account, error) {
	return r.accounts.GetAccountByEmailAndRole(ctx, models.NormalizeEmail(email), role)
}
