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

// EnsureAdmin creates the bootstrap admin when no account holds email.
// Without a password the account gets a random one and must reset it
// before the first login. created reports whether anything was written.
func (s *AccountService) EnsureAdmin(ctx context.Context, email, password, name string) (a *models.Account, created bool, err error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, false, validation("Email is required", map[string]string{"email": "Email is required"})
	}
	existing, _, err := s.resolver.Resolve(ctx, email)
	if err == nil {
		if existing.Role != models.RoleAdmin {
			s.log.Warn("bootstrap admin email belongs to another role", zap.String("email", email))
		}
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, internal(err, "look up admin")
	}

	mustReset := password == ""
	if mustReset {
		if password, err = utils.UnusablePassword(); err != nil {
			return nil, false, internal(err, "generate password")
		}
	}
	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return nil, false, internal(err, "hash password")
	}
	if strings.TrimSpace(name) == "" {
		name = "Administrator"
	}
	now := s.now().UTC()
	a = &models.Account{
		ID:                utils.GenerateID(),
		Email:             email,
		PasswordHash:      hash,
		Name:              strings.TrimSpace(name),
		Role:              models.RoleAdmin,
		Active:            true,
		Approved:          true,
		MustResetPassword: mustReset,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.accounts.CreateAccount(ctx, a); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			existing, _, err := s.resolver.Resolve(ctx, email)
			if err != nil {
				return nil, false, internal(err, "reload admin")
			}
			return existing, false, nil
		}
		return nil, false, internal(err, "create admin")
	}
	s.log.Info("bootstrap admin created", zap.String("email", email), zap.Bool("must_reset", mustReset))
	return a, true, nil
}

// RequireResetForPasswordless flags every account without a password hash
// so its owner has to go through the reset flow.
func (s *AccountService) RequireResetForPasswordless(ctx context.Context) (int64, error) {
	n, err := s.accounts.MarkMustReset(ctx, store.AccountFilter{NoPassword: true})
	if err != nil {
		return 0, internal(err, "mark must reset")
	}
	s.log.Info("accounts flagged for password reset", zap.Int64("count", n))
	return n, nil
}
