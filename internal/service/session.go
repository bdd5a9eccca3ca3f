package service

import (
	"context"
	"errors"
	"strings"

	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
	"go.uber.org/zap"
)

type LoginResult struct {
	Token   string
	Account *models.Account
}

// Login checks credentials and the approval gate and issues a session token.
// Unknown email and wrong password produce the same error.
func (s *AccountService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = models.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, validation("Email and password are required", missing(
			[2]string{"email", email},
			[2]string{"password", password},
		))
	}

	if err := s.limiter.Check(ctx, email); err != nil {
		if errors.Is(err, auth.ErrRateLimited) {
			s.log.Warn("login throttled", zap.String("email", email))
			return nil, newError(KindRateLimited, "Too many login attempts. Please try again later.")
		}
		s.log.Warn("login limiter unavailable", zap.Error(err))
	}

	a, _, err := s.resolver.Resolve(ctx, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, internal(err, "resolve account")
		}
		_, _ = utils.ComparePasswordAndHash(password, s.dummyHash)
		s.recordFailure(ctx, email, "unknown email")
		return nil, newError(KindInvalidCredentials, msgInvalidCredentials)
	}

	if err := s.checkReady(a); err != nil {
		return nil, err
	}

	ok, err := utils.ComparePasswordAndHash(password, a.PasswordHash)
	if err != nil && a.PasswordHash != "" {
		return nil, internal(err, "compare password")
	}
	if !ok {
		s.recordFailure(ctx, email, "wrong password")
		return nil, newError(KindInvalidCredentials, msgInvalidCredentials)
	}

	return s.issue(ctx, a)
}

func (s *AccountService) checkReady(a *models.Account) error {
	if a.ReadyForLogin() {
		return nil
	}
	s.log.Info("login refused, account not ready",
		zap.String("email", a.Email),
		zap.Bool("active", a.Active),
		zap.Bool("approved", a.Approved),
		zap.Bool("must_reset", a.MustResetPassword))
	if a.MustResetPassword && a.Active {
		return newError(KindAccountNotReady, msgMustReset)
	}
	return newError(KindAccountNotReady, msgAccountNotReady)
}

func (s *AccountService) issue(ctx context.Context, a *models.Account) (*LoginResult, error) {
	token, err := s.tokens.IssueSession(a)
	if err != nil {
		return nil, internal(err, "sign session token")
	}
	if err := s.limiter.Reset(ctx, a.Email); err != nil {
		s.log.Warn("login limiter reset failed", zap.Error(err))
	}
	s.log.Info("login", zap.String("id", a.ID), zap.String("role", string(a.Role)))
	return &LoginResult{Token: token, Account: a}, nil
}

func (s *AccountService) recordFailure(ctx context.Context, email, reason string) {
	s.log.Info("login failed", zap.String("email", email), zap.String("reason", reason))
	if err := s.limiter.Fail(ctx, email); err != nil {
		s.log.Warn("login limiter unavailable", zap.Error(err))
	}
}

// LoginWithGoogle signs in an existing account whose email Google verified.
func (s *AccountService) LoginWithGoogle(ctx context.Context, code string) (*LoginResult, error) {
	if s.google == nil {
		return nil, newError(KindNotFound, "Google sign-in is not configured")
	}
	if strings.TrimSpace(code) == "" {
		return nil, validation("Authorization code is required", map[string]string{"code": "Authorization code is required"})
	}
	email, err := s.google.VerifiedEmail(ctx, code)
	if err != nil {
		s.log.Warn("google sign-in rejected", zap.Error(err))
		return nil, newError(KindUnauthorized, "Google sign-in failed")
	}
	a, _, err := s.resolver.Resolve(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, newError(KindNotFound, "No account is registered for this Google email. Please register first.")
		}
		return nil, internal(err, "resolve google account")
	}
	if err := s.checkReady(a); err != nil {
		return nil, err
	}
	return s.issue(ctx, a)
}
