package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
	"go.uber.org/zap"
)

// ResetLink builds the front-end URL for a reset token.
func (s *AccountService) ResetLink(token string) string {
	return fmt.Sprintf("%s/reset-password/%s", strings.TrimRight(s.cfg.ClientURL, "/"), token)
}

// RequestPasswordReset mails a single-use reset link to the account owner.
func (s *AccountService) RequestPasswordReset(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)
	if email == "" {
		return validation("Email is required", map[string]string{"email": "Email is required"})
	}
	a, _, err := s.resolver.Resolve(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return newError(KindNotFound, "User not found")
		}
		return internal(err, "resolve account for reset")
	}
	if s.mailer == nil {
		return internal(errors.New("mailer not configured"), "send reset mail")
	}

	token, err := s.tokens.IssueReset(a)
	if err != nil {
		return internal(err, "sign reset token")
	}
	if err := s.mailer.SendPasswordReset(ctx, a.Email, a.Name, s.ResetLink(token)); err != nil {
		return internal(err, "send reset mail")
	}
	s.log.Info("password reset requested", zap.String("id", a.ID))
	return nil
}

// ResetPassword consumes a reset token. A token stops working as soon as the
// password it was issued against changes.
func (s *AccountService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if d := missing([2]string{"token", token}, [2]string{"newPassword", newPassword}); d != nil {
		return validation("Missing required fields", d)
	}
	claims, err := s.tokens.ParseReset(token)
	if err != nil {
		return validation(msgInvalidResetToken, nil)
	}
	a, err := s.accounts.GetAccountByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return validation(msgInvalidResetToken, nil)
		}
		return internal(err, "load account for reset")
	}
	if auth.Fingerprint(a.PasswordHash) != claims.Fingerprint {
		return validation(msgInvalidResetToken, nil)
	}

	hash, err := utils.HashPassword(newPassword, s.cfg.BcryptCost)
	if err != nil {
		return internal(err, "hash password")
	}
	if err := s.accounts.UpdatePassword(ctx, a.ID, hash); err != nil {
		return internal(err, "update password")
	}
	if err := s.limiter.Reset(ctx, a.Email); err != nil {
		s.log.Warn("login limiter reset failed", zap.Error(err))
	}
	s.log.Info("password reset", zap.String("id", a.ID))
	return nil
}
