package service

import (
	"context"
	"errors"

	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"go.uber.org/zap"
)

// Approve sets isApproved on the account matching email and userType.
// Approving an already approved account writes nothing.
func (s *AccountService) Approve(ctx context.Context, email, userType string) (*models.Account, error) {
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, validation("Email is required", map[string]string{"email": "Email is required"})
	}
	role, ok := models.ParseUserType(userType)
	if !ok {
		return nil, validation("Invalid user type", nil)
	}

	a, err := s.resolver.ResolveAs(ctx, email, role)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &Error{
				Kind:    KindNotFound,
				Message: "User not found",
				Details: map[string]string{"email": email, "userType": string(role)},
			}
		}
		return nil, internal(err, "resolve account for approval")
	}
	if a.Approved {
		return a, nil
	}

	updated, err := s.accounts.SetApproved(ctx, a.ID, true)
	if err != nil {
		return nil, internal(err, "set approved")
	}
	s.log.Info("account approved", zap.String("id", a.ID), zap.String("role", string(role)))
	return updated, nil
}
