package service

import (
	"context"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"github.com/madhava-poojari/community-portal-api/internal/utils"
	"go.uber.org/zap"
)

// ResetMailer delivers password-reset links.
type ResetMailer interface {
	SendPasswordReset(ctx context.Context, to, name, link string) error
}

// GoogleVerifier turns an OAuth authorization code into a verified email.
type GoogleVerifier interface {
	VerifiedEmail(ctx context.Context, code string) (string, error)
}

type AccountServiceConfig struct {
	BcryptCost int
	ClientURL  string
}

// AccountService owns registration, approval, login and password reset.
type AccountService struct {
	accounts store.AccountStore
	resolver *Resolver
	tokens   *auth.TokenIssuer
	limiter  *auth.LoginLimiter
	mailer   ResetMailer
	google   GoogleVerifier
	log      *zap.Logger
	cfg      AccountServiceConfig

	// dummyHash is compared against when the email is unknown so that both
	// failure paths cost one bcrypt comparison.
	dummyHash string
	now       func() time.Time
}

// NewAccountService wires the account workflow. limiter, mailer and google
// may be nil; the matching features are then disabled.
func NewAccountService(accounts store.AccountStore, tokens *auth.TokenIssuer, limiter *auth.LoginLimiter,
	mailer ResetMailer, google GoogleVerifier, logger *zap.Logger, cfg AccountServiceConfig) (*AccountService, error) {
	secret, err := utils.UnusablePassword()
	if err != nil {
		return nil, err
	}
	dummy, err := utils.HashPassword(secret, cfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	return &AccountService{
		accounts:  accounts,
		resolver:  NewResolver(accounts),
		tokens:    tokens,
		limiter:   limiter,
		mailer:    mailer,
		google:    google,
		log:       logger,
		cfg:       cfg,
		dummyHash: dummy,
		now:       time.Now,
	}, nil
}

func (s *AccountService) Tokens() *auth.TokenIssuer { return s.tokens }
