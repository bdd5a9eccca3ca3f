package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/madhava-poojari/community-portal-api/internal/models"
)

const (
	purposeSession       = "session"
	purposePasswordReset = "password_reset"
)

var ErrInvalidToken = errors.New("invalid token")

// SessionClaims are carried by the login token and the refreshToken cookie.
type SessionClaims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	UserType string `json:"userType"`
	Purpose  string `json:"purpose"`
	jwt.RegisteredClaims
}

// ResetClaims bind a reset token to the password hash it was issued against,
// so the token stops working once the password changes.
type ResetClaims struct {
	UserID      string `json:"userId"`
	Purpose     string `json:"purpose"`
	Fingerprint string `json:"fp"`
	jwt.RegisteredClaims
}

// TokenIssuer signs each token kind with its own key derived from the
// configured secret, so a reset token never verifies as a session.
type TokenIssuer struct {
	sessionKey []byte
	resetKey   []byte
	ttl      time.Duration
	resetTTL time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secret string, ttl, resetTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		sessionKey: deriveKey(secret, purposeSession),
		resetKey:   deriveKey(secret, purposePasswordReset),
		ttl:        ttl,
		resetTTL:   resetTTL,
		now:        time.Now,
	}
}

func deriveKey(secret, purpose string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(purpose))
	return mac.Sum(nil)
}

func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// IssueSession signs an HS256 token for a.
func (t *TokenIssuer) IssueSession(a *models.Account) (string, error) {
	now := t.now()
	claims := SessionClaims{
		UserID:   a.ID,
		Email:    a.Email,
		UserType: string(a.Role),
		Purpose:  purposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.sessionKey)
}

func (t *TokenIssuer) ParseSession(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	if err := t.parse(tokenString, claims, t.sessionKey); err != nil {
		return nil, err
	}
	if claims.Purpose != purposeSession || claims.UserID == "" || !models.Role(claims.UserType).Valid() {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (t *TokenIssuer) IssueReset(a *models.Account) (string, error) {
	now := t.now()
	claims := ResetClaims{
		UserID:      a.ID,
		Purpose:     purposePasswordReset,
		Fingerprint: Fingerprint(a.PasswordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.resetTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.resetKey)
}

func (t *TokenIssuer) ParseReset(tokenString string) (*ResetClaims, error) {
	claims := &ResetClaims{}
	if err := t.parse(tokenString, claims, t.resetKey); err != nil {
		return nil, err
	}
	if claims.Purpose != purposePasswordReset || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (t *TokenIssuer) parse(tokenString string, claims jwt.Claims, key []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}, jwt.WithTimeFunc(t.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

// Fingerprint is a short digest of a password hash.
func Fingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}
