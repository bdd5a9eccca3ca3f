package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/madhava-poojari/community-portal-api/internal/models"
)

func testAccount() *models.Account {
	return &models.Account{ID: "u1", Email: "v@x.com", Role: models.RoleVolunteer, PasswordHash: "h1"}
}

func TestSessionRoundTrip(t *testing.T) {
	ti := NewTokenIssuer("secret", 24*time.Hour, time.Hour)
	tok, err := ti.IssueSession(testAccount())
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	c, err := ti.ParseSession(tok)
	if err != nil {
		t.Fatalf("ParseSession: %v", err)
	}
	if c.UserID != "u1" || c.Email != "v@x.com" || c.UserType != "volunteer" {
		t.Errorf("unexpected claims %+v", c)
	}
	if got := c.ExpiresAt.Sub(c.IssuedAt.Time); got != 24*time.Hour {
		t.Errorf("expiry window = %v", got)
	}
}

func TestSessionExpired(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour, time.Hour)
	ti.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _ := ti.IssueSession(testAccount())
	ti.now = time.Now
	if _, err := ti.ParseSession(tok); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestSessionWrongSecret(t *testing.T) {
	tok, _ := NewTokenIssuer("a", time.Hour, time.Hour).IssueSession(testAccount())
	if _, err := NewTokenIssuer("b", time.Hour, time.Hour).ParseSession(tok); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestRejectsNoneAlgorithm(t *testing.T) {
	claims := SessionClaims{UserID: "u1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewTokenIssuer("s", time.Hour, time.Hour).ParseSession(tok); err == nil {
		t.Fatal("expected none alg to be rejected")
	}
}

func TestResetTokenPurpose(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour, time.Hour)
	session, _ := ti.IssueSession(testAccount())
	if _, err := ti.ParseReset(session); err == nil {
		t.Fatal("session token must not be accepted as reset token")
	}
	reset, _ := ti.IssueReset(testAccount())
	c, err := ti.ParseReset(reset)
	if err != nil {
		t.Fatalf("ParseReset: %v", err)
	}
	if c.Fingerprint != Fingerprint("h1") {
		t.Errorf("fingerprint mismatch")
	}
	if Fingerprint("h1") == Fingerprint("h2") {
		t.Errorf("fingerprints should differ")
	}
}

func TestParseSession_RejectsResetToken(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour, time.Hour)
	reset, err := ti.IssueReset(testAccount())
	if err != nil {
		t.Fatalf("IssueReset: %v", err)
	}
	if _, err := ti.ParseSession(reset); err == nil {
		t.Fatal("reset token must not be accepted as a session")
	}

	// same key, but the purpose claim is not "session"
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		UserID:  "u1",
		Purpose: purposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tok, err := forged.SignedString(ti.sessionKey)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ti.ParseSession(tok); err == nil {
		t.Fatal("session parse must require the session purpose")
	}
}

func TestDerivedKeysDiffer(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour, time.Hour)
	if string(ti.sessionKey) == string(ti.resetKey) {
		t.Fatal("session and reset keys must differ")
	}
	if string(ti.sessionKey) == "secret" {
		t.Fatal("session key must be derived, not the raw secret")
	}
}

func TestParseSession_RejectsUnknownRole(t *testing.T) {
	ti := NewTokenIssuer("secret", time.Hour, time.Hour)
	a := testAccount()
	a.Role = "superuser"
	tok, err := ti.IssueSession(a)
	if err != nil {
		t.Fatalf("IssueSession: %v", err)
	}
	if _, err := ti.ParseSession(tok); err == nil {
		t.Fatal("expected unknown userType to be rejected")
	}
}
