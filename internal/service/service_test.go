package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/store"
	"github.com/madhava-poojari/community-portal-api/internal/store/memstore"
	"go.uber.org/zap"
)

type fakeMailer struct {
	to, name, link string
	err            error
	sent           int
}

func (m *fakeMailer) SendPasswordReset(_ context.Context, to, name, link string) error {
	if m.err != nil {
		return m.err
	}
	m.to, m.name, m.link = to, name, link
	m.sent++
	return nil
}

type fakeGoogle struct {
	email string
	err   error
}

func (g fakeGoogle) VerifiedEmail(context.Context, string) (string, error) {
	return g.email, g.err
}

type fixture struct {
	svc    *AccountService
	store  *memstore.Store
	mailer *fakeMailer
}

func newFixture(t *testing.T, limiter *auth.LoginLimiter, google GoogleVerifier) *fixture {
	t.Helper()
	ms := memstore.New()
	m := &fakeMailer{}
	svc, err := NewAccountService(ms, auth.NewTokenIssuer("test-secret", 24*time.Hour, time.Hour),
		limiter, m, google, zap.NewNop(), AccountServiceConfig{BcryptCost: 4, ClientURL: "http://client.test"})
	if err != nil {
		t.Fatalf("NewAccountService: %v", err)
	}
	return &fixture{svc: svc, store: ms, mailer: m}
}

func intPtr(i int) *int { return &i }

func volunteerInput(email string) RegisterInput {
	return RegisterInput{Email: email, Password: "Abcdef12", Name: "V", UserType: "volunteer", Phone: "1234567890", Address: "A"}
}

func ngoInput(email string) RegisterInput {
	return RegisterInput{Email: email, Password: "Abcdef12", Name: "N", UserType: "ngo",
		Organization: "Helping Hands", RegistrationNumber: "REG-1", Website: "https://hh.org"}
}

func govInput(email string) RegisterInput {
	return RegisterInput{Email: email, Password: "Abcdef12", Name: "G", UserType: "government",
		Department: "Health", Designation: "Officer", Experience: intPtr(4)}
}

func wantKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	e := AsError(err)
	if e.Kind != kind {
		t.Fatalf("expected kind %v, got %v (%v)", kind, e.Kind, err)
	}
	return e
}

func TestAsError_WrapsUnknown(t *testing.T) {
	e := AsError(errors.New("boom"))
	if e.Kind != KindInternal || e.Message != msgInternal {
		t.Fatalf("unexpected %+v", e)
	}
}

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:         400,
		KindConflict:           400,
		KindInvalidCredentials: 401,
		KindAccountNotReady:    401,
		KindUnauthorized:       401,
		KindForbidden:          403,
		KindNotFound:           404,
		KindRateLimited:        429,
		KindInternal:           500,
	}
	for k, want := range cases {
		if got := k.HTTPStatus(); got != want {
			t.Errorf("%v: got %d want %d", k, got, want)
		}
	}
}

func storeAll() store.AccountFilter { return store.AccountFilter{} }
