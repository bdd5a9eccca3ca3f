package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/madhava-poojari/community-portal-api/internal/auth"
	"github.com/madhava-poojari/community-portal-api/internal/models"
	"github.com/redis/go-redis/v9"
)

func TestLogin_GovernmentImmediately(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	if _, err := f.svc.Register(ctx, govInput("g@x.com")); err != nil {
		t.Fatal(err)
	}
	res, err := f.svc.Login(ctx, "g@x.com", "Abcdef12")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims, err := f.svc.Tokens().ParseSession(res.Token)
	if err != nil || claims.UserType != "government" || claims.Email != "g@x.com" {
		t.Fatalf("claims %+v, %v", claims, err)
	}
	v := res.Account.LoginView()
	if v["department"] != "Health" || v["designation"] != "Officer" {
		t.Errorf("login view %v", v)
	}
}

func TestLogin_NeedsApproval(t *testing.T) {
	for _, in := range []RegisterInput{volunteerInput("v@x.com"), ngoInput("n@x.com")} {
		f := newFixture(t, nil, nil)
		ctx := context.Background()
		if _, err := f.svc.Register(ctx, in); err != nil {
			t.Fatal(err)
		}
		_, err := f.svc.Login(ctx, in.Email, in.Password)
		e := wantKind(t, err, KindAccountNotReady)
		if e.Message != msgAccountNotReady {
			t.Errorf("message %q", e.Message)
		}
		if _, err := f.svc.Approve(ctx, in.Email, in.UserType); err != nil {
			t.Fatal(err)
		}
		if _, err := f.svc.Login(ctx, in.Email, in.Password); err != nil {
			t.Fatalf("login after approval: %v", err)
		}
	}
}

func TestLogin_InactiveRefused(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	a, _ := f.svc.Register(ctx, govInput("g@x.com"))
	_ = f.store.SetActive(ctx, a.ID, false)
	_, err := f.svc.Login(ctx, "g@x.com", "Abcdef12")
	wantKind(t, err, KindAccountNotReady)
}

func TestLogin_NoExistenceLeak(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	_, _ = f.svc.Register(ctx, govInput("g@x.com"))

	_, errWrong := f.svc.Login(ctx, "g@x.com", "Wrongpass1")
	_, errMissing := f.svc.Login(ctx, "nobody@x.com", "Wrongpass1")
	a := wantKind(t, errWrong, KindInvalidCredentials)
	b := wantKind(t, errMissing, KindInvalidCredentials)
	if a.Message != b.Message || a.Message != "Invalid email or password" {
		t.Errorf("messages differ: %q vs %q", a.Message, b.Message)
	}
}

func TestLogin_MissingFields(t *testing.T) {
	f := newFixture(t, nil, nil)
	_, err := f.svc.Login(context.Background(), "", "x")
	wantKind(t, err, KindValidation)
	_, err = f.svc.Login(context.Background(), "a@x.com", "")
	wantKind(t, err, KindValidation)
}

func TestLogin_Throttled(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	f := newFixture(t, auth.NewLoginLimiter(client, 3, 15*time.Minute), nil)
	ctx := context.Background()
	_, _ = f.svc.Register(ctx, govInput("g@x.com"))

	for i := 0; i < 3; i++ {
		_, err := f.svc.Login(ctx, "g@x.com", "Wrongpass1")
		wantKind(t, err, KindInvalidCredentials)
	}
	_, err := f.svc.Login(ctx, "g@x.com", "Abcdef12")
	wantKind(t, err, KindRateLimited)

	mr.FastForward(16 * time.Minute)
	if _, err := f.svc.Login(ctx, "g@x.com", "Abcdef12"); err != nil {
		t.Fatalf("login after cooldown: %v", err)
	}
}

func TestLogin_LimiterDownFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	f := newFixture(t, auth.NewLoginLimiter(client, 3, time.Minute), nil)
	ctx := context.Background()
	_, _ = f.svc.Register(ctx, govInput("g@x.com"))
	mr.Close()
	if _, err := f.svc.Login(ctx, "g@x.com", "Abcdef12"); err != nil {
		t.Fatalf("expected login to proceed without redis: %v", err)
	}
}

// The worked example: register, refused, approve, accepted.
func TestWorkflowExample(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	in := RegisterInput{Email: "v@x.com", Password: "Abcdef12", Name: "V", UserType: "volunteer", Phone: "1234567890", Address: "A"}
	a, err := f.svc.Register(ctx, in)
	if err != nil || a.Approved {
		t.Fatalf("register: %+v %v", a, err)
	}
	_, err = f.svc.Login(ctx, "v@x.com", "Abcdef12")
	wantKind(t, err, KindAccountNotReady)

	approved, err := f.svc.Approve(ctx, "v@x.com", "volunteer")
	if err != nil || !approved.Approved {
		t.Fatalf("approve: %+v %v", approved, err)
	}
	res, err := f.svc.Login(ctx, "v@x.com", "Abcdef12")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	v := res.Account.LoginView()
	if _, ok := v["interests"]; !ok {
		t.Errorf("missing interests: %v", v)
	}
	if _, ok := v["skills"]; !ok {
		t.Errorf("missing skills: %v", v)
	}
	if res.Token == "" {
		t.Error("empty token")
	}
}

func TestLoginWithGoogle(t *testing.T) {
	f := newFixture(t, nil, fakeGoogle{email: "G@x.com"})
	ctx := context.Background()
	_, err := f.svc.LoginWithGoogle(ctx, "code")
	wantKind(t, err, KindNotFound)

	_, _ = f.svc.Register(ctx, govInput("g@x.com"))
	res, err := f.svc.LoginWithGoogle(ctx, "code")
	if err != nil || res.Account.Role != models.RoleGovernment {
		t.Fatalf("google login: %+v %v", res, err)
	}

	f2 := newFixture(t, nil, fakeGoogle{err: errors.New("bad audience")})
	_, err = f2.svc.LoginWithGoogle(ctx, "code")
	wantKind(t, err, KindUnauthorized)

	f3 := newFixture(t, nil, nil)
	_, err = f3.svc.LoginWithGoogle(ctx, "code")
	wantKind(t, err, KindNotFound)
}
