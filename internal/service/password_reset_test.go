package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func tokenFromLink(t *testing.T, link string) string {
	t.Helper()
	const prefix = "http://client.test/reset-password/"
	if !strings.HasPrefix(link, prefix) {
		t.Fatalf("unexpected link %q", link)
	}
	return strings.TrimPrefix(link, prefix)
}

func TestPasswordReset_SingleUse(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	_, _ = f.svc.Register(ctx, govInput("g@x.com"))

	if err := f.svc.RequestPasswordReset(ctx, "G@x.com"); err != nil {
		t.Fatalf("request: %v", err)
	}
	if f.mailer.to != "g@x.com" || f.mailer.name != "G" {
		t.Errorf("mail sent to %q/%q", f.mailer.to, f.mailer.name)
	}
	token := tokenFromLink(t, f.mailer.link)

	if err := f.svc.ResetPassword(ctx, token, "Newpass123"); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := f.svc.Login(ctx, "g@x.com", "Newpass123"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	err := f.svc.ResetPassword(ctx, token, "Another123")
	e := wantKind(t, err, KindValidation)
	if e.Message != "Invalid or expired token" {
		t.Errorf("message %q", e.Message)
	}
}

func TestPasswordReset_Errors(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	wantKind(t, f.svc.RequestPasswordReset(ctx, "nobody@x.com"), KindNotFound)
	wantKind(t, f.svc.RequestPasswordReset(ctx, ""), KindValidation)
	wantKind(t, f.svc.ResetPassword(ctx, "garbage", "Newpass123"), KindValidation)

	session, _ := f.svc.Register(ctx, govInput("g@x.com"))
	tok, _ := f.svc.Tokens().IssueSession(session)
	wantKind(t, f.svc.ResetPassword(ctx, tok, "Newpass123"), KindValidation)

	f.mailer.err = errors.New("smtp down")
	wantKind(t, f.svc.RequestPasswordReset(ctx, "g@x.com"), KindInternal)
}

func TestPasswordReset_ClearsMustReset(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()
	a, created, err := f.svc.EnsureAdmin(ctx, "root@x.com", "", "")
	if err != nil || !created || !a.MustResetPassword {
		t.Fatalf("EnsureAdmin: %+v %v %v", a, created, err)
	}
	_, err = f.svc.Login(ctx, "root@x.com", "whatever")
	e := wantKind(t, err, KindAccountNotReady)
	if e.Message != msgMustReset {
		t.Errorf("message %q", e.Message)
	}

	if err := f.svc.RequestPasswordReset(ctx, "root@x.com"); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.ResetPassword(ctx, tokenFromLink(t, f.mailer.link), "Rootpass1"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Login(ctx, "root@x.com", "Rootpass1"); err != nil {
		t.Fatalf("admin login after reset: %v", err)
	}
}
