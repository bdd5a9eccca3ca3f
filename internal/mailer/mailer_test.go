package mailer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"
)

func TestSendPasswordReset(t *testing.T) {
	var raw bytes.Buffer
	m := New(Config{Host: "localhost", Port: 1025, From: "noreply@portal.test"})
	m.send = func(msg *gomail.Message) error {
		_, err := msg.WriteTo(&raw)
		return err
	}

	link := "http://client.test/reset-password/abc.def"
	if err := m.SendPasswordReset(context.Background(), "v@x.com", "<V>", link); err != nil {
		t.Fatalf("SendPasswordReset: %v", err)
	}
	out := raw.String()
	for _, want := range []string{"To: v@x.com", "Subject: Password Reset Request", "reset-password/abc.def", "&lt;V&gt;"} {
		if !strings.Contains(out, want) {
			t.Errorf("message missing %q", want)
		}
	}
}

func TestSendPasswordReset_Error(t *testing.T) {
	m := New(Config{From: "noreply@portal.test"})
	m.send = func(*gomail.Message) error { return errors.New("dial failed") }
	if err := m.SendPasswordReset(context.Background(), "v@x.com", "V", "x"); err == nil {
		t.Fatal("expected error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.SendPasswordReset(ctx, "v@x.com", "V", "x"); err == nil {
		t.Fatal("expected context error")
	}
}
