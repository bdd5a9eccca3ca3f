// Package mailer sends the transactional mail the API needs, currently only
// password-reset links.
package mailer

import (
	"bytes"
	"context"
	"html/template"

	"gopkg.in/gomail.v2"
)

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Mailer struct {
	from string
	send func(m *gomail.Message) error
}

func New(cfg Config) *Mailer {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	if cfg.Username == "" {
		// local relays such as mailhog take unauthenticated mail
		dialer.Auth = nil
	}
	return &Mailer{from: cfg.From, send: func(m *gomail.Message) error { return dialer.DialAndSend(m) }}
}

var resetTemplate = template.Must(template.New("reset").Parse(`<h1>Password Reset Request</h1>
<p>Hello {{.Name}},</p>
<p>You have requested to reset your password. Click the link below to reset it:</p>
<p><a href="{{.Link}}">Reset Password</a></p>
<p>This link will expire in 1 hour and can be used once.</p>
<p>If you didn't request this, please ignore this email.</p>
`))

func (m *Mailer) SendPasswordReset(ctx context.Context, to, name, link string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, struct{ Name, Link string }{name, link}); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", "Password Reset Request")
	msg.SetBody("text/plain", "Reset your password: "+link)
	msg.AddAlternative("text/html", body.String())
	return m.send(msg)
}
