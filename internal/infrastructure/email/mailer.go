// Package email delivers verification emails over SMTP.
package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/inkpress/blog-system/internal/core/ports"
)

// Config captures the SMTP relay settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	// BaseURL is the externally reachable address of this API, used to build
	// verification links.
	BaseURL string
}

// Mailer sends verification emails through an SMTP relay.
type Mailer struct {
	client *mail.Client
	from   string
	base   string
}

// NewMailer builds the SMTP client. Plain auth is only engaged when a
// username is configured, so a local relay without auth keeps working.
func NewMailer(cfg Config) (*Mailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}
	return &Mailer{client: client, from: cfg.From, base: cfg.BaseURL}, nil
}

// SendVerification delivers the verification email for msg.
func (m *Mailer) SendVerification(ctx context.Context, msg ports.VerificationEmail) error {
	link := fmt.Sprintf("%s/auth/verify-email?token=%s", m.base, msg.Token)

	out := mail.NewMsg()
	if err := out.From(m.from); err != nil {
		return fmt.Errorf("mail from: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("mail to: %w", err)
	}
	out.Subject("Verify Your Email Address")
	out.SetBodyString(mail.TypeTextHTML, verificationBody(msg.Name, link))

	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}
	return nil
}

func verificationBody(name, link string) string {
	return fmt.Sprintf(`<h2>Welcome %s!</h2>
<p>Thank you for registering. Please verify your email address by clicking the link below:</p>
<p><a href="%s">Verify Email</a></p>
<p>Or copy and paste this link in your browser:</p>
<p>%s</p>
<p>This link will expire in 24 hours.</p>`, name, link, link)
}
