package contact

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/subahan00/portfolio/config"
)

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPProvider mails submissions through an SMTP relay such as Gmail.
type SMTPProvider struct {
	cfg      config.SMTPConfig
	sendMail sendMailFunc
}

func NewSMTPProvider(cfg config.SMTPConfig) *SMTPProvider {
	return &SMTPProvider{cfg: cfg, sendMail: smtp.SendMail}
}

func (p *SMTPProvider) Name() string { return "smtp" }

func (p *SMTPProvider) Send(ctx context.Context, s Submission) error {
	if p.cfg.User == "" || p.cfg.Pass == "" {
		return fmt.Errorf("%w: SMTP credentials not set", ErrNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	to := p.cfg.To
	if to == "" {
		to = p.cfg.User
	}

	auth := smtp.PlainAuth("", p.cfg.User, p.cfg.Pass, p.cfg.Host)
	addr := p.cfg.Host + ":" + p.cfg.Port
	if err := p.sendMail(addr, auth, p.cfg.User, []string{to}, composeMessage(p.cfg.User, to, s)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func composeMessage(from, to string, s Submission) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(s.Form.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form (ref %s)
`, s.Form.Name, s.Form.Email, s.Form.Message, s.ID)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerSafe(s.Form.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

// headerSafe strips line breaks so form values cannot inject headers.
func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
