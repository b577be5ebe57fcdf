package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/subahan00/portfolio/config"
)

const DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"

// EmailJSProvider posts submissions to the EmailJS REST API using the same
// template parameters the browser SDK would send from the form.
type EmailJSProvider struct {
	cfg    config.EmailJSConfig
	client *http.Client
}

func NewEmailJSProvider(cfg config.EmailJSConfig, client *http.Client) *EmailJSProvider {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEmailJSEndpoint
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &EmailJSProvider{cfg: cfg, client: client}
}

func (p *EmailJSProvider) Name() string { return "emailjs" }

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

func (p *EmailJSProvider) Send(ctx context.Context, s Submission) error {
	if missing := p.cfg.Missing(); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrNotConfigured, strings.Join(missing, ", "))
	}

	body, err := json.Marshal(emailJSRequest{
		ServiceID:   p.cfg.ServiceID,
		TemplateID:  p.cfg.TemplateID,
		UserID:      p.cfg.PublicKey,
		AccessToken: p.cfg.PrivateKey,
		TemplateParams: map[string]string{
			"user_name":  s.Form.Name,
			"user_email": s.Form.Email,
			"message":    s.Form.Message,
		},
	})
	if err != nil {
		return fmt.Errorf("encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("emailjs request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("emailjs returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return nil
}

// NewProvider picks the provider named by CONTACT_PROVIDER.
func NewProvider(cfg *config.Config) Provider {
	if cfg.Contact.Provider == "smtp" {
		return NewSMTPProvider(cfg.SMTP)
	}
	return NewEmailJSProvider(cfg.EmailJS, nil)
}
