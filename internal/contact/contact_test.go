package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subahan00/portfolio/config"
)

type stubProvider struct {
	err   error
	calls int
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Send(ctx context.Context, s Submission) error {
	p.calls++
	return p.err
}

func testForm() Form {
	return Form{Name: "Ada", Email: "ada@example.com", Message: "Hello\nthere"}
}

func TestRelaySubmit(t *testing.T) {
	t.Run("provider resolves", func(t *testing.T) {
		p := &stubProvider{}
		status := NewRelay(p).Submit(context.Background(), NewSubmission(testForm()))

		assert.Equal(t, StatusSuccess, status.Type)
		assert.Equal(t, "Message sent successfully! I will reply soon.", status.Message)
		assert.Equal(t, 1, p.calls)
	})

	t.Run("provider rejects", func(t *testing.T) {
		p := &stubProvider{err: errors.New("boom")}
		status := NewRelay(p).Submit(context.Background(), NewSubmission(testForm()))

		assert.Equal(t, StatusError, status.Type)
		assert.Equal(t, MessageError, status.Message)
		assert.NotContains(t, status.Message, "boom")
		assert.Equal(t, 1, p.calls, "no retry")
	})

	t.Run("no provider", func(t *testing.T) {
		status := NewRelay(nil).Submit(context.Background(), NewSubmission(testForm()))
		assert.Equal(t, Failure, status)
	})
}

func TestNewSubmission(t *testing.T) {
	a := NewSubmission(testForm())
	b := NewSubmission(testForm())
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.ReceivedAt.IsZero())
}

func TestEmailJSProvider(t *testing.T) {
	cfg := config.EmailJSConfig{ServiceID: "svc", TemplateID: "tpl", PublicKey: "pub"}

	t.Run("posts template params", func(t *testing.T) {
		var got emailJSRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			_, _ = w.Write([]byte("OK"))
		}))
		defer srv.Close()

		c := cfg
		c.Endpoint = srv.URL
		err := NewEmailJSProvider(c, srv.Client()).Send(context.Background(), NewSubmission(testForm()))
		require.NoError(t, err)

		assert.Equal(t, "svc", got.ServiceID)
		assert.Equal(t, "tpl", got.TemplateID)
		assert.Equal(t, "pub", got.UserID)
		assert.Empty(t, got.AccessToken)
		assert.Equal(t, map[string]string{
			"user_name":  "Ada",
			"user_email": "ada@example.com",
			"message":    "Hello\nthere",
		}, got.TemplateParams)
	})

	t.Run("non-200 is a failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "The user ID is invalid", http.StatusBadRequest)
		}))
		defer srv.Close()

		c := cfg
		c.Endpoint = srv.URL
		err := NewEmailJSProvider(c, srv.Client()).Send(context.Background(), NewSubmission(testForm()))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
	})

	t.Run("missing tokens", func(t *testing.T) {
		err := NewEmailJSProvider(config.EmailJSConfig{ServiceID: "svc"}, nil).
			Send(context.Background(), NewSubmission(testForm()))
		assert.ErrorIs(t, err, ErrNotConfigured)
		assert.Contains(t, err.Error(), "EMAILJS_PUBLIC_KEY")
	})
}

func TestSMTPProvider(t *testing.T) {
	t.Run("sends composed message", func(t *testing.T) {
		p := NewSMTPProvider(config.SMTPConfig{Host: "smtp.example.com", Port: "587", User: "me@example.com", Pass: "pw", To: "inbox@example.com"})

		var addr string
		var to []string
		var msg []byte
		p.sendMail = func(a string, _ smtp.Auth, from string, rcpt []string, m []byte) error {
			addr, to, msg = a, rcpt, m
			assert.Equal(t, "me@example.com", from)
			return nil
		}

		form := testForm()
		form.Name = "Ada\r\nBcc: evil@example.com"
		require.NoError(t, p.Send(context.Background(), NewSubmission(form)))

		assert.Equal(t, "smtp.example.com:587", addr)
		assert.Equal(t, []string{"inbox@example.com"}, to)
		headers, _, _ := strings.Cut(string(msg), "\r\n\r\n")
		assert.NotContains(t, headers, "\r\nBcc:")
		assert.Contains(t, headers, "Reply-To: ada@example.com")
	})

	t.Run("missing credentials", func(t *testing.T) {
		err := NewSMTPProvider(config.SMTPConfig{Host: "smtp.example.com"}).
			Send(context.Background(), NewSubmission(testForm()))
		assert.ErrorIs(t, err, ErrNotConfigured)
	})
}

func TestLimiter(t *testing.T) {
	l := NewLimiter(1, 2)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"), "burst spent")
	assert.True(t, l.Allow("b"), "clients are independent")

	now = now.Add(time.Minute)
	assert.True(t, l.Allow("a"), "one token refilled")

	now = now.Add(time.Hour)
	l.Allow("c")
	l.mu.Lock()
	_, kept := l.clients["a"]
	l.mu.Unlock()
	assert.False(t, kept, "idle clients are swept")
}
