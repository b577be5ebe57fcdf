// Package contact relays the portfolio contact form to a mail provider.
package contact

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
)

// ErrNotConfigured is returned by a provider whose credentials are unset.
var ErrNotConfigured = errors.New("contact provider not configured")

// Form is the payload posted by the contact form.
type Form struct {
	Name    string `form:"user_name" json:"user_name" binding:"required"`
	Email   string `form:"user_email" json:"user_email" binding:"required,email"`
	Message string `form:"message" json:"message" binding:"required"`
}

// Submission is one accepted form post on its way to a provider.
type Submission struct {
	ID         string
	Form       Form
	ReceivedAt time.Time
}

func NewSubmission(f Form) Submission {
	return Submission{
		ID:         uuid.NewString(),
		Form:       f,
		ReceivedAt: time.Now().UTC(),
	}
}

// Provider delivers a submission. Implementations make a single attempt.
type Provider interface {
	Name() string
	Send(ctx context.Context, s Submission) error
}

type StatusType string

const (
	StatusLoading StatusType = "loading"
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

const (
	MessageLoading = "Sending message…"
	MessageSuccess = "Message sent successfully! I will reply soon."
	MessageError   = "Something went wrong. Please try again or email me directly."
	MessageInvalid = "Please fill in your name, a valid email address, and a message."
	MessageLimited = "You're sending messages too quickly. Please wait a minute or email me directly."
)

// Status is what the form shows after a submission.
type Status struct {
	Type    StatusType `json:"type"`
	Message string     `json:"message"`
}

func (s Status) OK() bool { return s.Type == StatusSuccess }

var (
	Success = Status{Type: StatusSuccess, Message: MessageSuccess}
	Failure = Status{Type: StatusError, Message: MessageError}
	Invalid = Status{Type: StatusError, Message: MessageInvalid}
	Limited = Status{Type: StatusError, Message: MessageLimited}
)

// Relay hands submissions to a provider and maps the result onto a Status.
type Relay struct {
	provider Provider
}

func NewRelay(p Provider) *Relay {
	return &Relay{provider: p}
}

func (r *Relay) Provider() string {
	if r.provider == nil {
		return "none"
	}
	return r.provider.Name()
}

// Submit sends s once. Any provider error becomes the generic failure status.
func (r *Relay) Submit(ctx context.Context, s Submission) Status {
	if r.provider == nil {
		log.Printf("[contact] submission %s dropped: %v", s.ID, ErrNotConfigured)
		return Failure
	}
	if err := r.provider.Send(ctx, s); err != nil {
		log.Printf("[contact] submission %s via %s failed: %v", s.ID, r.provider.Name(), err)
		return Failure
	}
	log.Printf("[contact] submission %s sent via %s", s.ID, r.provider.Name())
	return Success
}
