// Package contact handles contact-form validation and submission.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"maison/internal/backend"
	"maison/internal/model"

	"github.com/rs/zerolog"
)

var (
	// ErrInvalidForm is returned when submission is blocked by field errors.
	ErrInvalidForm = errors.New("form validation failed")

	// ErrBusy is returned when a submission is already in flight.
	ErrBusy = errors.New("contact submission already in flight")
)

// Form holds the contact form fields.
type Form struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Validate returns per-field errors for the form; an empty map means the
// form is submittable.
func Validate(form Form) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(form.Name) == "" {
		errs["name"] = "Name is required"
	}

	email := strings.TrimSpace(form.Email)
	if email == "" {
		errs["email"] = "Email is required"
	} else if !model.ValidEmail(email) {
		errs["email"] = "Invalid email"
	}

	if strings.TrimSpace(form.Subject) == "" {
		errs["subject"] = "Subject is required"
	}

	if strings.TrimSpace(form.Message) == "" {
		errs["message"] = "Message is required"
	}

	return errs
}

// Sender is the subset of the backend the contact form needs.
type Sender interface {
	SubmitContact(ctx context.Context, req backend.ContactRequest) (int64, error)
}

// Service submits contact-form messages.
type Service struct {
	mu      sync.Mutex
	pending bool
	sender  Sender
	logger  zerolog.Logger
}

// NewService creates a contact service.
func NewService(sender Sender, logger zerolog.Logger) *Service {
	return &Service{
		sender: sender,
		logger: logger.With().Str("component", "contact").Logger(),
	}
}

// Submit validates the form and sends it to the backend, returning the new
// submission's identifier. A second call while one is pending returns
// ErrBusy.
func (s *Service) Submit(ctx context.Context, form Form) (int64, error) {
	if len(Validate(form)) > 0 {
		return 0, ErrInvalidForm
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return 0, ErrBusy
	}
	s.pending = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}()

	id, err := s.sender.SubmitContact(ctx, backend.ContactRequest{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Message: form.Message,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("contact submission failed")
		return 0, fmt.Errorf("failed to submit contact message: %w", err)
	}

	s.logger.Info().Int64("submission_id", id).Msg("contact message submitted")
	return id, nil
}
