package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	siteerrors "github.com/tareeqi/tareeqweb/internal/errors"
	"github.com/tareeqi/tareeqweb/internal/logging"
)

// DefaultSupportEmail is offered as a fallback when a submission fails.
const DefaultSupportEmail = "tareeqiapp@gmail.com"

// Sender delivers a payload to the email relay.
type Sender interface {
	Send(ctx context.Context, p Payload) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, p Payload) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, p Payload) error {
	return f(ctx, p)
}

// StatusKind is the outcome tag of the last submission.
type StatusKind string

const (
	StatusIdle    StatusKind = "idle"
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the user-visible result of a submit attempt.
type Status struct {
	Kind    StatusKind
	Message string
}

// IsIdle reports whether no outcome is shown.
func (s Status) IsIdle() bool {
	return s.Kind == "" || s.Kind == StatusIdle
}

// State owns one form instance: values, field errors, submission status and
// the busy flag. The lock is never held across the network call.
type State struct {
	mu           sync.Mutex
	values       Values
	errors       Errors
	status       Status
	busy         bool
	sender       Sender
	logger       logging.Logger
	supportEmail string
}

// Option configures a State.
type Option func(*State)

// WithLogger sets the logger used for developer diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSupportEmail sets the address shown when a submission fails.
func WithSupportEmail(email string) Option {
	return func(s *State) {
		if email != "" {
			s.supportEmail = email
		}
	}
}

// WithValues seeds the form, e.g. a page whose form is locked to beta.
func WithValues(v Values) Option {
	return func(s *State) {
		s.values = v
	}
}

// NewState creates an empty form bound to sender.
func NewState(sender Sender, opts ...Option) *State {
	s := &State{
		values:       Empty(),
		errors:       make(Errors),
		status:       Status{Kind: StatusIdle},
		sender:       sender,
		logger:       logging.NewNopLogger(),
		supportEmail: DefaultSupportEmail,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Values returns the current field values.
func (s *State) Values() Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values
}

// Errors returns a copy of the current field errors.
func (s *State) Errors() Errors {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errors.Clone()
}

// Status returns the outcome of the last submission.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Busy reports whether a submission is in flight.
func (s *State) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Edit writes a field value and drops that field's error, if any. It does
// not re-run validation.
func (s *State) Edit(field Field, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.values.Set(field, value) {
		return
	}
	delete(s.errors, field)
}

// Submit validates the form and, when valid, sends it to the relay.
//
// Invalid forms return their errors and touch neither the network nor the
// status. Valid forms return an empty mapping; the outcome is read from
// Status. A Submit while another is in flight does nothing.
func (s *State) Submit(ctx context.Context) Errors {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return Errors{}
	}

	values := s.values
	errs := Validate(values)
	s.errors = errs.Clone()
	if !errs.Valid() {
		s.mu.Unlock()
		return errs
	}

	payload, err := values.Payload()
	if err != nil {
		// Validate rejects unknown kinds, so this is a programming error.
		s.mu.Unlock()
		return Errors{FieldKind: MsgKindInvalid}
	}

	s.busy = true
	s.status = Status{Kind: StatusIdle}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	sendErr := s.sender.Send(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sendErr != nil {
		s.logger.Error(ctx, sendErr, "form submission failed",
			"kind", string(payload.Kind()),
			"email", logging.SanitizeForLog(values.Email))
		s.status = Status{Kind: StatusError, Message: failureMessage(payload.Kind(), s.supportEmail, sendErr)}
		s.busy = false
		return Errors{}
	}

	s.logger.Info(ctx, "form submitted", "kind", string(payload.Kind()))
	s.status = Status{Kind: StatusSuccess, Message: SuccessMessage(payload.Kind())}
	s.values = Empty()
	s.errors = make(Errors)
	s.busy = false
	return Errors{}
}

// SuccessMessage is the status shown after the relay accepted a kind.
func SuccessMessage(kind Kind) string {
	if kind == KindBeta {
		return "Registration successful! 🎉 Please check your email (including spam folder) for confirmation. We will contact you soon with next steps."
	}
	return "Message sent successfully! 🎉 Please check your email for confirmation. We will get back to you soon."
}

// FailureMessage is the status shown when a submission of kind fails,
// before any failure detail is appended.
func FailureMessage(kind Kind, supportEmail string) string {
	if kind == KindBeta {
		return fmt.Sprintf("Unable to submit registration. Please try again or contact support at %s", supportEmail)
	}
	return fmt.Sprintf("Unable to send message. Please try again or email us directly at %s", supportEmail)
}

func failureMessage(kind Kind, supportEmail string, err error) string {
	msg := FailureMessage(kind, supportEmail)
	if detail := failureDetail(err); detail != "" {
		msg += " (" + detail + ")"
	}
	return msg
}

func failureDetail(err error) string {
	if err == nil {
		return ""
	}
	var se *siteerrors.SiteError
	if errors.As(err, &se) {
		return se.Message
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "request cancelled"
	}
	return err.Error()
}
