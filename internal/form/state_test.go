package form

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteerrors "github.com/tareeqi/tareeqweb/internal/errors"
)

// recordingSender counts calls and captures what it saw while in flight.
type recordingSender struct {
	state        *State
	calls        int
	payloads     []Payload
	busyInFlight []bool
	err          error
}

func (r *recordingSender) Send(ctx context.Context, p Payload) error {
	r.calls++
	r.payloads = append(r.payloads, p)
	if r.state != nil {
		r.busyInFlight = append(r.busyInFlight, r.state.Busy())
	}
	return r.err
}

func newTestState(sender *recordingSender, v Values) *State {
	s := NewState(sender, WithValues(v))
	sender.state = s
	return s
}

func TestSubmitValidContact(t *testing.T) {
	sender := &recordingSender{}
	state := newTestState(sender, validContact())

	errs := state.Submit(context.Background())

	assert.True(t, errs.Valid())
	assert.Equal(t, 1, sender.calls)
	require.Len(t, sender.payloads, 1)
	assert.Equal(t, ContactPayload{
		Name:    "Ali",
		Email:   "ali@example.com",
		Subject: "Partnership",
		Message: "We would like to pilot Tareeqi in our city.",
	}, sender.payloads[0])

	status := state.Status()
	assert.Equal(t, StatusSuccess, status.Kind)
	assert.Contains(t, status.Message, "confirmation")

	assert.Equal(t, Empty(), state.Values())
	assert.Equal(t, KindContact, state.Values().Kind)
	assert.True(t, state.Errors().Valid())
	assert.False(t, state.Busy())
}

func TestSubmitBetaNetworkFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("dial tcp: connection refused")}
	state := newTestState(sender, validBeta())

	errs := state.Submit(context.Background())

	assert.True(t, errs.Valid())
	assert.Equal(t, 1, sender.calls)

	status := state.Status()
	assert.Equal(t, StatusError, status.Kind)
	assert.Contains(t, status.Message, DefaultSupportEmail)
	assert.Contains(t, status.Message, "connection refused")

	// values kept so the user can retry
	assert.Equal(t, validBeta(), state.Values())
	assert.False(t, state.Busy())
}

func TestSubmitRelayRejectionUsesDetail(t *testing.T) {
	sender := &recordingSender{
		err: siteerrors.NewNetworkError(siteerrors.ErrCodeRelayRejected, "relay responded 422: email is invalid", nil),
	}
	state := NewState(sender, WithValues(validContact()), WithSupportEmail("help@tareeqi.com"))

	state.Submit(context.Background())

	status := state.Status()
	assert.Equal(t, StatusError, status.Kind)
	assert.Contains(t, status.Message, "help@tareeqi.com")
	assert.True(t, strings.HasSuffix(status.Message, "(relay responded 422: email is invalid)"))
}

func TestSubmitInvalidDoesNotSend(t *testing.T) {
	sender := &recordingSender{}
	state := newTestState(sender, Values{Name: "", Email: "a@b.com", Kind: KindContact, Subject: "hi", Message: "short"})

	errs := state.Submit(context.Background())

	assert.Equal(t, Errors{FieldName: MsgNameRequired, FieldMessage: MsgMessageTooShort}, errs)
	assert.Equal(t, errs, state.Errors())
	assert.Zero(t, sender.calls)
	assert.True(t, state.Status().IsIdle())
	assert.False(t, state.Busy())
}

func TestSubmitKeepsPriorStatusOnValidationFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("offline")}
	state := newTestState(sender, validBeta())

	state.Submit(context.Background())
	require.Equal(t, StatusError, state.Status().Kind)

	state.Edit(FieldPhone, "")
	errs := state.Submit(context.Background())

	assert.Equal(t, Errors{FieldPhone: MsgPhoneRequired}, errs)
	assert.Equal(t, StatusError, state.Status().Kind)
	assert.Equal(t, 1, sender.calls)
}

func TestBusyOnlyWhileInFlight(t *testing.T) {
	sender := &recordingSender{}
	state := newTestState(sender, validBeta())

	assert.False(t, state.Busy())
	state.Submit(context.Background())

	assert.Equal(t, []bool{true}, sender.busyInFlight)
	assert.False(t, state.Busy())
}

func TestStatusIdleWhileInFlight(t *testing.T) {
	var seen Status
	var state *State
	sender := SenderFunc(func(ctx context.Context, p Payload) error {
		seen = state.Status()
		return nil
	})

	state = NewState(sender, WithValues(validContact()))
	state.Submit(context.Background())

	assert.Equal(t, StatusIdle, seen.Kind)
	assert.Empty(t, seen.Message)
}

func TestSubmitWhileBusyIsIgnored(t *testing.T) {
	var state *State
	calls := 0
	sender := SenderFunc(func(ctx context.Context, p Payload) error {
		calls++
		// a second click while the first is in flight
		state.Submit(ctx)
		return nil
	})

	state = NewState(sender, WithValues(validBeta()))
	state.Submit(context.Background())

	assert.Equal(t, 1, calls)
	assert.Equal(t, StatusSuccess, state.Status().Kind)
}

func TestResubmitAfterFailure(t *testing.T) {
	sender := &recordingSender{err: errors.New("timeout")}
	state := newTestState(sender, validContact())

	state.Submit(context.Background())
	require.Equal(t, StatusError, state.Status().Kind)

	sender.err = nil
	state.Submit(context.Background())

	assert.Equal(t, 2, sender.calls)
	assert.Equal(t, StatusSuccess, state.Status().Kind)
}

func TestEditClearsOnlyThatError(t *testing.T) {
	state := NewState(&recordingSender{}, WithValues(Values{Kind: KindContact}))

	errs := state.Submit(context.Background())
	require.Len(t, errs, 4)

	state.Edit(FieldEmail, "a")

	got := state.Errors()
	assert.False(t, got.Has(FieldEmail))
	assert.Equal(t, MsgNameRequired, got[FieldName])
	assert.Equal(t, MsgSubjectRequired, got[FieldSubject])
	assert.Equal(t, MsgMessageRequired, got[FieldMessage])
	assert.Len(t, got, 3)
	assert.Equal(t, "a", state.Values().Email)
}

func TestEditWithoutErrorOnlyWritesValue(t *testing.T) {
	state := NewState(&recordingSender{})

	state.Edit(FieldSubject, "Hello")
	state.Edit(FieldKind, "beta")

	assert.Equal(t, "Hello", state.Values().Subject)
	assert.Equal(t, KindBeta, state.Values().Kind)
	assert.True(t, state.Errors().Valid())
}

func TestEditUnknownKindIsFlaggedOnSubmit(t *testing.T) {
	state := NewState(&recordingSender{}, WithValues(validContact()))

	state.Edit(FieldKind, "newsletter")
	errs := state.Submit(context.Background())

	assert.Equal(t, Errors{FieldKind: MsgKindInvalid}, errs)
}

func TestEditUnknownFieldIgnored(t *testing.T) {
	state := NewState(&recordingSender{}, WithValues(validContact()))
	state.Edit(Field("website"), "http://spam")
	assert.Equal(t, validContact(), state.Values())
}
