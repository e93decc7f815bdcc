package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteerrors "github.com/tareeqi/tareeqweb/internal/errors"
	"github.com/tareeqi/tareeqweb/internal/form"
	"github.com/tareeqi/tareeqweb/internal/logging"
)

func TestSendContact(t *testing.T) {
	var got map[string]string
	var headers http.Header

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		headers = r.Header.Clone()
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true,"next":"/thanks"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	err := client.Send(context.Background(), form.ContactPayload{
		Name:    "Ali",
		Email:   "ali@example.com",
		Subject: "Hello",
		Message: "A longer message body",
	})

	require.NoError(t, err)
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "application/json", headers.Get("Accept"))
	assert.Equal(t, map[string]string{
		"name":    "Ali",
		"email":   "ali@example.com",
		"kind":    "contact",
		"subject": "Hello",
		"message": "A longer message body",
	}, got)
}

func TestSendAcceptsAny2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Send(context.Background(), form.BetaPayload{Name: "A", Email: "a@b.co", Phone: "12345678"})
	assert.NoError(t, err)
}

func TestSendRejected(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "errors list",
			status:  http.StatusUnprocessableEntity,
			body:    `{"errors":[{"field":"email","message":"should be an email"},{"message":"form disabled"}]}`,
			wantMsg: "relay responded 422: should be an email; form disabled",
		},
		{
			name:    "single error",
			status:  http.StatusForbidden,
			body:    `{"error":"Form not found"}`,
			wantMsg: "relay responded 403: Form not found",
		},
		{
			name:    "non json body",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantMsg: "relay responded 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL).Send(context.Background(), form.BetaPayload{Name: "A", Email: "a@b.co", Phone: "12345678"})
			require.Error(t, err)

			var se *siteerrors.SiteError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, siteerrors.ErrCodeRelayRejected, se.Code)
			assert.Equal(t, tt.wantMsg, se.Message)
			assert.Equal(t, tt.status, se.Context["status"])
			assert.True(t, siteerrors.IsNetworkError(err))
		})
	}
}

func TestSendTruncatedRejectionIsLogged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Declared length is never reached, so the client read fails.
		w.Header().Set("Content-Length", "64")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"mail`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LevelDebug, Format: "text", Output: &buf})

	err := NewClient(srv.URL, WithLogger(logger)).Send(context.Background(), form.BetaPayload{Name: "A", Email: "a@b.co", Phone: "12345678"})
	require.Error(t, err)

	var se *siteerrors.SiteError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "relay responded 500", se.Message)
	assert.Contains(t, buf.String(), "failed to read relay response")
	assert.Contains(t, buf.String(), "status=500")
}

func TestSendUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	err := NewClient(url).Send(context.Background(), form.BetaPayload{Name: "A", Email: "a@b.co", Phone: "12345678"})
	require.Error(t, err)

	var se *siteerrors.SiteError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, siteerrors.ErrCodeRelayUnreachable, se.Code)
	assert.Equal(t, "relay unreachable", se.Message)
	assert.True(t, siteerrors.IsRecoverable(err))
}

func TestSendCancelled(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := NewClient(srv.URL).Send(ctx, form.BetaPayload{Name: "A", Email: "a@b.co", Phone: "12345678"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, DefaultEndpoint, c.Endpoint())

	custom := &http.Client{Timeout: time.Second}
	c = NewClient("https://relay.example.com/f/x", WithHTTPClient(custom))
	assert.Same(t, custom, c.httpClient)
}

func TestClientDrivesFormState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"try later"}`))
	}))
	defer srv.Close()

	state := form.NewState(NewClient(srv.URL), form.WithValues(form.Values{
		Name: "Sara", Email: "sara@example.com", Kind: form.KindBeta, Phone: "+966552626165",
	}))
	state.Submit(context.Background())

	status := state.Status()
	assert.Equal(t, form.StatusError, status.Kind)
	assert.Contains(t, status.Message, "(relay responded 500: try later)")
	assert.Equal(t, "Sara", state.Values().Name)
}
