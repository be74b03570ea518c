package contactform_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspire-executive/frontdesk/internal/contactform"
)

type note struct {
	kind        string
	title       string
	description string
}

type recordingNotifier struct {
	mu    sync.Mutex
	notes []note
}

func (r *recordingNotifier) Success(title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{"success", title, description})
}

func (r *recordingNotifier) Error(title, description string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{"error", title, description})
}

type backend struct {
	srv    *httptest.Server
	posts  atomic.Int32
	bodies chan contactform.Inquiry
}

func newBackend(t *testing.T, handle func(w http.ResponseWriter)) *backend {
	t.Helper()
	b := &backend{bodies: make(chan contactform.Inquiry, 8)}
	b.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/contact", r.URL.Path)
		var in contactform.Inquiry
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		b.posts.Add(1)
		b.bodies <- in
		handle(w)
	}))
	t.Cleanup(b.srv.Close)
	return b
}

func respond(status int, body string) func(w http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func newForm(t *testing.T, baseURL string) (*contactform.Form, *recordingNotifier) {
	t.Helper()
	client, err := contactform.NewClient(contactform.Config{BackendBaseURL: baseURL}, nil)
	require.NoError(t, err)
	n := &recordingNotifier{}
	return contactform.NewForm(client, n, nil), n
}

func fill(t *testing.T, f *contactform.Form) {
	t.Helper()
	require.NoError(t, f.UpdateField(contactform.FieldName, "Jane Doe"))
	require.NoError(t, f.UpdateField(contactform.FieldEmail, "jane@example.com"))
	require.NoError(t, f.UpdateField(contactform.FieldPhone, ""))
	require.NoError(t, f.UpdateField(contactform.FieldMessage, "Need a quote"))
}

var filled = contactform.Inquiry{
	Name:    "Jane Doe",
	Email:   "jane@example.com",
	Phone:   "",
	Message: "Need a quote",
}

func TestSubmit_SuccessClearsRecord(t *testing.T) {
	b := newBackend(t, respond(http.StatusOK, `{"status":"success","message":"Thank you","id":"abc"}`))
	form, notes := newForm(t, b.srv.URL)
	fill(t, form)

	outcome, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactform.OutcomeSuccess, outcome)

	assert.Equal(t, int32(1), b.posts.Load())
	assert.Equal(t, filled, <-b.bodies)
	assert.Equal(t, contactform.Inquiry{}, form.Snapshot())
	assert.False(t, form.InFlight())
	assert.Equal(t, []note{{"success", contactform.SuccessTitle, contactform.SuccessDescription}}, notes.notes)
}

func TestSubmit_PostBodyIncludesEmptyPhone(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		respond(http.StatusOK, `{"status":"success"}`)(w)
	}))
	defer srv.Close()

	form, _ := newForm(t, srv.URL+"/")
	fill(t, form)

	_, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"phone":   "",
		"message": "Need a quote",
	}, raw)
}

func TestSubmit_UnexpectedStatusKeepsRecord(t *testing.T) {
	b := newBackend(t, respond(http.StatusOK, `{"status":"failed"}`))
	form, notes := newForm(t, b.srv.URL)
	fill(t, form)

	outcome, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactform.OutcomeUnexpected, outcome)

	assert.Equal(t, filled, form.Snapshot())
	assert.False(t, form.InFlight())
	assert.Equal(t, []note{{"error", contactform.ErrorTitle, contactform.UnexpectedDescription}}, notes.notes)
}

func TestSubmit_UndecodableSuccessBodyIsUnexpected(t *testing.T) {
	bodies := map[string]func(w http.ResponseWriter){
		"html": func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("<html>ok</html>"))
		},
		"empty": func(w http.ResponseWriter) {
			w.WriteHeader(http.StatusOK)
		},
		"json string": respond(http.StatusOK, `"success"`),
	}
	for name, handle := range bodies {
		t.Run(name, func(t *testing.T) {
			b := newBackend(t, handle)
			form, notes := newForm(t, b.srv.URL)
			fill(t, form)

			outcome, err := form.Submit(context.Background())
			require.NoError(t, err)
			assert.Equal(t, contactform.OutcomeUnexpected, outcome)

			assert.Equal(t, filled, form.Snapshot())
			assert.False(t, form.InFlight())
			assert.Equal(t, []note{{"error", contactform.ErrorTitle, contactform.UnexpectedDescription}}, notes.notes)
		})
	}
}

func TestSubmit_ServerErrorKeepsRecord(t *testing.T) {
	b := newBackend(t, respond(http.StatusInternalServerError, `{"detail":"An error occurred processing your request"}`))
	form, notes := newForm(t, b.srv.URL)
	fill(t, form)

	outcome, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactform.OutcomeFailed, outcome)

	assert.Equal(t, filled, form.Snapshot())
	assert.False(t, form.InFlight())
	assert.Equal(t, []note{{"error", contactform.ErrorTitle, contactform.FailureDescription}}, notes.notes)
}

func TestSubmit_NetworkErrorKeepsRecord(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	form, notes := newForm(t, url)
	fill(t, form)

	outcome, err := form.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, contactform.OutcomeFailed, outcome)

	assert.Equal(t, filled, form.Snapshot())
	assert.False(t, form.InFlight())
	require.Len(t, notes.notes, 1)
	assert.Equal(t, "error", notes.notes[0].kind)
	assert.Equal(t, contactform.FailureDescription, notes.notes[0].description)
}

func TestSubmit_InFlightIsNoop(t *testing.T) {
	release := make(chan struct{})
	b := newBackend(t, func(w http.ResponseWriter) {
		<-release
		respond(http.StatusOK, `{"status":"success"}`)(w)
	})
	form, notes := newForm(t, b.srv.URL)
	fill(t, form)

	done := make(chan contactform.Outcome, 1)
	go func() {
		outcome, err := form.Submit(context.Background())
		assert.NoError(t, err)
		done <- outcome
	}()

	// Wait until the first POST has reached the backend.
	first := <-b.bodies
	assert.Equal(t, filled, first)
	assert.True(t, form.InFlight())

	for i := 0; i < 3; i++ {
		_, err := form.Submit(context.Background())
		assert.ErrorIs(t, err, contactform.ErrSubmitInFlight)
	}

	close(release)
	assert.Equal(t, contactform.OutcomeSuccess, <-done)
	assert.Equal(t, int32(1), b.posts.Load())
	assert.Len(t, notes.notes, 1)
	assert.False(t, form.InFlight())
}

func TestSubmit_SendsSnapshotAtCallTime(t *testing.T) {
	release := make(chan struct{})
	b := newBackend(t, func(w http.ResponseWriter) {
		<-release
		respond(http.StatusOK, `{"status":"failed"}`)(w)
	})
	form, _ := newForm(t, b.srv.URL)
	fill(t, form)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = form.Submit(context.Background())
	}()

	sent := <-b.bodies
	require.NoError(t, form.UpdateField(contactform.FieldMessage, "edited while sending"))
	close(release)
	<-done

	assert.Equal(t, "Need a quote", sent.Message)
	assert.Equal(t, "edited while sending", form.Snapshot().Message)
}

func TestSubmit_CancelledContext(t *testing.T) {
	b := newBackend(t, func(w http.ResponseWriter) {
		time.Sleep(200 * time.Millisecond)
		respond(http.StatusOK, `{"status":"success"}`)(w)
	})
	form, notes := newForm(t, b.srv.URL)
	fill(t, form)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	outcome, err := form.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, contactform.OutcomeFailed, outcome)
	assert.Equal(t, filled, form.Snapshot())
	assert.False(t, form.InFlight())
	assert.Len(t, notes.notes, 1)
}

func TestUpdateField_Unknown(t *testing.T) {
	form, _ := newForm(t, "http://127.0.0.1:1")
	err := form.UpdateField("company", "Acme")
	assert.ErrorIs(t, err, contactform.ErrUnknownField)
	assert.Equal(t, contactform.Inquiry{}, form.Snapshot())
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := contactform.NewClient(contactform.Config{}, nil)
	assert.Error(t, err)
}

func TestClient_Endpoint(t *testing.T) {
	c, err := contactform.NewClient(contactform.Config{BackendBaseURL: "https://api.example.com/"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/api/contact", c.Endpoint())
}
