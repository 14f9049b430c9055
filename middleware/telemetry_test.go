package middleware

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/honeypot-telemetry/models"
)

type recordingHook struct {
	mu        sync.Mutex
	snapshots []*models.RequestSnapshot
	// set when the hook ran after the handler returned
	afterHandler []bool
	handlerDone  atomic.Bool
}

func (h *recordingHook) hook(_ context.Context, s *models.RequestSnapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.snapshots = append(h.snapshots, s)
	h.afterHandler = append(h.afterHandler, h.handlerDone.Load())
}

type telemetryRouter struct {
	*chi.Mux
	telemetry *Telemetry
}

// serve runs one request and waits for its hook
func (tr *telemetryRouter) serve(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	tr.ServeHTTP(rec, req)
	require.NoError(t, tr.telemetry.Wait(context.Background()))
	return rec
}

func newTelemetryRouter(h *recordingHook, maxBody int64) *telemetryRouter {
	tel := NewTelemetry(h.hook, maxBody, "/_ops")

	r := chi.NewRouter()
	r.Use(tel.Handler)
	r.Use(chimiddleware.Recoverer)

	r.Post("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
		h.handlerDone.Store(true)
	})
	r.Get("/static/*", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
		h.handlerDone.Store(true)
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	})
	r.Get("/_ops/callback", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusSeeOther)
	})
	return &telemetryRouter{Mux: r, telemetry: tel}
}

func TestTelemetry_CapturesJSONBodyAndRouteParams(t *testing.T) {
	original := timeNow
	finished := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return finished }
	defer func() { timeNow = original }()

	h := &recordingHook{}
	router := newTelemetryRouter(h, 1024)

	req := httptest.NewRequest(http.MethodPost, "/users/42?debug=1", strings.NewReader(`{"user":"x' OR 1=1 --"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("User-Agent", "curl/8.0")
	req.RemoteAddr = "203.0.113.5:51515"
	rec := router.serve(t, req)

	// downstream still sees the full body
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, `{"user":"x' OR 1=1 --"}`, rec.Body.String())

	require.Len(t, h.snapshots, 1)
	s := h.snapshots[0]
	assert.True(t, h.afterHandler[0])
	assert.Equal(t, http.MethodPost, s.Method)
	assert.Equal(t, "/users/42", s.Path)
	assert.Equal(t, "1", s.Query.Get("debug"))
	assert.Equal(t, map[string]string{"id": "42"}, s.RouteParams)
	assert.Equal(t, map[string]any{"user": "x' OR 1=1 --"}, s.Body)
	assert.Equal(t, `{"user":"x' OR 1=1 --"}`, s.RawBody)
	assert.Equal(t, "curl/8.0", s.Headers.Get("User-Agent"))
	assert.Equal(t, http.StatusCreated, s.Status)
	assert.Equal(t, "203.0.113.5:51515", s.RemoteAddr)
	assert.Equal(t, finished, s.FinishedAt)
}

func TestTelemetry_FormBody(t *testing.T) {
	h := &recordingHook{}
	router := newTelemetryRouter(h, 1024)

	req := httptest.NewRequest(http.MethodPost, "/users/7", strings.NewReader("user=admin&role=a&role=b"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.serve(t, req)

	require.Len(t, h.snapshots, 1)
	assert.Equal(t, map[string]any{"user": "admin", "role": []string{"a", "b"}}, h.snapshots[0].Body)
}

func TestTelemetry_TruncatedBodyStaysRaw(t *testing.T) {
	h := &recordingHook{}
	router := newTelemetryRouter(h, 8)

	payload := `{"user":"a very long value"}`
	req := httptest.NewRequest(http.MethodPost, "/users/7", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := router.serve(t, req)

	assert.Equal(t, payload, rec.Body.String())
	require.Len(t, h.snapshots, 1)
	assert.Nil(t, h.snapshots[0].Body)
	assert.Equal(t, payload[:8], h.snapshots[0].RawBody)
}

func TestTelemetry_UnknownRouteDefaultsStatus(t *testing.T) {
	h := &recordingHook{}
	router := newTelemetryRouter(h, 1024)

	router.serve(t, httptest.NewRequest(http.MethodGet, "/static/css/site.css", nil))
	router.serve(t, httptest.NewRequest(http.MethodGet, "/wp-login.php", nil))

	require.Len(t, h.snapshots, 2)
	assert.Equal(t, http.StatusOK, h.snapshots[0].Status)
	assert.Nil(t, h.snapshots[0].RouteParams)
	assert.Nil(t, h.snapshots[0].Body)
	assert.Empty(t, h.snapshots[0].RawBody)

	assert.Equal(t, http.StatusNotFound, h.snapshots[1].Status)
	assert.Equal(t, "/wp-login.php", h.snapshots[1].Path)
}

func TestTelemetry_PanicIsRecordedAs500(t *testing.T) {
	h := &recordingHook{}
	router := newTelemetryRouter(h, 1024)

	rec := router.serve(t, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, h.snapshots, 1)
	assert.Equal(t, http.StatusInternalServerError, h.snapshots[0].Status)
}

func TestTelemetry_SkipsOperatorRoutes(t *testing.T) {
	h := &recordingHook{}
	router := newTelemetryRouter(h, 1024)

	rec := router.serve(t, httptest.NewRequest(http.MethodGet, "/_ops/callback?code=secret&state=xyz", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	router.serve(t, httptest.NewRequest(http.MethodGet, "/_opsx", nil))

	require.Len(t, h.snapshots, 1)
	assert.Equal(t, "/_opsx", h.snapshots[0].Path)
}

func TestTelemetry_ResponseCompletesBeforeHook(t *testing.T) {
	release := make(chan struct{})
	var hookDone atomic.Bool
	tel := NewTelemetry(func(context.Context, *models.RequestSnapshot) {
		<-release
		hookDone.Store(true)
	}, 1024)

	r := chi.NewRouter()
	r.Use(tel.Handler)
	r.Use(chimiddleware.Compress(5))
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("<html><body><h1>404 Not Found</h1></body></html>"))
	})

	srv := httptest.NewServer(r)
	defer srv.Close()

	for _, encoding := range []string{"identity", "gzip"} {
		req, err := http.NewRequest(http.MethodGet, srv.URL+"/wp-admin/", nil)
		require.NoError(t, err)
		req.Header.Set("Accept-Encoding", encoding)

		client := &http.Client{Timeout: 2 * time.Second}
		resp, err := client.Do(req)
		require.NoError(t, err, encoding)
		_, err = io.ReadAll(resp.Body)
		resp.Body.Close()

		require.NoError(t, err, encoding)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, encoding)
		assert.False(t, hookDone.Load(), encoding)
	}

	close(release)
	require.NoError(t, tel.Wait(context.Background()))
	assert.True(t, hookDone.Load())
}

func TestTelemetry_WaitHonorsContext(t *testing.T) {
	release := make(chan struct{})
	defer close(release)
	tel := NewTelemetry(func(context.Context, *models.RequestSnapshot) { <-release }, 1024)

	handler := tel.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, tel.Wait(ctx), context.DeadlineExceeded)
}

func TestParseBody(t *testing.T) {
	assert.Nil(t, parseBody("application/json", []byte(`"scalar"`), false))
	assert.Nil(t, parseBody("application/json", []byte(`{broken`), false))
	assert.Equal(t, []any{float64(1), float64(2)}, parseBody("application/json", []byte(`[1,2]`), false))
	assert.Nil(t, parseBody("text/plain", []byte("hello"), false))
	assert.Nil(t, parseBody("", []byte("a=b"), false))
	assert.Nil(t, parseBody("application/json", []byte("   "), false))
}
