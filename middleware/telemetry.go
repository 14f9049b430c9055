package middleware

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"

	"github.com/blogem/honeypot-telemetry/models"
)

// SnapshotHook receives every finalized request
type SnapshotHook func(ctx context.Context, snapshot *models.RequestSnapshot)

var timeNow = func() time.Time {
	return time.Now()
}

// Telemetry records every request through a SnapshotHook once the handler
// has finished. The hook runs on its own goroutine so the client never waits
// for identity resolution or geolocation.
type Telemetry struct {
	hook    SnapshotHook
	maxBody int64
	skip    []string
	wg      sync.WaitGroup
}

// NewTelemetry captures up to maxBody bytes of each request body. Paths under
// any of the skip prefixes are served but not recorded.
func NewTelemetry(hook SnapshotHook, maxBody int64, skip ...string) *Telemetry {
	return &Telemetry{hook: hook, maxBody: maxBody, skip: skip}
}

// Handler must be the outermost middleware
func (t *Telemetry) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if t.skipped(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		raw := captureBody(r, t.maxBody)

		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		// route params live in a pooled chi context, so copy them before returning
		snapshot := &models.RequestSnapshot{
			Method:      r.Method,
			Path:        r.URL.Path,
			Query:       r.URL.Query(),
			RouteParams: routeParams(r),
			Body:        parseBody(r.Header.Get("Content-Type"), raw, int64(len(raw)) > t.maxBody),
			RawBody:     string(truncate(raw, t.maxBody)),
			Headers:     r.Header.Clone(),
			Status:      status,
			RemoteAddr:  r.RemoteAddr,
			FinishedAt:  timeNow(),
		}

		ctx := context.WithoutCancel(r.Context())
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			t.hook(ctx, snapshot)
		}()
	})
}

// Wait blocks until every dispatched hook has returned or ctx is done
func (t *Telemetry) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Telemetry) skipped(path string) bool {
	for _, prefix := range t.skip {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// captureBody reads one byte past the cap so truncation can be detected,
// then puts the bytes back in front of the unread remainder.
func captureBody(r *http.Request, maxBody int64) []byte {
	if r.Body == nil || r.Body == http.NoBody || maxBody <= 0 {
		return nil
	}

	captured, err := io.ReadAll(io.LimitReader(r.Body, maxBody+1))
	r.Body = readCloser{
		Reader: io.MultiReader(bytes.NewReader(captured), r.Body),
		Closer: r.Body,
	}
	if err != nil {
		return nil
	}
	return captured
}

type readCloser struct {
	io.Reader
	io.Closer
}

func truncate(raw []byte, maxBody int64) []byte {
	if int64(len(raw)) > maxBody {
		return raw[:maxBody]
	}
	return raw
}

// parseBody decodes JSON and urlencoded form bodies; anything else stays raw
func parseBody(contentType string, raw []byte, truncated bool) any {
	if len(bytes.TrimSpace(raw)) == 0 || truncated {
		return nil
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil
	}

	switch mediaType {
	case "application/json":
		var body any
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil
		}
		switch body.(type) {
		case map[string]any, []any:
			return body
		}
		return nil
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(raw))
		if err != nil || len(values) == 0 {
			return nil
		}
		form := make(map[string]any, len(values))
		for key, v := range values {
			if len(v) == 1 {
				form[key] = v[0]
			} else {
				form[key] = v
			}
		}
		return form
	}

	return nil
}

func routeParams(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return nil
	}

	params := make(map[string]string)
	for i, key := range rctx.URLParams.Keys {
		// catch-all segments repeat the path
		if key == "*" || i >= len(rctx.URLParams.Values) {
			continue
		}
		params[key] = rctx.URLParams.Values[i]
	}
	if len(params) == 0 {
		return nil
	}
	return params
}
