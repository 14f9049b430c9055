package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/blogem/honeypot-telemetry/userctx"
)

func newAuthRouter(t *testing.T, log *zap.Logger) *chi.Mux {
	t.Helper()
	sessions, err := Sessions(false)
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(sessions)
	r.Get("/seed", func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		sess.Set(SessionOperatorID, "oidc|42")
		sess.Set(SessionOperatorName, "sam")
		w.WriteHeader(http.StatusNoContent)
	})
	r.Group(func(r chi.Router) {
		r.Use(RequireOperator)
		r.Use(OperatorAudit(log))
		r.Get("/api/stats", func(w http.ResponseWriter, r *http.Request) {
			op, ok := userctx.OperatorFrom(r.Context())
			if !ok {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte(op.Subject))
		})
	})
	return r
}

func TestRequireOperator_RejectsAnonymous(t *testing.T) {
	router := newAuthRouter(t, zap.NewNop())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/stats", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"success":false,"error":"Authentication required"}`, rec.Body.String())
}

func TestRequireOperator_AllowsSessionAndAudits(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := newAuthRouter(t, zap.New(core))

	seed := httptest.NewRecorder()
	router.ServeHTTP(seed, httptest.NewRequest(http.MethodGet, "/seed", nil))
	cookies := seed.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/stats?x=1", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "oidc|42", rec.Body.String())

	entries := logs.FilterMessage("operator api access").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "sam", fields["operator"])
	assert.Equal(t, "/api/stats", fields["path"])
	assert.Equal(t, "x=1", fields["query"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
}
