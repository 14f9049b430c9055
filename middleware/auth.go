package middleware

import (
	"net/http"

	"gitea.com/go-chi/session"
	"github.com/goccy/go-json"

	"github.com/blogem/honeypot-telemetry/userctx"
)

// Session keys shared with the login controller
const (
	SessionOperatorID   = "operator_id"
	SessionOperatorName = "operator_name"
)

// RequireOperator ensures an operator session exists.
// API clients get a JSON 401 instead of a login redirect.
func RequireOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := session.GetSession(r)
		subject, _ := sess.Get(SessionOperatorID).(string)

		if subject == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"error":   "Authentication required",
			})
			return
		}

		name, _ := sess.Get(SessionOperatorName).(string)
		ctx := userctx.WithOperator(r.Context(), userctx.Operator{Subject: subject, Name: name})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
