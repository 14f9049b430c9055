package middleware

import (
	"fmt"
	"net/http"

	"gitea.com/go-chi/session"
)

// Sessions returns the in-memory operator session middleware
func Sessions(secure bool) (func(http.Handler) http.Handler, error) {
	sessionHandler, err := session.Sessioner(session.Options{
		Provider:       "memory",
		ProviderConfig: "",
		CookieName:     "hp_ops_session",
		CookiePath:     "/",
		Secure:         secure,
		Gclifetime:     3600,
		Maxlifetime:    3600,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session: %w", err)
	}
	return sessionHandler, nil
}
