package controllers

import (
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/blogem/honeypot-telemetry/authenticator"
	"github.com/blogem/honeypot-telemetry/services"
)

// writeJSON renders v with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// headers are sent; an encode error can only be a broken connection
	_ = json.NewEncoder(w).Encode(v)
}

// Controllers holds all controller instances
type Controllers struct {
	Auth  *AuthController
	API   *APIController
	Decoy *DecoyController
}

// NewControllers creates and initializes all controller instances.
// auth may be nil when operator login is disabled.
func NewControllers(srvs *services.Services, auth authenticator.Provider, decoyDir string, log *zap.Logger) *Controllers {
	return &Controllers{
		Auth:  NewAuthController(auth, log),
		API:   NewAPIController(srvs.Logs, log),
		Decoy: NewDecoyController(decoyDir),
	}
}
