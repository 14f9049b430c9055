package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	"gitea.com/go-chi/session"
	"go.uber.org/zap"

	"github.com/blogem/honeypot-telemetry/authenticator"
	"github.com/blogem/honeypot-telemetry/middleware"
)

const sessionState = "oauth_state"

// AuthController runs the operator OpenID Connect login
type AuthController struct {
	auth authenticator.Provider
	log  *zap.Logger
}

// NewAuthController creates a new auth controller
func NewAuthController(auth authenticator.Provider, log *zap.Logger) *AuthController {
	return &AuthController{auth: auth, log: log}
}

// Login initiates the authentication process
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	state, err := generateRandomState()
	if err != nil {
		ac.log.Error("failed to generate oauth state", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Save the state in the session to validate in callback
	sess := session.GetSession(r)
	sess.Set(sessionState, state)

	http.Redirect(w, r, ac.auth.GetAuthURL(state), http.StatusTemporaryRedirect)
}

// Callback handles the redirect back from the identity provider
func (ac *AuthController) Callback(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)

	storedState, _ := sess.Get(sessionState).(string)
	if storedState == "" {
		http.Error(w, "State not found in session", http.StatusBadRequest)
		return
	}
	if r.URL.Query().Get("state") != storedState {
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	token, err := ac.auth.ExchangeCode(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		ac.log.Warn("oauth code exchange failed", zap.Error(err))
		http.Error(w, "Failed to exchange authorization code", http.StatusUnauthorized)
		return
	}

	claims, err := ac.auth.GetClaims(r.Context(), token)
	if err != nil || claims.Subject() == "" {
		ac.log.Warn("id token verification failed", zap.Error(err))
		http.Error(w, "Failed to verify ID token", http.StatusUnauthorized)
		return
	}

	sess.Set(middleware.SessionOperatorID, claims.Subject())
	sess.Set(middleware.SessionOperatorName, claims.DisplayName())
	sess.Delete(sessionState)

	ac.log.Info("operator logged in", zap.String("operator", claims.DisplayName()))

	http.Redirect(w, r, "/api/stats", http.StatusSeeOther)
}

// Logout clears the operator session
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	sess := session.GetSession(r)
	sess.Delete(middleware.SessionOperatorID)
	sess.Delete(middleware.SessionOperatorName)

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// generateRandomState generates a random state value for CSRF protection
func generateRandomState() (string, error) {
	b := make([]byte, 32)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
