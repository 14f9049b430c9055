package authenticator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	err := Config{}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain is required")
	assert.Contains(t, err.Error(), "client ID is required")
	assert.Contains(t, err.Error(), "client secret is required")
	assert.Contains(t, err.Error(), "callback URL is required")

	assert.NoError(t, Config{Domain: "d", ClientID: "c", ClientSecret: "s", CallbackURL: "u"}.Validate())
}

func TestNewOIDCProvider_RejectsIncompleteConfig(t *testing.T) {
	_, err := NewOIDCProvider(context.Background(), Config{Domain: "tenant.example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid oidc configuration")
}

func TestNewOIDCProvider_DiscoveryFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := NewOIDCProvider(context.Background(), Config{
		Domain:       server.URL,
		ClientID:     "client",
		ClientSecret: "secret",
		CallbackURL:  "http://localhost:3000/_ops/callback",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to discover oidc issuer")
}

func TestIssuerURL(t *testing.T) {
	assert.Equal(t, "https://tenant.example.com/", issuerURL("tenant.example.com"))
	assert.Equal(t, "https://tenant.example.com/", issuerURL("tenant.example.com/"))
	assert.Equal(t, "http://127.0.0.1:5556/", issuerURL("http://127.0.0.1:5556"))
}

func TestClaimsDisplayName(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   string
	}{
		{"nickname first", Claims{"sub": "s", "nickname": "nick", "name": "Name", "email": "e@x"}, "nick"},
		{"name next", Claims{"sub": "s", "nickname": "", "name": "Name", "email": "e@x"}, "Name"},
		{"email next", Claims{"sub": "s", "email": "e@x"}, "e@x"},
		{"subject last", Claims{"sub": "s"}, "s"},
		{"nothing", Claims{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claims.DisplayName())
		})
	}
}
