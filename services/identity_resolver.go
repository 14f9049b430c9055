package services

import (
	"net"
	"net/http"
	"strings"

	"github.com/blogem/honeypot-telemetry/models"
)

// clientHeaders are consulted in order before the transport peer address.
// The deployment sits behind a trusted reverse proxy; without one these are spoofable.
var clientHeaders = []string{"X-Forwarded-For", "X-Real-IP", "X-Client-IP"}

// IdentityResolver derives the canonical client address of a request
type IdentityResolver interface {
	Resolve(headers http.Header, remoteAddr string) string
}

type identityResolver struct{}

// NewIdentityResolver creates a resolver honoring proxy headers first
func NewIdentityResolver() IdentityResolver {
	return identityResolver{}
}

// Resolve never returns an empty string; it falls back to models.UnknownAddress
func (identityResolver) Resolve(headers http.Header, remoteAddr string) string {
	for _, name := range clientHeaders {
		value := strings.TrimSpace(headers.Get(name))
		if value == "" {
			continue
		}
		if name == "X-Forwarded-For" {
			// client, proxy1, proxy2
			first, _, _ := strings.Cut(value, ",")
			value = strings.TrimSpace(first)
		}
		if addr := normalizeAddress(value); addr != "" {
			return addr
		}
	}

	if addr := normalizeAddress(strings.TrimSpace(remoteAddr)); addr != "" {
		return addr
	}
	return models.UnknownAddress
}

func normalizeAddress(addr string) string {
	if addr == "" {
		return ""
	}

	// [2001:db8::1]:443
	if strings.HasPrefix(addr, "[") {
		if end := strings.Index(addr, "]"); end > 0 {
			addr = addr[1:end]
		}
	}

	if rest, ok := strings.CutPrefix(strings.ToLower(addr), "::ffff:"); ok && strings.Count(rest, ".") == 3 {
		addr = rest
	}

	switch strings.Count(addr, ":") {
	case 0:
	case 1:
		addr, _, _ = strings.Cut(addr, ":")
	default:
		addr = stripIPv6Port(addr)
	}

	if addr == "::1" {
		return "127.0.0.1"
	}
	return strings.TrimSpace(addr)
}

// stripIPv6Port removes a trailing numeric segment only when the value is not
// already a literal IPv6 address and what remains is one.
func stripIPv6Port(addr string) string {
	if net.ParseIP(addr) != nil {
		return addr
	}
	i := strings.LastIndex(addr, ":")
	port := addr[i+1:]
	if port == "" || strings.Trim(port, "0123456789") != "" {
		return addr
	}
	if host := addr[:i]; net.ParseIP(host) != nil {
		return host
	}
	return addr
}
