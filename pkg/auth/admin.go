// Package auth gates admin endpoints behind a single shared secret.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// AdminSecretHeader is the header the admin panel sends the secret in.
const AdminSecretHeader = "x-admin-secret"

// HeaderSecret returns the value of the x-admin-secret header.
func HeaderSecret(r *http.Request) string {
	return r.Header.Get(AdminSecretHeader)
}

// BearerSecret returns the token of an "Authorization: Bearer" header.
func BearerSecret(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if len(authz) > len("bearer ") && strings.EqualFold(authz[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(authz[len("bearer "):])
	}
	return ""
}

// AuthorizeRequest reports whether either the x-admin-secret header or the
// bearer token matches configured. Both are always compared.
func AuthorizeRequest(r *http.Request, configured string) bool {
	header := Authorize(HeaderSecret(r), configured)
	bearer := Authorize(BearerSecret(r), configured)
	return header || bearer
}

// Authorize reports whether presented matches configured. An empty or
// whitespace-only secret on either side never authorizes.
func Authorize(presented, configured string) bool {
	if strings.TrimSpace(configured) == "" || strings.TrimSpace(presented) == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) == 1
}
