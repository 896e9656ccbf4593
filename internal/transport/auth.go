package transport

import (
	"net/http"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request, apiKey string)
}

// NoAuth implements no authentication. The OSMT skills API is unauthenticated.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request, _ string) {
	// No authentication applied
}

// APITokenAuth implements the Credential Registry assistant's bearer-style
// scheme: Authorization: ApiToken <key>.
type APITokenAuth struct{}

// Apply implements the Authenticator interface for APITokenAuth.
func (a *APITokenAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "ApiToken "+apiKey)
}

// BearerAuth implements standard Bearer token authentication.
type BearerAuth struct{}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
}
