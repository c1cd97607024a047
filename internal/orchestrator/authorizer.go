package orchestrator

import "crypto/subtle"

// Authorizer decides whether a caller may run an admin command.
type Authorizer interface {
	Allow(credential, command string) bool
}

// TokenAuthorizer allows commands when the presented credential
// matches the configured token. With no token configured (development)
// every command is allowed, mirroring the open development build.
type TokenAuthorizer struct {
	token string
}

func NewTokenAuthorizer(token string) *TokenAuthorizer {
	return &TokenAuthorizer{token: token}
}

func (a *TokenAuthorizer) Allow(credential, _ string) bool {
	if a.token == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(credential), []byte(a.token)) == 1
}
