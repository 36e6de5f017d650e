// Package auth provides credential providers for the FHIR transport.
package auth

import (
	"context"
	"encoding/base64"
)

// CredentialProvider yields the Authorization header value for a
// request. A nil provider means anonymous access.
type CredentialProvider interface {
	Authorization(ctx context.Context) (string, error)
}

// BasicCredentials implements HTTP basic authentication.
type BasicCredentials struct {
	Username string
	Password string
}

// NewBasicCredentials creates a basic-auth credential provider.
func NewBasicCredentials(username, password string) *BasicCredentials {
	return &BasicCredentials{Username: username, Password: password}
}

// Authorization implements CredentialProvider.
func (c *BasicCredentials) Authorization(ctx context.Context) (string, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))

	return "Basic " + encoded, nil
}

// StaticToken sends a fixed Bearer token.
type StaticToken struct {
	Token string
}

// NewStaticToken creates a bearer-token credential provider.
func NewStaticToken(token string) *StaticToken {
	return &StaticToken{Token: token}
}

// Authorization implements CredentialProvider.
func (t *StaticToken) Authorization(ctx context.Context) (string, error) {
	return "Bearer " + t.Token, nil
}
