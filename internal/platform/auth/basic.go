package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
)

// ErrMalformedHeader marks an Authorization header that cannot be parsed.
// The workflow classifies this as an invalid argument; the HTTP layer
// still answers 401 so credentials are never half-accepted.
var ErrMalformedHeader = errors.New("missing or invalid Authorization header")

// CredentialVerifier checks a username/password pair against stored
// credentials and resolves the caller's identity.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (Identity, error)
}

// ParseBasicHeader decodes a "Basic base64(username:password)" header.
// The username is everything before the first colon.
func ParseBasicHeader(header string) (username, password string, err error) {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, "Basic ") {
		return "", "", ErrMalformedHeader
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len("Basic "):]))
	if err != nil {
		return "", "", ErrMalformedHeader
	}
	creds := string(decoded)
	username, password, found := strings.Cut(creds, ":")
	if !found || username == "" {
		return "", "", ErrMalformedHeader
	}
	return username, password, nil
}
