// Package tokens mints the access tokens issued at login. Verification
// lives in platform/auth so middleware does not depend on this package.
package tokens

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/example/tv-tracker/internal/platform/auth"
)

type Service struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

// NewAccessToken signs an HS256 token. The subject is the username; the
// numeric id and role travel as custom claims. A zero now means time.Now.
func (s Service) NewAccessToken(id auth.Identity, now time.Time) (string, time.Time, error) {
	if len(s.Secret) == 0 {
		return "", time.Time{}, errors.New("missing jwt secret")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}
	exp := now.Add(s.AccessTokenTTL)

	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID: id.UserID,
		Role:   id.Role,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}
