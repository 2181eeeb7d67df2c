package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret-key-32-bytes-long!!!")

func makeToken(subject string, uid int, role string, exp time.Time) string {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: uid,
		Role:   role,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := tok.SignedString(testSecret)
	return signed
}

func newVerifier() JWTVerifier { return JWTVerifier{Secret: testSecret} }

// staticCreds accepts exactly one username/password pair.
type staticCreds struct {
	username string
	password string
	identity Identity
}

func (c staticCreds) VerifyCredentials(_ context.Context, username, password string) (Identity, error) {
	if username != c.username || password != c.password {
		return Identity{}, errors.New("bad credentials")
	}
	return c.identity, nil
}

func basicHeader(username, password string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
}

func TestJWTVerifier_ValidToken(t *testing.T) {
	tok := makeToken("alice", 7, RoleUser, time.Now().Add(time.Hour))
	claims, err := newVerifier().Parse(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject 'alice', got %q", claims.Subject)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected uid 7, got %d", claims.UserID)
	}
	if claims.Role != RoleUser {
		t.Fatalf("expected role %q, got %q", RoleUser, claims.Role)
	}
}

func TestJWTVerifier_ExpiredToken(t *testing.T) {
	tok := makeToken("alice", 7, RoleUser, time.Now().Add(-time.Hour))
	if _, err := newVerifier().Parse(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestJWTVerifier_WrongSecret(t *testing.T) {
	tok := makeToken("alice", 7, RoleUser, time.Now().Add(time.Hour))
	v := JWTVerifier{Secret: []byte("another-secret")}
	if _, err := v.Parse(tok); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseBasicHeader(t *testing.T) {
	username, password, err := ParseBasicHeader(basicHeader("alice", "pw123"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if username != "alice" || password != "pw123" {
		t.Fatalf("got %q/%q", username, password)
	}
}

func TestParseBasicHeader_PasswordWithColon(t *testing.T) {
	username, password, err := ParseBasicHeader(basicHeader("alice", "pw:with:colons"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if username != "alice" || password != "pw:with:colons" {
		t.Fatalf("got %q/%q", username, password)
	}
}

func TestParseBasicHeader_Malformed(t *testing.T) {
	for _, header := range []string{"", "Basic", "Basic !!!", "Bearer abc", basicHeader("", "pw")} {
		if _, _, err := ParseBasicHeader(header); !errors.Is(err, ErrMalformedHeader) {
			t.Fatalf("header %q: expected ErrMalformedHeader, got %v", header, err)
		}
	}
}

func protectedEcho(t *testing.T) (http.Handler, *Identity) {
	t.Helper()
	captured := &Identity{}
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFromContext(r.Context())
		if !ok {
			t.Fatal("identity missing from context")
		}
		*captured = id
		w.WriteHeader(http.StatusOK)
	})
	return h, captured
}

func TestRequireUser_Basic(t *testing.T) {
	creds := staticCreds{username: "alice", password: "pw123", identity: Identity{UserID: 1, Username: "alice", Role: RoleUser}}
	inner, captured := protectedEcho(t)
	h := RequireUser(newVerifier(), creds)(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", basicHeader("alice", "pw123"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if captured.Username != "alice" || captured.UserID != 1 {
		t.Fatalf("unexpected identity: %+v", captured)
	}
}

func TestRequireUser_BasicWrongPassword(t *testing.T) {
	creds := staticCreds{username: "alice", password: "pw123"}
	inner, _ := protectedEcho(t)
	h := RequireUser(newVerifier(), creds)(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", basicHeader("alice", "wrong"))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRequireUser_Bearer(t *testing.T) {
	inner, captured := protectedEcho(t)
	h := RequireUser(newVerifier(), staticCreds{})(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+makeToken("bob", 2, RoleAdmin, time.Now().Add(time.Hour)))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if captured.Username != "bob" || captured.Role != RoleAdmin {
		t.Fatalf("unexpected identity: %+v", captured)
	}
}

func TestRequireUser_MissingHeader(t *testing.T) {
	inner, _ := protectedEcho(t)
	h := RequireUser(newVerifier(), staticCreds{})(inner)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	h := RequireAdmin(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{Username: "root", Role: RoleAdmin}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithIdentity(req.Context(), Identity{Username: "alice", Role: RoleUser}))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rr.Code)
	}
}
