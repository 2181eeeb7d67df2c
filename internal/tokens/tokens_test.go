package tokens

import (
	"strings"
	"testing"
	"time"

	"github.com/example/tv-tracker/internal/platform/auth"
)

func newService() Service {
	return Service{
		Secret:         []byte("test-jwt-secret-32-bytes-padded!"),
		AccessTokenTTL: time.Hour,
	}
}

func TestNewAccessToken_HappyPath(t *testing.T) {
	svc := newService()
	now := time.Now().UTC()

	tok, exp, err := svc.NewAccessToken(auth.Identity{UserID: 7, Username: "alice", Role: auth.RoleAdmin}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok == "" {
		t.Fatal("expected non-empty token")
	}
	if !exp.After(now) {
		t.Fatalf("expected expiry after now, got %v", exp)
	}

	claims, err := auth.JWTVerifier{Secret: svc.Secret}.Parse(tok)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected uid 7, got %d", claims.UserID)
	}
	if claims.Role != auth.RoleAdmin {
		t.Fatalf("expected role %q, got %q", auth.RoleAdmin, claims.Role)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject 'alice', got %q", claims.Subject)
	}
}

func TestNewAccessToken_MissingSecret(t *testing.T) {
	svc := Service{AccessTokenTTL: time.Hour}
	_, _, err := svc.NewAccessToken(auth.Identity{UserID: 1}, time.Now())
	if err == nil {
		t.Fatal("expected error when secret is empty")
	}
}

func TestNewAccessToken_ZeroTime_UsesNow(t *testing.T) {
	svc := newService()
	before := time.Now().Add(-time.Second)
	tok, exp, err := svc.NewAccessToken(auth.Identity{UserID: 1, Role: auth.RoleUser}, time.Time{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exp.After(before) {
		t.Fatalf("expected expiry after 'before', got %v", exp)
	}
	if _, err := (auth.JWTVerifier{Secret: svc.Secret}).Parse(tok); err != nil {
		t.Fatalf("Parse: %v", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := Service{
		Secret:         []byte("test-jwt-secret-32-bytes-padded!"),
		AccessTokenTTL: -time.Hour,
	}
	tok, _, err := svc.NewAccessToken(auth.Identity{UserID: 1}, time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := (auth.JWTVerifier{Secret: svc.Secret}).Parse(tok); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestTamperedPayloadRejected(t *testing.T) {
	svc := newService()
	tok, _, err := svc.NewAccessToken(auth.Identity{UserID: 1, Role: auth.RoleUser}, time.Now())
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatal("expected 3 parts")
	}
	tampered := parts[0] + ".dGFtcGVyZWQ." + parts[2]
	if _, err := (auth.JWTVerifier{Secret: svc.Secret}).Parse(tampered); err == nil {
		t.Fatal("expected error for tampered token")
	}
}
