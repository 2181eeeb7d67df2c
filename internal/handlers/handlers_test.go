package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/tv-tracker/internal/catalog"
	"github.com/example/tv-tracker/internal/history"
	"github.com/example/tv-tracker/internal/platform/auth"
	"github.com/example/tv-tracker/internal/store"
	"github.com/example/tv-tracker/internal/users"
)

// setupReq builds a request with chi URL params and an optional identity
// in context.
func setupReq(method, url, body string, params map[string]string, id *auth.Identity) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, url, bytes.NewBufferString(body))
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if id != nil {
		ctx = auth.WithIdentity(ctx, *id)
	}
	return req.WithContext(ctx)
}

// env wires all three services over the in-memory stores with one seeded
// user ("alice") and two seeded shows.
type env struct {
	catalog *catalog.Service
	users   *users.Service
	history *history.Service
	shows   *store.MemoryShowStore
	alice   auth.Identity
}

func newEnv(t *testing.T) env {
	t.Helper()
	shows := store.NewMemoryShowStore()
	userStore := store.NewMemoryUserStore()
	histStore := store.NewMemoryWatchHistoryStore(shows)

	ctx := context.Background()
	for _, sh := range []store.Show{
		{Name: "Breaking Bad", ReleaseYear: 2008},
		{Name: "The Wire", ReleaseYear: 2002},
	} {
		if _, err := shows.Create(ctx, sh); err != nil {
			t.Fatalf("seed show: %v", err)
		}
	}

	usersSvc := users.NewService(userStore)
	usersSvc.BcryptCost = bcrypt.MinCost
	u, err := usersSvc.Register(ctx, users.RegisterRequest{
		Name: "Alice", Username: "alice", Password: "pw", Email: "alice@example.com",
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}

	return env{
		catalog: catalog.NewService(shows),
		users:   usersSvc,
		history: history.NewService(userStore, shows, histStore),
		shows:   shows,
		alice:   auth.Identity{UserID: u.UserID, Username: "alice", Role: auth.RoleUser},
	}
}
