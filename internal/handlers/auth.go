package handlers

import (
	"net/http"
	"time"

	"github.com/example/tv-tracker/internal/platform/analytics"
	"github.com/example/tv-tracker/internal/platform/api"
	"github.com/example/tv-tracker/internal/platform/httpserver"
	"github.com/example/tv-tracker/internal/tokens"
	"github.com/example/tv-tracker/internal/users"
)

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResp struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Register creates a user account with the default user role.
func Register(svc *users.Service, events *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		var req users.RegisterRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}

		u, err := svc.Register(r.Context(), req)
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}

		events.Publish(analytics.SubjectAuthRegistered, "auth.registered", u.Username, nil)
		api.WriteJSON(w, http.StatusCreated, u)
	}
}

// Login verifies a username/password pair and issues an access token.
func Login(svc *users.Service, toks tokens.Service, events *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		var req loginReq
		if !decodeJSON(w, r, rid, &req) {
			return
		}

		id, err := svc.VerifyCredentials(r.Context(), req.Username, req.Password)
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}

		signed, exp, err := toks.NewAccessToken(id, time.Time{})
		if err != nil {
			api.Internal(w, rid)
			return
		}

		events.Publish(analytics.SubjectAuthLoggedIn, "auth.logged_in", id.Username, nil)
		api.WriteJSON(w, http.StatusOK, loginResp{
			AccessToken: signed,
			TokenType:   "Bearer",
			ExpiresAt:   exp,
		})
	}
}
