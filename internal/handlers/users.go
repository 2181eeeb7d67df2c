package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/tv-tracker/internal/platform/api"
	"github.com/example/tv-tracker/internal/platform/httpserver"
	"github.com/example/tv-tracker/internal/users"
)

// ListUsers returns the whole directory. Admin only.
func ListUsers(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		out, err := svc.FindAll(r.Context())
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, out)
	}
}

// GetUser looks a user up by numeric id. Admin only.
func GetUser(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		id, ok := idParam(w, r, rid, "id")
		if !ok {
			return
		}
		u, err := svc.FindByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, u)
	}
}

// GetUserByUsername looks a user up by username. Admin only.
func GetUserByUsername(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		u, err := svc.FindByUsername(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, u)
	}
}

// UpdateUser patches a user record. A blank password in the payload
// leaves the stored hash untouched. Admin only.
func UpdateUser(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		id, ok := idParam(w, r, rid, "id")
		if !ok {
			return
		}
		var req users.UpdateRequest
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		req.UserID = id

		if err := svc.Update(r.Context(), req); err != nil {
			writeServiceError(w, rid, err)
			return
		}

		u, err := svc.FindByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, u)
	}
}

// DeleteUser removes a user and, via cascade, their watch history.
// Admin only.
func DeleteUser(svc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		id, ok := idParam(w, r, rid, "id")
		if !ok {
			return
		}
		if _, err := svc.Delete(r.Context(), id); err != nil {
			writeServiceError(w, rid, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
