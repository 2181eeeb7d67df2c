package handlers

import (
	"net/http"

	"github.com/example/tv-tracker/internal/catalog"
	"github.com/example/tv-tracker/internal/platform/analytics"
	"github.com/example/tv-tracker/internal/platform/api"
	"github.com/example/tv-tracker/internal/platform/httpserver"
	"github.com/example/tv-tracker/internal/store"
)

// ListShows returns the whole catalog.
func ListShows(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		shows, err := svc.FindAll(r.Context())
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, shows)
	}
}

// GetShow looks a show up by its numeric id.
func GetShow(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		id, ok := idParam(w, r, rid, "id")
		if !ok {
			return
		}
		sh, err := svc.FindByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, sh)
	}
}

// SearchShows matches by name substring or by genre, depending on which
// query parameter is present. Exactly one of name= and genre= is required.
func SearchShows(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		name := r.URL.Query().Get("name")
		genre := r.URL.Query().Get("genre")
		if (name == "") == (genre == "") {
			api.BadRequest(w, "INVALID_ARGUMENT", "exactly one of name and genre is required", rid)
			return
		}

		var (
			shows []store.Show
			err   error
		)
		if name != "" {
			shows, err = svc.FindByName(r.Context(), name)
		} else {
			shows, err = svc.FindByGenre(r.Context(), genre)
		}
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, shows)
	}
}

// CreateShow catalogs a new show. Admin only.
func CreateShow(svc *catalog.Service, events *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		var req store.Show
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		req.ID = 0

		created, err := svc.Create(r.Context(), req)
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}

		events.Publish(analytics.SubjectCatalogShowCreated, "catalog.show_created", "", map[string]any{
			"show_id": created.ID,
			"name":    created.Name,
		})
		api.WriteJSON(w, http.StatusCreated, created)
	}
}

// UpdateShow replaces a show's metadata. Admin only.
func UpdateShow(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		id, ok := idParam(w, r, rid, "id")
		if !ok {
			return
		}
		var req store.Show
		if !decodeJSON(w, r, rid, &req) {
			return
		}
		req.ID = id

		if err := svc.Update(r.Context(), req); err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, req)
	}
}

// DeleteShow removes a show and, via cascade, every watch-history row
// referencing it. Admin only.
func DeleteShow(svc *catalog.Service, events *analytics.Publisher) http.HandlerFunc {
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

		events.Publish(analytics.SubjectCatalogShowDeleted, "catalog.show_deleted", "", map[string]any{
			"show_id": id,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}
