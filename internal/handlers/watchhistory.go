package handlers

import (
	"net/http"

	"github.com/example/tv-tracker/internal/history"
	"github.com/example/tv-tracker/internal/platform/analytics"
	"github.com/example/tv-tracker/internal/platform/api"
	"github.com/example/tv-tracker/internal/platform/auth"
	"github.com/example/tv-tracker/internal/platform/httpserver"
	"github.com/example/tv-tracker/internal/store"
)

type watchEntryReq struct {
	ShowID int               `json:"show_id"`
	Status store.WatchStatus `json:"status"`
}

type containsResp struct {
	ShowID         int  `json:"show_id"`
	InWatchHistory bool `json:"in_watch_history"`
}

// callerUsername resolves the authenticated identity injected by the
// auth middleware. Routes using it must sit behind RequireUser.
func callerUsername(w http.ResponseWriter, r *http.Request, rid string) (string, bool) {
	id, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		api.Unauthorized(w, "AUTH_MISSING", "authentication required", rid)
		return "", false
	}
	return id.Username, true
}

// ListWatchHistory returns the caller's watch history. With getAll=true
// the whole catalog is returned, absent rows defaulting to "Not Watched".
func ListWatchHistory(svc *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		username, ok := callerUsername(w, r, rid)
		if !ok {
			return
		}
		all := r.URL.Query().Get("getAll") == "true"

		items, err := svc.List(r.Context(), username, all)
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, items)
	}
}

// AddWatchHistory records a status for a show not yet in the caller's
// history.
func AddWatchHistory(svc *history.Service, events *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		username, ok := callerUsername(w, r, rid)
		if !ok {
			return
		}
		var req watchEntryReq
		if !decodeJSON(w, r, rid, &req) {
			return
		}

		if err := svc.Add(r.Context(), username, req.ShowID, req.Status); err != nil {
			writeServiceError(w, rid, err)
			return
		}

		events.Publish(analytics.SubjectWatchHistoryAdded, "watch_history.added", username, map[string]any{
			"show_id": req.ShowID,
			"status":  string(req.Status),
		})
		api.WriteJSON(w, http.StatusCreated, req)
	}
}

// UpdateWatchHistory overwrites the status of an entry already in the
// caller's history.
func UpdateWatchHistory(svc *history.Service, events *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		username, ok := callerUsername(w, r, rid)
		if !ok {
			return
		}
		var req watchEntryReq
		if !decodeJSON(w, r, rid, &req) {
			return
		}

		if err := svc.UpdateStatus(r.Context(), username, req.ShowID, req.Status); err != nil {
			writeServiceError(w, rid, err)
			return
		}

		events.Publish(analytics.SubjectWatchHistoryUpdated, "watch_history.updated", username, map[string]any{
			"show_id": req.ShowID,
			"status":  string(req.Status),
		})
		api.WriteJSON(w, http.StatusOK, req)
	}
}

// DeleteWatchHistory removes a show from the caller's history.
func DeleteWatchHistory(svc *history.Service, events *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		username, ok := callerUsername(w, r, rid)
		if !ok {
			return
		}
		showID, ok := idParam(w, r, rid, "showId")
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), username, showID); err != nil {
			writeServiceError(w, rid, err)
			return
		}

		events.Publish(analytics.SubjectWatchHistoryDeleted, "watch_history.deleted", username, map[string]any{
			"show_id": showID,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// ContainsWatchHistory reports whether a show is in the caller's history.
// Absence is a normal 200 response, not an error.
func ContainsWatchHistory(svc *history.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rid := httpserver.RequestIDFromContext(r.Context())

		username, ok := callerUsername(w, r, rid)
		if !ok {
			return
		}
		showID, ok := idParam(w, r, rid, "showId")
		if !ok {
			return
		}

		in, err := svc.Contains(r.Context(), username, showID)
		if err != nil {
			writeServiceError(w, rid, err)
			return
		}
		api.WriteJSON(w, http.StatusOK, containsResp{ShowID: showID, InWatchHistory: in})
	}
}
