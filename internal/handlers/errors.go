package handlers

import (
	"errors"
	"net/http"

	"github.com/example/tv-tracker/internal/catalog"
	"github.com/example/tv-tracker/internal/history"
	"github.com/example/tv-tracker/internal/platform/api"
	"github.com/example/tv-tracker/internal/users"
)

// writeServiceError translates the service sentinels into the HTTP error
// envelope. Anything unrecognized is reported as a 500 so store details
// never leak to clients.
func writeServiceError(w http.ResponseWriter, rid string, err error) {
	switch {
	case errors.Is(err, catalog.ErrInvalidArgument),
		errors.Is(err, users.ErrInvalidArgument),
		errors.Is(err, history.ErrInvalidArgument):
		api.BadRequest(w, "INVALID_ARGUMENT", err.Error(), rid)

	case errors.Is(err, users.ErrBadCredentials):
		api.Unauthorized(w, "BAD_CREDENTIALS", "invalid username or password", rid)

	case errors.Is(err, catalog.ErrShowNotFound), errors.Is(err, history.ErrShowNotFound):
		api.NotFound(w, "SHOW_NOT_FOUND", err.Error(), rid)
	case errors.Is(err, catalog.ErrNoShows):
		api.NotFound(w, "NO_SHOWS_FOUND", err.Error(), rid)
	case errors.Is(err, users.ErrUserNotFound), errors.Is(err, history.ErrUserNotFound):
		api.NotFound(w, "USER_NOT_FOUND", err.Error(), rid)
	case errors.Is(err, history.ErrEntryNotFound):
		api.NotFound(w, "WATCH_HISTORY_NOT_FOUND", err.Error(), rid)

	case errors.Is(err, catalog.ErrShowExists):
		api.Conflict(w, "SHOW_EXISTS", err.Error(), rid)
	case errors.Is(err, users.ErrUserExists):
		api.Conflict(w, "USER_EXISTS", err.Error(), rid)
	case errors.Is(err, history.ErrEntryExists):
		api.Conflict(w, "WATCH_HISTORY_EXISTS", err.Error(), rid)

	default:
		api.Internal(w, rid)
	}
}
