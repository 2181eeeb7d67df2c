package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// WatchStatus is the user's relationship to a show. The constants are the
// exact strings stored in the database and returned on the wire.
type WatchStatus string

const (
	StatusNotWatched        WatchStatus = "Not Watched"
	StatusWantToWatch       WatchStatus = "Want to Watch"
	StatusCurrentlyWatching WatchStatus = "Currently Watching"
	StatusAlreadyWatched    WatchStatus = "Already Watched"
)

var watchStatuses = []WatchStatus{
	StatusNotWatched,
	StatusWantToWatch,
	StatusCurrentlyWatching,
	StatusAlreadyWatched,
}

// ParseWatchStatus matches the input against the known statuses,
// case-insensitively. Unknown input is an error, never a silent default.
func ParseWatchStatus(v string) (WatchStatus, error) {
	v = strings.TrimSpace(v)
	for _, s := range watchStatuses {
		if strings.EqualFold(v, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("invalid watch status: %q", v)
}

func (s WatchStatus) Valid() bool {
	for _, known := range watchStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s WatchStatus) String() string { return string(s) }

func (s *WatchStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseWatchStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
