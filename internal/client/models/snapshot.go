package models

import "time"

// MovieListSnapshot is the persisted top-rated list together with the time
// it was fetched.
type MovieListSnapshot struct {
	Movies    []Movie
	FetchedAt time.Time
}

// IsStale reports whether the snapshot is older than window at now. A
// snapshot exactly window old is still fresh.
func (s MovieListSnapshot) IsStale(now time.Time, window time.Duration) bool {
	return now.Sub(s.FetchedAt) > window
}
