package domain

import (
	"sort"
	"time"
)

// TrackingEvent is one entry in a package's append-only status history.
type TrackingEvent struct {
	TrackingID string
	PackageID  string
	Status     PackageStatus
	Location   string
	Notes      string
	UpdatedBy  string
	Timestamp  time.Time
}

// SortEventsAscending orders a history by timestamp ascending, in place.
// The sort is stable so events sharing a timestamp keep their append order.
func SortEventsAscending(events []TrackingEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.Before(events[j].Timestamp)
	})
}
