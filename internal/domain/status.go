package domain

// PackageStatus represents the current position of a package in the
// delivery pipeline.
type PackageStatus string

// List of possible package statuses, in pipeline order
const (
	StatusOrderPlaced    PackageStatus = "order_placed"
	StatusPickedUp       PackageStatus = "picked_up"
	StatusInTransit      PackageStatus = "in_transit"
	StatusOutForDelivery PackageStatus = "out_for_delivery"
	StatusDelivered      PackageStatus = "delivered"
)

// statusRank orders statuses along the pipeline. Transitions may only move
// to a strictly higher rank; there is no way back to an earlier state.
var statusRank = map[PackageStatus]int{
	StatusOrderPlaced:    0,
	StatusPickedUp:       1,
	StatusInTransit:      2,
	StatusOutForDelivery: 3,
	StatusDelivered:      4,
}

// Valid checks if the PackageStatus is valid
func (s PackageStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanTransitionTo reports whether moving from s to next is a legal forward
// step in the pipeline. Skipping intermediate statuses is allowed.
func (s PackageStatus) CanTransitionTo(next PackageStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}
