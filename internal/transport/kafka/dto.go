package kafka

import (
	"strings"
	"time"

	"courier-delivery-service/internal/domain"
	"courier-delivery-service/internal/service/trackingfeed"
)

// UpdateDTO is the wire format of one status update on the tracking topic.
type UpdateDTO struct {
	TrackingID string    `json:"tracking_id"`
	Status     string    `json:"status"`
	Location   string    `json:"location"`
	Notes      string    `json:"notes"`
	UpdatedBy  string    `json:"updated_by"`
	Timestamp  time.Time `json:"timestamp"`
}

// ToDomain converts an UpdateDTO to a trackingfeed.Update.
func ToDomain(dto UpdateDTO) trackingfeed.Update {
	return trackingfeed.Update{
		TrackingID: strings.TrimSpace(dto.TrackingID),
		Status:     domain.PackageStatus(strings.TrimSpace(dto.Status)),
		Location:   strings.TrimSpace(dto.Location),
		Notes:      strings.TrimSpace(dto.Notes),
		UpdatedBy:  strings.TrimSpace(dto.UpdatedBy),
		Timestamp:  dto.Timestamp,
	}
}
