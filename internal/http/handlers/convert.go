package handlers

import "courier-delivery-service/internal/domain"

func toUserDTO(u domain.User) userDTO {
	return userDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func toPackageDTO(p domain.Package) packageDTO {
	return packageDTO{
		PackageID:         p.ID,
		TrackingID:        p.TrackingID,
		Sender:            p.Sender,
		Receiver:          p.Receiver,
		PackageDetails:    p.Details,
		ServiceType:       p.ServiceType,
		PickupDate:        p.PickupDate,
		DistanceKM:        p.DistanceKM,
		Price:             p.Price,
		Status:            p.Status,
		CreatedAt:         p.CreatedAt,
		EstimatedDelivery: p.EstimatedDelivery,
	}
}

func toPackageDTOs(list []domain.Package) []packageDTO {
	out := make([]packageDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toPackageDTO(p))
	}
	return out
}

func toTrackingEventDTOs(events []domain.TrackingEvent) []trackingEventDTO {
	out := make([]trackingEventDTO, 0, len(events))
	for _, ev := range events {
		out = append(out, trackingEventDTO{
			Status:    ev.Status,
			Location:  ev.Location,
			Notes:     ev.Notes,
			UpdatedBy: ev.UpdatedBy,
			Timestamp: ev.Timestamp,
		})
	}
	return out
}
