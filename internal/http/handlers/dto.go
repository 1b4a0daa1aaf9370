package handlers

import (
	"time"

	"courier-delivery-service/internal/domain"
)

type registerRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type authResponse struct {
	AccessToken string  `json:"access_token"`
	User        userDTO `json:"user"`
}

type quoteRequest struct {
	SenderCity   string             `json:"sender_city"`
	ReceiverCity string             `json:"receiver_city"`
	Weight       float64            `json:"weight"`
	ServiceType  domain.ServiceType `json:"service_type"`
}

type quoteResponse struct {
	DistanceKM     float64            `json:"distance_km"`
	WeightKG       float64            `json:"weight_kg"`
	ServiceType    domain.ServiceType `json:"service_type"`
	EstimatedPrice float64            `json:"estimated_price"`
}

type createPackageRequest struct {
	Sender         domain.Address        `json:"sender"`
	Receiver       domain.Address        `json:"receiver"`
	PackageDetails domain.PackageDetails `json:"package_details"`
	ServiceType    domain.ServiceType    `json:"service_type"`
	PickupDate     string                `json:"pickup_date"`
}

type packageDTO struct {
	PackageID         string                `json:"package_id"`
	TrackingID        string                `json:"tracking_id"`
	Sender            domain.Address        `json:"sender"`
	Receiver          domain.Address        `json:"receiver"`
	PackageDetails    domain.PackageDetails `json:"package_details"`
	ServiceType       domain.ServiceType    `json:"service_type"`
	PickupDate        string                `json:"pickup_date"`
	DistanceKM        float64               `json:"distance_km"`
	Price             float64               `json:"price"`
	Status            domain.PackageStatus  `json:"status"`
	CreatedAt         time.Time             `json:"created_at"`
	EstimatedDelivery time.Time             `json:"estimated_delivery"`
}

type trackingEventDTO struct {
	Status    domain.PackageStatus `json:"status"`
	Location  string               `json:"location"`
	Notes     string               `json:"notes"`
	UpdatedBy string               `json:"updated_by"`
	Timestamp time.Time            `json:"timestamp"`
}

type trackResponse struct {
	Package         packageDTO         `json:"package"`
	TrackingHistory []trackingEventDTO `json:"tracking_history"`
}

type packagesResponse struct {
	Packages []packageDTO `json:"packages"`
}

type updateStatusRequest struct {
	TrackingID string               `json:"tracking_id"`
	Status     domain.PackageStatus `json:"status"`
	Location   string               `json:"location"`
	Notes      string               `json:"notes"`
}

type statsResponse struct {
	TotalPackages     int64 `json:"total_packages"`
	DeliveredPackages int64 `json:"delivered_packages"`
	PendingPackages   int64 `json:"pending_packages"`
	TotalUsers        int64 `json:"total_users"`
}
