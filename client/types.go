package client

import "time"

// User is the authenticated account profile returned by the API.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Session is an established authentication session.
type Session struct {
	Token string
	User  User
}

// Address describes one end of a shipment.
type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// PackageDetails describes the physical package.
type PackageDetails struct {
	Type        string  `json:"type"`
	Weight      float64 `json:"weight"`
	Length      float64 `json:"length"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Description string  `json:"description"`
}

// QuoteRequest asks for a price estimate.
type QuoteRequest struct {
	SenderCity   string  `json:"sender_city"`
	ReceiverCity string  `json:"receiver_city"`
	Weight       float64 `json:"weight"`
	ServiceType  string  `json:"service_type"`
}

// Quote is a server-computed price estimate.
type Quote struct {
	DistanceKM     float64 `json:"distance_km"`
	WeightKG       float64 `json:"weight_kg"`
	ServiceType    string  `json:"service_type"`
	EstimatedPrice float64 `json:"estimated_price"`
}

// CreatePackageRequest books a new shipment.
type CreatePackageRequest struct {
	Sender         Address        `json:"sender"`
	Receiver       Address        `json:"receiver"`
	PackageDetails PackageDetails `json:"package_details"`
	ServiceType    string         `json:"service_type"`
	PickupDate     string         `json:"pickup_date"`
}

// Package is a booked shipment. Price and tracking ID are assigned by the
// server and authoritative over any client-side estimate.
type Package struct {
	PackageID         string         `json:"package_id"`
	TrackingID        string         `json:"tracking_id"`
	Sender            Address        `json:"sender"`
	Receiver          Address        `json:"receiver"`
	PackageDetails    PackageDetails `json:"package_details"`
	ServiceType       string         `json:"service_type"`
	PickupDate        string         `json:"pickup_date"`
	DistanceKM        float64        `json:"distance_km"`
	Price             float64        `json:"price"`
	Status            string         `json:"status"`
	CreatedAt         time.Time      `json:"created_at"`
	EstimatedDelivery time.Time      `json:"estimated_delivery"`
}

// TrackingEvent is one entry in a package's status history.
type TrackingEvent struct {
	Status    string    `json:"status"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes"`
	UpdatedBy string    `json:"updated_by"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackResult is the public tracking view of a package.
type TrackResult struct {
	Package         Package         `json:"package"`
	TrackingHistory []TrackingEvent `json:"tracking_history"`
}

// UpdateStatusRequest moves a package forward through the delivery pipeline.
type UpdateStatusRequest struct {
	TrackingID string `json:"tracking_id"`
	Status     string `json:"status"`
	Location   string `json:"location"`
	Notes      string `json:"notes"`
}

// Stats are the aggregate admin counters.
type Stats struct {
	TotalPackages     int64 `json:"total_packages"`
	DeliveredPackages int64 `json:"delivered_packages"`
	PendingPackages   int64 `json:"pending_packages"`
	TotalUsers        int64 `json:"total_users"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

type meResponse struct {
	User User `json:"user"`
}

type packagesResponse struct {
	Packages []Package `json:"packages"`
}
