package domain

import (
	"regexp"
	"time"
)

type (
	// ServiceType represents the shipping speed/price tier.
	ServiceType string
	// PackageType represents the kind of shipment contents.
	PackageType string
)

// List of possible service types
const (
	ServiceStandard      ServiceType = "standard"
	ServiceExpress       ServiceType = "express"
	ServiceInternational ServiceType = "international"
)

// List of possible package types
const (
	PackageDocument PackageType = "document"
	PackageParcel   PackageType = "parcel"
)

var allowedServiceTypes = [...]ServiceType{
	ServiceStandard, ServiceExpress, ServiceInternational,
}

var allowedPackageTypes = [...]PackageType{
	PackageDocument, PackageParcel,
}

// Valid checks if the ServiceType is valid
func (s ServiceType) Valid() bool {
	for _, v := range allowedServiceTypes {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the PackageType is valid
func (p PackageType) Valid() bool {
	for _, v := range allowedPackageTypes {
		if p == v {
			return true
		}
	}
	return false
}

// PackageDetails describes the physical shipment. Dimensions are collected
// for the manifest but do not factor into pricing.
type PackageDetails struct {
	Type        PackageType `json:"type"`
	Weight      float64     `json:"weight"`
	Length      float64     `json:"length"`
	Width       float64     `json:"width"`
	Height      float64     `json:"height"`
	Description string      `json:"description"`
}

// Package represents a booked shipment. TrackingID is the public,
// human-shareable identifier; it is assigned once and never changes.
type Package struct {
	ID                string
	TrackingID        string
	UserID            string
	Sender            Address
	Receiver          Address
	Details           PackageDetails
	ServiceType       ServiceType
	PickupDate        string
	DistanceKM        float64
	Price             float64
	Status            PackageStatus
	CreatedAt         time.Time
	EstimatedDelivery time.Time
}

// Stats holds the aggregate counters shown on the admin dashboard.
type Stats struct {
	TotalPackages     int64
	DeliveredPackages int64
	PendingPackages   int64
	TotalUsers        int64
}

// reTrackingID matches public tracking codes like "CD123456".
var reTrackingID = regexp.MustCompile(`^CD[0-9]{6}$`)

// ValidateTrackingID validates the tracking code format
func ValidateTrackingID(s string) bool {
	return reTrackingID.MatchString(s)
}
