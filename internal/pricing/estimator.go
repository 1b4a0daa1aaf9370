package pricing

import (
	"math"

	"courier-delivery-service/internal/apperr"
	"courier-delivery-service/internal/domain"
)

// Per-unit rates in rupees.
const (
	weightRatePerKG   = 20.0
	distanceRatePerKM = 2.0
)

// MinBilledWeightKG is the half-kilogram minimum applied to billed weight.
const MinBilledWeightKG = 0.5

// tier holds the fixed base price and multiplier of a service tier.
type tier struct {
	base       float64
	multiplier float64
}

var tiers = map[domain.ServiceType]tier{
	domain.ServiceStandard:      {base: 100, multiplier: 1.0},
	domain.ServiceExpress:       {base: 150, multiplier: 1.5},
	domain.ServiceInternational: {base: 250, multiplier: 2.5},
}

// Quote is a computed shipping price estimate. WeightKG echoes the raw
// weight passed in, not the billed weight.
type Quote struct {
	DistanceKM     float64
	WeightKG       float64
	ServiceType    domain.ServiceType
	EstimatedPrice float64
}

// BilledWeight returns the weight used for pricing after applying the
// minimum-weight floor.
func BilledWeight(weightKG float64) float64 {
	return math.Max(weightKG, MinBilledWeightKG)
}

// Estimate computes a shipping price from distance, weight and service tier:
//
//	(base + 20*billed_weight + 2*distance) * multiplier
//
// The result is rounded half away from zero to two decimals (paise), the
// same rounding the booking flow applies, so estimates match the price
// assigned at creation exactly.
func Estimate(distanceKM, weightKG float64, service domain.ServiceType) (Quote, error) {
	if distanceKM < 0 || math.IsNaN(distanceKM) || math.IsInf(distanceKM, 0) {
		return Quote{}, apperr.ErrInvalid
	}
	if weightKG <= 0 || math.IsNaN(weightKG) || math.IsInf(weightKG, 0) {
		return Quote{}, apperr.ErrInvalid
	}
	t, ok := tiers[service]
	if !ok {
		return Quote{}, apperr.ErrInvalid
	}

	price := (t.base + weightRatePerKG*BilledWeight(weightKG) + distanceRatePerKM*distanceKM) * t.multiplier

	return Quote{
		DistanceKM:     distanceKM,
		WeightKG:       weightKG,
		ServiceType:    service,
		EstimatedPrice: Round2(price),
	}, nil
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
