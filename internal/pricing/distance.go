package pricing

import (
	"math"
	"strings"

	"courier-delivery-service/internal/apperr"
)

// MinDistanceKM is the floor applied to every computed distance so local
// deliveries within one city are still billed a minimum leg.
const MinDistanceKM = 50.0

const earthRadiusKM = 6371.0

type coordinates struct {
	lat float64
	lon float64
}

// cityCoordinates lists the cities the platform serves directly. Lookup is
// case-insensitive on the trimmed city name.
var cityCoordinates = map[string]coordinates{
	"mumbai":    {19.0760, 72.8777},
	"delhi":     {28.7041, 77.1025},
	"bangalore": {12.9716, 77.5946},
	"chennai":   {13.0827, 80.2707},
	"kolkata":   {22.5726, 88.3639},
	"hyderabad": {17.3850, 78.4867},
	"pune":      {18.5204, 73.8567},
	"ahmedabad": {23.0225, 72.5714},
}

// Fallback coordinates for cities not in the table. The sender and receiver
// defaults differ so an unknown pair still yields a non-degenerate distance.
var (
	defaultSenderCoordinates   = coordinates{20.0, 77.0}
	defaultReceiverCoordinates = coordinates{21.0, 78.0}
)

// Distance returns the great-circle distance in kilometers between the
// sender and receiver cities, floored at MinDistanceKM. A blank city fails
// with apperr.ErrInvalid because no distance can be derived from it.
func Distance(senderCity, receiverCity string) (float64, error) {
	sender := strings.ToLower(strings.TrimSpace(senderCity))
	receiver := strings.ToLower(strings.TrimSpace(receiverCity))
	if sender == "" || receiver == "" {
		return 0, apperr.ErrInvalid
	}

	from, ok := cityCoordinates[sender]
	if !ok {
		from = defaultSenderCoordinates
	}
	to, ok := cityCoordinates[receiver]
	if !ok {
		to = defaultReceiverCoordinates
	}

	return math.Max(haversine(from, to), MinDistanceKM), nil
}

// haversine computes the great-circle distance between two coordinates.
func haversine(from, to coordinates) float64 {
	lat1 := radians(from.lat)
	lon1 := radians(from.lon)
	lat2 := radians(to.lat)
	lon2 := radians(to.lon)

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	a := math.Pow(math.Sin(dlat/2), 2) + math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dlon/2), 2)
	return earthRadiusKM * 2 * math.Asin(math.Sqrt(a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
