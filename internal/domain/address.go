package domain

import "strings"

// Address holds contact and location details for a sender or receiver.
type Address struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Complete reports whether every required address field is filled in.
func (a Address) Complete() bool {
	for _, s := range []string{a.Name, a.Phone, a.Address, a.City, a.State, a.PostalCode, a.Country} {
		if strings.TrimSpace(s) == "" {
			return false
		}
	}
	return true
}
