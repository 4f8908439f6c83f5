package domain

import "slices"

type Provider struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Rating   float64  `json:"rating"`
	Verified bool     `json:"verified"`
	Charges  int64    `json:"charges"`
	Location string   `json:"location"`
	Slots    []string `json:"slots"`
}

func (p Provider) OffersSlot(slot string) bool {
	return slices.Contains(p.Slots, slot)
}
