package models

import "time"

// Donation is a surplus-food listing posted by a donor.
type Donation struct {
	ID          string     `json:"id"`
	DonorID     string     `json:"donorId"`
	FoodType    string     `json:"foodType"`
	Description string     `json:"description,omitempty"`
	Quantity    string     `json:"quantity,omitempty"`
	Location    string     `json:"location,omitempty"`
	Addr        string     `json:"address,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Status      Status     `json:"status,omitempty"`
	Photo       string     `json:"photo,omitempty"` // server-relative path
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

func (d Donation) Coord() *Coordinate { return coord(d.Latitude, d.Longitude) }
func (d Donation) Address() string    { return d.Addr }
func (d Donation) Category() string   { return d.FoodType }

// CreateDonationRequest is the phase-1 payload for posting a donation.
// The photo travels separately as an attachment once the id is known.
type CreateDonationRequest struct {
	DonorID     string   `json:"donorId"`
	FoodType    string   `json:"foodType"`
	Description string   `json:"description,omitempty"`
	Quantity    string   `json:"quantity,omitempty"`
	Location    string   `json:"location,omitempty"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}
