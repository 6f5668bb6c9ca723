package models

import "time"

// Request is a need posted by a recipient organization.
type Request struct {
	ID          string     `json:"id"`
	RecipientID string     `json:"recipientId"`
	FoodType    string     `json:"foodType"`
	Description string     `json:"description,omitempty"`
	NumPeople   int        `json:"numPeople,omitempty"`
	Location    string     `json:"location,omitempty"`
	Addr        string     `json:"address,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Status      Status     `json:"status,omitempty"`
	Photo       string     `json:"photo,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

func (r Request) Coord() *Coordinate { return coord(r.Latitude, r.Longitude) }
func (r Request) Address() string    { return r.Addr }
func (r Request) Category() string   { return r.FoodType }

// CreateRequestRequest is the phase-1 payload for posting a need.
type CreateRequestRequest struct {
	RecipientID string   `json:"recipientId"`
	FoodType    string   `json:"foodType"`
	Description string   `json:"description,omitempty"`
	NumPeople   int      `json:"numPeople,omitempty"`
	Location    string   `json:"location,omitempty"`
	Address     string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
}
