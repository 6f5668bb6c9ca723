package models

import "time"

// Delivery links an approved donation to a recipient and, once claimed,
// to the volunteer carrying it.
type Delivery struct {
	ID          string     `json:"id"`
	DonationID  string     `json:"donationId"`
	RecipientID string     `json:"recipientId,omitempty"`
	VolunteerID string     `json:"volunteerId,omitempty"`
	Pickup      string     `json:"pickup,omitempty"`
	Dropoff     string     `json:"dropoff,omitempty"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	Status      Status     `json:"status,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
}

func (d Delivery) Coord() *Coordinate { return coord(d.Latitude, d.Longitude) }
func (d Delivery) Address() string    { return d.Pickup }

// Claimed reports whether a volunteer has taken this delivery.
func (d Delivery) Claimed() bool { return d.VolunteerID != "" }
