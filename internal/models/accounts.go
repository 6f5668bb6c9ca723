package models

// Donor is a registered food donor (individual or business).
type Donor struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone,omitempty"`
	DonorType   string   `json:"donorType,omitempty"` // individual, restaurant, grocery
	Location    string   `json:"location,omitempty"`
	Addr        string   `json:"address,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Status      Status   `json:"status,omitempty"`
	Photo       string   `json:"photo,omitempty"`
	Certificate string   `json:"certificate,omitempty"`
}

func (d Donor) Coord() *Coordinate { return coord(d.Latitude, d.Longitude) }
func (d Donor) Address() string    { return d.Addr }

// Verified reports whether the account has passed admin review.
func (d Donor) Verified() bool { return d.Status == StatusVerified || d.Status == StatusApproved }

// Recipient is a registered receiving organization (shelter, NGO).
type Recipient struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Location     string   `json:"location,omitempty"`
	Addr         string   `json:"address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Status       Status   `json:"status,omitempty"`
	Photo        string   `json:"photo,omitempty"`
	Certificate  string   `json:"certificate,omitempty"`
}

func (r Recipient) Coord() *Coordinate { return coord(r.Latitude, r.Longitude) }
func (r Recipient) Address() string    { return r.Addr }

func (r Recipient) Verified() bool { return r.Status == StatusVerified || r.Status == StatusApproved }

// Volunteer is a registered delivery volunteer.
type Volunteer struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone,omitempty"`
	Vehicle   string   `json:"vehicle,omitempty"`
	Location  string   `json:"location,omitempty"`
	Addr      string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Status    Status   `json:"status,omitempty"`
	Photo     string   `json:"photo,omitempty"`
	Signature string   `json:"signature,omitempty"`
}

func (v Volunteer) Coord() *Coordinate { return coord(v.Latitude, v.Longitude) }
func (v Volunteer) Address() string    { return v.Addr }

// RegisterDonorRequest is the phase-1 payload for donor registration.
type RegisterDonorRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Phone     string   `json:"phone,omitempty"`
	DonorType string   `json:"donorType,omitempty"`
	Location  string   `json:"location,omitempty"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

// RegisterRecipientRequest is the phase-1 payload for recipient registration.
type RegisterRecipientRequest struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Phone        string   `json:"phone,omitempty"`
	Organization string   `json:"organization,omitempty"`
	Location     string   `json:"location,omitempty"`
	Address      string   `json:"address,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
}

// RegisterVolunteerRequest is the phase-1 payload for volunteer
// registration. The volunteer endpoint is message-only: the response
// carries no identifier, so callers recover it by search.
type RegisterVolunteerRequest struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	Phone     string   `json:"phone,omitempty"`
	Vehicle   string   `json:"vehicle,omitempty"`
	Location  string   `json:"location,omitempty"`
	Address   string   `json:"address,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}
