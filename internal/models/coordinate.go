package models

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is inside the WGS84 range.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// Locatable is any entity that may carry a coordinate and an address
// string. The two are independently optional and may be stale relative
// to each other; callers must tolerate either being absent.
type Locatable interface {
	// Coord returns the entity's coordinate, or nil if no location is set.
	Coord() *Coordinate
	// Address returns the free-text address, possibly empty.
	Address() string
}

// Listing is a Locatable that also belongs to a feed category.
type Listing interface {
	Locatable
	// Category returns the feed category (food type, request category).
	Category() string
}

// coord builds a Coordinate from a pair of optional JSON fields.
// Both components must be present for the coordinate to exist.
func coord(lat, lng *float64) *Coordinate {
	if lat == nil || lng == nil {
		return nil
	}
	return &Coordinate{Latitude: *lat, Longitude: *lng}
}
