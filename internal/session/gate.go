package session

import (
	"errors"

	"github.com/mealbridge/mealcli/internal/models"
)

// Gate errors. Each names the specific precondition that failed so the
// user is told exactly what to fix, never a generic "not allowed".
var (
	ErrNotVerified        = errors.New("your account has not been verified yet")
	ErrMissingPhoto       = errors.New("upload a profile photo before posting")
	ErrMissingCertificate = errors.New("upload your organization certificate before posting")
)

// Profile is the server-sourced account state the feature gates read.
// It is built from a fresh profile fetch at the moment of action, never
// from cached session flags.
type Profile struct {
	Verified         bool
	HasPhoto         bool
	HasCertificate   bool
	NeedsCertificate bool
}

// DonorProfile derives gate inputs from a donor record. Business donors
// (restaurants, groceries) must carry a certificate; individuals don't.
func DonorProfile(d models.Donor) Profile {
	business := d.DonorType == "restaurant" || d.DonorType == "grocery"
	return Profile{
		Verified:         d.Verified(),
		HasPhoto:         d.Photo != "",
		HasCertificate:   d.Certificate != "",
		NeedsCertificate: business,
	}
}

// RecipientProfile derives gate inputs from a recipient record.
// Receiving organizations always need a certificate.
func RecipientProfile(r models.Recipient) Profile {
	return Profile{
		Verified:         r.Verified(),
		HasPhoto:         r.Photo != "",
		HasCertificate:   r.Certificate != "",
		NeedsCertificate: true,
	}
}

// CanPost reports whether the account may post a new donation or
// request. It returns the first unmet precondition, nil when allowed.
func CanPost(p Profile) error {
	if !p.Verified {
		return ErrNotVerified
	}
	if !p.HasPhoto {
		return ErrMissingPhoto
	}
	if p.NeedsCertificate && !p.HasCertificate {
		return ErrMissingCertificate
	}
	return nil
}
