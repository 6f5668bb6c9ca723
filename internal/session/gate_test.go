package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mealbridge/mealcli/internal/models"
)

func TestCanPost_MessageSpecificity(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr error
	}{
		{
			name:    "unverified",
			profile: Profile{Verified: false, HasPhoto: true, HasCertificate: true, NeedsCertificate: true},
			wantErr: ErrNotVerified,
		},
		{
			name:    "missing photo",
			profile: Profile{Verified: true, HasPhoto: false, HasCertificate: true, NeedsCertificate: true},
			wantErr: ErrMissingPhoto,
		},
		{
			name:    "missing certificate",
			profile: Profile{Verified: true, HasPhoto: true, HasCertificate: false, NeedsCertificate: true},
			wantErr: ErrMissingCertificate,
		},
		{
			name:    "certificate not needed",
			profile: Profile{Verified: true, HasPhoto: true, HasCertificate: false, NeedsCertificate: false},
			wantErr: nil,
		},
		{
			name:    "all preconditions met",
			profile: Profile{Verified: true, HasPhoto: true, HasCertificate: true, NeedsCertificate: true},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanPost(tt.profile)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestDonorProfile(t *testing.T) {
	individual := models.Donor{
		Status:    models.StatusVerified,
		DonorType: "individual",
		Photo:     "/uploads/donors/1.jpg",
	}
	p := DonorProfile(individual)
	assert.True(t, p.Verified)
	assert.True(t, p.HasPhoto)
	assert.False(t, p.NeedsCertificate)
	assert.NoError(t, CanPost(p))

	restaurant := models.Donor{
		Status:    models.StatusVerified,
		DonorType: "restaurant",
		Photo:     "/uploads/donors/2.jpg",
	}
	p = DonorProfile(restaurant)
	assert.True(t, p.NeedsCertificate)
	assert.ErrorIs(t, CanPost(p), ErrMissingCertificate)
}

func TestRecipientProfile(t *testing.T) {
	r := models.Recipient{
		Status:      models.StatusApproved,
		Photo:       "/uploads/recipients/1.jpg",
		Certificate: "/uploads/recipients/1-cert.pdf",
	}
	p := RecipientProfile(r)
	assert.True(t, p.NeedsCertificate)
	assert.NoError(t, CanPost(p))

	pending := models.Recipient{Status: models.StatusPending}
	assert.ErrorIs(t, CanPost(RecipientProfile(pending)), ErrNotVerified)
}

func TestGetSessionFromEnv(t *testing.T) {
	t.Setenv(EnvToken, "tok-1")
	t.Setenv(EnvRole, "donor")
	t.Setenv(EnvActorID, "d-1")

	s := GetSessionFromEnv()

	assert.True(t, s.IsValid())
	assert.Equal(t, models.RoleDonor, s.Role)
	assert.Equal(t, "d-1", s.ActorID)
}

func TestGetSessionFromEnv_DocumentsFlag(t *testing.T) {
	t.Setenv(EnvToken, "tok-1")
	t.Setenv(EnvRole, "donor")
	t.Setenv(EnvActorID, "d-1")

	t.Setenv(EnvDocsUploaded, "true")
	assert.True(t, GetSessionFromEnv().DocumentsUploaded)

	t.Setenv(EnvDocsUploaded, "")
	assert.False(t, GetSessionFromEnv().DocumentsUploaded)
}

func TestGetSessionFromEnv_Incomplete(t *testing.T) {
	t.Setenv(EnvToken, "tok-1")
	t.Setenv(EnvRole, "")
	t.Setenv(EnvActorID, "")

	s := GetSessionFromEnv()

	assert.False(t, s.IsValid())
}
