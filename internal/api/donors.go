package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mealbridge/mealcli/internal/models"
)

// GetDonor fetches a donor profile. Feature gating reads this at the
// moment of action rather than trusting cached flags.
func (c *Client) GetDonor(ctx context.Context, id string) (*models.Donor, error) {
	body, err := c.get(ctx, fmt.Sprintf("/donors/%s", id))
	if err != nil {
		return nil, err
	}

	var donor models.Donor
	if err := json.Unmarshal(body, &donor); err != nil {
		return nil, fmt.Errorf("failed to parse donor response: %w", err)
	}
	return &donor, nil
}

// RegisterDonor creates a donor account. The endpoint echoes the
// created record, so the identifier is available directly.
func (c *Client) RegisterDonor(ctx context.Context, req models.RegisterDonorRequest) (*models.Donor, error) {
	body, err := c.post(ctx, "/donors/add", req)
	if err != nil {
		return nil, err
	}

	var donor models.Donor
	if err := json.Unmarshal(body, &donor); err != nil {
		return nil, fmt.Errorf("failed to parse register donor response: %w", err)
	}
	if donor.ID == "" {
		return nil, fmt.Errorf("no donor id returned from registration")
	}
	return &donor, nil
}

// UploadDonorPhoto attaches the profile photo to a donor account.
func (c *Client) UploadDonorPhoto(ctx context.Context, id string, att models.Attachment) error {
	_, err := c.upload(ctx, fmt.Sprintf("/donors/%s/photo", id), att)
	return err
}

// UploadDonorCertificate attaches the business certificate to a donor
// account. Required before a restaurant or grocery donor may post.
func (c *Client) UploadDonorCertificate(ctx context.Context, id string, att models.Attachment) error {
	_, err := c.upload(ctx, fmt.Sprintf("/donors/%s/upload", id), att)
	return err
}
