package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mealbridge/mealcli/internal/models"
)

// ListDonations returns every donation visible to the caller.
func (c *Client) ListDonations(ctx context.Context) ([]models.Donation, error) {
	body, err := c.get(ctx, "/donations/all")
	if err != nil {
		return nil, err
	}

	var donations []models.Donation
	if err := json.Unmarshal(body, &donations); err != nil {
		return nil, fmt.Errorf("failed to parse donations response: %w", err)
	}
	return donations, nil
}

// ListDonorDonations returns the donations posted by one donor.
func (c *Client) ListDonorDonations(ctx context.Context, donorID string) ([]models.Donation, error) {
	body, err := c.get(ctx, fmt.Sprintf("/donations/%s", donorID))
	if err != nil {
		return nil, err
	}

	var donations []models.Donation
	if err := json.Unmarshal(body, &donations); err != nil {
		return nil, fmt.Errorf("failed to parse donations response: %w", err)
	}
	return donations, nil
}

// GetDonation fetches a single donation by id.
func (c *Client) GetDonation(ctx context.Context, id string) (*models.Donation, error) {
	body, err := c.get(ctx, fmt.Sprintf("/donations/one/%s", id))
	if err != nil {
		return nil, err
	}

	var donation models.Donation
	if err := json.Unmarshal(body, &donation); err != nil {
		return nil, fmt.Errorf("failed to parse donation response: %w", err)
	}
	return &donation, nil
}

// CreateDonation commits donation metadata. The endpoint echoes the
// created record, so the identifier is available directly.
func (c *Client) CreateDonation(ctx context.Context, req models.CreateDonationRequest) (*models.Donation, error) {
	body, err := c.post(ctx, "/donations/add", req)
	if err != nil {
		return nil, err
	}

	var donation models.Donation
	if err := json.Unmarshal(body, &donation); err != nil {
		return nil, fmt.Errorf("failed to parse create donation response: %w", err)
	}
	if donation.ID == "" {
		return nil, fmt.Errorf("no donation id returned from creation")
	}
	return &donation, nil
}

// UploadDonationPhoto attaches the listing photo to an existing donation.
func (c *Client) UploadDonationPhoto(ctx context.Context, id string, att models.Attachment) error {
	_, err := c.upload(ctx, fmt.Sprintf("/donations/%s/photo", id), att)
	return err
}

// UpdateDonationStatus transitions a donation's moderation status. The
// allowed vocabulary is backend-defined; the client passes values through.
func (c *Client) UpdateDonationStatus(ctx context.Context, id string, status models.Status) error {
	_, err := c.patch(ctx, fmt.Sprintf("/donations/%s/status", id), map[string]models.Status{
		"status": status,
	})
	return err
}
