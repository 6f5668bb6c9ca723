package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/mealbridge/mealcli/internal/models"
)

// GetVolunteer fetches a volunteer profile.
func (c *Client) GetVolunteer(ctx context.Context, id string) (*models.Volunteer, error) {
	body, err := c.get(ctx, fmt.Sprintf("/volunteers/%s", id))
	if err != nil {
		return nil, err
	}

	var volunteer models.Volunteer
	if err := json.Unmarshal(body, &volunteer); err != nil {
		return nil, fmt.Errorf("failed to parse volunteer response: %w", err)
	}
	return &volunteer, nil
}

// RegisterVolunteer creates a volunteer account. This endpoint is
// message-only: the response confirms creation but carries no
// identifier, so callers recover it with SearchVolunteers.
func (c *Client) RegisterVolunteer(ctx context.Context, req models.RegisterVolunteerRequest) (string, error) {
	body, err := c.post(ctx, "/volunteers/add", req)
	if err != nil {
		return "", err
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse register volunteer response: %w", err)
	}
	return resp.Message, nil
}

// SearchVolunteers looks up volunteers by name. Used to recover the
// identifier after a message-only registration; callers filter the
// results by exact email match.
func (c *Client) SearchVolunteers(ctx context.Context, query string) ([]models.Volunteer, error) {
	body, err := c.get(ctx, "/volunteers/search?query="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	var volunteers []models.Volunteer
	if err := json.Unmarshal(body, &volunteers); err != nil {
		return nil, fmt.Errorf("failed to parse volunteer search response: %w", err)
	}
	return volunteers, nil
}

// UploadVolunteerPhoto attaches the profile photo to a volunteer account.
func (c *Client) UploadVolunteerPhoto(ctx context.Context, id string, att models.Attachment) error {
	_, err := c.upload(ctx, fmt.Sprintf("/volunteers/%s/photo", id), att)
	return err
}

// UploadVolunteerSignature attaches the consent signature to a
// volunteer account.
func (c *Client) UploadVolunteerSignature(ctx context.Context, id string, att models.Attachment) error {
	_, err := c.upload(ctx, fmt.Sprintf("/volunteers/%s/signature", id), att)
	return err
}

// ListDeliveries returns the deliveries available to or claimed by a
// volunteer. An empty volunteerID lists unclaimed deliveries.
func (c *Client) ListDeliveries(ctx context.Context, volunteerID string) ([]models.Delivery, error) {
	path := "/deliveries/all"
	if volunteerID != "" {
		path = fmt.Sprintf("/deliveries/%s", volunteerID)
	}
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}

	var deliveries []models.Delivery
	if err := json.Unmarshal(body, &deliveries); err != nil {
		return nil, fmt.Errorf("failed to parse deliveries response: %w", err)
	}
	return deliveries, nil
}

// ClaimDelivery assigns an unclaimed delivery to a volunteer.
func (c *Client) ClaimDelivery(ctx context.Context, deliveryID, volunteerID string) error {
	_, err := c.patch(ctx, fmt.Sprintf("/deliveries/%s/claim", deliveryID), map[string]string{
		"volunteerId": volunteerID,
	})
	return err
}

// UpdateDeliveryStatus transitions a claimed delivery's status.
func (c *Client) UpdateDeliveryStatus(ctx context.Context, deliveryID string, status models.Status) error {
	_, err := c.patch(ctx, fmt.Sprintf("/deliveries/%s/status", deliveryID), map[string]models.Status{
		"status": status,
	})
	return err
}
