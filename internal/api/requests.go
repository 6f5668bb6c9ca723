package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mealbridge/mealcli/internal/models"
)

// ListRequests returns every open need visible to the caller.
func (c *Client) ListRequests(ctx context.Context) ([]models.Request, error) {
	body, err := c.get(ctx, "/requests/all")
	if err != nil {
		return nil, err
	}

	var requests []models.Request
	if err := json.Unmarshal(body, &requests); err != nil {
		return nil, fmt.Errorf("failed to parse requests response: %w", err)
	}
	return requests, nil
}

// ListRecipientRequests returns the needs posted by one recipient.
func (c *Client) ListRecipientRequests(ctx context.Context, recipientID string) ([]models.Request, error) {
	body, err := c.get(ctx, fmt.Sprintf("/requests/%s", recipientID))
	if err != nil {
		return nil, err
	}

	var requests []models.Request
	if err := json.Unmarshal(body, &requests); err != nil {
		return nil, fmt.Errorf("failed to parse requests response: %w", err)
	}
	return requests, nil
}

// CreateRequest commits need metadata. Confirmed with the backend team:
// the endpoint echoes the created record like donation creation does.
func (c *Client) CreateRequest(ctx context.Context, req models.CreateRequestRequest) (*models.Request, error) {
	body, err := c.post(ctx, "/requests/add", req)
	if err != nil {
		return nil, err
	}

	var created models.Request
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to parse create request response: %w", err)
	}
	if created.ID == "" {
		return nil, fmt.Errorf("no request id returned from creation")
	}
	return &created, nil
}

// UploadRequestPhoto attaches the listing photo to an existing request.
func (c *Client) UploadRequestPhoto(ctx context.Context, id string, att models.Attachment) error {
	_, err := c.upload(ctx, fmt.Sprintf("/requests/%s/photo", id), att)
	return err
}

// UpdateRequestStatus transitions a request's moderation status.
func (c *Client) UpdateRequestStatus(ctx context.Context, id string, status models.Status) error {
	_, err := c.patch(ctx, fmt.Sprintf("/requests/%s/status", id), map[string]models.Status{
		"status": status,
	})
	return err
}
