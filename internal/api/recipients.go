package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mealbridge/mealcli/internal/models"
)

// GetRecipient fetches a recipient profile.
func (c *Client) GetRecipient(ctx context.Context, id string) (*models.Recipient, error) {
	body, err := c.get(ctx, fmt.Sprintf("/recipients/%s", id))
	if err != nil {
		return nil, err
	}

	var recipient models.Recipient
	if err := json.Unmarshal(body, &recipient); err != nil {
		return nil, fmt.Errorf("failed to parse recipient response: %w", err)
	}
	return &recipient, nil
}

// RegisterRecipient creates a recipient account. The endpoint echoes
// the created record, so the identifier is available directly.
func (c *Client) RegisterRecipient(ctx context.Context, req models.RegisterRecipientRequest) (*models.Recipient, error) {
	body, err := c.post(ctx, "/recipients/add", req)
	if err != nil {
		return nil, err
	}

	var recipient models.Recipient
	if err := json.Unmarshal(body, &recipient); err != nil {
		return nil, fmt.Errorf("failed to parse register recipient response: %w", err)
	}
	if recipient.ID == "" {
		return nil, fmt.Errorf("no recipient id returned from registration")
	}
	return &recipient, nil
}

// UploadRecipientPhoto attaches the profile photo to a recipient account.
func (c *Client) UploadRecipientPhoto(ctx context.Context, id string, att models.Attachment) error {
	_, err := c.upload(ctx, fmt.Sprintf("/recipients/%s/photo", id), att)
	return err
}

// UploadRecipientCertificate attaches the organization certificate to a
// recipient account.
func (c *Client) UploadRecipientCertificate(ctx context.Context, id string, att models.Attachment) error {
	_, err := c.upload(ctx, fmt.Sprintf("/recipients/%s/upload", id), att)
	return err
}
