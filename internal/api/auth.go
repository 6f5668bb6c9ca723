package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mealbridge/mealcli/internal/models"
)

// LoginRequest is the credentials payload for POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the token and the role-scoped identity the
// client keeps in its session.
type LoginResponse struct {
	Token   string      `json:"token"`
	Role    models.Role `json:"role"`
	ActorID string      `json:"actorId"`
}

// Login authenticates and returns a Session for the signed-in account.
func (c *Client) Login(ctx context.Context, email, password string) (*models.Session, error) {
	body, err := c.post(ctx, "/auth/login", LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	var resp LoginResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}

	s := models.Session{
		Token:   resp.Token,
		Role:    resp.Role,
		ActorID: resp.ActorID,
	}
	if !s.IsValid() {
		return nil, fmt.Errorf("login response missing token or identity")
	}
	return &s, nil
}

// CheckSession validates the session by fetching the role profile.
func (c *Client) CheckSession(ctx context.Context, s models.Session) error {
	var err error
	switch s.Role {
	case models.RoleDonor:
		_, err = c.GetDonor(ctx, s.ActorID)
	case models.RoleRecipient:
		_, err = c.GetRecipient(ctx, s.ActorID)
	case models.RoleVolunteer:
		_, err = c.GetVolunteer(ctx, s.ActorID)
	default:
		err = fmt.Errorf("unknown role %q", s.Role)
	}
	return err
}
