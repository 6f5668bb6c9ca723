package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mealbridge/mealcli/internal/models"
)

const locatorTimeout = 10 * time.Second

// ErrLocationUnavailable is returned when the device position cannot be
// determined. Callers revert the "Near Me" toggle and tell the user;
// the surrounding screen keeps working.
var ErrLocationUnavailable = errors.New("location unavailable")

// Locator acquires the user's current position. Acquisition is only
// started on an explicit user action and can fail; a failed attempt
// must not leave a stale reference point behind.
type Locator interface {
	Current(ctx context.Context) (*models.Coordinate, error)
}

// IPLocator resolves an approximate position from the client's public
// IP address. Terminal clients have no geolocation permission prompt,
// so this stands in for the browser's navigator.geolocation.
type IPLocator struct {
	baseURL    string
	httpClient *http.Client
}

// IPLocatorOption configures an IPLocator.
type IPLocatorOption func(*IPLocator)

// WithLocatorBaseURL overrides the lookup service URL.
func WithLocatorBaseURL(url string) IPLocatorOption {
	return func(l *IPLocator) {
		l.baseURL = url
	}
}

// WithLocatorHTTPClient sets a custom HTTP client.
func WithLocatorHTTPClient(c *http.Client) IPLocatorOption {
	return func(l *IPLocator) {
		l.httpClient = c
	}
}

// NewIPLocator creates a Locator backed by an IP-geolocation service.
func NewIPLocator(opts ...IPLocatorOption) *IPLocator {
	l := &IPLocator{
		baseURL:    "https://ipapi.co/json",
		httpClient: &http.Client{Timeout: locatorTimeout},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Current looks up the approximate device position.
func (l *IPLocator) Current(ctx context.Context) (*models.Coordinate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Debug("ip geolocation lookup failed")
		return nil, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: lookup returned status %d", ErrLocationUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLocationUnavailable, err)
	}

	var pos struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	if err := json.Unmarshal(body, &pos); err != nil {
		return nil, fmt.Errorf("%w: malformed lookup response", ErrLocationUnavailable)
	}
	if pos.Latitude == nil || pos.Longitude == nil {
		return nil, fmt.Errorf("%w: lookup response has no position", ErrLocationUnavailable)
	}

	c := models.Coordinate{Latitude: *pos.Latitude, Longitude: *pos.Longitude}
	if !c.Valid() {
		return nil, fmt.Errorf("%w: lookup returned out-of-range position", ErrLocationUnavailable)
	}
	return &c, nil
}
