package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mealbridge/mealcli/internal/models"
)

const geocoderTimeout = 10 * time.Second

// ReverseGeocoder turns a coordinate into a human-readable address.
// Registration and creation forms use it to prefill the address field;
// on failure the field is simply left for manual entry.
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, c models.Coordinate) (string, error)
}

// NominatimGeocoder resolves addresses through a Nominatim-style
// reverse endpoint.
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NominatimOption configures a NominatimGeocoder.
type NominatimOption func(*NominatimGeocoder)

// WithGeocoderBaseURL overrides the geocoding service URL.
func WithGeocoderBaseURL(url string) NominatimOption {
	return func(g *NominatimGeocoder) {
		g.baseURL = url
	}
}

// WithGeocoderHTTPClient sets a custom HTTP client.
func WithGeocoderHTTPClient(c *http.Client) NominatimOption {
	return func(g *NominatimGeocoder) {
		g.httpClient = c
	}
}

// NewNominatimGeocoder creates a ReverseGeocoder backed by Nominatim.
func NewNominatimGeocoder(opts ...NominatimOption) *NominatimGeocoder {
	g := &NominatimGeocoder{
		baseURL:    "https://nominatim.openstreetmap.org",
		httpClient: &http.Client{Timeout: geocoderTimeout},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ReverseGeocode returns the display address for c, or an error the
// caller degrades to an empty address field.
func (g *NominatimGeocoder) ReverseGeocode(ctx context.Context, c models.Coordinate) (string, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", fmt.Sprintf("%f", c.Latitude))
	q.Set("lon", fmt.Sprintf("%f", c.Longitude))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).Debug("reverse geocoding failed")
		return "", fmt.Errorf("reverse geocoding failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("reverse geocoding returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read geocoding response: %w", err)
	}

	var result struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to parse geocoding response: %w", err)
	}

	return result.DisplayName, nil
}
