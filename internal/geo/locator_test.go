package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbridge/mealcli/internal/models"
)

func coordOf(lat, lng float64) models.Coordinate {
	return models.Coordinate{Latitude: lat, Longitude: lng}
}

func TestIPLocator_Current(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"latitude": 28.6139, "longitude": 77.2090}`))
	}))
	defer server.Close()

	l := NewIPLocator(WithLocatorBaseURL(server.URL))
	c, err := l.Current(context.Background())

	require.NoError(t, err)
	require.NotNil(t, c)
	assert.InDelta(t, 28.6139, c.Latitude, 1e-9)
	assert.InDelta(t, 77.2090, c.Longitude, 1e-9)
}

func TestIPLocator_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	l := NewIPLocator(WithLocatorBaseURL(server.URL))
	c, err := l.Current(context.Background())

	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrLocationUnavailable)
}

func TestIPLocator_MissingPosition(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"ip": "203.0.113.9"}`))
	}))
	defer server.Close()

	l := NewIPLocator(WithLocatorBaseURL(server.URL))
	_, err := l.Current(context.Background())

	assert.ErrorIs(t, err, ErrLocationUnavailable)
}

func TestIPLocator_OutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"latitude": 999, "longitude": 0}`))
	}))
	defer server.Close()

	l := NewIPLocator(WithLocatorBaseURL(server.URL))
	_, err := l.Current(context.Background())

	assert.ErrorIs(t, err, ErrLocationUnavailable)
}

func TestNominatimGeocoder_ReverseGeocode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		assert.NotEmpty(t, r.URL.Query().Get("lon"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"display_name": "Connaught Place, New Delhi, India"}`))
	}))
	defer server.Close()

	g := NewNominatimGeocoder(WithGeocoderBaseURL(server.URL))
	addr, err := g.ReverseGeocode(context.Background(), coordOf(28.6139, 77.2090))

	require.NoError(t, err)
	assert.Equal(t, "Connaught Place, New Delhi, India", addr)
}

func TestNominatimGeocoder_FailureLeavesAddressEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	g := NewNominatimGeocoder(WithGeocoderBaseURL(server.URL))
	addr, err := g.ReverseGeocode(context.Background(), coordOf(0, 0))

	assert.Error(t, err)
	assert.Empty(t, addr)
}
