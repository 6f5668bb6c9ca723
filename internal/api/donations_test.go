package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealbridge/mealcli/internal/models"
)

func TestClient_ListDonations(t *testing.T) {
	t.Run("success with donations", func(t *testing.T) {
		lat, lng := 28.6139, 77.2090
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/donations/all", r.URL.Path)
			assert.Equal(t, http.MethodGet, r.Method)

			donations := []models.Donation{
				{
					ID:       "1",
					DonorID:  "d-1",
					FoodType: "cooked",
					Status:   models.StatusApproved,
					Latitude: &lat, Longitude: &lng,
					Photo: "/uploads/donations/1.jpg",
				},
				{
					ID:       "2",
					DonorID:  "d-2",
					FoodType: "packaged",
				},
			}

			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(donations)
		}))
		defer server.Close()

		client := NewClient("test-token", WithBaseURL(server.URL))
		donations, err := client.ListDonations(context.Background())

		require.NoError(t, err)
		require.Len(t, donations, 2)

		assert.Equal(t, "1", donations[0].ID)
		assert.Equal(t, "cooked", donations[0].Category())
		require.NotNil(t, donations[0].Coord())
		assert.InDelta(t, 28.6139, donations[0].Coord().Latitude, 1e-9)

		// Second record has no location; the feed must tolerate that.
		assert.Nil(t, donations[1].Coord())
	})

	t.Run("success with empty list", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewClient("test-token", WithBaseURL(server.URL))
		donations, err := client.ListDonations(context.Background())

		require.NoError(t, err)
		assert.Empty(t, donations)
	})
}

func TestClient_ListDonorDonations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/donations/d-7", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[{"id":"5","donorId":"d-7","foodType":"produce"}]`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))
	donations, err := client.ListDonorDonations(context.Background(), "d-7")

	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, "d-7", donations[0].DonorID)
}

func TestClient_CreateDonation(t *testing.T) {
	t.Run("echoes created record", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/donations/add", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var req models.CreateDonationRequest
			err := json.NewDecoder(r.Body).Decode(&req)
			require.NoError(t, err)
			assert.Equal(t, "d-1", req.DonorID)
			assert.Equal(t, "cooked", req.FoodType)

			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"id":"42","donorId":"d-1","foodType":"cooked","status":"pending"}`))
		}))
		defer server.Close()

		client := NewClient("test-token", WithBaseURL(server.URL))
		donation, err := client.CreateDonation(context.Background(), models.CreateDonationRequest{
			DonorID:  "d-1",
			FoodType: "cooked",
		})

		require.NoError(t, err)
		assert.Equal(t, "42", donation.ID)
		assert.Equal(t, models.StatusPending, donation.Status)
	})

	t.Run("missing id is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"donorId":"d-1"}`))
		}))
		defer server.Close()

		client := NewClient("test-token", WithBaseURL(server.URL))
		_, err := client.CreateDonation(context.Background(), models.CreateDonationRequest{DonorID: "d-1"})

		assert.Error(t, err)
	})

	t.Run("server error surfaces message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"message":"food type is required"}`))
		}))
		defer server.Close()

		client := NewClient("test-token", WithBaseURL(server.URL))
		_, err := client.CreateDonation(context.Background(), models.CreateDonationRequest{DonorID: "d-1"})

		require.Error(t, err)
		assert.Equal(t, "food type is required", UserMessage(err))
	})
}

func TestClient_UploadDonationPhoto(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/donations/42/photo", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("photo")
		require.NoError(t, err)
		assert.Equal(t, "meal.jpg", header.Filename)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))
	err := client.UploadDonationPhoto(context.Background(), "42", models.Attachment{
		Role:     models.RolePhoto,
		Filename: "meal.jpg",
		Data:     []byte("jpeg"),
	})

	require.NoError(t, err)
}

func TestClient_UpdateDonationStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/donations/42/status", r.URL.Path)
		assert.Equal(t, http.MethodPatch, r.Method)

		var body map[string]models.Status
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, models.StatusApproved, body["status"])

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient("test-token", WithBaseURL(server.URL))
	err := client.UpdateDonationStatus(context.Background(), "42", models.StatusApproved)

	require.NoError(t, err)
}
