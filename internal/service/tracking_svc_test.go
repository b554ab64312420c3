package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTrackingTestServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-api-key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/trackings/SF123":
			w.Write([]byte(`{"tracking_number":"SF123","status":"delivered","last_location":"宜兴市"}`))
		case "/v1/trackings/SF456":
			w.Write([]byte(`{"tracking_number":"SF456","status":"in_transit","last_location":"无锡转运中心"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestTrackingService_GetStatus(t *testing.T) {
	srv := newTrackingTestServer(t)
	defer srv.Close()

	svc := NewTrackingService(&TrackingConfig{BaseURL: srv.URL, ApiKey: "test-key"})
	ctx := context.Background()

	status, err := svc.GetStatus(ctx, "sf-express", "SF123")
	require.NoError(t, err)
	assert.Equal(t, TrackingStatusDelivered, status)

	status, err = svc.GetStatus(ctx, "sf-express", "SF456")
	require.NoError(t, err)
	assert.Equal(t, TrackingStatusInTransit, status)
}

func TestTrackingService_GetStatus_NotFound(t *testing.T) {
	srv := newTrackingTestServer(t)
	defer srv.Close()

	svc := NewTrackingService(&TrackingConfig{BaseURL: srv.URL, ApiKey: "test-key"})

	_, err := svc.GetStatus(context.Background(), "sf-express", "UNKNOWN")
	assert.ErrorIs(t, err, ErrTrackingNotFound)
}
