package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sireesha-siri/geotag-plants/internal/client/models"
	"github.com/sireesha-siri/geotag-plants/internal/client/syncerr"
)

func newClient(t *testing.T, handler http.Handler) *HTTPClient {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewHTTPClient(ts.URL, 3*time.Second, RetryPolicy{MaxAttempts: 1, BaseDelay: time.Millisecond})
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": success,
		"message": message,
		"data":    data,
	})
}

func TestFetchPlants_DecodesEnvelope(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/v1/plants", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, "", []models.PlantRecord{
			{ID: "x1", ImageName: "a.jpg", Latitude: 10, Longitude: 20},
		})
	}))

	records, err := c.FetchPlants(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "x1", records[0].ID)
}

func TestFetchPlants_NullDataYieldsEmptySlice(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", nil)
	}))

	records, err := c.FetchPlants(context.Background())
	require.NoError(t, err)
	require.NotNil(t, records)
	require.Empty(t, records)
}

func TestFetchPlants_NetworkErrorIsUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	ts.Close()
	c := NewHTTPClient(ts.URL, time.Second, RetryPolicy{MaxAttempts: 1, BaseDelay: time.Millisecond})

	_, err := c.FetchPlants(context.Background())
	require.True(t, syncerr.IsUnreachable(err), "got %v", err)
}

func TestFetchPlants_RetriesNetworkFailures(t *testing.T) {
	var calls atomic.Int64
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			// Drop the connection mid-flight to simulate a network fault.
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			_ = conn.Close()
			return
		}
		writeEnvelope(w, http.StatusOK, true, "", []models.PlantRecord{{ID: "x1"}})
	}))

	records, err := c.FetchPlants(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, int64(2), calls.Load())
}

func TestSavePlant_RejectionCarriesMessage(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadRequest, false, "coordinates out of range", nil)
	}))

	_, err := c.SavePlant(context.Background(), models.PlantDraft{ImageName: "a.jpg", Latitude: 1000})
	require.True(t, syncerr.IsRejected(err), "got %v", err)
	require.Contains(t, err.Error(), "coordinates out of range")
}

func TestSavePlant_NoRetryOnRejection(t *testing.T) {
	var calls atomic.Int64
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeEnvelope(w, http.StatusBadRequest, false, "nope", nil)
	}))

	_, err := c.SavePlant(context.Background(), models.PlantDraft{ImageName: "a.jpg"})
	require.Error(t, err)
	require.Equal(t, int64(1), calls.Load())
}

func TestSavePlant_DecodesRecord(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var draft models.PlantDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		require.Equal(t, "a.jpg", draft.ImageName)
		writeEnvelope(w, http.StatusOK, true, "", models.PlantRecord{
			ID:         "x1",
			ImageName:  draft.ImageName,
			Latitude:   draft.Latitude,
			Longitude:  draft.Longitude,
			UploadedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		})
	}))

	record, err := c.SavePlant(context.Background(), models.PlantDraft{ImageName: "a.jpg", Latitude: 10, Longitude: 20})
	require.NoError(t, err)
	require.Equal(t, "x1", record.ID)
	require.Equal(t, 2024, record.UploadedAt.Year())
}

func TestLogin_StoresTokensAndSendsBearer(t *testing.T) {
	var sawAuth string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", tokenPair{AccessToken: "at-1", RefreshToken: "rt-1"})
	})
	mux.HandleFunc("GET /api/v1/plants", func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		writeEnvelope(w, http.StatusOK, true, "", []models.PlantRecord{})
	})
	c := newClient(t, mux)

	require.NoError(t, c.Login(context.Background(), "farmer", "secret"))
	_, err := c.FetchPlants(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Bearer at-1", sawAuth)
}

func TestAuthedCall_RefreshesExpiredToken(t *testing.T) {
	var plantCalls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", tokenPair{AccessToken: "stale", RefreshToken: "rt-1"})
	})
	mux.HandleFunc("POST /api/v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "rt-1", body["refreshToken"])
		writeEnvelope(w, http.StatusOK, true, "", tokenPair{AccessToken: "fresh", RefreshToken: "rt-2"})
	})
	mux.HandleFunc("GET /api/v1/plants", func(w http.ResponseWriter, r *http.Request) {
		plantCalls.Add(1)
		if r.Header.Get("Authorization") != "Bearer fresh" {
			writeEnvelope(w, http.StatusUnauthorized, false, "token expired", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, true, "", []models.PlantRecord{{ID: "x1"}})
	})
	c := newClient(t, mux)

	require.NoError(t, c.Login(context.Background(), "farmer", "secret"))
	records, err := c.FetchPlants(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, int64(2), plantCalls.Load())
	require.Equal(t, "rt-2", c.refreshToken)
}

func TestExtractCoordinates(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/plants/coordinates", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, "", map[string]float64{"latitude": 16.5, "longitude": 80.6})
	}))

	lat, lon, err := c.ExtractCoordinates(context.Background(), "a.jpg", "https://img/a.jpg")
	require.NoError(t, err)
	require.InDelta(t, 16.5, lat, 1e-9)
	require.InDelta(t, 80.6, lon, 1e-9)
}

func TestExtractCoordinates_MissingGPSIsRejected(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnprocessableEntity, false, "image has no GPS data", nil)
	}))

	_, _, err := c.ExtractCoordinates(context.Background(), "a.jpg", "https://img/a.jpg")
	require.True(t, syncerr.IsRejected(err))
	require.Contains(t, err.Error(), "no GPS data")
}

func TestDeletePlant_SoftSuccess(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/api/v1/plants/x1", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, "", nil)
	}))

	require.NoError(t, c.DeletePlant(context.Background(), "x1"))
}

func TestPresignUpload(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, true, "", map[string]string{
			"uploadUrl": "https://s3/put?sig=1",
			"publicUrl": "https://img/a.jpg",
		})
	}))

	put, public, err := c.PresignUpload(context.Background(), "a.jpg")
	require.NoError(t, err)
	require.Equal(t, "https://s3/put?sig=1", put)
	require.Equal(t, "https://img/a.jpg", public)
}
