package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	c := NewClient("http://localhost:8011")
	require.NotNil(t, c)
	assert.Equal(t, "http://localhost:8011", c.BaseURL)
}

func TestGetStats(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/stats", r.URL.Path)
		stats := map[string]interface{}{
			"DeviceCount": 2,
			"QueueSize":   0,
			"Connected":   true,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(stats)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	stats, err := c.GetStats()
	require.NoError(t, err)
	assert.Equal(t, float64(2), stats["DeviceCount"])
	assert.Equal(t, true, stats["Connected"])
}

func TestGetStatsServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("internal server error"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	_, err := c.GetStats()
	assert.Error(t, err)
}

func TestGetDevices(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/devices", r.URL.Path)
		devices := []map[string]interface{}{
			{"key": "sim1", "name": "Simulated Device"},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(devices)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	devices, err := c.GetDevices()
	require.NoError(t, err)
	require.Len(t, devices, 1)
	assert.Equal(t, "sim1", devices[0]["key"])
}

func TestPostReading(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/devices/sim1/readings", r.URL.Path)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "T", body["reference"])
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	require.NoError(t, c.PostReading("sim1", "T", 21.5))
}

func TestPostFirmwareAbort(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/devices/sim1/firmware/abort", r.URL.Path)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	require.NoError(t, c.PostFirmwareAbort("sim1"))
}

func TestPublish(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/publish", r.URL.Path)
		assert.Equal(t, "sim1", r.URL.Query().Get("key"))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	require.NoError(t, c.Publish("sim1"))
}

func TestPing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/ping", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	}))
	defer ts.Close()

	c := NewClient(ts.URL)
	require.NoError(t, c.Ping())
}
