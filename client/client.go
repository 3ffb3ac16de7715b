// Package client is an HTTP client for a running gwmoduled's debug API,
// used by cmd/gwmodulectl to inspect and drive a gateway from outside the
// process.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client talks to one gwmoduled instance's debug HTTP API.
type Client struct {
	// BaseURL is the base URL of the debug server (e.g., "http://localhost:8011")
	BaseURL string

	// HTTPClient is the underlying HTTP client used for requests
	HTTPClient *http.Client
}

// NewClient creates a client bound to the given debug server URL.
// The serverURL should include the protocol and port (e.g., "http://localhost:8011").
func NewClient(serverURL string) *Client {
	return &Client{
		BaseURL: serverURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetStats retrieves the gateway's /api/stats snapshot.
func (c *Client) GetStats() (map[string]interface{}, error) {
	var stats map[string]interface{}
	if err := c.getJSON("/api/stats", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetDevices retrieves the registry snapshot served at /api/devices.
func (c *Client) GetDevices() ([]map[string]interface{}, error) {
	var devices []map[string]interface{}
	if err := c.getJSON("/api/devices", &devices); err != nil {
		return nil, err
	}
	return devices, nil
}

// PostReading injects a sensor reading on key/reference.
func (c *Client) PostReading(key, reference string, value float64) error {
	body := map[string]interface{}{"reference": reference, "value": value}
	return c.postJSON(fmt.Sprintf("/api/devices/%s/readings", url.PathEscape(key)), body)
}

// PostAlarm injects an alarm transition on key/reference.
func (c *Client) PostAlarm(key, reference string, active bool) error {
	body := map[string]interface{}{"reference": reference, "active": active}
	return c.postJSON(fmt.Sprintf("/api/devices/%s/alarms", url.PathEscape(key)), body)
}

// PostFirmwareInstall starts a firmware install for key from path.
func (c *Client) PostFirmwareInstall(key, path string) error {
	body := map[string]interface{}{"path": path}
	return c.postJSON(fmt.Sprintf("/api/devices/%s/firmware/install", url.PathEscape(key)), body)
}

// PostFirmwareAbort aborts an in-progress firmware install for key.
func (c *Client) PostFirmwareAbort(key string) error {
	return c.postJSON(fmt.Sprintf("/api/devices/%s/firmware/abort", url.PathEscape(key)), nil)
}

// Publish asks the gateway to drain its outbound queue for key, or every
// queued device when key is empty.
func (c *Client) Publish(key string) error {
	u := "/api/publish"
	if key != "" {
		u += "?key=" + url.QueryEscape(key)
	}
	resp, err := c.HTTPClient.Post(c.BaseURL+u, "application/json", nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp, http.StatusAccepted)
}

// Ping checks if the debug server is reachable and responding.
func (c *Client) Ping() error {
	resp, err := c.HTTPClient.Get(c.BaseURL + "/ping")
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp, http.StatusOK)
}

func (c *Client) getJSON(path string, out interface{}) error {
	resp, err := c.HTTPClient.Get(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp, http.StatusOK); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) postJSON(path string, body interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	resp, err := c.HTTPClient.Post(c.BaseURL+path, "application/json", reader)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}
	defer resp.Body.Close()
	return checkStatus(resp, http.StatusAccepted)
}

func checkStatus(resp *http.Response, want int) error {
	if resp.StatusCode != want {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned error: %d - %s", resp.StatusCode, string(data))
	}
	return nil
}
