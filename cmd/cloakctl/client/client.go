// Package client provides the HTTP client layer for the cloakctl CLI.
//
// The CloakAPIClient wraps the Resty HTTP client with connection management,
// retry logic on transport failures, and structured logging. Response types
// mirror the daemon API so commands can unmarshal directly into typed data.
package client

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cloak-dev/cloak/cmd/cloakctl/config"
	"github.com/cloak-dev/cloak/internal/logging"
)

// APIResponse represents the standard response format from cloakd API
// endpoints. Used as the base type for JSON unmarshaling so error handling
// stays uniform across all client operations.
type APIResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
	Count  int    `json:"count,omitempty"`
}

// Realm represents an identity realm as exposed by the admin API.
type Realm struct {
	Name        string    `json:"name"`
	DisplayName string    `json:"displayName"`
	Enabled     bool      `json:"enabled"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Member represents a node in the cloakd cluster membership view.
type Member struct {
	Name     string            `json:"name"`
	Address  string            `json:"address"`
	Status   string            `json:"status"`
	Tags     map[string]string `json:"tags"`
	LastSeen time.Time         `json:"lastSeen"`
}

// HealthInfo represents the daemon liveness report.
type HealthInfo struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// restyLogger routes Resty's internal logging through structured logging.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) { logging.Error(format, v...) }
func (restyLogger) Warnf(format string, v ...any)  { logging.Warn(format, v...) }
func (restyLogger) Debugf(format string, v ...any) { logging.Debug(format, v...) }

// CloakAPIClient wraps Resty with cloakd-specific configuration.
type CloakAPIClient struct {
	client  *resty.Client
	baseURL string
}

// NewCloakAPIClient creates an API client with timeout handling, retry
// logic, and proper headers for daemon communication.
func NewCloakAPIClient(apiAddr string, timeout int) *CloakAPIClient {
	client := resty.New()

	baseURL := fmt.Sprintf("http://%s", apiAddr)

	client.SetLogger(restyLogger{})

	client.
		SetTimeout(time.Duration(timeout) * time.Second).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", fmt.Sprintf("cloakctl/%s", config.Version))

	client.
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Only retry on connection errors, not HTTP errors
			return err != nil
		})

	return &CloakAPIClient{
		client:  client,
		baseURL: baseURL,
	}
}

// CreateAPIClient builds a client from the global CLI configuration.
func CreateAPIClient() *CloakAPIClient {
	return NewCloakAPIClient(config.Global.APIAddr, config.Global.Timeout)
}

// GetHealth fetches the daemon liveness report.
func (api *CloakAPIClient) GetHealth() (*HealthInfo, error) {
	var health HealthInfo
	resp, err := api.client.R().
		SetResult(&health).
		Get("/health")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return &health, nil
}

// GetRealms fetches all realms from the admin API.
func (api *CloakAPIClient) GetRealms() ([]Realm, error) {
	var result struct {
		Status string  `json:"status"`
		Data   []Realm `json:"data"`
		Count  int     `json:"count"`
	}
	resp, err := api.client.R().
		SetResult(&result).
		Get("/admin/realms")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return result.Data, nil
}

// CountUsers fetches the user count for a realm.
func (api *CloakAPIClient) CountUsers(realm string) (int, error) {
	var result struct {
		Status string `json:"status"`
		Realm  string `json:"realm"`
		Count  int    `json:"count"`
	}
	resp, err := api.client.R().
		SetResult(&result).
		Get(fmt.Sprintf("/admin/realms/%s/users/count", realm))
	if err != nil {
		return 0, fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
	}
	if resp.StatusCode() != 200 {
		return 0, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return result.Count, nil
}

// GetMembers fetches the cluster membership view.
func (api *CloakAPIClient) GetMembers() ([]Member, error) {
	var result struct {
		Status string   `json:"status"`
		Data   []Member `json:"data"`
		Count  int      `json:"count"`
	}
	resp, err := api.client.R().
		SetResult(&result).
		Get("/admin/members")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to API server at %s: %w", api.baseURL, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), resp.String())
	}
	return result.Data, nil
}
