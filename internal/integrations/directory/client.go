// Package directory is the HTTP client for the dog/owner directory service.
// The reservation core uses it for exactly one thing: confirming that a dog
// belongs to the tenant making the request.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger is the logging interface accepted by the client.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client calls the directory service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient creates a directory client.
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetDog fetches a dog by id.
func (c *Client) GetDog(ctx context.Context, dogID int64) (*Dog, error) {
	url := fmt.Sprintf("%s/internal/dogs/%d", c.baseURL, dogID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fallthrough to decoding
	case http.StatusNotFound:
		return nil, ErrDogNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var dog Dog
	if err := json.NewDecoder(resp.Body).Decode(&dog); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &dog, nil
}

// BelongsToTenant reports whether the dog is owned by the given tenant.
// An unknown dog is reported as not belonging; directory outages surface
// as errors so the caller can refuse the booking rather than guess.
func (c *Client) BelongsToTenant(ctx context.Context, dogID, tenantID int64) (bool, error) {
	dog, err := c.GetDog(ctx, dogID)
	if err != nil {
		if err == ErrDogNotFound {
			c.log.Warn("BelongsToTenant: dog id=%d not found in directory", dogID)
			return false, nil
		}
		c.log.Error("BelongsToTenant: directory lookup failed for dog id=%d: %v", dogID, err)
		return false, err
	}
	return dog.TenantID == tenantID, nil
}
