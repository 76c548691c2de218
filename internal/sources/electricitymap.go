package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/veronicaguo/electricitymap-contrib/internal/logger"
	"github.com/veronicaguo/electricitymap-contrib/internal/models"
)

// Client fetches zone history from the electricity map API.
type Client struct {
	http    *resty.Client
	baseURL string
	token   string
}

// NewClient creates an API client. The token may be empty for endpoints that
// do not require authentication.
func NewClient(baseURL, token string) *Client {
	http := resty.New()
	http.SetTimeout(30 * time.Second)
	http.SetRetryCount(3)
	http.SetRetryWaitTime(2 * time.Second)

	return &Client{
		http:    http,
		baseURL: baseURL,
		token:   token,
	}
}

// FetchZoneDetails fetches and normalizes the hourly history for a zone.
func (c *Client) FetchZoneDetails(ctx context.Context, zoneID string) (*models.ZoneDetails, error) {
	url := fmt.Sprintf("%s/v8/details/hourly/%s", c.baseURL, zoneID)
	logger.Debugf("Fetching zone details from %s", url)

	req := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json")
	if c.token != "" {
		req.SetHeader("auth-token", c.token)
	}

	resp, err := req.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch zone %s: %w", zoneID, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("zone API returned status %d for %s", resp.StatusCode(), zoneID)
	}

	var details models.ZoneDetails
	if err := json.Unmarshal(resp.Body(), &details); err != nil {
		return nil, fmt.Errorf("failed to parse zone %s response: %w", zoneID, err)
	}
	if details.ZoneID == "" {
		details.ZoneID = zoneID
	}

	NormalizeZoneDetails(&details)
	logger.Infof("Fetched %d history records for zone %s", len(details.History), details.ZoneID)
	return &details, nil
}
