// Package bwh is a read-only client for the BandwagonHost billing API.
package bwh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/edvin/trafficbot/internal/model"
)

// Client fetches service info for one instance per call. One attempt,
// no retries, no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// serviceInfoResponse is the provider's wire schema. The error field is 0
// on success; on failure message carries the provider's description.
type serviceInfoResponse struct {
	Error   int    `json:"error"`
	Message string `json:"message"`
	model.ServiceInfo
}

// ServiceInfo calls getServiceInfo for one instance. Failures are
// classified: *model.APIError when the provider (or the configuration)
// rejects the request, *model.TransportError when the provider cannot be
// reached. Transport errors carry a generic message so raw network error
// text never reaches a report.
func (c *Client) ServiceInfo(ctx context.Context, veid, apiKey string) (*model.ServiceInfo, error) {
	if veid == "" || apiKey == "" {
		fetchesTotal.WithLabelValues("api_error").Inc()
		return nil, &model.APIError{Message: "credentials not configured"}
	}

	q := url.Values{}
	q.Set("veid", veid)
	q.Set("api_key", apiKey)
	reqURL := fmt.Sprintf("%s/v1/getServiceInfo?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		fetchesTotal.WithLabelValues("transport_error").Inc()
		return nil, &model.TransportError{Message: "invalid provider request"}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		fetchesTotal.WithLabelValues("transport_error").Inc()
		return nil, &model.TransportError{Message: "provider unreachable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		fetchesTotal.WithLabelValues("transport_error").Inc()
		return nil, &model.TransportError{Message: fmt.Sprintf("provider returned status %d", resp.StatusCode)}
	}

	var body serviceInfoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		fetchesTotal.WithLabelValues("transport_error").Inc()
		return nil, &model.TransportError{Message: "invalid provider response"}
	}

	if body.Error != 0 {
		msg := body.Message
		if msg == "" {
			msg = "unknown API error"
		}
		fetchesTotal.WithLabelValues("api_error").Inc()
		return nil, &model.APIError{Message: msg}
	}

	fetchesTotal.WithLabelValues("ok").Inc()
	info := body.ServiceInfo
	return &info, nil
}
