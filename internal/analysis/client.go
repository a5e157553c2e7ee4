package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "http://127.0.0.1:8000"

// Client calls the property analysis service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a Client for the analysis service at baseURL. An
// empty baseURL selects the local development default. A zero timeout
// leaves the transport default in place; the analysis pipeline can run
// for minutes on image-heavy listings.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// APIError is a non-success response from the analysis service. The
// body text is kept verbatim; the service has no structured error schema.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("analysis failed with status %d: %s", e.StatusCode, e.Body)
}

type analyzeRequest struct {
	Link           string `json:"link"`
	RentalStrategy string `json:"rental_strategy,omitempty"`
}

// AnalyzeOptions are optional knobs forwarded to the analysis pipeline.
type AnalyzeOptions struct {
	// RentalStrategy is "whole_apartment" or "by_room"; empty leaves
	// the service default.
	RentalStrategy string
}

// Analyze submits a listing URL for analysis and returns the raw
// response body of a successful call. The link is sent exactly as
// given; callers decide how much validation it gets beforehand.
func (c *Client) Analyze(ctx context.Context, link string, opts *AnalyzeOptions) ([]byte, error) {
	reqBody := analyzeRequest{Link: link}
	if opts != nil {
		reqBody.RentalStrategy = opts.RentalStrategy
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/analyze", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return body, nil
}
