package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"rentier/internal/errors"
	"rentier/internal/model"
)

// Features is the exact shape the pre-trained estimator expects. Field names
// are part of the oracle's contract and must not drift from the entry fields.
type Features struct {
	Beds          int     `json:"beds"`
	Bathrooms     float64 `json:"bathrooms"`
	Accomodates   int     `json:"accomodates"`
	MinimumNights int     `json:"minimum_nights"`
	RoomType      string  `json:"room_type"`
	Neighborhood  string  `json:"neighborhood"`
	Wifi          bool    `json:"wifi"`
	Elevator      bool    `json:"elevator"`
	Pool          bool    `json:"pool"`
}

// FeaturesFromInput assembles the oracle feature vector from validated entry
// input. Optional fields (actual price, link) are not features.
func FeaturesFromInput(in model.EntryInput) Features {
	return Features{
		Beds:          in.Beds,
		Bathrooms:     in.Bathrooms,
		Accomodates:   in.Accomodates,
		MinimumNights: in.MinimumNights,
		RoomType:      in.RoomType,
		Neighborhood:  in.Neighborhood,
		Wifi:          in.Wifi,
		Elevator:      in.Elevator,
		Pool:          in.Pool,
	}
}

// Oracle is the price-estimation black box: features in, positive price out.
type Oracle interface {
	Predict(ctx context.Context, features Features) (float64, error)
}

// HTTPClient calls a remote estimator over HTTP JSON. The estimator is
// outside this service's control, so every call carries a deadline and every
// failure is wrapped into an OracleError rather than propagated raw.
type HTTPClient struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPClient creates an oracle client for the given endpoint.
func NewHTTPClient(url string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:     url,
		timeout: timeout,
		client:  &http.Client{},
	}
}

type predictResponse struct {
	Prediction float64 `json:"prediction"`
}

// Predict posts the feature vector and returns the estimated nightly price.
func (c *HTTPClient) Predict(ctx context.Context, features Features) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(features)
	if err != nil {
		return 0, &errors.OracleError{Err: fmt.Errorf("encode features: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, &errors.OracleError{Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, &errors.OracleError{Timeout: ctx.Err() == context.DeadlineExceeded, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &errors.OracleError{Err: fmt.Errorf("estimator returned status %d", resp.StatusCode)}
	}

	var body predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, &errors.OracleError{Err: fmt.Errorf("decode response: %w", err)}
	}
	if body.Prediction <= 0 {
		return 0, &errors.OracleError{Err: fmt.Errorf("estimator returned non-positive price %v", body.Prediction)}
	}
	return body.Prediction, nil
}
