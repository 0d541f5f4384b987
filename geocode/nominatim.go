// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jcodagnone/cerca/spatial"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// Nominatim geocodes through the OpenStreetMap Nominatim API.
// Nominatim's usage policy requires a descriptive User-Agent.
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// NewNominatim creates a Nominatim geocoder. A nil client gets a 10
// second timeout default.
func NewNominatim(userAgent string, client *http.Client) *Nominatim {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Nominatim{
		baseURL:    defaultNominatimURL,
		userAgent:  userAgent,
		httpClient: client,
	}
}

// Nominatim serializes coordinates as strings.
type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (n *Nominatim) Name() string {
	return "nominatim"
}

func (n *Nominatim) Geocode(ctx context.Context, name string) (*Result, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building nominatim request: %w", err)
	}

	req.Header.Set("User-Agent", n.userAgent)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Type: ErrorTypeNetworkError, Message: "nominatim request failed", Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ClassifyHTTPStatus(resp.StatusCode)
	}

	var results []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("decoding nominatim response: %w", err)
	}

	if len(results) == 0 {
		return nil, ErrNoResults
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing nominatim latitude %q: %w", results[0].Lat, err)
	}

	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing nominatim longitude %q: %w", results[0].Lon, err)
	}

	return &Result{
		Point:       spatial.Point{Lat: lat, Lng: lng},
		Provider:    n.Name(),
		DisplayName: results[0].DisplayName,
	}, nil
}
