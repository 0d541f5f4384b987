// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package locate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jcodagnone/cerca/spatial"
)

const defaultIPAPIURL = "http://ip-api.com/json/"

// IPAPI geolocates the caller's public IP through ip-api.com. The
// result is city-level at best, good enough as a ranking origin.
type IPAPI struct {
	baseURL    string
	httpClient *http.Client
}

// NewIPAPI creates an ip-api.com locator. A nil client gets a 10 second
// timeout default.
func NewIPAPI(client *http.Client) *IPAPI {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &IPAPI{
		baseURL:    defaultIPAPIURL,
		httpClient: client,
	}
}

type ipapiResponse struct {
	Status  string  `json:"status"` // success or fail
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
	Country string  `json:"country"`
}

func (p *IPAPI) Locate(ctx context.Context) (spatial.Point, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL, nil)
	if err != nil {
		return spatial.Point{}, fmt.Errorf("building ip-api request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return spatial.Point{}, fmt.Errorf("ip-api request failed: %w", err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return spatial.Point{}, fmt.Errorf("ip-api returned status %d", resp.StatusCode)
	}

	var ir ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&ir); err != nil {
		return spatial.Point{}, fmt.Errorf("decoding ip-api response: %w", err)
	}

	if ir.Status != "success" {
		return spatial.Point{}, fmt.Errorf("ip-api lookup failed: %s", ir.Message)
	}

	pt := spatial.Point{Lat: ir.Lat, Lng: ir.Lon}
	if !pt.Valid() {
		return spatial.Point{}, fmt.Errorf("ip-api returned invalid coordinates: %s", pt)
	}

	return pt, nil
}
