// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/jcodagnone/cerca/spatial"
)

const defaultPhotonURL = "https://photon.komoot.io/api"

// Photon geocodes through the komoot Photon API.
type Photon struct {
	baseURL    string
	httpClient *http.Client
}

// NewPhoton creates a Photon geocoder. A nil client gets a 10 second
// timeout default.
func NewPhoton(client *http.Client) *Photon {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return &Photon{
		baseURL:    defaultPhotonURL,
		httpClient: client,
	}
}

type photonResponse struct {
	Features []struct {
		Geometry struct {
			// GeoJSON order: longitude first.
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Name    string `json:"name"`
			City    string `json:"city"`
			Country string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

func (p *Photon) Name() string {
	return "photon"
}

func (p *Photon) Geocode(ctx context.Context, name string) (*Result, error) {
	params := url.Values{}
	params.Set("q", name)
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building photon request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Type: ErrorTypeNetworkError, Message: "photon request failed", Err: err}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ClassifyHTTPStatus(resp.StatusCode)
	}

	var pr photonResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decoding photon response: %w", err)
	}

	if len(pr.Features) == 0 {
		return nil, ErrNoResults
	}

	feature := pr.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return nil, ErrNoResults
	}

	return &Result{
		Point: spatial.Point{
			Lat: feature.Geometry.Coordinates[1],
			Lng: feature.Geometry.Coordinates[0],
		},
		Provider:    p.Name(),
		DisplayName: feature.Properties.Name,
	}, nil
}
