// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

// Package places handles saved-places ingestion and coordinate extraction.
package places

import (
	"github.com/jcodagnone/cerca/spatial"
)

// Record is a single saved place as read from the input file. The pipeline
// fills PlaceName and Point as resolution progresses; records without a
// resolved Point never reach the ranked output.
type Record struct {
	Name      string         `json:"name"`
	URL       string         `json:"url"`
	PlaceName string         `json:"place_name,omitempty"` // geocoding key when the URL carries no coordinates
	Point     *spatial.Point `json:"point,omitempty"`
}
