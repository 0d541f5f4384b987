// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocode resolves place names to coordinates through a chain of
// providers backed by a persistent cache.
package geocode

import (
	"context"

	"github.com/jcodagnone/cerca/spatial"
)

// Result represents a geocoding result from any provider.
type Result struct {
	Point       spatial.Point
	Provider    string
	DisplayName string
}

// Geocoder interface for different geocoding providers.
type Geocoder interface {
	// Name identifies the provider in diagnostics.
	Name() string

	// Geocode resolves a free-text place name. Providers return
	// ErrNoResults when the lookup succeeded but found no candidate.
	Geocode(ctx context.Context, name string) (*Result, error)
}
