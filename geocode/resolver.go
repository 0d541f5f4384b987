// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"log"

	"github.com/jcodagnone/cerca/spatial"
)

// Resolver resolves place names against a cache first and then a chain
// of providers in order.
type Resolver struct {
	Cache     *FileCache
	Providers []Geocoder
}

// NewResolver creates a resolver. The cache may be nil to disable
// caching; providers are consulted in the order given.
func NewResolver(cache *FileCache, providers ...Geocoder) *Resolver {
	return &Resolver{
		Cache:     cache,
		Providers: providers,
	}
}

// Resolve returns the coordinates for a place name. A cache hit
// short-circuits the provider chain. The first provider success with
// in-range coordinates wins and is cached; failures and out-of-range
// results are logged and the next provider is tried. Returns false
// when every provider failed or had no usable candidate.
func (r *Resolver) Resolve(ctx context.Context, name string) (spatial.Point, bool) {
	if r.Cache != nil {
		if pt, ok := r.Cache.Get(name); ok {
			return pt, true
		}
	}

	for _, provider := range r.Providers {
		result, err := provider.Geocode(ctx, name)
		if err != nil {
			switch {
			case IsRateLimitError(err):
				log.Printf("%s: rate limited while geocoding %q: %v", provider.Name(), name, err)
			case IsTimeoutError(err):
				log.Printf("%s: timed out geocoding %q: %v", provider.Name(), name, err)
			default:
				log.Printf("%s: geocoding %q: %v", provider.Name(), name, err)
			}

			continue
		}

		if !result.Point.Valid() {
			log.Printf("%s: discarding out-of-range result for %q: %s", provider.Name(), name, result.Point)

			continue
		}

		if r.Cache != nil {
			r.Cache.Put(name, result.Point)
		}

		return result.Point, true
	}

	return spatial.Point{}, false
}
