// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

// Package rank turns a list of place references into the nearest places
// relative to an origin.
package rank

import (
	"context"
	"errors"
	"log"
	"sort"

	"github.com/uber/h3-go/v4"

	"github.com/jcodagnone/cerca/geocode"
	"github.com/jcodagnone/cerca/places"
	"github.com/jcodagnone/cerca/spatial"
)

var (
	// ErrNoRecords means the input had no usable place references.
	ErrNoRecords = errors.New("no place references in input")

	// ErrNoCoordinates means no reference could be resolved to a position.
	ErrNoCoordinates = errors.New("no place could be resolved to coordinates")
)

// DefaultTopK is how many nearest places are reported.
const DefaultTopK = 4

// h3Resolution indexes ranked places at roughly neighborhood scale.
const h3Resolution = 9

// Place is a ranked place with its position relative to the origin.
type Place struct {
	Name       string        `json:"name"`
	URL        string        `json:"url"`
	Point      spatial.Point `json:"point"`
	DistanceKm float64       `json:"distance_km"`
	Distance   string        `json:"distance"`
	Bearing    float64       `json:"bearing"`
	Direction  string        `json:"direction"`
	H3Cell     string        `json:"h3_cell,omitempty"`
}

// Options tune a ranking run.
type Options struct {
	// TopK is how many places to report; zero or negative means
	// DefaultTopK.
	TopK int

	// Batch paces the geocoding of unresolved names.
	Batch geocode.BatchOptions
}

func (o Options) topK() int {
	if o.TopK <= 0 {
		return DefaultTopK
	}

	return o.TopK
}

// Pipeline ranks place references by distance from an origin.
type Pipeline struct {
	resolver *geocode.Resolver
	opts     Options
}

// NewPipeline creates a ranking pipeline over the given resolver.
func NewPipeline(resolver *geocode.Resolver, opts Options) *Pipeline {
	return &Pipeline{
		resolver: resolver,
		opts:     opts,
	}
}

// Run resolves every record to coordinates, measures it against the
// origin and returns the nearest places in stable ascending distance
// order. Records that cannot be resolved are dropped with a log line.
func (p *Pipeline) Run(ctx context.Context, origin spatial.Point, records []*places.Record) ([]*Place, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	pending := p.extract(records)

	if len(pending) > 0 {
		p.resolve(ctx, pending)
	}

	ranked := make([]*Place, 0, len(records))

	for _, rec := range records {
		if rec.Point == nil {
			log.Printf("dropping %q: could not resolve a position", rec.Name)

			continue
		}

		ranked = append(ranked, p.measure(origin, rec))
	}

	if len(ranked) == 0 {
		return nil, ErrNoCoordinates
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if k := p.opts.topK(); len(ranked) > k {
		ranked = ranked[:k]
	}

	return ranked, nil
}

// extract fills in coordinates embedded in URLs and assigns each record
// its geocoding key. Returns the records still without a position.
func (p *Pipeline) extract(records []*places.Record) []*places.Record {
	var pending []*places.Record

	for _, rec := range records {
		if rec.PlaceName == "" {
			if name := places.PlaceNameFromURL(rec.URL); name != "" {
				rec.PlaceName = name
			} else {
				rec.PlaceName = rec.Name
			}
		}

		if rec.Point == nil {
			if pt, ok := places.ExtractCoordinates(rec.URL); ok {
				rec.Point = pt

				continue
			}

			pending = append(pending, rec)
		}
	}

	return pending
}

// resolve geocodes the pending records, deduplicating by place name so
// repeated references cost a single lookup.
func (p *Pipeline) resolve(ctx context.Context, pending []*places.Record) {
	seen := make(map[string]bool, len(pending))
	names := make([]string, 0, len(pending))

	for _, rec := range pending {
		if !seen[rec.PlaceName] {
			seen[rec.PlaceName] = true
			names = append(names, rec.PlaceName)
		}
	}

	resolved := p.resolver.ResolveAll(ctx, names, p.opts.Batch)

	for _, rec := range pending {
		if pt, ok := resolved[rec.PlaceName]; ok {
			point := pt
			rec.Point = &point
		}
	}
}

func (p *Pipeline) measure(origin spatial.Point, rec *places.Record) *Place {
	distance := origin.HaversineDistance(rec.Point)
	bearing := origin.InitialBearing(rec.Point)

	place := &Place{
		Name:       rec.Name,
		URL:        rec.URL,
		Point:      *rec.Point,
		DistanceKm: distance,
		Distance:   spatial.FormatDistance(distance),
		Bearing:    bearing,
		Direction:  spatial.Direction(bearing),
	}

	latLng := h3.NewLatLng(rec.Point.Lat, rec.Point.Lng)
	if cell, err := h3.LatLngToCell(latLng, h3Resolution); err == nil {
		place.H3Cell = cell.String()
	}

	return place
}
