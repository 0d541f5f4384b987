// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package rank

import (
	"context"
	"fmt"
	"testing"

	"github.com/jcodagnone/cerca/geocode"
	"github.com/jcodagnone/cerca/places"
	"github.com/jcodagnone/cerca/spatial"
)

// tableGeocoder answers from a fixed table.
type tableGeocoder struct {
	points map[string]spatial.Point
	calls  int
}

func (g *tableGeocoder) Name() string {
	return "table"
}

func (g *tableGeocoder) Geocode(_ context.Context, name string) (*geocode.Result, error) {
	g.calls++

	pt, ok := g.points[name]
	if !ok {
		return nil, geocode.ErrNoResults
	}

	return &geocode.Result{Point: pt, Provider: "table"}, nil
}

func newPipeline(g geocode.Geocoder, opts Options) *Pipeline {
	opts.Batch.Delay = -1

	return NewPipeline(geocode.NewResolver(nil, g), opts)
}

// atURL builds a location URL with embedded coordinates.
func atURL(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps/@%g,%g,15z", lat, lng)
}

func TestRunOrdersByDistance(t *testing.T) {
	origin := spatial.Point{Lat: 37, Lng: -122}

	// Roughly 111 km per degree of latitude: offsets pick the order.
	records := []*places.Record{
		{Name: "far", URL: atURL(37.5, -122)},
		{Name: "near", URL: atURL(37.01, -122)},
		{Name: "middle", URL: atURL(37.1, -122)},
	}

	got, err := newPipeline(&tableGeocoder{}, Options{}).Run(context.Background(), origin, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantOrder := []string{"near", "middle", "far"}
	if len(got) != len(wantOrder) {
		t.Fatalf("got %d places, want %d", len(got), len(wantOrder))
	}

	for i, want := range wantOrder {
		if got[i].Name != want {
			t.Errorf("position %d = %q, want %q", i, got[i].Name, want)
		}
	}

	for i := 1; i < len(got); i++ {
		if got[i].DistanceKm < got[i-1].DistanceKm {
			t.Errorf("distances not ascending at %d: %f < %f", i, got[i].DistanceKm, got[i-1].DistanceKm)
		}
	}

	if got[0].Direction != "N" {
		t.Errorf("nearest direction = %q, want \"N\"", got[0].Direction)
	}

	if got[0].H3Cell == "" {
		t.Error("expected an H3 cell on ranked places")
	}
}

func TestRunTruncatesToTopK(t *testing.T) {
	origin := spatial.Point{Lat: 0, Lng: 0}

	var records []*places.Record
	for i := 1; i <= 7; i++ {
		records = append(records, &places.Record{
			Name: fmt.Sprintf("p%d", i),
			URL:  atURL(float64(i)*0.1, 0),
		})
	}

	got, err := newPipeline(&tableGeocoder{}, Options{}).Run(context.Background(), origin, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != DefaultTopK {
		t.Fatalf("got %d places, want the default %d", len(got), DefaultTopK)
	}

	custom, err := newPipeline(&tableGeocoder{}, Options{TopK: 2}).Run(context.Background(), origin, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(custom) != 2 {
		t.Fatalf("got %d places with TopK=2, want 2", len(custom))
	}
}

func TestRunStableOnTies(t *testing.T) {
	origin := spatial.Point{Lat: 0, Lng: 0}

	// Same position, so same distance: input order must survive.
	records := []*places.Record{
		{Name: "first", URL: atURL(0.1, 0)},
		{Name: "second", URL: atURL(0.1, 0)},
		{Name: "third", URL: atURL(0.1, 0)},
	}

	got, err := newPipeline(&tableGeocoder{}, Options{}).Run(context.Background(), origin, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, want := range []string{"first", "second", "third"} {
		if got[i].Name != want {
			t.Errorf("position %d = %q, want %q", i, got[i].Name, want)
		}
	}
}

func TestRunGeocodesWhenURLHasNoCoordinates(t *testing.T) {
	origin := spatial.Point{Lat: -34.9, Lng: -56.2}
	target := spatial.Point{Lat: -34.906, Lng: -56.199}

	g := &tableGeocoder{points: map[string]spatial.Point{
		"Mercado del Puerto": target,
	}}

	records := []*places.Record{
		{Name: "mercado", URL: "https://www.google.com/maps/place/Mercado+del+Puerto/data=xyz"},
	}

	got, err := newPipeline(g, Options{}).Run(context.Background(), origin, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("got %d places, want 1", len(got))
	}

	// The URL path name wins over the record name as geocoding key.
	if g.calls != 1 {
		t.Errorf("geocoder called %d times, want 1", g.calls)
	}

	if got[0].Point != target {
		t.Errorf("point = %v, want %v", got[0].Point, target)
	}
}

func TestRunDeduplicatesLookups(t *testing.T) {
	g := &tableGeocoder{points: map[string]spatial.Point{
		"Tickets": {Lat: 41.38, Lng: 2.16},
	}}

	records := []*places.Record{
		{Name: "a", URL: "https://maps.google.com/maps/place/Tickets/one"},
		{Name: "b", URL: "https://maps.google.com/maps/place/Tickets/two"},
	}

	got, err := newPipeline(g, Options{}).Run(context.Background(), spatial.Point{Lat: 41, Lng: 2}, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d places, want 2", len(got))
	}

	if g.calls != 1 {
		t.Errorf("geocoder called %d times, want 1 for a repeated name", g.calls)
	}
}

func TestRunNoRecords(t *testing.T) {
	_, err := newPipeline(&tableGeocoder{}, Options{}).Run(context.Background(), spatial.Point{}, nil)
	if err != ErrNoRecords {
		t.Fatalf("error = %v, want ErrNoRecords", err)
	}
}

func TestRunNoCoordinates(t *testing.T) {
	records := []*places.Record{
		{Name: "mystery", URL: "https://example.com/nothing-here"},
	}

	_, err := newPipeline(&tableGeocoder{}, Options{}).Run(context.Background(), spatial.Point{}, records)
	if err != ErrNoCoordinates {
		t.Fatalf("error = %v, want ErrNoCoordinates", err)
	}
}

func TestRunDropsUnresolvedKeepsRest(t *testing.T) {
	records := []*places.Record{
		{Name: "known", URL: atURL(1, 1)},
		{Name: "unknown", URL: "https://example.com/nothing-here"},
	}

	got, err := newPipeline(&tableGeocoder{}, Options{}).Run(context.Background(), spatial.Point{}, records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 || got[0].Name != "known" {
		t.Fatalf("got %v, want only the resolvable record", got)
	}
}
