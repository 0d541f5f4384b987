// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	montevideo := Point{Lat: -34.9011, Lng: -56.1645}
	maldonado := Point{Lat: -34.9088, Lng: -54.9581}

	if d := montevideo.HaversineDistance(&montevideo); d != 0 {
		t.Fatalf("distance to self: expected 0, got %f", d)
	}

	ab := montevideo.HaversineDistance(&maldonado)
	ba := maldonado.HaversineDistance(&montevideo)

	if math.Abs(ab-ba) > ab*1e-9 {
		t.Fatalf("distance is not symmetric: %f vs %f", ab, ba)
	}

	// one degree of longitude at the equator
	a := Point{Lat: 0, Lng: 0}
	b := Point{Lat: 0, Lng: 1}

	if d := a.HaversineDistance(&b); math.Abs(d-111.19) > 0.01 {
		t.Fatalf("equator degree: expected ~111.19 km, got %f", d)
	}
}

func TestInitialBearing(t *testing.T) {
	origin := Point{Lat: 0, Lng: 0}

	tests := []struct {
		name string
		to   Point
		want float64
	}{
		{"due east", Point{Lat: 0, Lng: 1}, 90},
		{"due north", Point{Lat: 1, Lng: 0}, 0},
		{"due west", Point{Lat: 0, Lng: -1}, 270},
		{"due south", Point{Lat: -1, Lng: 0}, 180},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := origin.InitialBearing(&tc.to)
			if math.Abs(got-tc.want) > 1e-6 {
				t.Fatalf("bearing: expected %f, got %f", tc.want, got)
			}
		})
	}

	// bearings are not symmetric in general
	a := Point{Lat: 35, Lng: 45}
	b := Point{Lat: 35, Lng: 135}

	if ab, ba := a.InitialBearing(&b), b.InitialBearing(&a); math.Abs(ab-ba) < 1 {
		t.Fatalf("expected asymmetric bearings, got %f and %f", ab, ba)
	}
}

func TestDirection(t *testing.T) {
	tests := []struct {
		bearing float64
		want    string
	}{
		{0, "N"},
		{359.9, "N"},
		{180, "S"},
		{90, "E"},
		{22.5, "NNE"},
		{11.24, "N"},
		{11.26, "NNE"},
		{270, "W"},
		{337.5, "NNW"},
	}

	for _, tc := range tests {
		if got := Direction(tc.bearing); got != tc.want {
			t.Errorf("Direction(%v): expected %q, got %q", tc.bearing, tc.want, got)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		km   float64
		want string
	}{
		{0.5, "500 m"},
		{0.999, "999 m"},
		{3.26, "3.3 km"},
		{1, "1.0 km"},
		{9.99, "10.0 km"},
		{42.0, "42 km"},
		{42.6, "43 km"},
	}

	for _, tc := range tests {
		if got := FormatDistance(tc.km); got != tc.want {
			t.Errorf("FormatDistance(%v): expected %q, got %q", tc.km, tc.want, got)
		}
	}
}

func TestPointValid(t *testing.T) {
	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"origin", Point{}, true},
		{"montevideo", Point{Lat: -34.9011, Lng: -56.1645}, true},
		{"lat out of range", Point{Lat: 91, Lng: 0}, false},
		{"lng out of range", Point{Lat: 0, Lng: -181}, false},
		{"nan", Point{Lat: math.NaN(), Lng: 0}, false},
		{"inf", Point{Lat: 0, Lng: math.Inf(1)}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.point.Valid(); got != tc.want {
				t.Fatalf("Valid() = %v, want %v", got, tc.want)
			}
		})
	}
}
