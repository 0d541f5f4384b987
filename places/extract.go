// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/jcodagnone/cerca/spatial"
)

// URL shapes carrying coordinates. Each component accepts an optional
// leading minus sign and a decimal fraction.
var (
	rePair    = regexp.MustCompile(`^\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*$`)
	reAt      = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	rePlaceAt = regexp.MustCompile(`/place/[^/]+/@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)
	rePlace   = regexp.MustCompile(`/place/([^/@?#]+)`)
)

func parsePair(a, b string) (*spatial.Point, bool) {
	lat, err1 := strconv.ParseFloat(a, 64)
	lng, err2 := strconv.ParseFloat(b, 64)

	if err1 != nil || err2 != nil {
		return nil, false
	}

	return &spatial.Point{Lat: lat, Lng: lng}, true
}

func fromQueryParam(key string) func(string) (*spatial.Point, bool) {
	return func(s string) (*spatial.Point, bool) {
		u, err := url.Parse(s)
		if err != nil {
			return nil, false
		}

		v := u.Query().Get(key)
		if v == "" {
			return nil, false
		}

		m := rePair.FindStringSubmatch(v)
		if m == nil {
			return nil, false
		}

		return parsePair(m[1], m[2])
	}
}

func fromAtMarker(s string) (*spatial.Point, bool) {
	m := reAt.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}

	return parsePair(m[1], m[2])
}

func fromPlaceMarker(s string) (*spatial.Point, bool) {
	m := rePlaceAt.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}

	return parsePair(m[1], m[2])
}

// ordered by priority; the first successful strategy wins.
var extractors = []func(string) (*spatial.Point, bool){
	fromQueryParam("q"),
	fromAtMarker,
	fromPlaceMarker,
	fromQueryParam("ll"),
}

// ExtractCoordinates parses a location-sharing URL for embedded coordinates.
// It is pure and performs no network access; URLs matching none of the known
// shapes yield false.
func ExtractCoordinates(rawURL string) (*spatial.Point, bool) {
	for _, extract := range extractors {
		if pt, ok := extract(rawURL); ok && pt.Valid() {
			return pt, true
		}
	}

	return nil, false
}

// PlaceNameFromURL pulls a place name embedded in the URL path, e.g.
// "/maps/place/Mercado+del+Puerto/...". Returns the empty string when the
// URL carries none.
func PlaceNameFromURL(rawURL string) string {
	m := rePlace.FindStringSubmatch(rawURL)
	if m == nil {
		return ""
	}

	name := strings.ReplaceAll(m[1], "+", " ")

	if decoded, err := url.PathUnescape(name); err == nil {
		name = decoded
	}

	return strings.TrimSpace(name)
}
