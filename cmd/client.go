// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/jcodagnone/cerca/geocode"
	"github.com/jcodagnone/cerca/utils/httputils"
)

// googleKeyDisplayName matches the key provisioned for this project in
// Google Cloud.
const googleKeyDisplayName = "Cerca Geocoding Key"

type clientOptions struct {
	CachePath           string
	UseGoogle           bool
	EnableHTTPTrace     bool
	EnableHTTPBodyTrace bool
}

func userAgent() string {
	return fmt.Sprintf("cerca/%s (+https://github.com/jcodagnone/cerca)", Version)
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}

	return filepath.Join(dir, "cerca", "geocode.json")
}

// newHTTPClient assembles the shared transport: optional tracing plus
// the project User-Agent on every request.
func newHTTPClient(opts *clientOptions) *http.Client {
	var transport http.RoundTripper = http.DefaultTransport

	if opts.EnableHTTPTrace || opts.EnableHTTPBodyTrace {
		transport = &httputils.LoggingRoundTripper{
			Transport: transport,
			Writer:    os.Stderr,
			DumpBody:  opts.EnableHTTPBodyTrace,
		}
	}

	transport = &httputils.AppendRequestHeadersRoundTripper{
		Transport: transport,
		Headers: map[string]string{
			"User-Agent": userAgent(),
		},
	}

	return &http.Client{
		Transport: transport,
		Timeout:   10 * time.Second,
	}
}

// newResolver builds the provider chain: Photon first, Nominatim as
// fallback, Google Maps last when a key is available.
func newResolver(ctx context.Context, opts *clientOptions) *geocode.Resolver {
	client := newHTTPClient(opts)

	providers := []geocode.Geocoder{
		geocode.NewPhoton(client),
		geocode.NewNominatim(userAgent(), client),
	}

	apiKey := os.Getenv("GOOGLE_MAPS_API_KEY")
	if apiKey == "" && opts.UseGoogle {
		var err error

		apiKey, err = geocode.APIKeyFromADC(ctx, googleKeyDisplayName)
		if err != nil {
			log.Printf("google maps disabled, no API key via ADC: %v", err)
		}
	}

	if apiKey != "" {
		providers = append(providers, geocode.NewGoogleMaps(apiKey, client))
	}

	cachePath := opts.CachePath
	if cachePath == "" {
		cachePath = defaultCachePath()
	}

	return geocode.NewResolver(geocode.NewFileCache(cachePath), providers...)
}
