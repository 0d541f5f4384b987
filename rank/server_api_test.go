// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package rank

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcodagnone/cerca/geocode"
	"github.com/jcodagnone/cerca/spatial"
)

func setupServerTest(t *testing.T, g geocode.Geocoder) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	router := gin.New()

	opts := Options{}
	opts.Batch.Delay = -1

	NewServer(NewPipeline(geocode.NewResolver(nil, g), opts)).Register(router)

	return router
}

func TestHealthAPI(t *testing.T) {
	router := setupServerTest(t, &tableGeocoder{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRankAPI(t *testing.T) {
	router := setupServerTest(t, &tableGeocoder{})

	const body = `name,url
far,"https://www.google.com/maps/@37.5,-122,15z"
near,"https://www.google.com/maps/@37.01,-122,15z"
`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/rank?lat=37&lng=-122", strings.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Origin spatial.Point `json:"origin"`
		Places []*Place      `json:"places"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Places, 2)
	assert.Equal(t, "near", resp.Places[0].Name)
	assert.Equal(t, "far", resp.Places[1].Name)
	assert.Equal(t, "N", resp.Places[0].Direction)
	assert.NotEmpty(t, resp.Places[0].Distance)
}

func TestRankAPITopParameter(t *testing.T) {
	router := setupServerTest(t, &tableGeocoder{})

	const body = `name,url
a,"https://www.google.com/maps/@1.1,0,15z"
b,"https://www.google.com/maps/@1.2,0,15z"
c,"https://www.google.com/maps/@1.3,0,15z"
`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/rank?lat=1&lng=0&top=1", strings.NewReader(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Places []*Place `json:"places"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Places, 1)
}

func TestRankAPIBadOrigin(t *testing.T) {
	router := setupServerTest(t, &tableGeocoder{})

	for _, query := range []string{"", "lat=abc&lng=0", "lat=91&lng=0", "lat=0&lng=0&top=0"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/rank?"+query, strings.NewReader("name,url\na,\"https://x/@1,1\"\n"))
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
	}
}

func TestRankAPIEmptyBody(t *testing.T) {
	router := setupServerTest(t, &tableGeocoder{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/rank?lat=0&lng=0", strings.NewReader(""))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRankAPINothingResolvable(t *testing.T) {
	router := setupServerTest(t, &tableGeocoder{})

	const body = `name,url
mystery,https://example.com/nothing-here
`

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/rank?lat=0&lng=0", strings.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
