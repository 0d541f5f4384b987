// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package rank

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jcodagnone/cerca/places"
	"github.com/jcodagnone/cerca/spatial"
)

// Server exposes the ranking pipeline over HTTP.
type Server struct {
	pipeline *Pipeline
}

// NewServer creates an HTTP facade for the pipeline.
func NewServer(pipeline *Pipeline) *Server {
	return &Server{pipeline: pipeline}
}

// Register mounts the API routes on the router.
func (s *Server) Register(router *gin.Engine) {
	router.GET("/api/health", s.health)
	router.POST("/api/rank", s.rank)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// rank accepts a CSV body of place references and query parameters
// lat, lng and top. It responds with the nearest places as JSON.
func (s *Server) rank(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat parameter"})

		return
	}

	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lng parameter"})

		return
	}

	origin := spatial.Point{Lat: lat, Lng: lng}
	if !origin.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "origin out of range"})

		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reading body: " + err.Error()})

		return
	}

	records := places.ParseCSV(string(body))

	opts := s.pipeline.opts
	if top := c.Query("top"); top != "" {
		k, err := strconv.Atoi(top)
		if err != nil || k <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid top parameter"})

			return
		}

		opts.TopK = k
	}

	pipeline := NewPipeline(s.pipeline.resolver, opts)

	ranked, err := pipeline.Run(c.Request.Context(), origin, records)

	switch {
	case errors.Is(err, ErrNoRecords):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNoCoordinates):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, gin.H{"origin": origin, "places": ranked})
	}
}
