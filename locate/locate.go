// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

// Package locate acquires the user's current position when none was
// given explicitly.
package locate

import (
	"context"

	"github.com/jcodagnone/cerca/spatial"
)

// Provider yields the caller's approximate position.
type Provider interface {
	Locate(ctx context.Context) (spatial.Point, error)
}
