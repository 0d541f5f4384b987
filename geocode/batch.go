// Copyright 2026 The Cerca Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"sync"
	"time"

	"github.com/jcodagnone/cerca/spatial"
)

const (
	// DefaultBatchSize is how many names are resolved concurrently
	// before pausing.
	DefaultBatchSize = 30

	// DefaultBatchDelay is the pause between batches, to stay
	// friendly with the public geocoding services.
	DefaultBatchDelay = 2 * time.Second
)

// Overridable in tests.
var sleep = time.Sleep

// BatchOptions control the pacing of ResolveAll.
type BatchOptions struct {
	// Size is the chunk size; zero or negative means DefaultBatchSize.
	Size int

	// Delay is the pause between chunks; zero means
	// DefaultBatchDelay, negative disables pacing.
	Delay time.Duration

	// Progress, when set, is invoked after each chunk with the number
	// of names attempted so far and the total.
	Progress func(resolved, total int)
}

func (o BatchOptions) size() int {
	if o.Size <= 0 {
		return DefaultBatchSize
	}

	return o.Size
}

func (o BatchOptions) delay() time.Duration {
	if o.Delay == 0 {
		return DefaultBatchDelay
	}

	if o.Delay < 0 {
		return 0
	}

	return o.Delay
}

// ResolveAll resolves every name through the resolver, fanning out each
// chunk concurrently and pausing between chunks. Names that could not
// be resolved are absent from the returned map.
func (r *Resolver) ResolveAll(ctx context.Context, names []string, opts BatchOptions) map[string]spatial.Point {
	results := make(map[string]spatial.Point, len(names))

	size := opts.size()
	delay := opts.delay()

	var mu sync.Mutex

	for start := 0; start < len(names); start += size {
		end := min(start+size, len(names))

		var wg sync.WaitGroup

		for _, name := range names[start:end] {
			wg.Add(1)

			go func(name string) {
				defer wg.Done()

				pt, ok := r.Resolve(ctx, name)
				if !ok {
					return
				}

				mu.Lock()
				results[name] = pt
				mu.Unlock()
			}(name)
		}

		wg.Wait()

		if opts.Progress != nil {
			opts.Progress(end, len(names))
		}

		if end < len(names) && delay > 0 {
			sleep(delay)
		}
	}

	return results
}
