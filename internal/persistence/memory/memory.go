// Package memory provides the seeded in-memory repositories that stand in
// for a real backend. Every operation waits a configurable artificial delay
// before touching its list, modelling a network round-trip rather than real
// I/O. Lists are mutex-guarded; interleaved mutations on the same record are
// last-write-wins in completion order.
package memory

import (
	"context"
	"time"
)

// wait blocks for the simulated network latency, aborting early when the
// caller's context is cancelled.
func wait(ctx context.Context, latency time.Duration) error {
	if latency <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}

func cloneStringPtr(value *string) *string {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}

func cloneIntPtr(value *int) *int {
	if value == nil {
		return nil
	}
	clone := *value
	return &clone
}
