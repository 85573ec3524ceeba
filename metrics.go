package chillvec

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting container metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Only structural events are reported (resizes, frees, width upgrades,
// aborts); element reads and writes never call into the collector.
type MetricsCollector interface {
	// RecordResize is called after a backing region changes size.
	// oldBytes is 0 for a first allocation.
	RecordResize(oldBytes, newBytes int)

	// RecordFree is called after a backing region is released.
	RecordFree(bytes int)

	// RecordUpgrade is called after a CompactInts re-encodes its values.
	// count is the number of values that were widened.
	RecordUpgrade(from, to Width, count int)

	// RecordAbort is called right before the process is terminated.
	RecordAbort(err *AbortError)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordResize(int, int)           {}
func (NoopMetricsCollector) RecordFree(int)                  {}
func (NoopMetricsCollector) RecordUpgrade(Width, Width, int) {}
func (NoopMetricsCollector) RecordAbort(*AbortError)         {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	GrowCount       atomic.Int64
	ShrinkCount     atomic.Int64
	BytesGrown      atomic.Int64
	BytesShrunk     atomic.Int64
	FreeCount       atomic.Int64
	BytesFreed      atomic.Int64
	UpgradeCount    atomic.Int64
	ValuesReencoded atomic.Int64
	AbortCount      atomic.Int64
}

// RecordResize implements MetricsCollector.
func (b *BasicMetricsCollector) RecordResize(oldBytes, newBytes int) {
	if newBytes >= oldBytes {
		b.GrowCount.Add(1)
		b.BytesGrown.Add(int64(newBytes - oldBytes))
		return
	}
	b.ShrinkCount.Add(1)
	b.BytesShrunk.Add(int64(oldBytes - newBytes))
}

// RecordFree implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFree(bytes int) {
	b.FreeCount.Add(1)
	b.BytesFreed.Add(int64(bytes))
}

// RecordUpgrade implements MetricsCollector.
func (b *BasicMetricsCollector) RecordUpgrade(_, _ Width, count int) {
	b.UpgradeCount.Add(1)
	b.ValuesReencoded.Add(int64(count))
}

// RecordAbort implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAbort(*AbortError) {
	b.AbortCount.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	grows := b.GrowCount.Load()
	shrinks := b.ShrinkCount.Load()
	return BasicMetricsStats{
		ResizeCount:     grows + shrinks,
		GrowCount:       grows,
		ShrinkCount:     shrinks,
		BytesGrown:      b.BytesGrown.Load(),
		BytesShrunk:     b.BytesShrunk.Load(),
		FreeCount:       b.FreeCount.Load(),
		BytesFreed:      b.BytesFreed.Load(),
		UpgradeCount:    b.UpgradeCount.Load(),
		ValuesReencoded: b.ValuesReencoded.Load(),
		AbortCount:      b.AbortCount.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ResizeCount     int64
	GrowCount       int64
	ShrinkCount     int64
	BytesGrown      int64
	BytesShrunk     int64
	FreeCount       int64
	BytesFreed      int64
	UpgradeCount    int64
	ValuesReencoded int64
	AbortCount      int64
}
