package list

import (
	"context"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	XConcSllStatsName = "xlist/x-conc-sll"
)

type xConcSllStats struct {
	insertedCount metric.Int64Counter
	removedCount  metric.Int64Counter
	poppedCount   metric.Int64Counter
	teardownCount metric.Int64Counter
	liveLength    metric.Int64UpDownCounter
}

func (stats *xConcSllStats) IncreaseInsertedCount() {
	if stats == nil {
		return
	}
	stats.insertedCount.Add(context.Background(), 1)
}

func (stats *xConcSllStats) IncreaseRemovedCount() {
	if stats == nil {
		return
	}
	stats.removedCount.Add(context.Background(), 1)
}

func (stats *xConcSllStats) IncreasePoppedCount() {
	if stats == nil {
		return
	}
	stats.poppedCount.Add(context.Background(), 1)
}

func (stats *xConcSllStats) IncreaseTeardownCount() {
	if stats == nil {
		return
	}
	stats.teardownCount.Add(context.Background(), 1)
}

func (stats *xConcSllStats) IncreaseTeardownCountBy(delta int64) {
	if stats == nil || delta <= 0 {
		return
	}
	stats.teardownCount.Add(context.Background(), delta)
}

func (stats *xConcSllStats) RecordLengthChange(delta int64) {
	if stats == nil {
		return
	}
	stats.liveLength.Add(context.Background(), delta)
}

// WithXConcSllStats enables the per-list otel instruments. The meter
// provider set through the observability exporters collects them.
func WithXConcSllStats[T any]() XConcSllOption[T] {
	return func(sll *xConcSll[T]) {
		sll.stats = newXConcSllStats()
	}
}

func newXConcSllStats() *xConcSllStats {
	meter := otel.Meter(XConcSllStatsName)
	return &xConcSllStats{
		insertedCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xlist.sll.inserted.count",
			metric.WithDescription("The total count of the inserted values."),
		)),
		removedCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xlist.sll.removed.count",
			metric.WithDescription("The total count of the removed (torn down) values."),
		)),
		poppedCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xlist.sll.popped.count",
			metric.WithDescription("The total count of the popped values, ownership handed back."),
		)),
		teardownCount: lo.Must[metric.Int64Counter](meter.Int64Counter(
			"xlist.sll.teardown.count",
			metric.WithDescription("The total count of the teardown callback invocations."),
		)),
		liveLength: lo.Must[metric.Int64UpDownCounter](meter.Int64UpDownCounter(
			"xlist.sll.live.length",
			metric.WithDescription("The live node count of the list."),
		)),
	}
}
