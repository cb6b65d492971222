package search

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("gridnav.search")

var (
	searchTotal    metric.Int64Counter
	searchLatency  metric.Float64Histogram
	expandedNodes  metric.Int64Histogram
	metricsOnce    sync.Once
	metricsInitErr error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		searchTotal, err = meter.Int64Counter(
			"gridnav_search_total",
			metric.WithDescription("Total number of path searches"),
		)
		if err != nil {
			metricsInitErr = err
			return
		}

		searchLatency, err = meter.Float64Histogram(
			"gridnav_search_duration_seconds",
			metric.WithDescription("Duration of path searches"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsInitErr = err
			return
		}

		expandedNodes, err = meter.Int64Histogram(
			"gridnav_search_expanded_nodes",
			metric.WithDescription("Number of records expanded per search"),
		)
		if err != nil {
			metricsInitErr = err
			return
		}
	})
	return metricsInitErr
}

// recordSearchMetrics records metrics for one search.
func recordSearchMetrics(strategy Strategy, res Result, duration time.Duration) {
	if err := initMetrics(); err != nil {
		return
	}

	ctx := context.Background()
	attrs := metric.WithAttributes(
		attribute.String("strategy", strategy.String()),
		attribute.String("state", res.State.String()),
	)

	searchTotal.Add(ctx, 1, attrs)
	searchLatency.Record(ctx, duration.Seconds(), attrs)
	expandedNodes.Record(ctx, int64(res.Expanded), attrs)
}
