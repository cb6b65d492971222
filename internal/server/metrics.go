package server

import (
	"context"
	"sync"

	"github.com/benedrone/gridnav/internal/search"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	routeTotal  metric.Int64Counter
	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		routeTotal, metricsErr = otel.Meter("gridnav.server").Int64Counter(
			"gridnav_route_requests_total",
			metric.WithDescription("Route requests by strategy and outcome"),
		)
	})
	return metricsErr
}

func recordRoute(strategy search.Strategy, outcome string) {
	if err := initMetrics(); err != nil {
		return
	}
	routeTotal.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("strategy", strategy.String()),
		attribute.String("outcome", outcome),
	))
}
