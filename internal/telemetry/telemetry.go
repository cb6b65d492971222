// Package telemetry wires the OpenTelemetry meter provider and exposes its
// metrics in the Prometheus text format.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

var (
	// ErrNilContext is returned by Init when ctx is nil.
	ErrNilContext = errors.New("nil context")

	// ErrUnknownExporter is returned for exporter names other than
	// "prometheus" and "none".
	ErrUnknownExporter = errors.New("unknown metric exporter")
)

// Config selects the exporter and names the service.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// MetricExporter is "prometheus" or "none".
	MetricExporter string
}

// Provider owns the installed meter provider.
type Provider struct {
	handler  http.Handler
	shutdown func(context.Context) error
}

// Init installs a global meter provider. With the prometheus exporter the
// metrics are collected into a private registry served by Handler; with
// "none" the global no-op provider stays in place.
//
// Thread Safety: Call once at application startup.
func Init(ctx context.Context, cfg Config) (*Provider, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}

	switch cfg.MetricExporter {
	case "", "none":
		return &Provider{shutdown: func(context.Context) error { return nil }}, nil
	case "prometheus":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownExporter, cfg.MetricExporter)
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	registry := prometheus.NewRegistry()
	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(exporter),
	)
	otel.SetMeterProvider(mp)

	return &Provider{
		handler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		shutdown: mp.Shutdown,
	}, nil
}

// Handler returns the /metrics handler, nil when metrics are disabled.
func (p *Provider) Handler() http.Handler {
	return p.handler
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}
