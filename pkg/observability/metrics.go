package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter and installs the
// resulting MeterProvider as the global provider.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(_ MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, err
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(provider)

	handler := promhttp.Handler()

	return provider, handler, nil
}
