package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/xerrors"
)

// NewMetricsHandler returns a handler that exposes the collectors in the
// Prometheus text format.
func NewMetricsHandler(collectors ...prometheus.Collector) (http.Handler, error) {
	registry := prometheus.NewRegistry()

	for _, c := range collectors {
		err := registry.Register(c)
		if err != nil {
			return nil, xerrors.Errorf("failed to register: %v", err)
		}
	}

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil
}
