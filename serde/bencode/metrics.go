package bencode

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.dedis.ch/benc"
)

var (
	promValues = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "benc_bencode_values_total",
		Help: "total number of values marshaled by the bencode engine",
	})

	promFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "benc_bencode_failures_total",
		Help: "total number of values the bencode engine failed to marshal",
	}, []string{"kind"})

	promOutputSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "benc_bencode_output_bytes",
		Help:    "size of the bencode output",
		Buckets: prometheus.ExponentialBuckets(16, 4, 8),
	})
)

func init() {
	benc.PromCollectors = append(benc.PromCollectors, promValues, promFailures,
		promOutputSize)
}
