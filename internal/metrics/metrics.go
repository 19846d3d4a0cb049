package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IngestRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "filepipeline",
		Subsystem: "ingest",
		Name:      "records_total",
		Help:      "Processed object-creation notifications by disposition.",
	}, []string{"disposition"})

	StatusWriteFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "filepipeline",
		Subsystem: "ingest",
		Name:      "status_write_failures_total",
		Help:      "Swallowed bookkeeping failures, the record stays at its prior status.",
	})

	CompressionRatio = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "filepipeline",
		Subsystem: "ingest",
		Name:      "compression_ratio_percent",
		Help:      "Byte-size reduction of derivatives, negative when the derivative grew.",
		Buckets:   prometheus.LinearBuckets(-40, 10, 15),
	})
)
