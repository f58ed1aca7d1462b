// Package metrics defines and registers the custom Prometheus metrics for
// the document vault API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gin-gonic/gin"
)

const namespace = "docvault"

// SignupsTotal counts completed signups.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of users registered.",
	},
)

// SigninsTotal counts signin attempts.
// Label:
//   - result: "success", "not_found", or "unauthorized"
var SigninsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signins_total",
		Help:      "Total number of signin attempts, by result.",
	},
	[]string{"result"},
)

// DocumentsUploadedTotal counts successfully persisted document uploads.
var DocumentsUploadedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_uploaded_total",
		Help:      "Total number of documents uploaded and persisted.",
	},
)

// UploadErrorsTotal counts failed uploads.
// Label:
//   - reason: "storage", "conflict", or "persist"
var UploadErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upload_errors_total",
		Help:      "Total number of failed document uploads, by reason.",
	},
	[]string{"reason"},
)

// UploadDuration measures how long a document upload takes end-to-end,
// covering both the object write and the metadata insert.
var UploadDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_duration_seconds",
		Help:      "Duration of document uploads from first byte to persisted row.",
		Buckets:   prometheus.DefBuckets,
	},
)

// IngestionTransitionsTotal counts ingestion state transitions.
// Label:
//   - status: "IN_PROGRESS" (trigger), "COMPLETED", or "FAILED"
var IngestionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingestion_transitions_total",
		Help:      "Total number of ingestion state transitions, by resulting status.",
	},
	[]string{"status"},
)

// Handler exposes the default Prometheus registry on a gin route.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
