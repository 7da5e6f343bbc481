// Package metrics defines and registers the custom Prometheus metrics of the
// record admin service. It is the single source of truth for metric names,
// labels and help strings.
//
// Metrics are registered with the default registry on package load; the
// HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "records"

// ── Storage metrics ───────────────────────────────────────────────────────────

// RecordsMutatedTotal counts successful writes.
// Labels:
//   - collection: "users" or "products"
//   - op: "create", "update" or "delete"
var RecordsMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutated_total",
		Help:      "Total number of records created, updated or deleted.",
	},
	[]string{"collection", "op"},
)

// StorageErrorsTotal counts key-value store failures.
// Labels:
//   - collection: "users" or "products"
//   - path: "read" (swallowed, served empty) or "write" (returned to caller)
var StorageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "storage_errors_total",
		Help:      "Total number of key-value store failures, by access path.",
	},
	[]string{"collection", "path"},
)

// CorruptPayloadsTotal counts stored blobs that failed to decode and were
// treated as empty collections.
var CorruptPayloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "corrupt_payloads_total",
		Help:      "Total number of undecodable collection payloads read from the store.",
	},
	[]string{"collection"},
)

// ── Presentation metrics ──────────────────────────────────────────────────────

// ValidationFailuresTotal counts rejected form submissions.
// Label:
//   - form: "user" or "product"
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of form submissions rejected by validation.",
	},
	[]string{"form"},
)

// AttachmentsTotal counts image uploads.
// Labels:
//   - collection: "users" or "products"
//   - result: "accepted" or "ignored" (not an image)
var AttachmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attachments_total",
		Help:      "Total number of image uploads, by outcome.",
	},
	[]string{"collection", "result"},
)

// SeededRecordsTotal counts sample records written by the seeder.
var SeededRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seeded_total",
		Help:      "Total number of sample records written on first start.",
	},
	[]string{"collection"},
)
