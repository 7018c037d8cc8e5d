package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	advancementRecordsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoutsync_advancement_records_created_total",
		Help: "Advancement records created by imports, by kind.",
	}, []string{"kind"})

	advancementRecordsUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoutsync_advancement_records_updated_total",
		Help: "Advancement records updated by imports.",
	})

	advancementImportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoutsync_advancement_import_failures_total",
		Help: "Per-scout advancement import failures.",
	})

	advancementStagingWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoutsync_advancement_warnings_total",
		Help: "Structured warnings emitted by staging and import, by kind.",
	}, []string{"kind"})
)

func recordCreated(kind string) {
	advancementRecordsCreated.WithLabelValues(kind).Inc()
}

func recordUpdated() {
	advancementRecordsUpdated.Inc()
}

func recordFailure() {
	advancementImportFailures.Inc()
}

func recordWarning(kind string) {
	advancementStagingWarnings.WithLabelValues(kind).Inc()
}
