package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rosterMembersCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scoutsync_roster_members_created_total",
		Help: "Members created by roster imports, by kind.",
	}, []string{"kind"})

	rosterMembersUpdated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoutsync_roster_members_updated_total",
		Help: "Members updated by roster imports.",
	})

	rosterImportFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoutsync_roster_import_failures_total",
		Help: "Per-person roster import failures.",
	})

	rosterGuardianLinks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scoutsync_roster_guardian_links_created_total",
		Help: "Guardian links created by roster imports.",
	})
)

func recordMemberCreated(kind string) {
	rosterMembersCreated.WithLabelValues(kind).Inc()
}

func recordMemberUpdated() {
	rosterMembersUpdated.Inc()
}

func recordImportFailure() {
	rosterImportFailures.Inc()
}

func recordGuardianLink() {
	rosterGuardianLinks.Inc()
}
