package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReservationsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "edificios", Name: "reservations_created_total", Help: "Number of reservations successfully created."},
	)
	ReservationConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "edificios", Name: "reservation_conflicts_total", Help: "Number of reservation attempts rejected due to an overlapping slot."},
	)
	VotesCast = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "edificios", Name: "votes_cast_total", Help: "Number of ballots recorded."},
	)
	VotesRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "edificios", Name: "votes_rejected_total", Help: "Number of rejected ballots by reason."},
		[]string{"reason"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "edificios", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "edificios", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(ReservationsCreated)
	reg.MustRegister(ReservationConflicts)
	reg.MustRegister(VotesCast)
	reg.MustRegister(VotesRejected)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
