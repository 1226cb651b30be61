package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Счетчики бизнес-событий, экспортируются на /metrics

var (
	// EntriesTotal - количество успешных въездов
	EntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parklot_entries_total",
		Help: "Total number of successful vehicle entries",
	})

	// EntriesRejectedTotal - количество отклоненных въездов по причинам
	EntriesRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parklot_entries_rejected_total",
		Help: "Total number of rejected entry attempts",
	}, []string{"reason"})

	// ExitsTotal - количество завершенных выездов
	ExitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parklot_exits_total",
		Help: "Total number of settled exits",
	})

	// FinesIssuedTotal - количество выписанных штрафов по типам
	FinesIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parklot_fines_issued_total",
		Help: "Total number of fines issued",
	}, []string{"type"})

	// RevenueTotal - накопленная выручка
	RevenueTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parklot_revenue_total",
		Help: "Total revenue collected at exit",
	})
)
