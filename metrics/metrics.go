package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Loads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablegate_loads_total",
		Help: "Total number of dataset loads.",
	}, []string{"table", "status"})

	Saves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablegate_saves_total",
		Help: "Total number of dataset saves.",
	}, []string{"table", "mode", "status"})

	ExistenceChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablegate_existence_checks_total",
		Help: "Total number of existence checks by outcome.",
	}, []string{"outcome"})

	RowsSaved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tablegate_rows_saved_total",
		Help: "Total number of rows written through save.",
	}, []string{"table"})
)
