package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	palletsSavedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wmsc_pallets_saved_total",
		Help: "Pallets persisted through intake or batch update.",
	})

	codeConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wmsc_sequence_code_conflicts_total",
		Help: "Sequence code allocations rejected by the uniqueness check.",
	})
)
