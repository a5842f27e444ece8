// Package metrics expose les compteurs Prometheus du service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UploadsTotal compte les chargements réussis, par type de fichier.
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "planif",
		Name:      "uploads_total",
		Help:      "Fichiers chargés avec succès, par type.",
	}, []string{"kind"})

	// CalculationsTotal compte les calculs de plan aboutis.
	CalculationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planif",
		Name:      "calculations_total",
		Help:      "Calculs de réapprovisionnement aboutis.",
	})

	// CalculationDuration observe la durée d'un calcul complet.
	CalculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "planif",
		Name:      "calculation_duration_seconds",
		Help:      "Durée du calcul de réapprovisionnement.",
		Buckets:   prometheus.DefBuckets,
	})

	// SuggestionsTotal compte les suggestions de complément servies.
	SuggestionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planif",
		Name:      "suggestions_total",
		Help:      "Suggestions de complément de camion servies.",
	})

	// ChatRequestsTotal compte les questions posées au LLM.
	ChatRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "planif",
		Name:      "chat_requests_total",
		Help:      "Questions en langage naturel traitées.",
	})
)
