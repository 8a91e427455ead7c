package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TakeoffsComputed counts estimate computations served.
	TakeoffsComputed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "obrakit_takeoffs_computed_total",
		Help: "Number of quantity-takeoff estimates computed.",
	})

	// UnitConversions counts successful registry conversions.
	UnitConversions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "obrakit_unit_conversions_total",
		Help: "Number of successful unit conversions.",
	})

	// ConversionFailures counts rejected conversions (cross-category,
	// unknown unit).
	ConversionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "obrakit_unit_conversion_failures_total",
		Help: "Number of rejected unit conversions.",
	})
)
