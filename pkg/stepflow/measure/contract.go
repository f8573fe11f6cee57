package measure

import (
	"time"

	"github.com/askiada/go-stepflow/pkg/stepflow/model"
)

// Measure stores one metric per step.
type Measure interface {
	AddMetric(name string) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric collects the durations and the last outcome of a step.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AVGDuration() time.Duration
	Runs() int64
	SetOutcome(outcome model.Outcome)
	Outcome() model.Outcome
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
