package model

import "time"

// PipelineOption defines the interface for pipeline hooks.
type PipelineOption interface {
	// New initialises the pipeline option.
	New() error

	pipelineStepOption

	// Finish runs once a run reached a terminal state, before the cleanup callback.
	Finish(state string, totalDuration time.Duration) error
}

// pipelineStepOption defines the interface for step hooks at the pipeline level.
type pipelineStepOption interface {
	// PrepareStep runs when the step is added to the pipeline.
	PrepareStep(parentStep, step *StepInfo) error
	// OnStepStart runs right before the step function is called.
	OnStepStart(step *StepInfo) error
	// OnStepEnd runs after the step function returned.
	OnStepEnd(step *StepInfo, duration time.Duration, outcome Outcome) error
}
