package model

type stepType string

const (
	StartStepType      stepType = "start"
	ValidationStepType stepType = "validation"
	ActionStepType     stepType = "action"
	EndStepType        stepType = "end"
)

// Outcome is the way a step ended.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeFaulted   Outcome = "faulted"
)

// StepInfo describes a step to the pipeline hooks.
type StepInfo struct {
	Type  stepType
	Name  string
	Field string
	// Weight is the weight declared for the step, before normalisation.
	Weight float64
	// Index is the position of the step in the pipeline, starting at 0.
	Index int
}

var (
	StartStep = &StepInfo{Type: StartStepType, Name: "start", Index: -1}
	EndStep   = &StepInfo{Type: EndStepType, Name: "end", Index: -1}
)
