package measure

import (
	"time"

	"github.com/askiada/go-stepflow/pkg/stepflow/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStep.Name)
	pm.AddMetric(model.EndStep.Name)

	return nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name)

	return nil
}

func (pm *pipelineMeasure) OnStepStart(_ *model.StepInfo) error {
	return nil
}

func (pm *pipelineMeasure) OnStepEnd(step *model.StepInfo, duration time.Duration, outcome model.Outcome) error {
	mt := pm.AddMetric(step.Name)
	mt.AddDuration(duration)
	mt.SetOutcome(outcome)

	return nil
}

func (pm *pipelineMeasure) Finish(state string, totalDuration time.Duration) error {
	mt := pm.AddMetric(model.EndStep.Name)
	mt.SetTotalDuration(totalDuration)
	mt.SetOutcome(model.Outcome(state))

	return nil
}

// PipelineMeasure returns a hook recording step durations and outcomes into measure.
func PipelineMeasure(measure Measure) model.PipelineOption {
	return &pipelineMeasure{measure}
}
