package drawer

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-stepflow/pkg/stepflow/measure"
	"github.com/askiada/go-stepflow/pkg/stepflow/model"
)

type pipelineDrawer struct {
	Drawer
	m measure.Measure

	mu       sync.Mutex
	lastStep string
}

func (pd *pipelineDrawer) New() error {
	err := pd.AddStep(model.StartStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add start step to drawer")
	}

	err = pd.AddStep(model.EndStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to add end step to drawer")
	}

	pd.lastStep = model.StartStep.Name

	return nil
}

func (pd *pipelineDrawer) PrepareStep(parentStep, step *model.StepInfo) error {
	pd.mu.Lock()
	defer pd.mu.Unlock()

	err := pd.AddStep(step.Name)
	if err != nil {
		return err
	}

	err = pd.AddLink(parentStep.Name, step.Name)
	if err != nil {
		return err
	}

	pd.lastStep = step.Name

	return nil
}

func (pd *pipelineDrawer) OnStepStart(_ *model.StepInfo) error {
	return nil
}

func (pd *pipelineDrawer) OnStepEnd(step *model.StepInfo, _ time.Duration, outcome model.Outcome) error {
	pd.mu.Lock()
	defer pd.mu.Unlock()

	return pd.SetOutcome(step.Name, outcome)
}

func (pd *pipelineDrawer) Finish(state string, totalDuration time.Duration) error {
	pd.mu.Lock()
	defer pd.mu.Unlock()

	err := pd.AddLink(pd.lastStep, model.EndStep.Name)
	if err != nil {
		return errors.Wrap(err, "unable to link end step")
	}

	if pd.m != nil {
		err = pd.AddMeasure(pd.m)
		if err != nil {
			return errors.Wrap(err, "unable to add measure")
		}
	}

	err = pd.SetLabel(model.EndStep.Name, state+", "+totalDuration.Round(time.Millisecond).String())
	if err != nil {
		return errors.Wrap(err, "unable to set total time")
	}

	err = pd.SetOutcome(model.EndStep.Name, model.Outcome(state))
	if err != nil {
		return errors.Wrap(err, "unable to set end outcome")
	}

	err = pd.Draw()
	if err != nil {
		return errors.Wrap(err, "unable to draw pipeline")
	}

	return nil
}

// PipelineDrawer returns a hook drawing the pipeline once a run finished. measure may be nil.
func PipelineDrawer(drawer Drawer, measure measure.Measure) model.PipelineOption {
	return &pipelineDrawer{Drawer: drawer, m: measure}
}
