package stepflow

import (
	"context"
	"math"

	"github.com/pkg/errors"

	"github.com/askiada/go-stepflow/pkg/stepflow/model"
)

// StepFn runs a step against cfg and returns the configuration handed to the next step.
type StepFn[C any] func(ctx context.Context, cfg C) (C, error)

// CheckFn validates cfg. It returns false and a reason when cfg is not valid.
// A non nil error is treated as a fault, not as a validation failure.
type CheckFn[C any] func(ctx context.Context, cfg C) (bool, string, error)

// Step is a named unit of work of a pipeline.
type Step[C any] struct {
	Name    string
	Weight  float64
	Run     StepFn[C]
	details *model.StepInfo
}

func prepareStep[C any](p *Pipeline[C], name string, stepType model.StepInfo, stepFn StepFn[C], opts ...StepOption[C]) (*Step[C], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	if name == "" {
		return nil, ErrStepNameMustBeSet
	}

	if stepFn == nil {
		return nil, ErrStepFnMustBeSet
	}

	// start and end name the bounds of the run in hooks
	if name == model.StartStep.Name || name == model.EndStep.Name {
		return nil, errors.Wrap(ErrReservedStepName, name)
	}

	if _, ok := p.names[name]; ok {
		return nil, errors.Wrap(ErrDuplicateStep, name)
	}

	step := &Step[C]{
		Name: name,
		Run:  stepFn,
	}
	for _, opt := range opts {
		opt(step)
	}

	if math.IsNaN(step.Weight) || math.IsInf(step.Weight, 0) {
		return nil, errors.Wrapf(ErrInvalidWeight, "step %s", name)
	}

	if step.Weight < 0 {
		return nil, errors.Wrapf(ErrNegativeWeight, "step %s", name)
	}

	step.details = &model.StepInfo{
		Type:   stepType.Type,
		Name:   name,
		Field:  stepType.Field,
		Weight: step.Weight,
		Index:  len(p.steps),
	}

	parent := model.StartStep
	if len(p.steps) > 0 {
		parent = p.steps[len(p.steps)-1].details
	}

	for _, opt := range p.opts {
		err := opt.PrepareStep(parent, step.details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run prepare step function")
		}
	}

	return step, nil
}

func addStep[C any](p *Pipeline[C], step *Step[C]) {
	p.steps = append(p.steps, step)
	p.names[step.Name] = struct{}{}
}

// AddStep appends an action step to the pipeline.
// The action reports a failure by returning an ExecutionError or a ValidationError.
func AddStep[C any](p *Pipeline[C], name string, stepFn StepFn[C], opts ...StepOption[C]) error {
	step, err := prepareStep(p, name, model.StepInfo{Type: model.ActionStepType}, stepFn, opts...)
	if err != nil {
		return err
	}

	addStep(p, step)

	return nil
}

// AddValidation appends a validation step checking field. The configuration is left untouched.
func AddValidation[C any](p *Pipeline[C], name, field string, checkFn CheckFn[C], opts ...StepOption[C]) error {
	if checkFn == nil {
		return ErrStepFnMustBeSet
	}

	stepFn := func(ctx context.Context, cfg C) (C, error) {
		ok, reason, err := checkFn(ctx, cfg)
		if err != nil {
			return cfg, err
		}

		if !ok {
			return cfg, NewValidationError(field, reason)
		}

		return cfg, nil
	}

	step, err := prepareStep(p, name, model.StepInfo{Type: model.ValidationStepType, Field: field}, stepFn, opts...)
	if err != nil {
		return err
	}

	addStep(p, step)

	return nil
}
