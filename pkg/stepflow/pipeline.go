package stepflow

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/askiada/go-stepflow/pkg/stepflow/model"
)

// Pipeline is an ordered list of steps run against a configuration of type C.
type Pipeline[C any] struct {
	steps  []*Step[C]
	names  map[string]struct{}
	opts   []model.PipelineOption
	logger *slog.Logger
}

// New creates a new pipeline. A nil logger discards every record.
func New[C any](logger *slog.Logger, opts ...model.PipelineOption) (*Pipeline[C], error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pipe := &Pipeline[C]{
		names:  make(map[string]struct{}),
		opts:   opts,
		logger: logger,
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// Steps returns the step names in execution order.
func (p *Pipeline[C]) Steps() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name
	}

	return names
}

// fractions returns, for each step, the fraction of the work done before it starts.
func (p *Pipeline[C]) fractions() []float64 {
	res := make([]float64, len(p.steps))

	var total float64
	for _, step := range p.steps {
		total += step.Weight
	}

	var done float64

	for i, step := range p.steps {
		switch {
		case total == 0:
			res[i] = float64(i) / float64(len(p.steps))
		default:
			res[i] = done / total
			done += step.Weight
		}

		if res[i] > 1 {
			res[i] = 1
		}
	}

	return res
}

// Run executes the steps in order against cfg and waits for each of them before starting the next one.
//
// onProgress is called before every step. onCleanup is called exactly once before Run returns, or before a panic
// raised by a step resumes. Both may be nil.
//
// A step returning a ValidationError or an ExecutionError stops the run; the result is then in the StateFailed
// state. Any other error stops the run too and is returned, wrapped with the step name, with a nil result.
func (p *Pipeline[C]) Run(ctx context.Context, cfg C, onProgress ProgressFunc, onCleanup func()) (*Result[C], error) {
	if p == nil {
		if onCleanup != nil {
			onCleanup()
		}

		return nil, ErrPipelineMustBeSet
	}

	r := newRun(p, onProgress, onCleanup)

	return r.execute(ctx, cfg)
}
