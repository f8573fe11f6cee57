package stepflow

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/askiada/go-stepflow/pkg/stepflow/model"
)

// run holds the state of a single pipeline execution. It is discarded once the cleanup callback ran.
type run[C any] struct {
	id         string
	pipe       *Pipeline[C]
	logger     *slog.Logger
	onProgress ProgressFunc
	onCleanup  func()

	cleanupOnce sync.Once
	state       State
	current     *Step[C]
	finished    bool
	startTime   time.Time
}

func newRun[C any](p *Pipeline[C], onProgress ProgressFunc, onCleanup func()) *run[C] {
	id := uuid.NewString()

	return &run[C]{
		id:         id,
		pipe:       p,
		logger:     p.logger.With(slog.String("run_id", id)),
		onProgress: onProgress,
		onCleanup:  onCleanup,
		state:      StateIdle,
	}
}

func (r *run[C]) execute(ctx context.Context, cfg C) (*Result[C], error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.fault(errors.Errorf("panic: %v", rec))
			r.cleanup()
			panic(rec)
		}

		r.cleanup()
	}()

	r.startTime = time.Now()
	r.state = StateRunning
	fractions := r.pipe.fractions()

	for i, step := range r.pipe.steps {
		r.current = step
		r.progress(step.Name, fractions[i])

		err := r.startStep(step)
		if err != nil {
			return nil, r.fault(err)
		}

		start := time.Now()
		out, stepErr := step.Run(ctx, cfg)
		elapsed := time.Since(start)

		if stepErr == nil {
			cfg = out

			err = r.endStep(step, elapsed, model.OutcomeSucceeded)
			if err != nil {
				return nil, r.fault(err)
			}

			continue
		}

		failure, ok := newFailure(step.Name, stepErr)
		if !ok {
			// best effort, the step error is the one reported
			_ = r.endStep(step, elapsed, model.OutcomeFaulted)

			return nil, r.fault(stepErr)
		}

		r.logger.Warn("step failed", slog.String("step", step.Name), slog.String("reason", failure.Reason))

		err = r.endStep(step, elapsed, model.OutcomeFailed)
		if err != nil {
			return nil, r.fault(err)
		}

		return r.finish(StateFailed, cfg, failure)
	}

	r.current = nil

	return r.finish(StateSucceeded, cfg, nil)
}

func (r *run[C]) progress(name string, fraction float64) {
	r.logger.Debug("step started", slog.String("step", name), slog.Float64("fraction", fraction))

	if r.onProgress != nil {
		r.onProgress(name, fraction)
	}
}

func (r *run[C]) startStep(step *Step[C]) error {
	for _, opt := range r.pipe.opts {
		err := opt.OnStepStart(step.details)
		if err != nil {
			return errors.Wrap(err, "unable to run step start function")
		}
	}

	return nil
}

func (r *run[C]) endStep(step *Step[C], elapsed time.Duration, outcome model.Outcome) error {
	r.logger.Debug("step finished",
		slog.String("step", step.Name),
		slog.Duration("duration", elapsed),
		slog.String("outcome", string(outcome)),
	)

	for _, opt := range r.pipe.opts {
		err := opt.OnStepEnd(step.details, elapsed, outcome)
		if err != nil {
			return errors.Wrap(err, "unable to run step end function")
		}
	}

	return nil
}

func (r *run[C]) finish(state State, cfg C, failure *Failure) (*Result[C], error) {
	r.state = state
	r.finished = true

	for _, opt := range r.pipe.opts {
		err := opt.Finish(state.String(), time.Since(r.startTime))
		if err != nil {
			return nil, r.fault(errors.Wrap(err, "unable to finish pipeline option"))
		}
	}

	r.logger.Info("pipeline finished", slog.String("state", state.String()), slog.Duration("duration", time.Since(r.startTime)))

	return &Result[C]{
		RunID:   r.id,
		State:   state,
		Config:  cfg,
		Failure: failure,
	}, nil
}

// fault moves the run to StateFaulted and returns err decorated with the current step name.
func (r *run[C]) fault(err error) error {
	r.state = StateFaulted

	if r.current != nil {
		err = errors.Wrapf(err, "step %s", r.current.Name)
	}

	r.logger.Error("pipeline faulted", slog.String("error", err.Error()))

	if !r.finished {
		r.finished = true

		for _, opt := range r.pipe.opts {
			finishErr := opt.Finish(StateFaulted.String(), time.Since(r.startTime))
			if finishErr != nil {
				r.logger.Error("unable to finish pipeline option", slog.String("error", finishErr.Error()))
			}
		}
	}

	return err
}

func (r *run[C]) cleanup() {
	r.cleanupOnce.Do(func() {
		if r.onCleanup != nil {
			r.onCleanup()
		}
	})
}
