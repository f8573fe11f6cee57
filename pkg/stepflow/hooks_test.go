package stepflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-stepflow/pkg/stepflow"
	"github.com/askiada/go-stepflow/pkg/stepflow/model"
)

type recordingHook struct {
	events    []string
	failOn    string
	finalized []string
}

func (h *recordingHook) fail(event string) error {
	h.events = append(h.events, event)
	if event == h.failOn {
		return assert.AnError
	}

	return nil
}

func (h *recordingHook) New() error {
	return h.fail("new")
}

func (h *recordingHook) PrepareStep(parentStep, step *model.StepInfo) error {
	return h.fail("prepare " + parentStep.Name + "->" + step.Name)
}

func (h *recordingHook) OnStepStart(step *model.StepInfo) error {
	return h.fail("start " + step.Name)
}

func (h *recordingHook) OnStepEnd(step *model.StepInfo, _ time.Duration, outcome model.Outcome) error {
	return h.fail("end " + step.Name + " " + string(outcome))
}

func (h *recordingHook) Finish(state string, _ time.Duration) error {
	h.finalized = append(h.finalized, state)

	return h.fail("finish " + state)
}

func TestHooksOrder(t *testing.T) {
	t.Parallel()

	hook := &recordingHook{}
	pipe, err := stepflow.New[testConfig](nil, hook)
	require.NoError(t, err)

	for _, name := range []string{"a", "b"} {
		err = stepflow.AddStep(pipe, name, recordStep(stepBehaviour{name: name}))
		require.NoError(t, err)
	}

	_, err = pipe.Run(context.Background(), testConfig{}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"new",
		"prepare start->a",
		"prepare a->b",
		"start a",
		"end a succeeded",
		"start b",
		"end b succeeded",
		"finish succeeded",
	}, hook.events)
}

func TestHooksNewError(t *testing.T) {
	t.Parallel()

	_, err := stepflow.New[testConfig](nil, &recordingHook{failOn: "new"})
	require.ErrorIs(t, err, assert.AnError)
}

func TestHooksPrepareError(t *testing.T) {
	t.Parallel()

	pipe, err := stepflow.New[testConfig](nil, &recordingHook{failOn: "prepare start->a"})
	require.NoError(t, err)

	err = stepflow.AddStep(pipe, "a", recordStep(stepBehaviour{name: "a"}))
	require.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, pipe.Steps())
}

func TestHooksRunErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		failOn            string
		expectedFinalized []string
	}{
		"step start":  {failOn: "start b", expectedFinalized: []string{"faulted"}},
		"step end":    {failOn: "end a succeeded", expectedFinalized: []string{"faulted"}},
		"finish":      {failOn: "finish succeeded", expectedFinalized: []string{"succeeded"}},
		"failure end": {failOn: "end b failed", expectedFinalized: []string{"faulted"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			hook := &recordingHook{failOn: tc.failOn}
			pipe, err := stepflow.New[testConfig](nil, hook)
			require.NoError(t, err)

			err = stepflow.AddStep(pipe, "a", recordStep(stepBehaviour{name: "a"}))
			require.NoError(t, err)

			var bErr error
			if tc.failOn == "end b failed" {
				bErr = stepflow.NewExecutionError("nope")
			}

			err = stepflow.AddStep(pipe, "b", recordStep(stepBehaviour{name: "b", err: bErr}))
			require.NoError(t, err)

			cleanups := 0
			res, err := pipe.Run(context.Background(), testConfig{}, nil, func() { cleanups++ })
			require.ErrorIs(t, err, assert.AnError)
			assert.Nil(t, res)
			assert.Equal(t, 1, cleanups)
			assert.Equal(t, tc.expectedFinalized, hook.finalized)
		})
	}
}

func TestHooksPanicFinishesFaulted(t *testing.T) {
	t.Parallel()

	hook := &recordingHook{}
	pipe, err := stepflow.New[testConfig](nil, hook)
	require.NoError(t, err)

	err = stepflow.AddStep(pipe, "a", recordStep(stepBehaviour{name: "a", panic: true}))
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = pipe.Run(context.Background(), testConfig{}, nil, nil)
	})
	assert.Equal(t, []string{"faulted"}, hook.finalized)
}
