package stepflow_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-stepflow/pkg/stepflow"
)

type testConfig struct {
	Values map[string]string
	Order  []string
}

type recorder struct {
	mu        sync.Mutex
	names     []string
	fractions []float64
	cleanups  int
}

func (r *recorder) progress(message string, fraction float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, message)
	r.fractions = append(r.fractions, fraction)
}

func (r *recorder) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cleanups++
}

type stepBehaviour struct {
	name   string
	weight float64
	err    error
	panic  bool
}

func recordStep(b stepBehaviour) stepflow.StepFn[testConfig] {
	return func(ctx context.Context, cfg testConfig) (testConfig, error) {
		if b.panic {
			panic("boom")
		}

		if b.err != nil {
			return cfg, b.err
		}

		cfg.Order = append(cfg.Order, b.name)

		return cfg, nil
	}
}

func buildPipeline(t *testing.T, behaviours ...stepBehaviour) *stepflow.Pipeline[testConfig] {
	t.Helper()

	pipe, err := stepflow.New[testConfig](nil)
	require.NoError(t, err)

	for _, b := range behaviours {
		err = stepflow.AddStep(pipe, b.name, recordStep(b), stepflow.StepWeight[testConfig](b.weight))
		require.NoError(t, err)
	}

	return pipe
}
