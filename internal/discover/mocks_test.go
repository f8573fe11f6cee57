package discover_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/askiada/go-stepflow/internal/discover"
)

type mockValidator struct {
	mock.Mock
}

func (m *mockValidator) Validate(ctx context.Context, kind discover.HomeKind, path, errContext string) (discover.ValidationResult, error) {
	args := m.Called(ctx, kind, path, errContext)

	return args.Get(0).(discover.ValidationResult), args.Error(1)
}

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Save(ctx context.Context, cfg discover.Config) (discover.SaveResult, error) {
	args := m.Called(ctx, cfg)

	return args.Get(0).(discover.SaveResult), args.Error(1)
}

func (m *mockStore) ProjectFile() string {
	return m.Called().String(0)
}

func (m *mockStore) Defaults() discover.FileDefaults {
	return m.Called().Get(0).(discover.FileDefaults)
}

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) Run(ctx context.Context, mode discover.Mode, cfg discover.Config) (discover.ExecResult, error) {
	args := m.Called(ctx, mode, cfg)

	return args.Get(0).(discover.ExecResult), args.Error(1)
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) SetModelFiles(content string) error {
	return m.Called(content).Error(0)
}

type errorEvent struct {
	title   string
	message string
}

type fakePresenter struct {
	mu        sync.Mutex
	messages  []string
	fractions []float64
	errors    []errorEvent
	closed    int
}

func (p *fakePresenter) Progress(message string, fraction float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, message)
	p.fractions = append(p.fractions, fraction)
}

func (p *fakePresenter) Error(title, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.errors = append(p.errors, errorEvent{title: title, message: message})
}

func (p *fakePresenter) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
}
