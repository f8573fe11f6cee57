package discover

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/askiada/go-stepflow/pkg/stepflow"
	"github.com/askiada/go-stepflow/pkg/stepflow/model"
)

// Step names, also displayed as progress messages.
const (
	StepValidateJavaHome   = "Validating Java Home"
	StepValidateOracleHome = "Validating Oracle Home"
	StepValidateDomainHome = "Validating Domain Home"
	StepSaveProject        = "Saving Project"
	StepDiscoverDomain     = "Discovering Domain"
)

var (
	ErrValidatorMustBeSet = errors.New("validator must be set")
	ErrStoreMustBeSet     = errors.New("project store must be set")
	ErrExecutorMustBeSet  = errors.New("executor must be set")
	ErrPresenterMustBeSet = errors.New("presenter must be set")
)

// Option configures a Discoverer.
type Option func(d *Discoverer)

// WithLogger sets the logger used by the discovery pipelines.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// WithHooks sets a factory returning the hooks of each discovery pipeline.
// The factory is called once per discovery since hooks such as drawers hold a single pipeline.
func WithHooks(factory func() []model.PipelineOption) Option {
	return func(d *Discoverer) {
		d.hooks = factory
	}
}

// WithModelSink sets the receiver of the discovered model.
func WithModelSink(sink ModelSink) Option {
	return func(d *Discoverer) {
		d.sink = sink
	}
}

// Discoverer runs domain discoveries.
type Discoverer struct {
	validator Validator
	store     ProjectStore
	executor  Executor
	presenter Presenter
	sink      ModelSink
	logger    *slog.Logger
	hooks     func() []model.PipelineOption
}

// NewDiscoverer creates a Discoverer from its collaborators.
func NewDiscoverer(validator Validator, store ProjectStore, executor Executor, presenter Presenter, opts ...Option) (*Discoverer, error) {
	switch {
	case validator == nil:
		return nil, ErrValidatorMustBeSet
	case store == nil:
		return nil, ErrStoreMustBeSet
	case executor == nil:
		return nil, ErrExecutorMustBeSet
	case presenter == nil:
		return nil, ErrPresenterMustBeSet
	}

	d := &Discoverer{
		validator: validator,
		store:     store,
		executor:  executor,
		presenter: presenter,
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d, nil
}

// Execute runs the discovery described by cfg. It returns true when the model was discovered.
//
// Missing required fields, invalid homes, an unsaved project and a failed discovery are presented to the user and
// reported as false with a nil error. Any other error is returned after the progress display was closed.
func (d *Discoverer) Execute(ctx context.Context, cfg Config) (bool, error) {
	title := cfg.ErrorTitle()

	if pErr := Preflight(cfg); pErr != nil {
		d.presenter.Error(title, pErr.Error())

		return false, nil
	}

	pipe, err := d.buildPipeline(cfg.Mode())
	if err != nil {
		return false, errors.Wrap(err, "unable to build discovery pipeline")
	}

	res, err := pipe.Run(ctx, cfg, d.presenter.Progress, d.presenter.Close)
	if err != nil {
		return false, errors.Wrap(err, "discovery aborted")
	}

	if !res.Succeeded() {
		d.presenter.Error(title, res.Failure.Reason)

		return false, nil
	}

	d.logger.Debug("discover complete", slog.String("model", res.Config.DiscoveredModel))

	if d.sink != nil {
		err = d.sink.SetModelFiles(res.Config.DiscoveredModel)
		if err != nil {
			return false, errors.Wrap(err, "unable to set model files")
		}
	}

	return true, nil
}

func (d *Discoverer) buildPipeline(mode Mode) (*stepflow.Pipeline[Config], error) {
	var hooks []model.PipelineOption
	if d.hooks != nil {
		hooks = d.hooks()
	}

	pipe, err := stepflow.New[Config](d.logger.With(slog.String("mode", string(mode))), hooks...)
	if err != nil {
		return nil, err
	}

	homes := []struct {
		step       string
		kind       HomeKind
		errContext string
		path       func(cfg Config) string
	}{
		{StepValidateJavaHome, JavaHome, "Invalid Java Home", func(cfg Config) string { return cfg.JavaHome }},
		{StepValidateOracleHome, OracleHome, "Invalid Oracle Home", func(cfg Config) string { return cfg.OracleHome }},
		{StepValidateDomainHome, DomainHome, "Invalid Domain Home", func(cfg Config) string { return cfg.DomainHome }},
	}

	for _, home := range homes {
		err = stepflow.AddValidation(pipe, home.step, string(home.kind), d.validateHome(home.kind, home.errContext, home.path),
			stepflow.StepWeight[Config](1))
		if err != nil {
			return nil, err
		}
	}

	err = stepflow.AddStep(pipe, StepSaveProject, d.saveProject, stepflow.StepWeight[Config](1))
	if err != nil {
		return nil, err
	}

	err = stepflow.AddStep(pipe, StepDiscoverDomain, d.discoverDomain(mode), stepflow.StepWeight[Config](1))
	if err != nil {
		return nil, err
	}

	return pipe, nil
}

func (d *Discoverer) validateHome(kind HomeKind, errContext string, path func(cfg Config) string) stepflow.CheckFn[Config] {
	return func(ctx context.Context, cfg Config) (bool, string, error) {
		res, err := d.validator.Validate(ctx, kind, path(cfg), errContext)
		if err != nil {
			return false, "", errors.Wrapf(err, "unable to validate %s", kind)
		}

		return res.IsValid, res.Reason, nil
	}
}

func (d *Discoverer) saveProject(ctx context.Context, cfg Config) (Config, error) {
	res, err := d.store.Save(ctx, cfg)
	if err != nil {
		return cfg, errors.Wrap(err, "unable to save project")
	}

	if !res.Saved {
		return cfg, stepflow.NewExecutionError("Project Not Saved: " + res.Reason)
	}

	// the project file is on disk, every file name can now be derived from it
	return cfg.FillDefaults(d.store.ProjectFile(), d.store.Defaults()), nil
}

func (d *Discoverer) discoverDomain(mode Mode) stepflow.StepFn[Config] {
	return func(ctx context.Context, cfg Config) (Config, error) {
		res, err := d.executor.Run(ctx, mode, cfg)
		if err != nil {
			return cfg, errors.Wrapf(err, "unable to run %s", mode)
		}

		if !res.IsSuccess {
			return cfg, stepflow.NewExecutionError(discoveryFailedPrefix(cfg) + ": " + res.Reason)
		}

		cfg.DiscoveredModel = res.ModelFileContent

		return cfg, nil
	}
}

func discoveryFailedPrefix(cfg Config) string {
	if cfg.Online {
		return fmt.Sprintf("Online discovery of the domain at %s failed", cfg.AdminURL)
	}

	return fmt.Sprintf("Offline discovery of the domain at %s failed", cfg.DomainHome)
}
