package backend

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-stepflow/internal/discover"
)

const (
	discoverScript = "discoverDomain.sh"
	adminPassEnv   = "WKT_DISCOVER_ADMIN_PASS"
)

var ErrUnknownMode = errors.New("unknown discovery mode")

const (
	defaultWaitDelay = 5 * time.Second
	maxLineSize      = 1024 * 1024
)

// ProcessExecutor runs the discoverDomain script of a WebLogic Deploy Tooling installation.
type ProcessExecutor struct {
	wdtHome   string
	logger    *slog.Logger
	waitDelay time.Duration
}

// ExecutorOption configures a ProcessExecutor.
type ExecutorOption func(e *ProcessExecutor)

// WithWaitDelay bounds the time spent waiting for the script output once the script exited or was killed.
func WithWaitDelay(d time.Duration) ExecutorOption {
	return func(e *ProcessExecutor) {
		e.waitDelay = d
	}
}

// NewProcessExecutor creates an executor for the installation at wdtHome. A nil logger discards the script output.
func NewProcessExecutor(wdtHome string, logger *slog.Logger, opts ...ExecutorOption) *ProcessExecutor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	e := &ProcessExecutor{wdtHome: wdtHome, logger: logger, waitDelay: defaultWaitDelay}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run discovers the domain described by cfg and returns the content of the written model file.
// A missing script or a non zero exit status is reported as an unsuccessful result.
func (e *ProcessExecutor) Run(ctx context.Context, mode discover.Mode, cfg discover.Config) (discover.ExecResult, error) {
	if !mode.Valid() {
		return discover.ExecResult{}, errors.Wrap(ErrUnknownMode, string(mode))
	}

	script := filepath.Join(e.wdtHome, "bin", discoverScript)

	_, err := os.Stat(script)
	if err != nil {
		return discover.ExecResult{Reason: discoverScript + " not found in " + e.wdtHome}, nil
	}

	cmd := exec.CommandContext(ctx, script, scriptArgs(mode, cfg)...)
	cmd.Env = append(os.Environ(), "JAVA_HOME="+cfg.JavaHome)
	// children of the script may keep the output open after it exited
	cmd.WaitDelay = e.waitDelay

	if mode == discover.ModeOnline {
		cmd.Env = append(cmd.Env, adminPassEnv+"="+cfg.AdminPass)
	}

	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()
	cmd.Stdout = stdoutW
	cmd.Stderr = stderrW

	e.logger.Info("running discovery", slog.String("script", script), slog.String("mode", string(mode)))

	err = cmd.Start()
	if err != nil {
		return discover.ExecResult{}, errors.Wrapf(err, "unable to start %s", script)
	}

	errGrp := errgroup.Group{}
	errGrp.Go(func() error {
		return e.pump(stdoutR, slog.LevelInfo)
	})
	errGrp.Go(func() error {
		return e.pump(stderrR, slog.LevelWarn)
	})

	waitErr := cmd.Wait()

	// the pumps stop once the writers are closed
	_ = stdoutW.Close()
	_ = stderrW.Close()
	pumpErr := errGrp.Wait()

	switch {
	case waitErr == nil:
	case errors.Is(waitErr, exec.ErrWaitDelay):
		e.logger.Warn("script output still open after exit", slog.Duration("wait_delay", e.waitDelay))
	default:
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return discover.ExecResult{Reason: exitErr.Error()}, nil
		}

		return discover.ExecResult{}, errors.Wrapf(waitErr, "unable to wait for %s", script)
	}

	if pumpErr != nil {
		return discover.ExecResult{}, errors.Wrap(pumpErr, "unable to read script output")
	}

	content, err := os.ReadFile(cfg.ModelFile)
	if err != nil {
		return discover.ExecResult{}, errors.Wrap(err, "unable to read model file")
	}

	return discover.ExecResult{IsSuccess: true, ModelFileContent: string(content)}, nil
}

// pump logs every line read from r. It always reads r until EOF so the writer never blocks.
func (e *ProcessExecutor) pump(r io.Reader, level slog.Level) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)

	for scanner.Scan() {
		e.logger.Log(context.Background(), level, scanner.Text())
	}

	err := scanner.Err()
	if err == nil {
		return nil
	}

	_, _ = io.Copy(io.Discard, r)

	if errors.Is(err, bufio.ErrTooLong) {
		e.logger.Warn("script output line too long, remaining output dropped", slog.Int("max_line_size", maxLineSize))

		return nil
	}

	return errors.Wrap(err, "unable to scan output")
}

func scriptArgs(mode discover.Mode, cfg discover.Config) []string {
	args := []string{
		"-oracle_home", cfg.OracleHome,
		"-domain_home", cfg.DomainHome,
		"-model_file", cfg.ModelFile,
		"-archive_file", cfg.ArchiveFile,
		"-variable_file", cfg.PropertiesFile,
	}

	if mode == discover.ModeOnline {
		args = append(args,
			"-admin_url", cfg.AdminURL,
			"-admin_user", cfg.AdminUser,
			"-admin_pass_env", adminPassEnv,
		)
	}

	return args
}
