package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/askiada/go-stepflow/internal/backend"
	"github.com/askiada/go-stepflow/internal/discover"
	"github.com/askiada/go-stepflow/pkg/stepflow/drawer"
	"github.com/askiada/go-stepflow/pkg/stepflow/measure"
	"github.com/askiada/go-stepflow/pkg/stepflow/model"
)

var errDiscoveryFailed = errors.New("discovery failed")

type discoverOptions struct {
	configFile   string
	adminPassEnv string
	wdtHome      string
	graphFile    string
	printModel   bool
	noColor      bool
	debug        bool

	// values overriding the configuration file when their flag is set
	cfg discover.Config
}

func newDiscoverCmd(opts *discoverOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover an existing domain",
		Long: `Discover an existing WebLogic domain with the WebLogic Deploy Tooling.

The homes are validated, the project file is saved and the discoverDomain script is run.
Offline discoveries read the domain home; online discoveries connect to the admin server.`,
		Example: `  # offline discovery
  wktdiscover discover --java-home /opt/jdk --oracle-home /u01/oracle \
    --domain-home /u01/domains/base_domain --project-file demo.wktproj --wdt-home /opt/wdt

  # online discovery, settings read from a file and the password from the environment
  ADMIN_PASS=welcome1 wktdiscover discover --config discover.yaml --online --admin-pass-env ADMIN_PASS`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDiscover(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "YAML discovery configuration file")
	flags.BoolVar(&opts.cfg.Online, "online", false, "discover through the admin server")
	flags.StringVar(&opts.cfg.JavaHome, "java-home", "", "JDK directory")
	flags.StringVar(&opts.cfg.OracleHome, "oracle-home", "", "Oracle home directory")
	flags.StringVar(&opts.cfg.DomainHome, "domain-home", "", "domain home directory")
	flags.StringVar(&opts.cfg.AdminURL, "admin-url", "", "admin server URL")
	flags.StringVar(&opts.cfg.AdminUser, "admin-user", "", "admin user name")
	flags.StringVar(&opts.adminPassEnv, "admin-pass-env", "", "environment variable holding the admin password")
	flags.StringVar(&opts.cfg.ProjectFile, "project-file", "", "project file to save")
	flags.StringVar(&opts.cfg.ModelFile, "model-file", "", "model file to write")
	flags.StringVar(&opts.wdtHome, "wdt-home", os.Getenv("WDT_HOME"), "WebLogic Deploy Tooling directory")
	flags.StringVar(&opts.graphFile, "graph", "", "write the step graph as a DOT file")
	flags.BoolVar(&opts.printModel, "print-model", false, "print the discovered model")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logs")

	return cmd
}

func runDiscover(cmd *cobra.Command, opts *discoverOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if opts.debug {
		level = slog.LevelDebug
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	discoverOpts := []discover.Option{discover.WithLogger(logger)}

	if opts.graphFile != "" {
		discoverOpts = append(discoverOpts, discover.WithHooks(graphHooks(opts.graphFile)))
	}

	if opts.printModel {
		discoverOpts = append(discoverOpts, discover.WithModelSink(backend.NewWriterModelSink(cmd.OutOrStdout())))
	}

	d, err := discover.NewDiscoverer(
		backend.NewHomeValidator(),
		backend.NewYAMLProjectStore(cfg.ProjectFile),
		backend.NewProcessExecutor(opts.wdtHome, logger),
		backend.NewConsolePresenter(cmd.ErrOrStderr(), opts.noColor),
		discoverOpts...,
	)
	if err != nil {
		return errors.Wrap(err, "unable to create discoverer")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ok, err := d.Execute(ctx, cfg)
	if err != nil {
		return err
	}

	if !ok {
		return errDiscoveryFailed
	}

	logger.Info("domain discovered", slog.String("project_file", cfg.ProjectFile))

	return nil
}

// loadConfig reads the configuration file and applies the flags set on the command line.
func loadConfig(cmd *cobra.Command, opts *discoverOptions) (discover.Config, error) {
	cfg := discover.Config{}

	if opts.configFile != "" {
		f, err := os.Open(opts.configFile)
		if err != nil {
			return cfg, errors.Wrap(err, "unable to open configuration")
		}
		defer f.Close()

		cfg, err = discover.LoadConfig(f)
		if err != nil {
			return cfg, errors.Wrap(err, "unable to load configuration")
		}
	}

	overrides := map[string]func(){
		"online":       func() { cfg.Online = opts.cfg.Online },
		"java-home":    func() { cfg.JavaHome = opts.cfg.JavaHome },
		"oracle-home":  func() { cfg.OracleHome = opts.cfg.OracleHome },
		"domain-home":  func() { cfg.DomainHome = opts.cfg.DomainHome },
		"admin-url":    func() { cfg.AdminURL = opts.cfg.AdminURL },
		"admin-user":   func() { cfg.AdminUser = opts.cfg.AdminUser },
		"project-file": func() { cfg.ProjectFile = opts.cfg.ProjectFile },
		"model-file":   func() { cfg.ModelFile = opts.cfg.ModelFile },
	}

	for name, override := range overrides {
		if cmd.Flags().Changed(name) {
			override()
		}
	}

	if opts.adminPassEnv != "" {
		cfg.AdminPass = os.Getenv(opts.adminPassEnv)
	}

	return cfg, nil
}

// graphHooks measures the steps of each run and draws them into graphFile.
// The measure hook comes first so the drawer sees the final durations.
func graphHooks(graphFile string) func() []model.PipelineOption {
	return func() []model.PipelineOption {
		msr := measure.NewDefaultMeasure()

		return []model.PipelineOption{
			measure.PipelineMeasure(msr),
			drawer.PipelineDrawer(drawer.NewDOTDrawer(graphFile), msr),
		}
	}
}
