package discover

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the input of a discovery. Online discoveries need the admin server fields.
type Config struct {
	Online         bool   `yaml:"online"`
	JavaHome       string `yaml:"javaHome"`
	OracleHome     string `yaml:"oracleHome"`
	DomainHome     string `yaml:"domainHome"`
	AdminURL       string `yaml:"adminUrl,omitempty"`
	AdminUser      string `yaml:"adminUser,omitempty"`
	AdminPass      string `yaml:"-"`
	ProjectFile    string `yaml:"projectFile,omitempty"`
	ModelFile      string `yaml:"modelFile,omitempty"`
	PropertiesFile string `yaml:"propertiesFile,omitempty"`
	ArchiveFile    string `yaml:"archiveFile,omitempty"`

	// DiscoveredModel is filled by the discovery step.
	DiscoveredModel string `yaml:"-"`
}

// LoadConfig decodes a YAML discovery configuration. Unknown fields are rejected.
func LoadConfig(r io.Reader) (Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	err := dec.Decode(&cfg)
	if err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "unable to decode discovery configuration")
	}

	return cfg, nil
}

// Mode returns the discovery operation matching the configuration.
func (c Config) Mode() Mode {
	if c.Online {
		return ModeOnline
	}

	return ModeOffline
}

// ErrorTitle returns the title used when the discovery is aborted.
func (c Config) ErrorTitle() string {
	if c.Online {
		return "Online Domain Discovery Aborted"
	}

	return "Offline Domain Discovery Aborted"
}

// ModelName returns the name of the model built by the discovery.
func (c Config) ModelName() string {
	if c.Online {
		return "Online Discover Model"
	}

	return "Offline Discover Model"
}

// Field is a required input of the discovery.
type Field struct {
	Label string
	Value string
}

// RequiredFields returns the fields a discovery cannot start without.
func (c Config) RequiredFields() []Field {
	fields := []Field{
		{Label: "Java Home", Value: c.JavaHome},
		{Label: "Oracle Home", Value: c.OracleHome},
		{Label: "Domain Home", Value: c.DomainHome},
	}

	if c.Online {
		fields = append(fields,
			Field{Label: "Admin URL", Value: c.AdminURL},
			Field{Label: "Admin User", Value: c.AdminUser},
			Field{Label: "Admin Password", Value: c.AdminPass},
		)
	}

	return fields
}

// FillDefaults sets the project file and the file names left empty.
func (c Config) FillDefaults(projectFile string, defaults FileDefaults) Config {
	c.ProjectFile = projectFile

	if c.ModelFile == "" {
		c.ModelFile = defaults.ModelFile
	}

	if c.PropertiesFile == "" {
		c.PropertiesFile = defaults.PropertiesFile
	}

	if c.ArchiveFile == "" {
		c.ArchiveFile = defaults.ArchiveFile
	}

	return c
}

// PreflightError lists every required field left empty.
type PreflightError struct {
	ModelName string
	Missing   []string
}

func (e *PreflightError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.ModelName, strings.Join(e.Missing, ", "))
}

// Preflight checks every required field at once. It returns nil when none is missing.
func Preflight(cfg Config) *PreflightError {
	var missing []string

	for _, field := range cfg.RequiredFields() {
		if strings.TrimSpace(field.Value) == "" {
			missing = append(missing, field.Label)
		}
	}

	if len(missing) == 0 {
		return nil
	}

	return &PreflightError{ModelName: cfg.ModelName(), Missing: missing}
}
