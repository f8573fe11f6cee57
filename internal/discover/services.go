package discover

import "context"

// HomeKind names the kind of directory checked by a Validator.
type HomeKind string

const (
	JavaHome   HomeKind = "java-home"
	OracleHome HomeKind = "oracle-home"
	DomainHome HomeKind = "domain-home"
)

// Mode is the discovery operation run by an Executor.
type Mode string

const (
	ModeOnline  Mode = "run-online-discover"
	ModeOffline Mode = "run-offline-discover"
)

// Valid tells if m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeOnline || m == ModeOffline
}

// ValidationResult is the answer of a Validator.
type ValidationResult struct {
	IsValid bool
	Reason  string
}

// SaveResult is the answer of a ProjectStore save.
type SaveResult struct {
	Saved  bool
	Reason string
}

// FileDefaults holds the file names used when the configuration leaves them empty.
type FileDefaults struct {
	ModelFile      string
	PropertiesFile string
	ArchiveFile    string
}

// ExecResult is the answer of an Executor.
type ExecResult struct {
	IsSuccess        bool
	ModelFileContent string
	Reason           string
}

// Validator checks a home directory. errContext prefixes the reason of an invalid result.
// A returned error means the check itself could not run.
type Validator interface {
	Validate(ctx context.Context, kind HomeKind, path, errContext string) (ValidationResult, error)
}

// ProjectStore persists the current project.
type ProjectStore interface {
	// Save records the files named by cfg. Empty file names stand for the defaults.
	Save(ctx context.Context, cfg Config) (SaveResult, error)
	// ProjectFile returns the project file name, known once the project was saved.
	ProjectFile() string
	// Defaults returns the default model, properties and archive file names of the project.
	Defaults() FileDefaults
}

// Executor runs the long running discovery.
type Executor interface {
	Run(ctx context.Context, mode Mode, cfg Config) (ExecResult, error)
}

// Presenter displays the discovery progress and its terminal error.
type Presenter interface {
	Progress(message string, fraction float64)
	Error(title, message string)
	// Close hides the progress display.
	Close()
}

// ModelSink receives the model built by a successful discovery.
type ModelSink interface {
	SetModelFiles(content string) error
}
