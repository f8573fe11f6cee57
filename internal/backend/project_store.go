package backend

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-stepflow/internal/discover"
)

// Project is the document written by YAMLProjectStore.
type Project struct {
	Name           string `yaml:"name"`
	ModelFile      string `yaml:"modelFile"`
	PropertiesFile string `yaml:"propertiesFile"`
	ArchiveFile    string `yaml:"archiveFile"`
}

// YAMLProjectStore saves the project as a YAML file.
type YAMLProjectStore struct {
	path string
}

// NewYAMLProjectStore creates a store writing to path.
func NewYAMLProjectStore(path string) *YAMLProjectStore {
	return &YAMLProjectStore{path: path}
}

// ProjectFile returns the project file name.
func (s *YAMLProjectStore) ProjectFile() string {
	return s.path
}

// Defaults derives the model, properties and archive file names from the project file name.
func (s *YAMLProjectStore) Defaults() discover.FileDefaults {
	if s.path == "" {
		return discover.FileDefaults{}
	}

	dir := filepath.Dir(s.path)
	base := strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path))

	return discover.FileDefaults{
		ModelFile:      filepath.Join(dir, base+"-model.yaml"),
		PropertiesFile: filepath.Join(dir, base+".properties"),
		ArchiveFile:    filepath.Join(dir, base+"-archive.zip"),
	}
}

// Save writes the project file with the files of cfg, or the defaults when cfg leaves them empty.
// A project without file name or a file that cannot be written is reported as not saved.
func (s *YAMLProjectStore) Save(_ context.Context, cfg discover.Config) (discover.SaveResult, error) {
	if s.path == "" {
		return discover.SaveResult{Reason: "no project file selected"}, nil
	}

	files := cfg.FillDefaults(s.path, s.Defaults())
	dir := filepath.Dir(s.path)

	content, err := yaml.Marshal(Project{
		Name:           strings.TrimSuffix(filepath.Base(s.path), filepath.Ext(s.path)),
		ModelFile:      relativeTo(dir, files.ModelFile),
		PropertiesFile: relativeTo(dir, files.PropertiesFile),
		ArchiveFile:    relativeTo(dir, files.ArchiveFile),
	})
	if err != nil {
		return discover.SaveResult{}, errors.Wrap(err, "unable to encode project")
	}

	err = os.MkdirAll(filepath.Dir(s.path), 0o755)
	if err != nil {
		return discover.SaveResult{Reason: err.Error()}, nil
	}

	err = os.WriteFile(s.path, content, 0o600)
	if err != nil {
		return discover.SaveResult{Reason: err.Error()}, nil
	}

	return discover.SaveResult{Saved: true}, nil
}

// relativeTo returns path relative to dir when path lives under dir.
func relativeTo(dir, path string) string {
	rel, err := filepath.Rel(dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}

	return rel
}

// LoadProject reads a project file written by YAMLProjectStore.
func LoadProject(path string) (Project, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Project{}, errors.Wrap(err, "unable to read project")
	}

	var project Project

	err = yaml.Unmarshal(content, &project)
	if err != nil {
		return Project{}, errors.Wrap(err, "unable to decode project")
	}

	return project, nil
}
