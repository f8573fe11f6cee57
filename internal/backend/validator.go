package backend

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/askiada/go-stepflow/internal/discover"
)

var ErrUnknownHomeKind = errors.New("unknown home kind")

// HomeValidator checks home directories against the layout of a JDK, an Oracle home and a WebLogic domain.
type HomeValidator struct{}

// NewHomeValidator creates a HomeValidator.
func NewHomeValidator() *HomeValidator {
	return &HomeValidator{}
}

// markers lists the entries a home must contain. One of them is enough.
var markers = map[discover.HomeKind][]string{
	discover.JavaHome:   {filepath.Join("bin", "java")},
	discover.OracleHome: {"wlserver", "inventory"},
	discover.DomainHome: {filepath.Join("config", "config.xml")},
}

// Validate checks the directory at path. The reason of an invalid result is prefixed with errContext.
func (v *HomeValidator) Validate(_ context.Context, kind discover.HomeKind, path, errContext string) (discover.ValidationResult, error) {
	entries, ok := markers[kind]
	if !ok {
		return discover.ValidationResult{}, errors.Wrap(ErrUnknownHomeKind, string(kind))
	}

	if path == "" {
		return invalid(errContext, "no directory provided"), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return invalid(errContext, path+" does not exist"), nil
		}

		return discover.ValidationResult{}, errors.Wrapf(err, "unable to stat %s", path)
	}

	if !info.IsDir() {
		return invalid(errContext, path+" is not a directory"), nil
	}

	for _, entry := range entries {
		_, err = os.Stat(filepath.Join(path, entry))
		if err == nil {
			return discover.ValidationResult{IsValid: true}, nil
		}

		if !os.IsNotExist(err) {
			return discover.ValidationResult{}, errors.Wrapf(err, "unable to stat %s", entry)
		}
	}

	return invalid(errContext, path+" does not contain "+entries[0]), nil
}

func invalid(errContext, detail string) discover.ValidationResult {
	return discover.ValidationResult{Reason: errContext + ": " + detail}
}
