package backend_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-stepflow/internal/backend"
	"github.com/askiada/go-stepflow/internal/discover"
)

func touch(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
}

func TestHomeValidator(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	javaHome := filepath.Join(root, "jdk")
	touch(t, filepath.Join(javaHome, "bin", "java"))
	oracleHome := filepath.Join(root, "oracle")
	require.NoError(t, os.MkdirAll(filepath.Join(oracleHome, "inventory"), 0o755))
	domainHome := filepath.Join(root, "domain")
	touch(t, filepath.Join(domainHome, "config", "config.xml"))
	file := filepath.Join(root, "file")
	touch(t, file)

	tcs := map[string]struct {
		kind     discover.HomeKind
		path     string
		valid    bool
		expected string
	}{
		"java home":        {kind: discover.JavaHome, path: javaHome, valid: true},
		"oracle home":      {kind: discover.OracleHome, path: oracleHome, valid: true},
		"domain home":      {kind: discover.DomainHome, path: domainHome, valid: true},
		"empty path":       {kind: discover.JavaHome, path: "", expected: "ctx: no directory provided"},
		"missing":          {kind: discover.JavaHome, path: filepath.Join(root, "nope"), expected: "ctx: " + filepath.Join(root, "nope") + " does not exist"},
		"not a directory":  {kind: discover.DomainHome, path: file, expected: "ctx: " + file + " is not a directory"},
		"wrong layout":     {kind: discover.DomainHome, path: javaHome, expected: "ctx: " + javaHome + " does not contain " + filepath.Join("config", "config.xml")},
		"oracle as domain": {kind: discover.OracleHome, path: domainHome, expected: "ctx: " + domainHome + " does not contain wlserver"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			res, err := backend.NewHomeValidator().Validate(context.Background(), tc.kind, tc.path, "ctx")
			require.NoError(t, err)
			assert.Equal(t, tc.valid, res.IsValid)
			assert.Equal(t, tc.expected, res.Reason)
		})
	}
}

func TestHomeValidatorUnknownKind(t *testing.T) {
	t.Parallel()

	_, err := backend.NewHomeValidator().Validate(context.Background(), "middleware-home", t.TempDir(), "ctx")
	require.ErrorIs(t, err, backend.ErrUnknownHomeKind)
}
