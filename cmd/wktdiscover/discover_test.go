package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	cmd := newRootCmd()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func mkHomes(t *testing.T) (string, string, string) {
	t.Helper()

	root := t.TempDir()
	javaHome := filepath.Join(root, "jdk")
	oracleHome := filepath.Join(root, "oracle")
	domainHome := filepath.Join(root, "domain")

	for _, path := range []string{
		filepath.Join(javaHome, "bin", "java"),
		filepath.Join(domainHome, "config", "config.xml"),
	} {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o600))
	}

	require.NoError(t, os.MkdirAll(filepath.Join(oracleHome, "wlserver"), 0o755))

	return javaHome, oracleHome, domainHome
}

func TestDiscoverMissingFields(t *testing.T) {
	t.Parallel()

	_, stderr, err := execute(t, "discover", "--online", "--no-color")
	require.ErrorIs(t, err, errDiscoveryFailed)
	assert.Contains(t, stderr, "Online Domain Discovery Aborted")
	assert.Contains(t, stderr, "Java Home, Oracle Home, Domain Home, Admin URL, Admin User, Admin Password")
}

func TestDiscoverInvalidHome(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "jdk")

	_, stderr, err := execute(t, "discover", "--no-color",
		"--java-home", missing, "--oracle-home", "/u01/oracle", "--domain-home", "/u01/domain")
	require.ErrorIs(t, err, errDiscoveryFailed)
	assert.Contains(t, stderr, "Offline Domain Discovery Aborted")
	assert.Contains(t, stderr, "Invalid Java Home: "+missing+" does not exist")
}

func TestDiscoverScriptMissing(t *testing.T) {
	t.Parallel()

	javaHome, oracleHome, domainHome := mkHomes(t)
	dir := t.TempDir()
	project := filepath.Join(dir, "demo.wktproj")
	graph := filepath.Join(dir, "steps.gv")

	_, stderr, err := execute(t, "discover", "--no-color",
		"--java-home", javaHome, "--oracle-home", oracleHome, "--domain-home", domainHome,
		"--project-file", project, "--wdt-home", dir, "--graph", graph)
	require.ErrorIs(t, err, errDiscoveryFailed)
	assert.Contains(t, stderr, "Offline discovery of the domain at "+domainHome+" failed: discoverDomain.sh not found in "+dir)
	assert.FileExists(t, project)

	content, err := os.ReadFile(graph)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"Discovering Domain"`)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("TEST_ADMIN_PASS", "welcome1")

	file := filepath.Join(t.TempDir(), "discover.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`online: true
javaHome: /opt/jdk
oracleHome: /u01/oracle
adminUrl: t3://file:7001
adminUser: weblogic
`), 0o600))

	opts := &discoverOptions{}
	cmd := newDiscoverCmd(opts)
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", file, "--admin-url", "t3://flag:7001", "--admin-pass-env", "TEST_ADMIN_PASS",
	}))

	cfg, err := loadConfig(cmd, opts)
	require.NoError(t, err)
	assert.True(t, cfg.Online)
	assert.Equal(t, "/opt/jdk", cfg.JavaHome)
	assert.Equal(t, "t3://flag:7001", cfg.AdminURL)
	assert.Equal(t, "weblogic", cfg.AdminUser)
	assert.Equal(t, "welcome1", cfg.AdminPass)
}

func TestLoadConfigUnknownField(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "discover.yaml")
	require.NoError(t, os.WriteFile(file, []byte("javaHomes: /opt/jdk\n"), 0o600))

	_, _, err := execute(t, "discover", "--config", file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to load configuration")
}
