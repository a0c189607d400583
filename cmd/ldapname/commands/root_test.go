package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes a fresh command tree and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func runJSON(t *testing.T, v any, args ...string) {
	t.Helper()
	stdout, _, err := run(t, append([]string{"-o", "json"}, args...)...)
	require.NoError(t, err)
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(stdout, v), stdout)
}

func TestVersion(t *testing.T) {
	stdout, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, Version+"\n", stdout)

	stdout, _, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ldapname "+Version)
	assert.Contains(t, stdout, "Go version")

	var info versionInfo
	runJSON(t, &info, "version")
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.NotEmpty(t, info.GoVersion)
}

func TestGetRootCmd(t *testing.T) {
	root := GetRootCmd()
	require.NotNil(t, root)
	assert.Equal(t, "ldapname", root.Name())

	for _, name := range []string{"dn", "rdn", "escape", "unescape", "control", "version"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
}

func TestInvalidOutputFlag(t *testing.T) {
	_, _, err := run(t, "-o", "yaml", "dn", "parse", "cn=a")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ldapname.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\n"), 0o644))

	stdout, _, err := run(t, "--config", path, "escape", "a,b")
	require.NoError(t, err)

	var result valueResult
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(stdout, &result))
	assert.Equal(t, `a\,b`, result.Value)
}

func TestDebugLogging(t *testing.T) {
	_, stderr, err := run(t, "--log-level", "debug", "dn", "parse", "cn=a,dc=b")
	require.NoError(t, err)
	assert.Contains(t, stderr, "parsed DN")
	assert.Contains(t, stderr, "rdns=2")

	_, stderr, err = run(t, "dn", "parse", "cn=a,dc=b")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}
