package benchmark

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTargetsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "targets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTargetsPreservesOrder(t *testing.T) {
	path := writeTargetsFile(t, `
targets:
  - name: jvm-direct
    url: https://jvm-direct.example.run
  - name: jvm-pooled
    url: https://jvm-pooled.example.run
  - name: native-direct
    url: https://native-direct.example.run
`)

	targets, err := LoadTargets(path)
	require.NoError(t, err)
	require.Len(t, targets, 3)
	assert.Equal(t, "jvm-direct", targets[0].Name)
	assert.Equal(t, "jvm-pooled", targets[1].Name)
	assert.Equal(t, "native-direct", targets[2].Name)
	assert.Equal(t, "https://jvm-pooled.example.run", targets[1].URL)
}

func TestLoadTargetsEmptyFile(t *testing.T) {
	path := writeTargetsFile(t, "targets: []\n")
	_, err := LoadTargets(path)
	assert.Error(t, err)
}

func TestLoadTargetsMissingFile(t *testing.T) {
	_, err := LoadTargets(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFilterTargets(t *testing.T) {
	targets := []Target{
		{Name: "a", URL: "http://a"},
		{Name: "b", URL: "http://b"},
		{Name: "c", URL: "http://c"},
	}

	kept := FilterTargets(targets, []string{"c", "a"})
	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].Name, "registry order wins over filter order")
	assert.Equal(t, "c", kept[1].Name)

	assert.Equal(t, targets, FilterTargets(targets, nil))
	assert.Empty(t, FilterTargets(targets, []string{"nope"}))
}

func TestValidateTarget(t *testing.T) {
	assert.NoError(t, ValidateTarget(Target{Name: "ok", URL: "https://svc.example.run"}))

	err := ValidateTarget(Target{Name: "no-url"})
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))

	err = ValidateTarget(Target{Name: "bad-scheme", URL: "ftp://svc"})
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))

	err = ValidateTarget(Target{Name: "no-host", URL: "http://"})
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))
}
