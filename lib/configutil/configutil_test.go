package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Timeout int    `json:"timeout"`
}

func write(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestReadMergesLocalOverride(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "config.json5"),
		`{ base_url: "https://example.org", timeout: 30 }`)
	write(t, filepath.Join(dir, "config.local.json5"),
		`{ timeout: 5 }`)

	config, err := Read[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://example.org", config.BaseUrl)
	require.Equal(t, 5, config.Timeout)
}

func TestReadMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := Read[testConfig](filepath.Join(dir, "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
