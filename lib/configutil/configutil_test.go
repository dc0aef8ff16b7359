package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string `json:"base_url"`
	Delay   int    `json:"delay"`
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json5")
	writeFile(t, path, `{
		// json5 comments are fine
		base_url: "https://example.esse3.cineca.it",
		delay: 500,
	}`)

	got, err := ReadConfig[testConfig](path)
	require.NoError(t, err)

	want := testConfig{BaseUrl: "https://example.esse3.cineca.it", Delay: 500}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		base_url: "https://example.esse3.cineca.it",
		delay: 500,
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{
		delay: 50,
	}`)

	got, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)

	want := testConfig{BaseUrl: "https://example.esse3.cineca.it", Delay: 50}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatal(diff)
	}
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.True(t, os.IsNotExist(err))
}
