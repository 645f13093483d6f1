package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl string            `json:"base_url"`
	Rate    float64           `json:"rate"`
	Headers map[string]string `json:"headers"`
}

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0600)
	if err != nil {
		t.Fatal(err)
	}
}

func TestSplitExt(t *testing.T) {
	testCases := []struct {
		input  string
		prefix string
		ext    string
	}{
		{input: "config.json5", prefix: "config", ext: "json5"},
		{input: "a.b.json5", prefix: "a.b", ext: "json5"},
		{input: "noext", prefix: "noext", ext: ""},
	}
	for _, test := range testCases {
		prefix, ext := splitExt(test.input)
		require.Equal(t, test.prefix, prefix)
		require.Equal(t, test.ext, ext)
	}
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{
		// comments are allowed
		base_url: "https://archiveofourown.org",
		rate: 0.5,
	}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{ rate: 2 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://archiveofourown.org", cfg.BaseUrl)
	require.Equal(t, 2.0, cfg.Rate)
}

func TestMergeConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ rate: 3 }`)

	cfg := testConfig{BaseUrl: "https://default.example"}
	err := MergeConfig(filepath.Join(dir, "app.json5"), &cfg)
	require.NoError(t, err)
	require.Equal(t, "https://default.example", cfg.BaseUrl)
	require.Equal(t, 3.0, cfg.Rate)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "missing.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMergeRecursivelyAbsolute(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{ base_url: "https://absolute.example" }`)

	cfg := testConfig{Rate: 2}
	err := MergeRecursively(filepath.Join(dir, "app.json5"), &cfg)
	require.NoError(t, err)
	require.Equal(t, "https://absolute.example", cfg.BaseUrl)
	require.Equal(t, 2.0, cfg.Rate)

	err = MergeRecursively(filepath.Join(dir, "missing.json5"), &cfg)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenDBMemory(t *testing.T) {
	db, err := Database{File: ":memory:"}.OpenDB(`create table t (x integer);`)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec("insert into t (x) values (1)")
	require.NoError(t, err)
}

func TestOpenDBUnspecified(t *testing.T) {
	_, err := Database{}.OpenDB("")
	require.Error(t, err)
}
