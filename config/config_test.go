package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/yamlschema"
	"github.com/reoring/yamlschema/config"
)

func write(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "yamlschema.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := write(t, `
yaml = "schemas/share"
dest = "out/schema"
docs = "out/share.csv"
separator = "."
validate = true
test = "fixtures/sample"
`)
	cfg, err := config.Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{
		YAML:      "schemas/share",
		Dest:      "out/schema",
		Docs:      "out/share.csv",
		Test:      "fixtures/sample",
		Separator: ".",
		Validate:  true,
	}, cfg)
}

func TestLoad_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.toml")

	cfg, err := config.Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)

	_, err = config.Load(path, true)
	assert.Equal(t, yamlschema.KindConfig, yamlschema.KindOf(err))
}

func TestLoad_UnknownKeys(t *testing.T) {
	_, err := config.Load(write(t, "yaml = \"a\"\nyml = \"b\"\n"), true)
	require.Error(t, err)
	assert.Equal(t, yamlschema.KindConfig, yamlschema.KindOf(err))
	assert.Contains(t, err.Error(), "yml")
}

func TestLoad_InvalidTOML(t *testing.T) {
	_, err := config.Load(write(t, "yaml = \n"), true)
	assert.Equal(t, yamlschema.KindConfig, yamlschema.KindOf(err))
}

func TestCheckVersion(t *testing.T) {
	cfg := &config.Config{RequiredVersion: ">= 0.2, < 1.0"}
	assert.NoError(t, cfg.CheckVersion("0.3.1"))
	assert.Error(t, cfg.CheckVersion("0.1.0"))
	assert.Error(t, cfg.CheckVersion("1.2.0"))
	assert.NoError(t, cfg.CheckVersion("dev"))

	assert.NoError(t, (&config.Config{}).CheckVersion("0.0.1"))

	bad := &config.Config{RequiredVersion: "~~ nope"}
	assert.Equal(t, yamlschema.KindConfig, yamlschema.KindOf(bad.CheckVersion("0.1.0")))
}
