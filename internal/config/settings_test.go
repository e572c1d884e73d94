package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	s, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, DefaultSettings(), *s)
}

func TestLoadSettings_MissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err, "Should tolerate a missing settings file")

	assert.Empty(t, s.Configuration, "Should defer to the registry default")
	assert.Zero(t, s.CapitalLossCap)
}

func TestLoadSettings_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rptax.yaml")
	content := `
configuration: 2025-mfj
capital_loss_cap: 2500
output_format: JSON
logging:
  level: info
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("RPTAX_LOGGING_LEVEL", "DEBUG")

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, Config2025MFJ, s.Configuration, "Should read the file")
	assert.Equal(t, 2500.0, s.CapitalLossCap)
	assert.Equal(t, "json", s.OutputFormat, "Should normalize case")
	assert.Equal(t, "debug", s.Logging.Level, "Should let the environment win")
	assert.Equal(t, "json", s.Logging.Format)
	assert.Equal(t, "scenario:", s.SeedPrefix, "Should keep defaults for absent keys")
}

func TestLoadSettings_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rptax.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [unclosed"), 0644))

	_, err := LoadSettings(path)

	assert.ErrorContains(t, err, "error reading settings file")
}

func TestLoadSettings_NegativeLossCap(t *testing.T) {
	t.Setenv("RPTAX_CAPITAL_LOSS_CAP", "-1")

	_, err := LoadSettings("")

	assert.ErrorContains(t, err, "capital_loss_cap")
}

func TestSettings_Apply(t *testing.T) {
	p := NewInputParser()
	s := Settings{Configuration: Config2025MFJ, CapitalLossCap: 1200}

	s.Apply(p)

	assert.Equal(t, Config2025MFJ, p.DefaultConfiguration)
	assert.Equal(t, "1200", p.CapitalLossCap.String())
}
