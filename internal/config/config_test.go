package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Point at an empty dir so a developer's real config cannot leak in.
	t.Setenv("TERNAK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2.0, cfg.Sensitivity.StepCM)
	require.Equal(t, 1, cfg.Sensitivity.Span)
	require.Equal(t, 30.0, cfg.Limits.MinCM)
	require.Equal(t, 300.0, cfg.Limits.MaxCM)
	require.Equal(t, "cattle", cfg.UI.DefaultSpecies)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[sensitivity]\nstep_cm = 5.0\nspan = 2\n\n[ui]\ndefault_species = \"goat\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("TERNAK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 5.0, cfg.Sensitivity.StepCM)
	require.Equal(t, 2, cfg.Sensitivity.Span)
	require.Equal(t, "goat", cfg.UI.DefaultSpecies)
	// untouched section keeps defaults
	require.Equal(t, 30.0, cfg.Limits.MinCM)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TERNAK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("TERNAK_SENSITIVITY_STEP_CM", "4")
	t.Setenv("TERNAK_UI_DEFAULT_SPECIES", "sheep")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 4.0, cfg.Sensitivity.StepCM)
	require.Equal(t, "sheep", cfg.UI.DefaultSpecies)
}

func TestLoadNormalizesBadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[sensitivity]\nstep_cm = -3.0\nspan = 99\n\n[limits]\nmin_cm = 500.0\nmax_cm = 10.0\n\n[ui]\ndefault_species = \"llama\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	t.Setenv("TERNAK_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2.0, cfg.Sensitivity.StepCM)
	require.Equal(t, 1, cfg.Sensitivity.Span)
	require.Equal(t, 30.0, cfg.Limits.MinCM)
	require.Equal(t, 300.0, cfg.Limits.MaxCM)
	require.Equal(t, "cattle", cfg.UI.DefaultSpecies)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("TERNAK_CONFIG", path)

	want := Config{
		Sensitivity: SensitivityConfig{StepCM: 3.0, Span: 2},
		Limits:      LimitsConfig{MinCM: 25, MaxCM: 280},
		UI:          UIConfig{DefaultSpecies: "sheep"},
	}
	require.NoError(t, Save(want))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
