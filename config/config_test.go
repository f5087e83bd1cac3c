package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func newFlagSet() *pflag.FlagSet {
	return pflag.NewFlagSet("reactor", pflag.ContinueOnError)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, 6000.0, cfg.Voltage.Amplitude)
	assert.Equal(t, 910.0, cfg.Voltage.Frequency)
	assert.Equal(t, 1.347e-9, cfg.Capacitors.Cell.Value)
	assert.Equal(t, 2.13e-9, cfg.Capacitors.Barrier.Value)
	assert.Equal(t, 3.660e-9, cfg.Capacitors.Gap.Value)
	assert.Equal(t, 1e-2, cfg.Simulation.Duration)
	assert.Equal(t, 1e5, cfg.Simulation.SampleRate)
	assert.Equal(t, "plots", cfg.Output.Dir)
}

func TestLoadPrecedence(t *testing.T) {
	file := filepath.Join(t.TempDir(), "reactor.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
voltage:
  amplitude: 5000
  frequency: 800
simulation:
  sample_rate: 20000
output:
  charts: out/charts.html
`), 0o644))
	t.Setenv("REACTOR_VOLTAGE_FREQUENCY", "700")

	cfg, err := Load(newFlagSet(), []string{"--config", file, "--voltage.amplitude=4000"})
	require.NoError(t, err)
	assert.Equal(t, 4000.0, cfg.Voltage.Amplitude)
	assert.Equal(t, 700.0, cfg.Voltage.Frequency)
	assert.Equal(t, 2e4, cfg.Simulation.SampleRate)
	assert.Equal(t, "out/charts.html", cfg.Output.Charts)
	assert.Equal(t, 1e-2, cfg.Simulation.Duration)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(newFlagSet(), []string{"--simulation.duration=-1"})
	assert.ErrorIs(t, err, ErrInvalid)
	_, err = Load(newFlagSet(), []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
	_, err = Load(newFlagSet(), []string{"--no-such-flag"})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Frequency", func(c *Config) { c.Voltage.Frequency = 0 }},
		{"ZeroAmplitude", func(c *Config) { c.Voltage.Amplitude = 0 }},
		{"CellValue", func(c *Config) { c.Capacitors.Cell.Value = -1e-9 }},
		{"GapSymbol", func(c *Config) { c.Capacitors.Gap.Symbol = "" }},
		{"DuplicateSymbol", func(c *Config) { c.Capacitors.Barrier.Symbol = "C_cell" }},
		{"TimeSymbol", func(c *Config) { c.Capacitors.Cell.Symbol = "t" }},
		{"FunctionSymbol", func(c *Config) { c.Capacitors.Gap.Symbol = "Q" }},
		{"SampleRate", func(c *Config) { c.Simulation.SampleRate = 0 }},
		{"NoSamples", func(c *Config) { c.Simulation.Duration = 1e-9 }},
		{"PartialSample", func(c *Config) { c.Simulation.Duration, c.Simulation.SampleRate = 0.0159, 50 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}

func TestYAML(t *testing.T) {
	cfg := Default()
	out, err := cfg.YAML()
	require.NoError(t, err)
	var back Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &back))
	assert.Equal(t, cfg, back)
	assert.Contains(t, out, "sample_rate:")
}
