package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/qrm-go/qrm/rm"
	"github.com/qrm-go/qrm/synth"
)

func TestSweepConfigWithDefaults(t *testing.T) {
	tests := []struct {
		name     string
		input    SweepConfig
		expected SweepConfig
	}{
		{
			name:  "Empty config",
			input: SweepConfig{},
			expected: SweepConfig{
				MinM:         1,
				MaxM:         6,
				Workers:      4,
				Seed:         42,
				SimulateMaxM: 4,
			},
		},
		{
			name:  "MaxM below MinM",
			input: SweepConfig{MinM: 8, MaxM: 3},
			expected: SweepConfig{
				MinM:         8,
				MaxM:         8,
				Workers:      4,
				Seed:         42,
				SimulateMaxM: 4,
			},
		},
		{
			name: "Explicit values are kept",
			input: SweepConfig{
				Variants:         []string{"recursive"},
				MinM:             2,
				MaxM:             9,
				Workers:          16,
				Seed:             7,
				RandomPartitions: 3,
				SimulateMaxM:     5,
			},
			expected: SweepConfig{
				Variants:         []string{"recursive"},
				MinM:             2,
				MaxM:             9,
				Workers:          16,
				Seed:             7,
				RandomPartitions: 3,
				SimulateMaxM:     5,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.input.WithDefaults())
		})
	}
}

func TestReportConfigWithDefaults(t *testing.T) {
	got := ReportConfig{Dir: "out"}.WithDefaults()
	require.Equal(t, "out/qrm_eval_report.md", got.Markdown)
	require.Equal(t, "out/qrm_eval_report.csv", got.CSV)
	require.Empty(t, got.Textfile)
	require.Equal(t, "docs/reports/qrm_eval_report.json", ReportConfig{}.WithDefaults().JSON)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qrm.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sweep:
  variants: [recursive, Punctured]
  maxM: 5
  statePrep: true
artifacts:
  dir: out/artifacts
  codec: lz4
`), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 5, c.Sweep.MaxM)
	require.Equal(t, 1, c.Sweep.MinM)
	require.True(t, c.Sweep.StatePrep)
	require.Equal(t, "lz4", c.Artifacts.Codec)
	vs, err := c.Sweep.ParsedVariants()
	require.NoError(t, err)
	require.Equal(t, []synth.Variant{synth.Recursive, synth.Punctured}, vs)

	def, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "zstd", def.Artifacts.Codec)
	all, err := def.Sweep.ParsedVariants()
	require.NoError(t, err)
	require.Len(t, all, len(synth.Variants))

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("sweep:\n  variants: [spiral]\n"), 0o644))
	_, err = Load(bad)
	require.ErrorIs(t, err, rm.ErrInvalidParameters)
}

func TestCreateLoggerToFile(t *testing.T) {
	c := Config{LogFile: filepath.Join(t.TempDir(), "qrm.log")}
	logger, closer, err := c.CreateLogger(true)
	require.NoError(t, err)
	logger.Debug("hello")
	require.NoError(t, logger.Sync())
	require.NoError(t, closer.Close())
	b, err := os.ReadFile(c.LogFile)
	require.NoError(t, err)
	require.Contains(t, string(b), `"msg":"hello"`)
}
