// Package config holds the YAML configuration of the evaluation drivers.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/qrm-go/qrm/synth"
)

const (
	defaultMinM         = 1
	defaultMaxM         = 6
	defaultWorkers      = 4
	defaultSeed         = 42
	defaultSimulateMaxM = 4
	defaultReportDir    = "docs/reports"
	defaultCodec        = "zstd"
)

type Config struct {
	Sweep     SweepConfig    `yaml:"sweep"`
	Report    ReportConfig   `yaml:"report"`
	Artifacts ArtifactConfig `yaml:"artifacts"`
	// LogFile switches logging from stderr to a JSON file.
	LogFile string `yaml:"logFile"`
}

type SweepConfig struct {
	// Variants to run; empty means all.
	Variants []string `yaml:"variants"`
	MinM     int      `yaml:"minM"`
	MaxM     int      `yaml:"maxM"`
	Workers  int      `yaml:"workers"`
	Seed     int64    `yaml:"seed"`
	// RandomPartitions adds that many random split orders per recursive case.
	RandomPartitions int `yaml:"randomPartitions"`
	// SimulateMaxM bounds the cases checked on the state vector simulator.
	SimulateMaxM int  `yaml:"simulateMaxM"`
	StatePrep    bool `yaml:"statePrep"`
}

type ReportConfig struct {
	Dir      string `yaml:"dir"`
	Markdown string `yaml:"markdown"`
	JSON     string `yaml:"json"`
	CSV      string `yaml:"csv"`
	// Textfile is the prometheus textfile written after the sweep; empty disables it.
	Textfile string `yaml:"textfile"`
}

type ArtifactConfig struct {
	// Dir receives one file per encoder; empty disables artifacts.
	Dir   string `yaml:"dir"`
	Codec string `yaml:"codec"`
}

// WithDefaults returns a copy of the SweepConfig with any missing fields set to
// their default values.
func (c SweepConfig) WithDefaults() SweepConfig {
	cpy := c
	if cpy.MinM == 0 {
		cpy.MinM = defaultMinM
	}
	if cpy.MaxM == 0 {
		cpy.MaxM = defaultMaxM
	}
	if cpy.MaxM < cpy.MinM {
		cpy.MaxM = cpy.MinM
	}
	if cpy.Workers == 0 {
		cpy.Workers = defaultWorkers
	}
	if cpy.Seed == 0 {
		cpy.Seed = defaultSeed
	}
	if cpy.SimulateMaxM == 0 {
		cpy.SimulateMaxM = defaultSimulateMaxM
	}
	return cpy
}

// ParsedVariants resolves Variants, defaulting to every variant.
func (c SweepConfig) ParsedVariants() ([]synth.Variant, error) {
	if len(c.Variants) == 0 {
		return append([]synth.Variant(nil), synth.Variants...), nil
	}
	out := make([]synth.Variant, 0, len(c.Variants))
	for _, s := range c.Variants {
		v, err := synth.ParseVariant(s)
		if err != nil {
			return nil, errors.Wrap(err, "sweep variants")
		}
		out = append(out, v)
	}
	return out, nil
}

// WithDefaults returns a copy of the ReportConfig with the file names derived from
// Dir when unset.
func (c ReportConfig) WithDefaults() ReportConfig {
	cpy := c
	if cpy.Dir == "" {
		cpy.Dir = defaultReportDir
	}
	if cpy.Markdown == "" {
		cpy.Markdown = cpy.Dir + "/qrm_eval_report.md"
	}
	if cpy.JSON == "" {
		cpy.JSON = cpy.Dir + "/qrm_eval_report.json"
	}
	if cpy.CSV == "" {
		cpy.CSV = cpy.Dir + "/qrm_eval_report.csv"
	}
	return cpy
}

// WithDefaults returns a copy of the ArtifactConfig with the codec defaulted.
func (c ArtifactConfig) WithDefaults() ArtifactConfig {
	cpy := c
	if cpy.Codec == "" {
		cpy.Codec = defaultCodec
	}
	return cpy
}

// WithDefaults fills every section.
func (c Config) WithDefaults() Config {
	cpy := c
	cpy.Sweep = c.Sweep.WithDefaults()
	cpy.Report = c.Report.WithDefaults()
	cpy.Artifacts = c.Artifacts.WithDefaults()
	return cpy
}

// Load reads a YAML file. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(err, "load config")
		}
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&c); err != nil {
			return nil, errors.Wrapf(err, "decode config %s", path)
		}
	}
	c = c.WithDefaults()
	if _, err := c.Sweep.ParsedVariants(); err != nil {
		return nil, err
	}
	return &c, nil
}
