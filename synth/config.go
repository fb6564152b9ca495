package synth

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/qrm-go/qrm/internal/options"
	"github.com/qrm-go/qrm/partition"
	"github.com/qrm-go/qrm/rm"
)

// Config parameterizes one synthesis.
type Config struct {
	Variant Variant
	// R is the code degree; for Asymmetric it is the X-stabilizer degree.
	R int
	M int
	// RIn is the logical degree of the Asymmetric variant.
	RIn int
	// Qubits labels the 2^M evaluation points; nil means 0..2^M-1.
	// The Punctured variant drops Qubits[0].
	Qubits []int
	// Partition overrides the splitting variable per recursion level.
	Partition *partition.Spec
	// OnlyCNOTs suppresses every Hadamard.
	OnlyCNOTs bool
	// StatePrep omits the all-ones logical of the Punctured variant.
	StatePrep bool
	// TransformRows reduces the flat encoder's rows to minimum weight first.
	TransformRows bool

	Logger *zap.Logger
	Tracer Tracer
}

// Option configures a Config.
type Option = options.Option[*Config]

// WithQubits sets the qubit labels.
func WithQubits(q []int) Option {
	return options.NoError(func(c *Config) { c.Qubits = append([]int(nil), q...) })
}

// WithPartition sets nested split overrides.
func WithPartition(s *partition.Spec) Option {
	return options.NoError(func(c *Config) { c.Partition = s })
}

// WithOnlyCNOTs drops Hadamards from the output.
func WithOnlyCNOTs() Option {
	return options.NoError(func(c *Config) { c.OnlyCNOTs = true })
}

// WithStatePrep drops the punctured all-ones logical.
func WithStatePrep() Option {
	return options.NoError(func(c *Config) { c.StatePrep = true })
}

// WithoutRowTransform keeps the flat encoder's rows as generated.
func WithoutRowTransform() Option {
	return options.NoError(func(c *Config) { c.TransformRows = false })
}

// WithRIn sets the Asymmetric logical degree.
func WithRIn(rIn int) Option {
	return options.NoError(func(c *Config) { c.RIn = rIn })
}

// WithLogger attaches a logger; nodes are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return options.New(func(c *Config) error {
		if l == nil {
			return errors.New("nil logger")
		}
		c.Logger = l
		return nil
	})
}

// WithTracer attaches a node observer.
func WithTracer(t Tracer) Option {
	return options.NoError(func(c *Config) { c.Tracer = t })
}

// NewConfig builds and validates a Config. RIn defaults to r.
func NewConfig(v Variant, r, m int, opts ...Option) (*Config, error) {
	c := &Config{Variant: v, R: r, M: m, RIn: r, TransformRows: true}
	if err := options.Apply(c, opts...); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func invalid(format string, args ...any) error {
	return errors.Wrapf(rm.ErrInvalidParameters, format, args...)
}

// Validate checks the variant guards and the qubit labels.
func (c *Config) Validate() error {
	r, m := c.R, c.M
	if m < 0 || m > rm.MaxM {
		return invalid("m=%d outside [0,%d]", m, rm.MaxM)
	}
	switch c.Variant {
	case Standard:
		if r < 0 || r > m || r < m-r-1 {
			return invalid("%s needs 0 <= r <= m and r >= m-r-1, got r=%d m=%d", c.Variant, r, m)
		}
	case Recursive:
		if r > m || r < m-r-1 {
			return invalid("%s needs r <= m and r >= m-r-1, got r=%d m=%d", c.Variant, r, m)
		}
	case Basis:
		if r < -1 || r > m {
			return invalid("%s needs -1 <= r <= m, got r=%d m=%d", c.Variant, r, m)
		}
	case Asymmetric:
		if r < -1 || r > c.RIn || c.RIn > m {
			return invalid("%s needs -1 <= r <= rIn <= m, got r=%d rIn=%d m=%d", c.Variant, r, c.RIn, m)
		}
	case Punctured:
		if r >= m || r < m-r-1 {
			return invalid("%s needs r < m and r >= m-r-1, got r=%d m=%d", c.Variant, r, m)
		}
	default:
		return invalid("unknown variant %d", c.Variant)
	}
	if c.Qubits != nil {
		if len(c.Qubits) != 1<<m {
			return invalid("%d qubit labels for m=%d", len(c.Qubits), m)
		}
		seen := make(map[int]bool, len(c.Qubits))
		for _, q := range c.Qubits {
			if q < 0 || seen[q] {
				return invalid("qubit label %d repeated or negative", q)
			}
			seen[q] = true
		}
	}
	if c.Variant != Standard {
		if err := c.Partition.Validate(m); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) labels() []int {
	if c.Qubits != nil {
		return append([]int(nil), c.Qubits...)
	}
	out := make([]int, 1<<c.M)
	for i := range out {
		out[i] = i
	}
	return out
}

// degrees returns the stabilizer and logical degree of the top node.
func (c *Config) degrees() (s, t int) {
	switch c.Variant {
	case Basis:
		return -1, c.R
	case Asymmetric:
		return c.R, c.RIn
	}
	return c.M - c.R - 1, c.R
}
