package compare

// Default thresholds for reporting floating point differences.
const (
	// DefaultDifferenceThreshold bounds the relative difference
	// |a-b|/|expected| below which the absolute difference is
	// shown. Beyond it the two printed values already tell the
	// story.
	DefaultDifferenceThreshold = 1e-4

	// DefaultToleranceHintThreshold bounds the relative
	// difference below which a tolerance-aware check is
	// suggested.
	DefaultToleranceHintThreshold = 1e-6
)

// Options configures a Comparer.
type Options struct {
	// DifferenceThreshold is the strict relative bound for
	// attaching the literal difference to a float mismatch.
	DifferenceThreshold float64 `yaml:"difference_threshold" json:"difference_threshold"`

	// ToleranceHintThreshold is the strict relative bound for
	// suggesting a tolerance-aware check.
	ToleranceHintThreshold float64 `yaml:"tolerance_hint_threshold" json:"tolerance_hint_threshold"`

	// MatchStructTypes makes two structs of different types a
	// TypeMismatch instead of matching their fields by name.
	MatchStructTypes bool `yaml:"match_struct_types" json:"match_struct_types"`
}

// DefaultOptions returns the default comparison options.
func DefaultOptions() Options {
	return Options{
		DifferenceThreshold:    DefaultDifferenceThreshold,
		ToleranceHintThreshold: DefaultToleranceHintThreshold,
	}
}

// Option configures Options.
type Option func(*Options)

// WithOptions replaces all options at once.
func WithOptions(o Options) Option {
	return func(opts *Options) {
		*opts = o
	}
}

// WithDifferenceThreshold sets the relative bound for showing a
// float difference.
func WithDifferenceThreshold(t float64) Option {
	return func(opts *Options) {
		opts.DifferenceThreshold = t
	}
}

// WithToleranceHintThreshold sets the relative bound for
// suggesting a tolerance-aware check.
func WithToleranceHintThreshold(t float64) Option {
	return func(opts *Options) {
		opts.ToleranceHintThreshold = t
	}
}

// WithMatchStructTypes toggles strict struct type matching.
func WithMatchStructTypes(strict bool) Option {
	return func(opts *Options) {
		opts.MatchStructTypes = strict
	}
}

func buildOptions(base Options, opts []Option) Options {
	for _, o := range opts {
		o(&base)
	}
	return base
}
