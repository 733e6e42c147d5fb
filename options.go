package jsonmap

import (
	"github.com/viant/jsonmap/descriptor"
	"github.com/viant/tagly/format/text"
)

// Mode controls builtin conversion strictness
type Mode int

const (
	// ModeCompat coerces compatible JSON scalars into field type
	ModeCompat Mode = iota
	// ModeStrict requires JSON value kind to match field kind
	ModeStrict
)

// String returns mode name
func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "compat"
}

// ParseMode parses mode name, unknown names default to compat
func ParseMode(name string) Mode {
	if name == "strict" {
		return ModeStrict
	}
	return ModeCompat
}

// DefaultMaxDepth caps object nesting when not configured
const DefaultMaxDepth = 64

// Option mutates mapper options
type Option interface{ apply(*Options) }

// Options defines mapper behavior
type Options struct {
	Mode       Mode
	CaseFormat text.CaseFormat
	UseNumber  bool
	MaxDepth   int
	Resolver   *descriptor.Resolver
}

type optionFn func(*Options)

func (o optionFn) apply(opts *Options) { o(opts) }

// WithMode sets conversion mode
func WithMode(mode Mode) Option {
	return optionFn(func(o *Options) { o.Mode = mode })
}

// WithCaseFormat sets case format used to derive declared names of untagged fields
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return optionFn(func(o *Options) { o.CaseFormat = caseFormat })
}

// WithUseNumber makes interface{} fields receive json.Number instead of float64
func WithUseNumber(enabled bool) Option {
	return optionFn(func(o *Options) { o.UseNumber = enabled })
}

// WithMaxDepth sets maximum object nesting depth
func WithMaxDepth(depth int) Option {
	return optionFn(func(o *Options) { o.MaxDepth = depth })
}

// WithResolver sets descriptor resolver, it takes precedence over WithCaseFormat
func WithResolver(resolver *descriptor.Resolver) Option {
	return optionFn(func(o *Options) { o.Resolver = resolver })
}

func defaultOptions() Options {
	return Options{
		Mode:       ModeCompat,
		CaseFormat: text.CaseFormatLowerCamel,
		MaxDepth:   DefaultMaxDepth,
	}
}

func resolveOptions(opts []Option) Options {
	result := defaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(&result)
	}
	if result.MaxDepth <= 0 {
		result.MaxDepth = DefaultMaxDepth
	}
	if result.Resolver == nil {
		result.Resolver = descriptor.NewResolver(descriptor.WithCaseFormat(result.CaseFormat))
	}
	return result
}
