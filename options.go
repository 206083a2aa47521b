package xjson

import "fmt"

// Default reserved names. The version tag is fixed and lives in version.go.
const (
	// DefaultTypeTag is the object member naming the concrete type to
	// instantiate for that object.
	DefaultTypeTag = "__type"

	// DefaultTypeSeparator splits an inline-annotated member name into
	// its property name and type name halves.
	DefaultTypeSeparator = ':'
)

// Severity classifies messages delivered to a log sink.
type Severity string

const (
	// SeverityInfo marks purely informational messages.
	SeverityInfo Severity = "info"

	// SeverityWarn marks tolerated conditions such as dropped members
	// or unparseable version strings.
	SeverityWarn Severity = "warn"

	// SeverityError marks conditions that abort the call.
	SeverityError Severity = "error"
)

// LogFunc receives observational messages during a call. A sink must
// never influence the outcome of a call; absence of a sink changes
// nothing but visibility.
type LogFunc func(message string, severity Severity)

// Options configures a single deserialization call. An Options value is
// read-only for the duration of a call and may be shared across
// concurrent calls, provided Log is itself safe for concurrent use.
type Options struct {
	// Aliases maps short type names to registered types. Consulted
	// before any qualified lookup.
	Aliases *Registry

	// TypeTag is the reserved member name carrying an explicit type.
	TypeTag string

	// TypeSeparator splits inline type annotations in member names.
	TypeSeparator rune

	// QualifiedTypes permits resolving names absent from Aliases
	// against the process-wide qualified type index. Off by default:
	// enabling it lets untrusted input name arbitrary registered types.
	QualifiedTypes bool

	// Log, if set, receives informational, warning, and error messages.
	Log LogFunc
}

// Option mutates an Options value during construction.
type Option func(*Options)

// NewOptions returns an Options with defaults applied, then each opt in
// order.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		TypeTag:       DefaultTypeTag,
		TypeSeparator: DefaultTypeSeparator,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithAliases sets the alias registry consulted by the type resolver.
func WithAliases(r *Registry) Option {
	return func(o *Options) { o.Aliases = r }
}

// WithTypeTag overrides the reserved type-tag member name.
func WithTypeTag(tag string) Option {
	return func(o *Options) { o.TypeTag = tag }
}

// WithTypeSeparator overrides the inline annotation separator.
func WithTypeSeparator(sep rune) Option {
	return func(o *Options) { o.TypeSeparator = sep }
}

// WithQualifiedTypes permits resolution of fully-qualified type names
// taken directly from input. Leave off unless the input is trusted.
func WithQualifiedTypes() Option {
	return func(o *Options) { o.QualifiedTypes = true }
}

// WithLogger sets the log sink for the call.
func WithLogger(fn LogFunc) Option {
	return func(o *Options) { o.Log = fn }
}

// logf formats a message into the sink, if one is configured.
func (o *Options) logf(sev Severity, format string, args ...any) {
	if o.Log == nil {
		return
	}
	o.Log(fmt.Sprintf(format, args...), sev)
}
