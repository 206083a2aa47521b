package xjson

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrParse indicates the input text is not well-formed JSON or XJSON.
	ErrParse = errors.New("parse failed")

	// ErrVersion indicates the input declares a major version newer than
	// the engine supports.
	ErrVersion = errors.New("unsupported version")

	// ErrResolve indicates a type name could not be resolved to a
	// registered type.
	ErrResolve = errors.New("type not resolved")

	// ErrConstruct indicates a resolved type could not be instantiated.
	ErrConstruct = errors.New("construct failed")

	// ErrBind indicates a mapped value could not be delivered into the
	// requested result type. Per-member binding misses are warnings, not
	// errors; ErrBind covers the root value only.
	ErrBind = errors.New("bind failed")
)

// ParseError wraps a syntax failure from the underlying parser.
// No partial tree or object graph accompanies it.
type ParseError struct {
	Cause error // Original error from the parser
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", ErrParse.Error(), e.Cause)
	}
	return ErrParse.Error()
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// VersionError reports that the input's declared major version exceeds
// the engine's major version. It is raised before any mapping occurs.
type VersionError struct {
	Declared string // Version string found in the input
	Major    int    // Major component parsed from Declared
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("%s: input declares %q (major %d), engine is %d.%d",
		ErrVersion.Error(), e.Declared, e.Major, EngineMajor, EngineMinor)
}

func (e *VersionError) Unwrap() error {
	return ErrVersion
}

// ResolveError reports a type name that could not be resolved, either
// because no alias matched, because qualified lookup was disallowed or
// missed, or because an interface slot offered no name to resolve.
type ResolveError struct {
	Name   string // Name or slot that failed to resolve
	Reason string // Why resolution failed
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("%s: %q: %s", ErrResolve.Error(), e.Name, e.Reason)
}

func (e *ResolveError) Unwrap() error {
	return ErrResolve
}

// ConstructError reports a type that could not be default-constructed.
// A non-concrete type reaching construction is an internal contract
// violation of the mapper, reported through the same type.
type ConstructError struct {
	Type  string // Type name that failed to construct
	Cause error  // Underlying reason, if any
}

func (e *ConstructError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", ErrConstruct.Error(), e.Type, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConstruct.Error(), e.Type)
}

func (e *ConstructError) Unwrap() error {
	return ErrConstruct
}

// newParseError wraps a parser failure.
func newParseError(cause error) error {
	return &ParseError{Cause: cause}
}

// newResolveError creates a ResolveError for a failed name lookup.
func newResolveError(name, reason string) error {
	return &ResolveError{Name: name, Reason: reason}
}

// newConstructError creates a ConstructError for an instantiation failure.
func newConstructError(typeName string, cause error) error {
	return &ConstructError{Type: typeName, Cause: cause}
}

// BindError reports that the mapped root value does not fit the
// requested result type.
type BindError struct {
	Target string // Requested result type
	Value  string // Type the mapper actually produced
}

func (e *BindError) Error() string {
	return fmt.Sprintf("%s: mapped %s does not fit requested %s", ErrBind.Error(), e.Value, e.Target)
}

func (e *BindError) Unwrap() error {
	return ErrBind
}
