// Package xjson deserializes semi-structured JSON text into statically
// named object graphs without requiring target types to declare any
// serialization metadata.
//
// The package maps a parsed value tree onto plain Go types by
// reflection. Which types may be instantiated is governed by a
// caller-built alias registry, so untrusted input can only ever name
// types the caller registered. On top of canonical JSON the package
// reads XJSON, a superset with full-line comments and an implicit
// top-level object, which is transcoded losslessly to JSON before
// parsing.
//
// # Type tags and aliases
//
// An object may carry a reserved member (default "__type") naming the
// concrete type to instantiate. The name is resolved through the alias
// registry, which lets interface-typed slots receive concrete values:
//
//	reg := xjson.NewRegistry()
//	xjson.Register[Hero](reg, "Hero")
//
//	c, err := xjson.Unmarshal[Citizen](
//	    []byte(`{"AlterEgo": {"__type": "Hero", "Name": "Batman"}}`),
//	    xjson.WithAliases(reg),
//	)
//
// A member name of the form "property: Type" is an inline annotation
// carrying its own type, equivalent to a type tag on the value:
//
//	{"AlterEgo: Hero": {"Name": "Batman"}}
//
// # Dictionary fallback
//
// Objects with no concrete target map to *Dict, an insertion-ordered
// string-keyed dictionary. Arrays with no element hint map to []any
// and numbers with no hint map to float64.
//
// # Security
//
// By default only aliased types can be instantiated. WithQualifiedTypes
// additionally permits package-qualified names from the input to
// resolve against every type the process has registered; enable it only
// for trusted input, since it lets the text choose what gets
// constructed.
//
// # Versioning
//
// A producer may embed a reserved "__version": "<major>.<minor>"
// member. Inputs declaring a major version above the engine's are
// rejected before any mapping; unparseable version strings are
// tolerated with a warning.
//
// # XJSON
//
//	// speed of light, m/s
//	"c": 299792458,
//	"g": 9.81
//
// transcodes to {"c": 299792458, "g": 9.81}. Files with the .xjson
// extension are transcoded automatically by ReadFile.
package xjson

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/zoobzio/xjson/ast"
)

// Unmarshal deserializes JSON text into a T. When T is a concrete
// type it serves as the mapping hint for the whole tree; when T is the
// empty interface the result is inferred per node (Dict, []any,
// float64, string, bool).
func Unmarshal[T any](data []byte, opts ...Option) (T, error) {
	return finish[T](decode(data, hintFor[T](), NewOptions(opts...)))
}

// UnmarshalAny deserializes JSON text with no target type. Objects
// become *Dict, arrays []any, numbers float64.
func UnmarshalAny(data []byte, opts ...Option) (any, error) {
	return decode(data, nil, NewOptions(opts...))
}

// Map converts an already-parsed value tree under a target-type hint.
// A nil hint infers the representation. The version gate runs against
// node before any mapping, exactly as it does for raw text.
func Map(node ast.Value, hint reflect.Type, opts ...Option) (any, error) {
	o := NewOptions(opts...)
	if err := checkVersion(node, o); err != nil {
		return nil, err
	}
	m := &mapper{opts: o}
	return m.mapValue(node, hint)
}

// ReadFile deserializes the named file into a T. Files whose extension
// is .xjson are transcoded first; anything else is parsed as canonical
// JSON.
func ReadFile[T any](path string, opts ...Option) (T, error) {
	var zero T
	data, err := os.ReadFile(path)
	if err != nil {
		return zero, err
	}

	o := NewOptions(opts...)
	hint := hintFor[T]()
	if IsXJSONPath(path) {
		var injected string
		data, injected = transcode(data, hint, o)
		if injected != "" {
			// The synthetic tag names the target by qualified name;
			// make that name resolvable for this call without widening
			// the caller's registry or the security gate.
			layered := o.Aliases.clone().RegisterNamed(injected, hint)
			shadow := *o
			shadow.Aliases = layered
			o = &shadow
		}
	}

	return finish[T](decode(data, hint, o))
}

// ReadFileAny is ReadFile with no target type.
func ReadFileAny(path string, opts ...Option) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	o := NewOptions(opts...)
	if IsXJSONPath(path) {
		data, _ = transcode(data, nil, o)
	}
	return decode(data, nil, o)
}

// IsXJSONPath reports whether a path's extension marks it as XJSON.
func IsXJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xjson")
}

// decode is the shared text-to-value pipeline: parse, gate the version,
// then map.
func decode(data []byte, hint reflect.Type, o *Options) (any, error) {
	start := time.Now()
	emitDecodeStart(hintName(hint), len(data))

	var retErr error
	defer func() {
		emitDecodeComplete(hintName(hint), time.Since(start), retErr)
	}()

	node, err := ast.ParseBytes(data)
	if err != nil {
		retErr = newParseError(err)
		o.logf(SeverityError, "%v", retErr)
		return nil, retErr
	}

	if err := checkVersion(node, o); err != nil {
		retErr = err
		return nil, retErr
	}

	m := &mapper{opts: o}
	res, err := m.mapValue(node, hint)
	if err != nil {
		retErr = err
		return nil, retErr
	}
	return res, nil
}

// finish casts the mapped result to the requested type, reconciling
// numeric shapes where the engine defaulted differently.
func finish[T any](res any, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	if res == nil {
		return zero, nil
	}
	if out, ok := res.(T); ok {
		return out, nil
	}

	want := reflect.TypeFor[T]()
	rv := reflect.ValueOf(res)
	if convertible(rv.Type(), want) {
		return rv.Convert(want).Interface().(T), nil
	}
	return zero, &BindError{Target: want.String(), Value: rv.Type().String()}
}

// hintFor returns T as a mapping hint, with the empty interface
// collapsing to "no hint".
func hintFor[T any]() reflect.Type {
	rt := reflect.TypeFor[T]()
	if isUntyped(rt) {
		return nil
	}
	return rt
}

// hintName renders a hint for observability.
func hintName(hint reflect.Type) string {
	if hint == nil {
		return "dictionary"
	}
	return hint.String()
}
