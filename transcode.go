package xjson

import (
	"reflect"
	"strings"
)

// Transcode rewrites XJSON source text into canonical JSON text.
//
// XJSON is line-oriented: full-line comments (two slashes after leading
// whitespace) and blank lines are dropped, the surviving top-level
// members are wrapped in braces, and, when hint names a concrete
// non-dictionary target and the source declares no type tag of its own,
// a synthetic type-tag member naming hint is injected after the opening
// brace. A nil hint requests plain dictionary output.
//
// Transcoding never fails; text that is malformed after rewriting is
// rejected by the parser.
func Transcode(src []byte, hint reflect.Type, opts ...Option) []byte {
	out, _ := transcode(src, hint, NewOptions(opts...))
	return out
}

// transcode additionally reports the qualified name it injected, if any.
func transcode(src []byte, hint reflect.Type, o *Options) ([]byte, string) {
	lines := strings.Split(string(src), "\n")
	kept := make([]string, 0, len(lines))
	tagKey := `"` + o.TypeTag + `"`

	hasTag := false
	statements := 0
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "//") {
			continue
		}
		if strings.HasPrefix(trimmed, tagKey) {
			hasTag = true
		} else {
			statements++
		}
		kept = append(kept, line)
	}

	injected := ""
	if !hasTag && wantsTypeTag(hint) {
		injected = Describe(hint).QualifiedName()
		member := tagKey + `: "` + injected + `"`
		if statements > 0 {
			member += ","
		}
		kept = append([]string{member}, kept...)
	}

	emitTranscodeDone(statements, injected)

	if len(kept) == 0 {
		return []byte("{}"), injected
	}
	return []byte("{\n" + strings.Join(kept, "\n") + "\n}"), injected
}

// wantsTypeTag reports whether a target type should receive a synthetic
// type tag. Dictionary-style targets (no hint, interfaces, maps) do not.
func wantsTypeTag(hint reflect.Type) bool {
	if hint == nil {
		return false
	}
	switch hint.Kind() {
	case reflect.Interface, reflect.Map:
		return false
	default:
		return true
	}
}
