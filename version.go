package xjson

import (
	"strconv"
	"strings"

	"github.com/zoobzio/xjson/ast"
)

// Engine version, compared against the reserved version tag of inputs.
// Only the major component participates in the gate.
const (
	EngineMajor = 1
	EngineMinor = 0
)

// VersionTag is the reserved member carrying a producer's format
// version. Unlike the type tag it is not configurable.
const VersionTag = "__version"

// checkVersion gates the root node's declared version before any
// mapping happens. A declared major version newer than the engine's is
// fatal. Anything else passes: a missing tag, a non-object root, or an
// unparseable version string (the last with a warning).
func checkVersion(root ast.Value, o *Options) error {
	obj, ok := root.(ast.Object)
	if !ok {
		return nil
	}
	tag, ok := obj.Find(VersionTag)
	if !ok {
		return nil
	}

	str, ok := tag.(ast.String)
	if !ok {
		o.logf(SeverityWarn, "version tag is %s, not a string; ignoring", tag.Kind())
		emitVersionChecked("", 0, false)
		return nil
	}

	declared := string(str)
	majorText, _, _ := strings.Cut(declared, ".")
	major, err := strconv.Atoi(strings.TrimSpace(majorText))
	if err != nil {
		o.logf(SeverityWarn, "unparseable version tag %q; ignoring", declared)
		emitVersionChecked(declared, 0, false)
		return nil
	}

	if major > EngineMajor {
		verr := &VersionError{Declared: declared, Major: major}
		o.logf(SeverityError, "%v", verr)
		emitVersionChecked(declared, major, true)
		return verr
	}

	emitVersionChecked(declared, major, false)
	return nil
}
