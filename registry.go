package xjson

import (
	"go/token"
	"reflect"
	"sync"

	"github.com/zoobzio/sentinel"
)

// Registry maps short alias names to target types. Keys are unique and
// the last registration for a key wins. A Registry is built by the
// caller before a call and treated as read-only while mapping runs.
type Registry struct {
	aliases map[string]TypeDescriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{aliases: make(map[string]TypeDescriptor)}
}

// Register adds T under the given alias, overriding any previous
// registration for that alias. The type is also indexed by its
// qualified name for opt-in qualified lookup, and its member metadata
// is primed in the sentinel cache.
func Register[T any](r *Registry, alias string) *Registry {
	sentinel.Scan[T]()
	return r.RegisterNamed(alias, reflect.TypeFor[T]())
}

// RegisterNamed adds an alias for an already-reflected type.
func (r *Registry) RegisterNamed(alias string, rt reflect.Type) *Registry {
	d := Describe(rt)
	r.aliases[alias] = d
	indexQualified(d)
	return r
}

// RegisterTypes bulk-registers the dynamic types of the given values,
// keyed by simple type name. Only concrete named types are admitted;
// nil values and unnamed types are skipped. This is the scan
// convenience for callers that keep their mappable types in one place.
func (r *Registry) RegisterTypes(values ...any) *Registry {
	for _, v := range values {
		if v == nil {
			continue
		}
		rt := reflect.TypeOf(v)
		if rt.Kind() == reflect.Ptr {
			rt = rt.Elem()
		}
		if rt.Name() == "" || rt.Kind() == reflect.Interface || !token.IsExported(rt.Name()) {
			continue
		}
		r.RegisterNamed(rt.Name(), rt)
	}
	return r
}

// Merge layers every alias from other onto r, later registrations
// overriding earlier ones for the same key.
func (r *Registry) Merge(other *Registry) *Registry {
	if other == nil {
		return r
	}
	for name, d := range other.aliases {
		r.aliases[name] = d
	}
	return r
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (TypeDescriptor, bool) {
	if r == nil {
		return TypeDescriptor{}, false
	}
	d, ok := r.aliases[name]
	return d, ok
}

// Len returns the number of registered aliases.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.aliases)
}

// Names returns the registered alias names in no particular order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.aliases))
	for name := range r.aliases {
		names = append(names, name)
	}
	return names
}

// clone returns an independent copy of the registry.
func (r *Registry) clone() *Registry {
	c := NewRegistry()
	return c.Merge(r)
}

// Builtin returns a registry holding the fixed primitive and
// primitive-array aliases. Callers typically start from Builtin and
// layer their own aliases on top.
func Builtin() *Registry {
	r := NewRegistry()
	for name, rt := range builtinAliases {
		r.aliases[name] = Describe(rt)
	}
	return r
}

// builtinAliases is the fixed default alias set. The names follow the
// short vocabulary of the wire format rather than Go spelling.
var builtinAliases = map[string]reflect.Type{
	"bool":    reflect.TypeFor[bool](),
	"boolean": reflect.TypeFor[bool](),
	"string":  reflect.TypeFor[string](),
	"object":  reflect.TypeFor[any](),
	"int":     reflect.TypeFor[int](),
	"uint":    reflect.TypeFor[uint](),
	"long":    reflect.TypeFor[int64](),
	"ulong":   reflect.TypeFor[uint64](),
	"float":   reflect.TypeFor[float32](),
	"double":  reflect.TypeFor[float64](),

	"bool[]":    reflect.TypeFor[[]bool](),
	"boolean[]": reflect.TypeFor[[]bool](),
	"string[]":  reflect.TypeFor[[]string](),
	"object[]":  reflect.TypeFor[[]any](),
	"int[]":     reflect.TypeFor[[]int](),
	"uint[]":    reflect.TypeFor[[]uint](),
	"long[]":    reflect.TypeFor[[]int64](),
	"ulong[]":   reflect.TypeFor[[]uint64](),
	"float[]":   reflect.TypeFor[[]float32](),
	"double[]":  reflect.TypeFor[[]float64](),
}

// The qualified index backs the opt-in fully-qualified lookup path.
// Go has no global type-by-name facility, so the index holds every type
// the process has registered through any Registry.
var (
	qualifiedMu sync.RWMutex
	qualified   = make(map[string]reflect.Type)
)

// indexQualified records a type under its qualified name.
func indexQualified(d TypeDescriptor) {
	if d.IsZero() || !d.IsConcrete() {
		return
	}
	name := d.QualifiedName()

	qualifiedMu.Lock()
	defer qualifiedMu.Unlock()
	qualified[name] = d.Type()
}

// lookupQualified resolves a qualified name against the index.
func lookupQualified(name string) (reflect.Type, bool) {
	qualifiedMu.RLock()
	defer qualifiedMu.RUnlock()
	rt, ok := qualified[name]
	return rt, ok
}

// resetQualified clears the qualified index. Test isolation only.
func resetQualified() {
	qualifiedMu.Lock()
	defer qualifiedMu.Unlock()
	qualified = make(map[string]reflect.Type)
}
