package xjson

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/zoobzio/xjson/ast"
)

// mapper converts a parsed value tree into typed instances. It holds
// the per-call options and nothing else; all state lives on the stack
// of the recursive descent.
type mapper struct {
	opts *Options
}

// mapValue converts node under the given target-type hint. A nil hint
// (or the empty interface) means the representation is inferred from
// the node alone: float64 for numbers, []any for arrays, Dict for
// objects.
func (m *mapper) mapValue(node ast.Value, hint reflect.Type) (any, error) {
	if isUntyped(hint) {
		hint = nil
	}

	switch n := node.(type) {
	case ast.Null:
		if hint == nil {
			return nil, nil
		}
		return reflect.Zero(hint).Interface(), nil
	case ast.Bool:
		return bool(n), nil
	case ast.String:
		return string(n), nil
	case ast.Number:
		return m.mapNumber(n, hint)
	case ast.Array:
		return m.mapArray(n, hint)
	case ast.Object:
		return m.mapObject(n, hint)
	default:
		return nil, newParseError(fmt.Errorf("unknown node kind %v", node.Kind()))
	}
}

// mapNumber picks the narrowest representation the hint asks for and
// defaults to float64 otherwise. An integer hint over a fractional
// lexeme falls back to float64 and is reconciled at assignment.
func (m *mapper) mapNumber(n ast.Number, hint reflect.Type) (any, error) {
	if hint != nil {
		switch hint.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			if i, err := n.Int(); err == nil {
				v := reflect.New(hint).Elem()
				v.SetInt(i)
				return v.Interface(), nil
			}
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			if u, err := n.Uint(); err == nil {
				v := reflect.New(hint).Elem()
				v.SetUint(u)
				return v.Interface(), nil
			}
		case reflect.Float32, reflect.Float64:
			f, err := n.Float()
			if err != nil {
				return nil, newParseError(fmt.Errorf("bad number lexeme %q", string(n)))
			}
			v := reflect.New(hint).Elem()
			v.SetFloat(f)
			return v.Interface(), nil
		}
	}

	f, err := n.Float()
	if err != nil {
		return nil, newParseError(fmt.Errorf("bad number lexeme %q", string(n)))
	}
	return f, nil
}

// mapArray maps into the hinted slice or array type, or into []any when
// no element type is requested.
func (m *mapper) mapArray(arr ast.Array, hint reflect.Type) (any, error) {
	if hint != nil {
		switch hint.Kind() {
		case reflect.Slice:
			out := reflect.MakeSlice(hint, len(arr), len(arr))
			for i, child := range arr {
				v, err := m.mapValue(child, hint.Elem())
				if err != nil {
					return nil, err
				}
				if err := setValue(out.Index(i), v); err != nil {
					m.opts.logf(SeverityWarn, "element %d: %v; value dropped", i, err)
				}
			}
			return out.Interface(), nil
		case reflect.Array:
			out := reflect.New(hint).Elem()
			n := len(arr)
			if n > hint.Len() {
				n = hint.Len()
			}
			for i := 0; i < n; i++ {
				v, err := m.mapValue(arr[i], hint.Elem())
				if err != nil {
					return nil, err
				}
				if err := setValue(out.Index(i), v); err != nil {
					m.opts.logf(SeverityWarn, "element %d: %v; value dropped", i, err)
				}
			}
			return out.Interface(), nil
		}
	}

	out := make([]any, 0, len(arr))
	for _, child := range arr {
		v, err := m.mapValue(child, nil)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// mapObject dispatches an object node. An explicit type tag overrides
// any hint; a concrete hint is used directly; everything else falls
// back to the ordered dictionary, except interface slots, which cannot
// be satisfied by a dictionary and fail resolution.
func (m *mapper) mapObject(obj ast.Object, hint reflect.Type) (any, error) {
	if tag, ok := obj.Find(m.opts.TypeTag); ok {
		name, isString := tag.(ast.String)
		if !isString {
			return nil, newResolveError(m.opts.TypeTag, fmt.Sprintf("type tag is %s, not a string", tag.Kind()))
		}
		d, err := resolveType(string(name), m.opts)
		if err != nil {
			return nil, err
		}
		return m.buildInstance(obj, d, hint)
	}

	if hint != nil {
		switch {
		case hint.Kind() == reflect.Map && hint.Key().Kind() == reflect.String:
			return m.mapTypedMap(obj, hint)
		case hint.Kind() == reflect.Interface:
			// A concrete instance is required but nothing names one.
			return nil, newResolveError(hint.String(),
				"interface slot carries no type tag or inline annotation")
		default:
			return m.buildInstance(obj, Describe(hint), hint)
		}
	}

	return m.mapDict(obj)
}

// buildInstance constructs the resolved type, binds the object's
// members onto it, and shapes the result (value or pointer) to fit the
// slot the caller is filling.
func (m *mapper) buildInstance(obj ast.Object, d TypeDescriptor, slot reflect.Type) (any, error) {
	inst, err := construct(d)
	if err != nil {
		return nil, err
	}
	if err := m.bindMembers(inst, d, obj); err != nil {
		return nil, err
	}

	if d.Type().Kind() == reflect.Ptr {
		return inst.Addr().Interface(), nil
	}
	if slot != nil {
		switch {
		case d.Type().AssignableTo(slot):
		case reflect.PtrTo(d.Type()).AssignableTo(slot):
			return inst.Addr().Interface(), nil
		}
	}
	return inst.Interface(), nil
}

// bindMembers assigns every non-reserved member of obj onto inst.
// Inline annotations (name<separator>Type) override the declared member
// type. Members with no binding target are dropped with a warning;
// resolution failures inside an annotation abort the call.
func (m *mapper) bindMembers(inst reflect.Value, d TypeDescriptor, obj ast.Object) error {
	sep := string(m.opts.TypeSeparator)

	for _, mem := range obj {
		if mem.Key == m.opts.TypeTag || mem.Key == VersionTag {
			continue
		}

		if prop, typeName, annotated := strings.Cut(mem.Key, sep); annotated {
			prop = strings.TrimSpace(prop)
			typeName = strings.TrimSpace(typeName)

			td, err := resolveType(typeName, m.opts)
			if err != nil {
				return err
			}
			v, err := m.mapValue(mem.Value, td.Type())
			if err != nil {
				return err
			}

			f, ok := d.Member(prop)
			if !ok {
				m.dropMember(d, prop)
				continue
			}
			m.assignMember(inst, d, f, v)
			continue
		}

		f, ok := d.Member(mem.Key)
		if !ok {
			m.dropMember(d, mem.Key)
			continue
		}
		v, err := m.mapValue(mem.Value, f.Type)
		if err != nil {
			return err
		}
		m.assignMember(inst, d, f, v)
	}
	return nil
}

// assignMember delivers a mapped value into one member, warning and
// dropping on a shape mismatch.
func (m *mapper) assignMember(inst reflect.Value, d TypeDescriptor, f Field, v any) {
	target := inst
	if target.Kind() == reflect.Ptr {
		target = target.Elem()
	}
	if target.Kind() != reflect.Struct {
		m.dropMember(d, f.Name)
		return
	}

	fv := target.FieldByIndex(f.Index)
	if !fv.CanSet() {
		m.dropMember(d, f.Name)
		return
	}
	if err := setValue(fv, v); err != nil {
		m.opts.logf(SeverityWarn, "member %q on %s: %v; value dropped", f.Name, d.Name(), err)
		emitMemberDropped(d.Name(), f.Name)
	}
}

// dropMember records a non-fatal binding miss.
func (m *mapper) dropMember(d TypeDescriptor, name string) {
	m.opts.logf(SeverityWarn, "no settable member %q on %s; value dropped", name, d.Name())
	emitMemberDropped(d.Name(), name)
}

// mapTypedMap maps an object into a string-keyed Go map, honoring
// inline annotations per member.
func (m *mapper) mapTypedMap(obj ast.Object, hint reflect.Type) (any, error) {
	sep := string(m.opts.TypeSeparator)
	out := reflect.MakeMapWithSize(hint, len(obj))

	for _, mem := range obj {
		if mem.Key == VersionTag {
			continue
		}

		key := mem.Key
		elemHint := hint.Elem()
		if prop, typeName, annotated := strings.Cut(mem.Key, sep); annotated {
			td, err := resolveType(strings.TrimSpace(typeName), m.opts)
			if err != nil {
				return nil, err
			}
			key = strings.TrimSpace(prop)
			elemHint = td.Type()
		}

		v, err := m.mapValue(mem.Value, elemHint)
		if err != nil {
			return nil, err
		}

		ev := reflect.New(hint.Elem()).Elem()
		if err := setValue(ev, v); err != nil {
			m.opts.logf(SeverityWarn, "key %q: %v; value dropped", key, err)
			continue
		}
		out.SetMapIndex(reflect.ValueOf(key).Convert(hint.Key()), ev)
	}
	return out.Interface(), nil
}

// mapDict maps an object with no concrete target into the ordered
// dictionary fallback. Inline annotations still resolve and map their
// member to the named concrete type, stored under the bare key.
func (m *mapper) mapDict(obj ast.Object) (any, error) {
	sep := string(m.opts.TypeSeparator)
	d := NewDict()

	for _, mem := range obj {
		if mem.Key == VersionTag {
			continue
		}

		if prop, typeName, annotated := strings.Cut(mem.Key, sep); annotated {
			td, err := resolveType(strings.TrimSpace(typeName), m.opts)
			if err != nil {
				return nil, err
			}
			v, err := m.mapValue(mem.Value, td.Type())
			if err != nil {
				return nil, err
			}
			d.Set(strings.TrimSpace(prop), v)
			continue
		}

		v, err := m.mapValue(mem.Value, nil)
		if err != nil {
			return nil, err
		}
		d.Set(mem.Key, v)
	}
	return d, nil
}

// isUntyped reports whether a hint carries no type information.
func isUntyped(hint reflect.Type) bool {
	return hint != nil && hint.Kind() == reflect.Interface && hint.NumMethod() == 0
}

// setValue places v into dst, converting between numeric shapes and
// boxing behind a pointer when only the pointer form satisfies an
// interface slot.
func setValue(dst reflect.Value, v any) error {
	if v == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(dst.Type()):
		dst.Set(rv)
	case convertible(rv.Type(), dst.Type()):
		dst.Set(rv.Convert(dst.Type()))
	case dst.Kind() == reflect.Interface && reflect.PtrTo(rv.Type()).AssignableTo(dst.Type()):
		pv := reflect.New(rv.Type())
		pv.Elem().Set(rv)
		dst.Set(pv)
	default:
		return fmt.Errorf("cannot assign %s to %s", rv.Type(), dst.Type())
	}
	return nil
}

// convertible allows only shape-preserving conversions: numeric to
// numeric, or identical kinds under different names. Cross-kind
// conversions like int-to-string are rejected even though reflect
// permits them.
func convertible(src, dst reflect.Type) bool {
	if isNumeric(src) && isNumeric(dst) {
		return true
	}
	return src.Kind() == dst.Kind() && src.ConvertibleTo(dst)
}

func isNumeric(rt reflect.Type) bool {
	switch rt.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
