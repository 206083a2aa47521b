package xjson

import (
	"reflect"

	"github.com/zoobzio/sentinel"
)

// TypeDescriptor is an opaque handle to a mapping target type. It
// answers the questions the engine asks: is the type concrete, what is
// its element type, and which public members can be assigned.
type TypeDescriptor struct {
	rt reflect.Type
}

// Field describes one settable public member of a target type.
type Field struct {
	Name  string       // Member name, matched exactly against object keys
	Type  reflect.Type // Declared type, used as the mapping hint
	Index []int        // reflect.Value.FieldByIndex access path
}

// Describe wraps a reflect.Type in a descriptor.
func Describe(rt reflect.Type) TypeDescriptor {
	return TypeDescriptor{rt: rt}
}

// DescribeFor returns the descriptor for T, priming the sentinel
// metadata cache so later member enumeration hits it.
func DescribeFor[T any]() TypeDescriptor {
	sentinel.Scan[T]()
	return TypeDescriptor{rt: reflect.TypeFor[T]()}
}

// Type returns the underlying reflect.Type, or nil for the zero
// descriptor.
func (d TypeDescriptor) Type() reflect.Type { return d.rt }

// IsZero reports whether the descriptor carries no type.
func (d TypeDescriptor) IsZero() bool { return d.rt == nil }

// Name returns the type's simple name, falling back to its string form
// for unnamed types.
func (d TypeDescriptor) Name() string {
	if d.rt == nil {
		return ""
	}
	if n := d.rt.Name(); n != "" {
		return n
	}
	return d.rt.String()
}

// QualifiedName returns the package-qualified type name used by the
// fully-qualified lookup path.
func (d TypeDescriptor) QualifiedName() string {
	if d.rt == nil {
		return ""
	}
	if pkg := d.rt.PkgPath(); pkg != "" {
		return pkg + "." + d.rt.Name()
	}
	return d.rt.String()
}

// IsConcrete reports whether the type can be instantiated. Interface
// types are the only non-concrete targets.
func (d TypeDescriptor) IsConcrete() bool {
	return d.rt != nil && d.rt.Kind() != reflect.Interface
}

// Elem returns the element descriptor for array and slice types.
func (d TypeDescriptor) Elem() (TypeDescriptor, bool) {
	if d.rt == nil {
		return TypeDescriptor{}, false
	}
	switch d.rt.Kind() {
	case reflect.Array, reflect.Slice:
		return TypeDescriptor{rt: d.rt.Elem()}, true
	default:
		return TypeDescriptor{}, false
	}
}

// Members enumerates the settable public members of the type. For
// pointer-to-struct types the pointee's members are returned. Non-struct
// types have no members.
func (d TypeDescriptor) Members() []Field {
	st := d.structType()
	if st == nil {
		return nil
	}

	// Prefer cached sentinel metadata when the type has been scanned.
	if meta, ok := sentinel.Lookup(st.String()); ok {
		fields := make([]Field, 0, len(meta.Fields))
		for _, fm := range meta.Fields {
			fields = append(fields, Field{
				Name:  fm.Name,
				Type:  fm.ReflectType,
				Index: fm.Index,
			})
		}
		return fields
	}

	fields := make([]Field, 0, st.NumField())
	for i := 0; i < st.NumField(); i++ {
		sf := st.Field(i)
		if !sf.IsExported() {
			continue
		}
		fields = append(fields, Field{
			Name:  sf.Name,
			Type:  sf.Type,
			Index: sf.Index,
		})
	}
	return fields
}

// Member finds a settable public member by exact name.
func (d TypeDescriptor) Member(name string) (Field, bool) {
	for _, f := range d.Members() {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// structType unwraps pointer indirection to the member-bearing struct
// type, or returns nil when the type has no members.
func (d TypeDescriptor) structType() reflect.Type {
	rt := d.rt
	if rt == nil {
		return nil
	}
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}
	return rt
}
