package xjson

import (
	"fmt"
	"reflect"
)

// construct default-constructs an instance of the described type and
// returns an addressable reflect.Value of it.
//
// Interfaces must never reach this call: the mapper resolves every
// non-concrete slot to a concrete type first, so a non-concrete
// descriptor here is an internal contract violation, reported as a
// ConstructError rather than a panic.
func construct(d TypeDescriptor) (reflect.Value, error) {
	if d.IsZero() {
		return reflect.Value{}, newConstructError("<nil>", fmt.Errorf("no type to construct"))
	}
	if !d.IsConcrete() {
		return reflect.Value{}, newConstructError(d.Name(),
			fmt.Errorf("interface type reached construction"))
	}

	rt := d.Type()
	if rt.Kind() == reflect.Ptr {
		rt = rt.Elem()
	}

	switch rt.Kind() {
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return reflect.Value{}, newConstructError(d.Name(),
			fmt.Errorf("%s types are not default-constructible", rt.Kind()))
	}

	return reflect.New(rt).Elem(), nil
}
