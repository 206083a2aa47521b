package xjson

import (
	"reflect"
	"testing"
)

type wrapped struct {
	Visible string
	hidden  int //nolint:unused // exercises the exported-members filter
}

func TestDescribe_Concreteness(t *testing.T) {
	if !Describe(reflect.TypeFor[hero]()).IsConcrete() {
		t.Error("struct reported non-concrete")
	}
	if !Describe(reflect.TypeFor[int]()).IsConcrete() {
		t.Error("int reported non-concrete")
	}
	if Describe(reflect.TypeFor[persona]()).IsConcrete() {
		t.Error("interface reported concrete")
	}
	if !(TypeDescriptor{}).IsZero() {
		t.Error("zero descriptor not IsZero")
	}
}

func TestDescribe_Names(t *testing.T) {
	d := Describe(reflect.TypeFor[hero]())
	if d.Name() != "hero" {
		t.Errorf("Name = %q", d.Name())
	}
	if d.QualifiedName() != "github.com/zoobzio/xjson.hero" {
		t.Errorf("QualifiedName = %q", d.QualifiedName())
	}

	if got := Describe(reflect.TypeFor[int]()).QualifiedName(); got != "int" {
		t.Errorf("builtin QualifiedName = %q", got)
	}
	if got := Describe(reflect.TypeFor[[]int]()).Name(); got != "[]int" {
		t.Errorf("unnamed Name = %q", got)
	}
}

func TestDescribe_Elem(t *testing.T) {
	if e, ok := Describe(reflect.TypeFor[[]hero]()).Elem(); !ok || e.Type() != reflect.TypeFor[hero]() {
		t.Errorf("slice Elem = %v, %v", e, ok)
	}
	if e, ok := Describe(reflect.TypeFor[[4]int]()).Elem(); !ok || e.Type() != reflect.TypeFor[int]() {
		t.Errorf("array Elem = %v, %v", e, ok)
	}
	if _, ok := Describe(reflect.TypeFor[hero]()).Elem(); ok {
		t.Error("struct reported an element type")
	}
}

func TestDescribe_Members(t *testing.T) {
	members := Describe(reflect.TypeFor[wrapped]()).Members()
	if len(members) != 1 {
		t.Fatalf("Members = %#v, want only the exported field", members)
	}
	if members[0].Name != "Visible" || members[0].Type != reflect.TypeFor[string]() {
		t.Errorf("member = %+v", members[0])
	}

	if _, ok := Describe(reflect.TypeFor[hero]()).Member("Name"); !ok {
		t.Error("Member(Name) missing")
	}
	if _, ok := Describe(reflect.TypeFor[hero]()).Member("name"); ok {
		t.Error("member lookup is not exact-match")
	}
}

func TestDescribe_MembersThroughPointer(t *testing.T) {
	members := Describe(reflect.TypeFor[*hero]()).Members()
	if len(members) != 2 {
		t.Errorf("pointer Members = %#v, want pointee members", members)
	}
}

func TestDescribe_NonStructHasNoMembers(t *testing.T) {
	if got := Describe(reflect.TypeFor[int]()).Members(); got != nil {
		t.Errorf("int Members = %#v, want nil", got)
	}
	if got := Describe(reflect.TypeFor[persona]()).Members(); got != nil {
		t.Errorf("interface Members = %#v, want nil", got)
	}
}

func TestDescribeFor_PrimesMetadata(t *testing.T) {
	d := DescribeFor[hero]()
	if d.Type() != reflect.TypeFor[hero]() {
		t.Errorf("DescribeFor = %v", d.Type())
	}
	if _, ok := d.Member("Age"); !ok {
		t.Error("Member(Age) missing after scan")
	}
}
