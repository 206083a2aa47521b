package xjson

import (
	"reflect"
	"strings"
	"testing"
)

type craft struct {
	Name string
	Crew int
}

func TestTranscode_StripsCommentsAndBlanks(t *testing.T) {
	src := strings.Join([]string{
		"// comment",
		`"a": 1,`,
		`"b": 2`,
	}, "\n")

	got := string(Transcode([]byte(src), nil))
	want := "{\n\"a\": 1,\n\"b\": 2\n}"
	if got != want {
		t.Errorf("Transcode = %q, want %q", got, want)
	}
}

func TestTranscode_Table(t *testing.T) {
	tests := []struct {
		name string
		src  []string
		hint reflect.Type
		want []string
	}{
		{
			name: "blank lines dropped",
			src:  []string{``, `"a": 1,`, `   `, `"b": 2`, ``},
			want: []string{`{`, `"a": 1,`, `"b": 2`, `}`},
		},
		{
			name: "indented comment dropped",
			src:  []string{`   // note`, `"a": 1`},
			want: []string{`{`, `"a": 1`, `}`},
		},
		{
			name: "indentation preserved on statements",
			src:  []string{`  "a": 1`},
			want: []string{`{`, `  "a": 1`, `}`},
		},
		{
			name: "empty input",
			src:  []string{``},
			want: []string{`{}`},
		},
		{
			name: "comment-only input",
			src:  []string{`// nothing here`},
			want: []string{`{}`},
		},
		{
			name: "tag injected for concrete target",
			src:  []string{`"Name": "Vostok"`},
			hint: reflect.TypeFor[craft](),
			want: []string{`{`, `"__type": "github.com/zoobzio/xjson.craft",`, `"Name": "Vostok"`, `}`},
		},
		{
			name: "injected tag has no comma when alone",
			src:  []string{`// empty body`},
			hint: reflect.TypeFor[craft](),
			want: []string{`{`, `"__type": "github.com/zoobzio/xjson.craft"`, `}`},
		},
		{
			name: "existing tag suppresses injection",
			src:  []string{`"__type": "Craft",`, `"Name": "Vostok"`},
			hint: reflect.TypeFor[craft](),
			want: []string{`{`, `"__type": "Craft",`, `"Name": "Vostok"`, `}`},
		},
		{
			name: "no tag for dictionary target",
			src:  []string{`"a": 1`},
			hint: reflect.TypeFor[map[string]any](),
			want: []string{`{`, `"a": 1`, `}`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(Transcode([]byte(strings.Join(tt.src, "\n")), tt.hint))
			want := strings.Join(tt.want, "\n")
			if got != want {
				t.Errorf("Transcode = %q, want %q", got, want)
			}
		})
	}
}

func TestTranscode_CustomTypeTag(t *testing.T) {
	src := `"@class": "Craft",` + "\n" + `"Name": "Vostok"`
	got := string(Transcode([]byte(src), reflect.TypeFor[craft](), WithTypeTag("@class")))
	if strings.Contains(got, "__type") || strings.Count(got, "@class") != 1 {
		t.Errorf("Transcode with custom tag = %q", got)
	}
}

func TestTranscode_CRLFInput(t *testing.T) {
	src := "// c\r\n\"a\": 1\r\n"
	got := string(Transcode([]byte(src), nil))
	want := "{\n\"a\": 1\n}"
	if got != want {
		t.Errorf("Transcode = %q, want %q", got, want)
	}
}

func TestTranscode_RoundTripsThroughParser(t *testing.T) {
	src := strings.Join([]string{
		"// config",
		`"a": 1,`,
		"",
		`"b": [true, null]`,
	}, "\n")

	out, err := UnmarshalAny(Transcode([]byte(src), nil))
	if err != nil {
		t.Fatalf("UnmarshalAny error: %v", err)
	}
	d, ok := out.(*Dict)
	if !ok {
		t.Fatalf("got %T, want *Dict", out)
	}
	if d.Len() != 2 {
		t.Errorf("Len = %d, want 2", d.Len())
	}
}
