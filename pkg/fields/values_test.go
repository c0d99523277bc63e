package fields

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{name: "nil", value: nil, want: true},
		{name: "empty string", value: "", want: true},
		{name: "whitespace", value: " ", want: false},
		{name: "empty any slice", value: []any{}, want: true},
		{name: "empty string slice", value: []string{}, want: true},
		{name: "empty int slice", value: []int{}, want: true},
		{name: "empty map", value: map[int]struct{}{}, want: true},
		{name: "filled slice", value: []any{1}, want: false},
		{name: "zero number", value: 0, want: false},
		{name: "text", value: "a@b.com", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsEmpty(tc.value); got != tc.want {
				t.Fatalf("IsEmpty(%#v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestSameValue(t *testing.T) {
	if !SameValue(3, float64(3)) {
		t.Fatalf("expected int and float64 to match")
	}
	if !SameValue("3", 3) {
		t.Fatalf("expected numeric string to match int")
	}
	if SameValue("admin", "editor") {
		t.Fatalf("distinct strings must not match")
	}
	if SameValue(nil, "") {
		t.Fatalf("nil must only match nil")
	}
}

func TestParseKind(t *testing.T) {
	if kind, ok := ParseKind("DropDown"); !ok || kind != KindDropdown {
		t.Fatalf("expected dropdown, got %v (ok=%v)", kind, ok)
	}
	if _, ok := ParseKind("date"); ok {
		t.Fatalf("date is not a known kind")
	}
	if !KindMultiSelect.HasOptions() || KindNumber.HasOptions() {
		t.Fatalf("option-bearing kinds misreported")
	}
}

func TestParseKind_RoundTripsEveryKind(t *testing.T) {
	var names []string
	for _, kind := range Kinds() {
		names = append(names, kind.String())
		got, ok := ParseKind(strings.ToUpper(kind.String()))
		if !ok || got != kind {
			t.Fatalf("ParseKind(%q) = %v (ok=%v), want %v", kind, got, ok, kind)
		}
	}
	want := []string{"text", "password", "radio", "dropdown", "multiselect", "number"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("kind order mismatch (-want +got):\n%s", diff)
	}
	if _, ok := ParseKind("unknown"); ok {
		t.Fatalf("unknown must not parse as a kind")
	}
}
