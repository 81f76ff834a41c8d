package props

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustSetValue(t *testing.T, s interface {
	Set(string, any) error
}, name string, value any) {
	t.Helper()
	if err := s.Set(name, value); err != nil {
		t.Fatalf("set %q: %v", name, err)
	}
}

func TestSetScalarsAndArrays(t *testing.T) {
	s := NewSet()
	mustSetValue(t, s, "int", 42)
	mustSetValue(t, s, "ints", []int{1, 2, 3})
	mustSetValue(t, s, "name", "M31")

	if got, err := Get[int](s, "int"); err != nil || got != 42 {
		t.Fatalf("expected 42, got %d (%v)", got, err)
	}
	if got, err := Get[int](s, "ints"); err != nil || got != 3 {
		t.Fatalf("expected last element 3, got %d (%v)", got, err)
	}
	if !s.IsArray("ints") || s.IsArray("int") {
		t.Fatalf("unexpected array flags")
	}
	if n, _ := s.ValueCount("ints"); n != 3 {
		t.Fatalf("expected 3 values, got %d", n)
	}

	mustSetValue(t, s, "ints", 7)
	if got, _ := GetArray[int](s, "ints"); !cmp.Equal(got, []int{7}) {
		t.Fatalf("set must discard prior array contents, got %v", got)
	}
	if got, err := GetOr(s, "missing", "default"); err != nil || got != "default" {
		t.Fatalf("expected fallback, got %q (%v)", got, err)
	}
	if _, err := GetOr(s, "name", 1); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("fallback must not hide a kind mismatch, got %v", err)
	}
}

func TestSetHierarchy(t *testing.T) {
	inner := NewSet()
	mustSetValue(t, inner, "pre", 1)

	s := NewSet()
	mustSetValue(t, s, "ps1", inner)
	mustSetValue(t, inner, "post", 2)
	mustSetValue(t, s, "int", 42)
	mustSetValue(t, s, "ps2.plus", 10.24)
	mustSetValue(t, s, "ps2.minus", -10.24)
	mustSetValue(t, s, "ps3.sub1", "foo")
	mustSetValue(t, s, "ps3.sub2", "bar")

	for _, name := range []string{"ps1", "ps2", "ps3", "ps1.pre", "ps2.plus", "ps2.minus", "ps3.sub1", "ps3.sub2"} {
		if !s.Exists(name) {
			t.Fatalf("expected %q to exist", name)
		}
	}
	if s.Exists("ps1.post") {
		t.Fatalf("a flattened container must not stay linked to its source")
	}
	for _, name := range []string{"ps2.pre", "ps4", "ps4.sub"} {
		if s.Exists(name) {
			t.Fatalf("expected %q to be absent", name)
		}
	}
	if !s.IsSet("ps1") || s.IsSet("int") || s.IsSet("ps1.pre") {
		t.Fatalf("unexpected property set flags")
	}

	sub, err := s.Sub("ps2")
	if err != nil {
		t.Fatalf("sub: %v", err)
	}
	if got, _ := Get[float64](sub, "minus"); got != -10.24 {
		t.Fatalf("expected -10.24, got %v", got)
	}
	if _, err := s.Sub("int"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected mismatch for sub of a leaf, got %v", err)
	}
	if _, err := s.TypeOf("ps3"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected mismatch for type of a property set, got %v", err)
	}
}

func TestSetErrors(t *testing.T) {
	s := NewSet()
	mustSetValue(t, s, "int", 42)

	cases := []struct {
		name string
		err  error
		want error
	}{
		{name: "write beneath leaf", err: s.Set("int.sub", "foo"), want: ErrInvalidParameter},
		{name: "wrong get kind", err: func() error { _, err := Get[float64](s, "int"); return err }(), want: ErrTypeMismatch},
		{name: "missing get", err: func() error { _, err := Get[float64](s, "double"); return err }(), want: ErrNotFound},
		{name: "missing array", err: func() error { _, err := GetArray[float64](s, "double"); return err }(), want: ErrNotFound},
		{name: "missing type", err: func() error { _, err := s.TypeOf("double"); return err }(), want: ErrNotFound},
		{name: "add wrong kind", err: s.Add("int", 4.2), want: ErrTypeMismatch},
		{name: "add wrong array kind", err: s.Add("int", []float64{3.14159, 2.71828}), want: ErrTypeMismatch},
		{name: "empty name", err: s.Set("", 1), want: ErrInvalidParameter},
		{name: "empty segment", err: s.Set("a..b", 1), want: ErrInvalidParameter},
		{name: "empty array", err: s.Set("empty", []int{}), want: ErrInvalidParameter},
		{name: "unsupported type", err: s.Set("map", map[string]int{}), want: ErrTypeMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, tc.err)
			}
			var propErr *PropertyError
			if !errors.As(tc.err, &propErr) {
				t.Fatalf("expected *PropertyError, got %T", tc.err)
			}
		})
	}

	s.Remove("foo.bar")
	s.Remove("int.sub")
	if got, _ := Get[int](s, "int"); got != 42 {
		t.Fatalf("failed operations must leave the set unchanged, got %d", got)
	}
}

func TestSetNames(t *testing.T) {
	s := NewSet()
	mustSetValue(t, s, "ps1.pre", 1)
	mustSetValue(t, s, "ps1.post", 2)
	mustSetValue(t, s, "int", 42)
	mustSetValue(t, s, "double", 3.14)
	mustSetValue(t, s, "ps2.plus", 10.24)
	mustSetValue(t, s, "ps2.minus", -10.24)

	if s.NameCount(true) != 4 || s.NameCount(false) != 8 {
		t.Fatalf("unexpected name counts %d/%d", s.NameCount(true), s.NameCount(false))
	}
	if diff := cmp.Diff([]string{"double", "int", "ps1", "ps2"}, s.Names(true)); diff != "" {
		t.Fatalf("top-level names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"double", "int"}, s.ParamNames(true)); diff != "" {
		t.Fatalf("param names mismatch (-want +got):\n%s", diff)
	}
	want := []string{"double", "int", "ps1.post", "ps1.pre", "ps2.minus", "ps2.plus"}
	if diff := cmp.Diff(want, s.ParamNames(false)); diff != "" {
		t.Fatalf("param names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ps1", "ps2"}, s.SetNames(true)); diff != "" {
		t.Fatalf("set names mismatch (-want +got):\n%s", diff)
	}
}

func TestSetGetAsWidening(t *testing.T) {
	s := NewSet()
	mustSetValue(t, s, "bool", true)
	mustSetValue(t, s, "char", int8('A'))
	mustSetValue(t, s, "short", int16(42))
	mustSetValue(t, s, "int", 2008)
	mustSetValue(t, s, "int64", int64(0xfeeddeadbeef))
	mustSetValue(t, s, "float", float32(3.14159))
	mustSetValue(t, s, "double", 2.718281828459045)
	mustSetValue(t, s, "string", "bar")
	mustSetValue(t, s, "top.bottom", "x")

	if v, err := GetAsBool(s, "bool"); err != nil || !v {
		t.Fatalf("getAsBool: %v %v", v, err)
	}
	if _, err := GetAsBool(s, "char"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}

	ints := map[string]int{"bool": 1, "char": 'A', "short": 42, "int": 2008}
	for name, want := range ints {
		if got, err := GetAsInt(s, name); err != nil || got != want {
			t.Fatalf("getAsInt(%q): expected %d, got %d (%v)", name, want, got, err)
		}
	}
	if _, err := GetAsInt(s, "int64"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected int64 to be rejected by GetAsInt, got %v", err)
	}
	if got, err := GetAsInt64(s, "int64"); err != nil || got != 0xfeeddeadbeef {
		t.Fatalf("getAsInt64: %d (%v)", got, err)
	}
	if _, err := GetAsInt64(s, "float"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected float to be rejected by GetAsInt64, got %v", err)
	}

	floats := map[string]float64{
		"bool":   1,
		"char":   'A',
		"int64":  float64(0xfeeddeadbeef),
		"float":  float64(float32(3.14159)),
		"double": 2.718281828459045,
	}
	for name, want := range floats {
		if got, err := GetAsFloat64(s, name); err != nil || got != want {
			t.Fatalf("getAsFloat64(%q): expected %v, got %v (%v)", name, want, got, err)
		}
	}
	if _, err := GetAsFloat64(s, "string"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected string to be rejected by GetAsFloat64, got %v", err)
	}
	if got, err := GetAsString(s, "top.bottom"); err != nil || got != "x" {
		t.Fatalf("getAsString: %q (%v)", got, err)
	}
	if _, err := GetAsString(s, "int"); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected int to be rejected by GetAsString, got %v", err)
	}
}

func TestSetCombine(t *testing.T) {
	s := NewSet()
	mustSetValue(t, s, "ps1.pre", 1)
	mustSetValue(t, s, "ps1.post", 2)
	mustSetValue(t, s, "int", 42)
	mustSetValue(t, s, "ps3.sub.subsub", "foo")

	src := NewSet()
	mustSetValue(t, src, "ps1.pre", 3)
	if err := src.Add("ps1.pre", 4); err != nil {
		t.Fatalf("add: %v", err)
	}
	mustSetValue(t, src, "int", 2008)
	mustSetValue(t, src, "ps4.top", "bottom")

	if err := s.Combine(src); err != nil {
		t.Fatalf("combine: %v", err)
	}
	if got, _ := GetArray[int](s, "ps1.pre"); !cmp.Equal(got, []int{1, 3, 4}) {
		t.Fatalf("unexpected ps1.pre %v", got)
	}
	if got, _ := GetArray[int](s, "int"); !cmp.Equal(got, []int{42, 2008}) {
		t.Fatalf("unexpected int %v", got)
	}
	if !s.IsSet("ps4") || !s.IsSet("ps3.sub") || s.IsArray("ps1.post") {
		t.Fatalf("unexpected structure after combine:\n%s", s)
	}

	conflict := NewSet()
	mustSetValue(t, conflict, "ps4.top", "other")
	mustSetValue(t, conflict, "int", 3.14159)
	if err := s.Combine(conflict); !errors.Is(err, ErrTypeMismatch) {
		t.Fatalf("expected mismatch, got %v", err)
	}
	if got, _ := GetArray[string](s, "ps4.top"); !cmp.Equal(got, []string{"bottom"}) {
		t.Fatalf("a failed combine must not apply any entry, got %v", got)
	}
}

func TestSetCopy(t *testing.T) {
	s := NewSet()
	mustSetValue(t, s, "ps1.pre", 1)
	mustSetValue(t, s, "ps1.post", 2)

	src := NewSet()
	mustSetValue(t, src, "ps1.pre", []int{3, 4})
	mustSetValue(t, src, "ps4.top", "bottom")

	if err := s.Copy("ps1", src, "ps1"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if s.Exists("ps1.post") {
		t.Fatalf("copy must replace the destination subtree")
	}
	if got, _ := GetArray[int](s, "ps1.pre"); !cmp.Equal(got, []int{3, 4}) {
		t.Fatalf("unexpected ps1.pre %v", got)
	}

	if err := s.Copy("ps5", src, "ps4"); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if !s.IsSet("ps5") || s.IsArray("ps5.top") {
		t.Fatalf("unexpected ps5 structure")
	}
	if err := s.Copy("ps6", src, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSetRemove(t *testing.T) {
	s := NewSet()
	mustSetValue(t, s, "int", 42)
	mustSetValue(t, s, "double", 3.14159)
	mustSetValue(t, s, "ps1.plus", 1)
	mustSetValue(t, s, "ps1.minus", -1)
	mustSetValue(t, s, "ps1.zero", 0)

	steps := []struct {
		remove string
		count  int
	}{
		{remove: "int", count: 5},
		{remove: "ps1.zero", count: 4},
		{remove: "ps1", count: 1},
		{remove: "double", count: 0},
		{remove: "double", count: 0},
	}
	for _, step := range steps {
		s.Remove(step.remove)
		if s.Exists(step.remove) {
			t.Fatalf("%q still exists", step.remove)
		}
		if got := s.NameCount(false); got != step.count {
			t.Fatalf("after removing %q expected %d names, got %d", step.remove, step.count, got)
		}
	}
}

func TestSetDeepCopy(t *testing.T) {
	s := NewSet()
	mustSetValue(t, s, "int", 42)
	mustSetValue(t, s, "top.bottom", "x")
	mustSetValue(t, s, "blob", []byte("abc"))

	clone := s.DeepCopy()
	mustSetValue(t, s, "int", 2008)
	mustSetValue(t, s, "top.bottom", "y")

	if got, _ := GetAsInt(clone, "int"); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got, _ := GetAsString(clone, "top.bottom"); got != "x" {
		t.Fatalf("expected x, got %q", got)
	}

	blob, _ := Get[[]byte](clone, "blob")
	blob[0] = 'z'
	if again, _ := Get[[]byte](clone, "blob"); string(again) != "abc" {
		t.Fatalf("blobs must be copied on read, got %q", again)
	}
	if NewSet().DeepCopy().Len() != 0 {
		t.Fatalf("copy of an empty set must be empty")
	}
}

func TestSetFormat(t *testing.T) {
	s := NewSet()
	mustSetValue(t, s, "bool", true)
	mustSetValue(t, s, "short", int16(42))
	mustSetValue(t, s, "double", 2.718281828459045)
	mustSetValue(t, s, "string", "bar")
	mustSetValue(t, s, "ps1.pre", 1)
	mustSetValue(t, s, "ps1.post", 2)
	mustSetValue(t, s, "ps3.sub.subsub", "foo")
	for _, v := range []int{10, 9, 8} {
		if err := s.Add("v", v); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	want := "bool = true\n" +
		"double = 2.718281828459045\n" +
		"ps1 = {\n" +
		"..post = 2\n" +
		"..pre = 1\n" +
		"}\n" +
		"ps3 = {\n" +
		"..sub = {\n" +
		"....subsub = \"foo\"\n" +
		"..}\n" +
		"}\n" +
		"short = 42\n" +
		"string = \"bar\"\n" +
		"v = [ 10, 9, 8 ]\n"
	if diff := cmp.Diff(want, s.String()); diff != "" {
		t.Fatalf("format mismatch (-want +got):\n%s", diff)
	}

	wantTop := "bool = true\n" +
		"double = 2.718281828459045\n" +
		"ps1 = { ... }\n" +
		"ps3 = { ... }\n" +
		"short = 42\n" +
		"string = \"bar\"\n" +
		"v = [ 10, 9, 8 ]\n"
	if diff := cmp.Diff(wantTop, s.Format(true, "")); diff != "" {
		t.Fatalf("top-level format mismatch (-want +got):\n%s", diff)
	}
}

func TestSetZeroValue(t *testing.T) {
	var s Set
	if s.Len() != 0 || s.Exists("a") {
		t.Fatalf("zero value must be empty")
	}
	mustSetValue(t, &s, "a.b", 1)
	if err := s.Add("a.b", 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	got, err := GetArray[int](&s, "a.b")
	if err != nil {
		t.Fatalf("get array: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if !s.IsSet("a") {
		t.Fatalf("expected a to be a property set")
	}
}

func TestSetRejectsNilSources(t *testing.T) {
	s := NewSet()
	mustSetValue(t, s, "x", 1)

	cases := []struct {
		name string
		err  error
	}{
		{name: "set nil list", err: s.Set("x", (*List)(nil))},
		{name: "set nil set", err: s.Set("x", (*Set)(nil))},
		{name: "add nil set", err: s.Add("y", (*Set)(nil))},
		{name: "combine nil", err: s.Combine(nil)},
		{name: "combine nil list", err: s.Combine((*List)(nil))},
		{name: "copy nil", err: s.Copy("z", nil, "x")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", tc.err)
			}
		})
	}

	if got, _ := Get[int](s, "x"); got != 1 {
		t.Fatalf("rejected writes must leave x alone, got %d", got)
	}
	if diff := cmp.Diff([]string{"x"}, s.Names(false)); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
