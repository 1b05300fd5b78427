package gram

import (
	"testing"
	"time"
)

func TestBuiltinKindCoercion(t *testing.T) {
	kinds := builtinKinds()

	tests := []struct {
		kind Kind
		raw  string
		want any
	}{
		{KindString, "hello", "hello"},
		{KindInt, "42", int64(42)},
		{KindInt, "-7", int64(-7)},
		{KindInt, "0xFF", int64(255)},
		{KindInt, "0o17", int64(15)},
		{KindUint, "42", uint64(42)},
		{KindFloat, "3.14", 3.14},
		{KindDuration, "1h30m", 90 * time.Minute},
		{KindPath, "/tmp/x", "/tmp/x"},
	}
	for _, tt := range tests {
		got, err := kinds[tt.kind](tt.raw)
		if err != nil {
			t.Errorf("%s(%q) failed: %v", tt.kind, tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s(%q) = %v (%T), want %v (%T)", tt.kind, tt.raw, got, got, tt.want, tt.want)
		}
	}
}

func TestBuiltinKindFailures(t *testing.T) {
	kinds := builtinKinds()

	failures := []struct {
		kind Kind
		raw  string
	}{
		{KindInt, "abc"},
		{KindInt, "3.14"},
		{KindUint, "-1"},
		{KindFloat, "x"},
		{KindDuration, "90"},
	}
	for _, tt := range failures {
		if _, err := kinds[tt.kind](tt.raw); err == nil {
			t.Errorf("%s(%q) succeeded, want error", tt.kind, tt.raw)
		}
	}
}

func TestRawKindsAcceptInvalidUTF8(t *testing.T) {
	kinds := builtinKinds()
	raw := string([]byte{0xff, 0xfe, 'x'})

	if _, err := kinds[KindString](raw); err == nil {
		t.Error("string kind accepted invalid UTF-8")
	}
	if _, err := kinds[KindInt](raw); err == nil {
		t.Error("int kind accepted invalid UTF-8")
	}

	got, err := kinds[KindPath](raw)
	if err != nil || got.(string) != raw {
		t.Errorf("path kind altered raw bytes: %v, %v", got, err)
	}
	b, err := kinds[KindBytes](raw)
	if err != nil || string(b.([]byte)) != raw {
		t.Errorf("bytes kind altered raw bytes: %v, %v", b, err)
	}
}

func TestRegisterKind(t *testing.T) {
	g := New("app", "").
		RegisterKind("upper", func(raw string) (any, error) {
			return "UP:" + raw, nil
		}).
		Switch("mode", "").Value("m", "upper").Back().
		Build()

	out, err := g.Parse([]string{"--mode", "fast"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if vs := out.Occurrences("mode"); len(vs) != 1 || vs[0].Typed != "UP:fast" {
		t.Errorf("custom kind not applied: %+v", vs)
	}
}
