package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/dzonerzy/go-gram/internal/dsl"
)

const sampleDef = `
/// Run basic system diagnostics.
cmd healthck
    /// Optional configuration file.
    optional config: path
{
    /// Verbosity level.
    repeated -v, --verbose
    optional -j, --jobs n: int
    default cmd quick {
        optional -s, --strict
    }
    cmd full | f {}
}
`

func generate(t *testing.T, src, pkg string) string {
	t.Helper()
	g, err := dsl.Parse(src)
	if err != nil {
		t.Fatalf("dsl.Parse failed: %v", err)
	}
	code, err := Generate(g, pkg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return string(code)
}

func TestGenerateStructsAndFills(t *testing.T) {
	code := generate(t, sampleDef, "flags")

	for _, want := range []string{
		"// Code generated by gramgen. DO NOT EDIT.",
		"package flags",
		"type Healthck struct {",
		"Config  *string",
		"Verbose int",
		"Jobs    *int64",
		"type HealthckCmd struct {",
		"Quick *Quick",
		"Full  *Full",
		"const HealthckHelp = `",
		"func ParseHealthck(args []string) (*Healthck, error) {",
		`v.Verbose = o.Count("verbose")`,
		`v.Strict = o.Has("strict")`,
		`if x, ok := o.ArgPath("config"); ok {`,
		`quick := b.DefaultCommand("quick", "")`,
		`full.Alias("f")`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("Generated code missing %q:\n%s", want, code)
		}
	}
	if strings.Contains(code, `"time"`) {
		t.Error("Generated code imports time without a duration kind")
	}
}

func TestGenerateDurationImport(t *testing.T) {
	code := generate(t, "cmd app { optional --wait d: duration }", "cli")

	if !strings.Contains(code, `"time"`) {
		t.Error("Expected time import for duration kind")
	}
	if !strings.Contains(code, "Wait *time.Duration") {
		t.Errorf("Expected *time.Duration field:\n%s", code)
	}
}

func TestGenerateRepeatedSlices(t *testing.T) {
	code := generate(t, "cmd app required file: path { repeated --tag t: string }", "cli")

	for _, want := range []string{
		"Tag  []string",
		"File string",
		`for _, it := range o.Occurrences("tag") {`,
		"v.Tag = append(v.Tag, it.Typed.(string))",
		`v.File, _ = o.ArgPath("file")`,
	} {
		if !strings.Contains(code, want) {
			t.Errorf("Generated code missing %q:\n%s", want, code)
		}
	}
}

func TestGenerateRejectsUnknownKind(t *testing.T) {
	g, err := dsl.Parse("cmd app { optional --x v: complex }")
	if err != nil {
		t.Fatalf("dsl.Parse failed: %v", err)
	}
	if _, err = Generate(g, "cli"); err == nil || !strings.Contains(err.Error(), "unknown kind") {
		t.Errorf("Expected unknown kind error, got %v", err)
	}
}

func TestGenerateRejectsStructuralDefects(t *testing.T) {
	g, err := dsl.Parse("cmd app { optional --x \n optional --x }")
	if err != nil {
		t.Fatalf("dsl.Parse failed: %v", err)
	}
	if _, err = Generate(g, "cli"); err == nil || !strings.Contains(err.Error(), "duplicate switch") {
		t.Errorf("Expected duplicate switch error, got %v", err)
	}
}

func TestGenerateRejectsTypeNameCollision(t *testing.T) {
	g, err := dsl.Parse("cmd app { cmd do-it {} cmd doIt {} }")
	if err != nil {
		t.Fatalf("dsl.Parse failed: %v", err)
	}
	if _, err = Generate(g, "cli"); err == nil || !strings.Contains(err.Error(), "generate type") {
		t.Errorf("Expected collision error, got %v", err)
	}
}

func TestCamelNames(t *testing.T) {
	tests := []struct {
		in, typ, varn string
	}{
		{"healthck", "Healthck", "healthck"},
		{"dry-run", "DryRun", "dryRun"},
		{"a_b.c", "ABC", "aBC"},
	}
	for _, tt := range tests {
		if got := typeName(tt.in); got != tt.typ {
			t.Errorf("typeName(%q) = %q, want %q", tt.in, got, tt.typ)
		}
		if got := varName(tt.in); got != tt.varn {
			t.Errorf("varName(%q) = %q, want %q", tt.in, got, tt.varn)
		}
	}
}

func TestStripHeader(t *testing.T) {
	code := []byte(heredoc.Doc(`
		// Code generated by gramgen. DO NOT EDIT.

		package flags

		import (
			"github.com/dzonerzy/go-gram/gram"
		)

		type App struct {
		}
	`))
	got := string(stripHeader(code))
	if !strings.HasPrefix(got, "type App struct {") {
		t.Errorf("stripHeader left %q", got)
	}

	noImports := []byte("// Code generated by gramgen. DO NOT EDIT.\n\npackage flags\n\ntype App struct {\n}\n")
	got = string(stripHeader(noImports))
	if !strings.HasPrefix(got, "type App struct {") {
		t.Errorf("stripHeader without imports left %q", got)
	}
}

func TestRewriteInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.go")

	host := heredoc.Doc(`
		package flags

		import (
			"github.com/dzonerzy/go-gram/gram"
		)

		func handWritten() {}

		// generated start
		old generated content
		// generated end

		func alsoHandWritten() {}
	`)
	if err := os.WriteFile(path, []byte(host), 0o644); err != nil {
		t.Fatal(err)
	}

	code := []byte("// Code generated by gramgen. DO NOT EDIT.\n\npackage flags\n\ntype App struct {\n}\n")
	if err := rewriteInPlace(path, code); err != nil {
		t.Fatalf("rewriteInPlace failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(got)
	if !strings.Contains(text, "func handWritten() {}") || !strings.Contains(text, "func alsoHandWritten() {}") {
		t.Error("Hand-written code lost")
	}
	if strings.Contains(text, "old generated content") {
		t.Error("Stale generated content kept")
	}
	if !strings.Contains(text, "type App struct {") {
		t.Error("New generated content missing")
	}
	if strings.Count(text, "package flags") != 1 {
		t.Error("Package clause duplicated")
	}
}

func TestRewriteInPlaceWithoutMarkers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.go")
	if err := os.WriteFile(path, []byte("package flags\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := rewriteInPlace(path, []byte("package flags\n")); err == nil {
		t.Error("Expected error for missing markers")
	}
}

func TestRewriteInPlaceCreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.go")

	code := []byte("// Code generated by gramgen. DO NOT EDIT.\n\npackage flags\n\nimport (\n\t\"github.com/dzonerzy/go-gram/gram\"\n)\n\ntype App struct {\n}\n")
	if err := rewriteInPlace(path, code); err != nil {
		t.Fatalf("rewriteInPlace failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(got)
	if !strings.Contains(text, "package flags") {
		t.Error("Created file lacks package clause")
	}
	start := strings.Index(text, markerStart)
	end := strings.Index(text, markerEnd)
	if start == -1 || end == -1 || start > end {
		t.Fatalf("Created file lacks markers:\n%s", text)
	}
	if !strings.Contains(text[start:end], "type App struct {") {
		t.Error("Generated declarations not inside markers")
	}
	if strings.Contains(text[start:end], "package flags") {
		t.Error("Package clause inside markers would be destroyed on rewrite")
	}
}
