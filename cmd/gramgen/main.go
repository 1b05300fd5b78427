// gramgen compiles a grammar definition file into Go source: typed
// argument structs, a compiled gram.Grammar and a Parse function.
//
// Usage:
//
//	gramgen app.gram -p cli -o cli/flags.go
//	gramgen app.gram -w -o cli/flags.go
//
// With -w the output file is rewritten in place between the
// "// generated start" and "// generated end" markers, so generated
// code can live next to hand-written code.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/dzonerzy/go-gram/gram"
	"github.com/dzonerzy/go-gram/internal/dsl"
)

const (
	markerStart = "// generated start"
	markerEnd   = "// generated end"
)

var cli = gram.New("gramgen", "Generates Go argument parsers from grammar definitions.").
	Positional("grammar", gram.KindPath, "Grammar definition file.").Back().
	Switch("output", "Write generated code to this file instead of stdout.").
	Short('o').Value("file", gram.KindPath).Back().
	Switch("package", "Package name for the generated file.").
	Short('p').Value("name", gram.KindString).Back().
	Switch("write", "Rewrite the output file in place between generated markers.").
	Short('w').Back().
	Build()

func main() {
	out, err := cli.Parse(os.Args[1:])
	if err != nil {
		gram.Exit(err)
	}
	if err := run(out); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(out *gram.Outcome) error {
	grammarPath, _ := out.ArgPath("grammar")
	outputPath, hasOutput := out.GetPath("output")
	pkg, hasPkg := out.GetString("package")
	if !hasPkg {
		pkg = "flags"
	}

	src, err := os.ReadFile(grammarPath)
	if err != nil {
		return err
	}
	ast, err := dsl.Parse(string(src))
	if err != nil {
		return fmt.Errorf("%s: %v", grammarPath, err)
	}
	code, err := Generate(ast, pkg)
	if err != nil {
		return fmt.Errorf("%s: %v", grammarPath, err)
	}

	switch {
	case out.Has("write"):
		if !hasOutput {
			return fmt.Errorf("--write requires --output")
		}
		if err := rewriteInPlace(outputPath, code); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(os.Stderr, "wrote %s\n", outputPath)
	case hasOutput:
		if err := os.WriteFile(outputPath, code, 0o644); err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintf(os.Stderr, "wrote %s\n", outputPath)
	default:
		os.Stdout.Write(code)
	}
	return nil
}

// rewriteInPlace replaces the region between the generated markers in an
// existing file, keeping the surrounding hand-written code. A missing file
// is created with the generated code wrapped in fresh markers.
func rewriteInPlace(path string, code []byte) error {
	old, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		decls := stripHeader(code)
		var b strings.Builder
		b.Write(code[:len(code)-len(decls)])
		b.WriteString(markerStart + "\n\n")
		b.Write(decls)
		b.WriteString(markerEnd + "\n")
		return os.WriteFile(path, []byte(b.String()), 0o644)
	}
	if err != nil {
		return err
	}

	text := string(old)
	start := strings.Index(text, markerStart)
	end := strings.Index(text, markerEnd)
	if start == -1 || end == -1 || end < start {
		return fmt.Errorf("%s: no generated markers found", path)
	}
	start += len(markerStart)

	var b strings.Builder
	b.WriteString(text[:start])
	b.WriteString("\n\n")
	b.Write(stripHeader(code))
	b.WriteString(text[end:])
	return os.WriteFile(path, []byte(b.String()), 0o644)
}

// stripHeader drops the package clause and import block, leaving only the
// declarations. The host file of an in-place rewrite owns both.
func stripHeader(code []byte) []byte {
	text := string(code)
	if i := strings.Index(text, "import ("); i != -1 {
		if j := strings.Index(text[i:], ")\n"); j != -1 {
			return []byte(strings.TrimLeft(text[i+j+2:], "\n"))
		}
	}
	if i := strings.Index(text, "\npackage "); i != -1 {
		if j := strings.IndexByte(text[i+1:], '\n'); j != -1 {
			return []byte(strings.TrimLeft(text[i+1+j:], "\n"))
		}
	}
	return code
}
