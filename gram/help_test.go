package gram

import (
	"errors"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
)

func buildHealthck() *Grammar {
	return New("healthck", "Run basic system diagnostics.").
		Positional("config", KindPath, "Optional configuration file.").Optional().Back().
		Switch("verbose", "Verbosity level, can be repeated multiple times.").Short('v').Repeated().Back().
		Switch("jobs", "Number of worker jobs.").Short('j').Value("n", KindInt).Back().
		DefaultCommand("quick", "Run the quick checks only.").
		Switch("strict", "Fail on warnings.").Short('s').Back().
		Back().
		Command("full", "Run the full suite.").Alias("f").Back().
		Build()
}

func TestRenderHelpRoot(t *testing.T) {
	want := heredoc.Doc(`
		Run basic system diagnostics.
		Usage:  healthck [config] [-v]... [-j <n>] [-h] [COMMAND]
		Arguments:
		  [config]           Optional configuration file.

		Options:
		  -v, --verbose      Verbosity level, can be repeated multiple times.
		  -j, --jobs <n>     Number of worker jobs.
		  -h, --help         Prints help

		Commands:
		  quick              Run the quick checks only. (default)
		  full               Run the full suite.
	`)
	want = strings.TrimSuffix(strings.TrimPrefix(want, "\n"), "\n")

	got := buildHealthck().Help()
	if got != want {
		t.Errorf("Help mismatch.\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestRenderHelpSubcommand(t *testing.T) {
	want := heredoc.Doc(`
		Run the quick checks only.
		Usage:  healthck quick [-s] [-v]... [-j <n>] [-h]
		Options:
		  -s, --strict       Fail on warnings.
		  -v, --verbose      Verbosity level, can be repeated multiple times.
		  -j, --jobs <n>     Number of worker jobs.
		  -h, --help         Prints help
	`)
	want = strings.TrimSuffix(strings.TrimPrefix(want, "\n"), "\n")

	got, ok := buildHealthck().HelpFor("quick")
	if !ok {
		t.Fatal("HelpFor(quick) did not resolve")
	}
	if got != want {
		t.Errorf("Help mismatch.\nwant:\n%s\n\ngot:\n%s", want, got)
	}
}

func TestHelpForUnknownPath(t *testing.T) {
	if _, ok := buildHealthck().HelpFor("nope"); ok {
		t.Error("Expected HelpFor to fail on unknown path")
	}
}

func TestHelpOmitsHiddenCommands(t *testing.T) {
	g := New("app", "").
		Command("visible", "Shown.").Back().
		Command("secret", "Not shown.").Hidden().Back().
		Build()

	help := g.Help()
	if !strings.Contains(help, "visible") {
		t.Error("Expected visible command in help")
	}
	if strings.Contains(help, "secret") {
		t.Error("Expected hidden command omitted from help")
	}

	// Hidden commands stay matchable.
	out, err := g.Parse([]string{"secret"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if out.Leaf().Command != "secret" {
		t.Errorf("Expected secret selected, got %q", out.Leaf().Command)
	}
}

func TestHelpRequiredMarkers(t *testing.T) {
	g := New("cp", "").NoHelp().
		Switch("force", "").Required().Back().
		Positional("src", KindPath, "").Back().
		Positional("dst", KindPath, "").Optional().Back().
		Build()

	usage := strings.SplitN(g.Help(), "\n", 2)[0]
	want := "Usage:  cp <src> [dst] --force"
	if usage != want {
		t.Errorf("Usage = %q, want %q", usage, want)
	}
}

func TestHelpMultilineDoc(t *testing.T) {
	g := New("app", "").NoHelp().
		Switch("mode", "First line.\nSecond line.").Back().
		Build()

	help := g.Help()
	lines := strings.Split(help, "\n")
	var first, second string
	for i, line := range lines {
		if strings.Contains(line, "First line.") {
			first = line
			if i+1 < len(lines) {
				second = lines[i+1]
			}
		}
	}
	if first == "" || second == "" {
		t.Fatalf("Multiline doc not rendered:\n%s", help)
	}
	if strings.Index(first, "First line.") != strings.Index(second, "Second line.") {
		t.Errorf("Continuation line misaligned:\n%s\n%s", first, second)
	}
}

// Every switch named on the usage line must be accepted by the matcher,
// so the help text can never disagree with what the matcher accepts.
func TestUsageLineRoundTrip(t *testing.T) {
	g := buildHealthck()

	usage := strings.SplitN(g.Help(), "\n", 3)[1]
	tokens := strings.Fields(strings.TrimPrefix(usage, "Usage:  "))

	for _, tok := range tokens[1:] {
		tok = strings.TrimSuffix(tok, "...")
		tok = strings.Trim(tok, "[]<>")
		if !strings.HasPrefix(tok, "-") {
			continue
		}
		_, err := g.Parse([]string{tok})
		var pe *ParseError
		if errors.As(err, &pe) {
			if pe.Type == ErrUnknownSwitch || pe.Type == ErrUnexpectedArgument {
				t.Errorf("Usage token %q rejected by matcher: %v", tok, err)
			}
		}
	}
}

// Every settable switch must appear in its command's help output.
func TestHelpListsEverySettableSwitch(t *testing.T) {
	g := buildHealthck()

	var walk func(cmd *Command)
	walk = func(cmd *Command) {
		help := renderHelp(cmd)
		for _, sw := range cmd.VisibleSwitches() {
			if !strings.Contains(help, "--"+sw.Long) {
				t.Errorf("Help for %v omits --%s", cmd.Path(), sw.Long)
			}
		}
		for _, child := range cmd.Children() {
			walk(child)
		}
	}
	walk(g.Root())
}
