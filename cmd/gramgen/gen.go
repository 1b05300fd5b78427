package main

import (
	"bytes"
	"fmt"
	"go/format"
	"strconv"
	"strings"

	"github.com/dzonerzy/go-gram/gram"
	"github.com/dzonerzy/go-gram/internal/dsl"
)

// kindInfo maps a definition-file kind to its Go representation and the
// gram accessors used when filling the generated structs.
type kindInfo struct {
	goType    string
	gramKind  string
	getter    string // switch accessor on *gram.Outcome
	argGetter string // positional accessor on *gram.Outcome
}

var kinds = map[string]kindInfo{
	"string":   {"string", "gram.KindString", "GetString", "ArgString"},
	"int":      {"int64", "gram.KindInt", "GetInt", "ArgInt"},
	"uint":     {"uint64", "gram.KindUint", "GetUint", "ArgUint"},
	"float":    {"float64", "gram.KindFloat", "GetFloat", "ArgFloat"},
	"duration": {"time.Duration", "gram.KindDuration", "GetDuration", "ArgDuration"},
	"path":     {"string", "gram.KindPath", "GetPath", "ArgPath"},
	"bytes":    {"[]byte", "gram.KindBytes", "GetBytes", "ArgBytes"},
}

// Generate turns a parsed definition into a Go source file: one struct
// per command, a subcommand selector struct per branching command, the
// compiled grammar, a Parse function and the rendered help text.
func Generate(g *dsl.Grammar, pkg string) ([]byte, error) {
	if err := checkKinds(g.Root); err != nil {
		return nil, err
	}
	grammar, err := buildGrammar(g.Root)
	if err != nil {
		return nil, err
	}

	gen := &generator{pkg: pkg}
	if err := gen.checkNames(g.Root, map[string]string{}); err != nil {
		return nil, err
	}
	gen.file(g.Root, grammar)

	src, ferr := format.Source(gen.buf.Bytes())
	if ferr != nil {
		// Surface the raw source; the bug is in the generator, and the
		// unformatted output is the only way to see it.
		return gen.buf.Bytes(), fmt.Errorf("generated source does not compile: %v", ferr)
	}
	return src, nil
}

// buildGrammar compiles the runtime grammar, converting the structural
// panics of gram.Build into plain errors for tool output.
func buildGrammar(root *dsl.Cmd) (g *gram.Grammar, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	b := gram.New(root.Name, root.Doc)
	declare(&b.CommandBuilder, root)
	return b.Build(), nil
}

func declare(cb *gram.CommandBuilder, c *dsl.Cmd) {
	if len(c.Aliases) > 0 {
		cb.Alias(c.Aliases...)
	}
	for _, p := range c.Positionals {
		pb := cb.Positional(p.Name, gram.Kind(p.Kind), p.Doc)
		switch p.Arity {
		case dsl.Optional:
			pb.Optional()
		case dsl.Repeated:
			pb.Repeated()
		}
	}
	for _, s := range c.Switches {
		sb := cb.Switch(s.Long, s.Doc)
		if s.Short != 0 {
			sb.Short(s.Short)
		}
		switch s.Arity {
		case dsl.Required:
			sb.Required()
		case dsl.Repeated:
			sb.Repeated()
		}
		if s.Kind != "" {
			sb.Value(s.ValueName, gram.Kind(s.Kind))
		}
	}
	for _, child := range c.Children {
		var sub *gram.CommandBuilder
		if child.Default {
			sub = cb.DefaultCommand(child.Name, child.Doc)
		} else {
			sub = cb.Command(child.Name, child.Doc)
		}
		declare(sub, child)
	}
}

func checkKinds(c *dsl.Cmd) error {
	for _, p := range c.Positionals {
		if _, ok := kinds[p.Kind]; !ok {
			return fmt.Errorf("positional %q: unknown kind %q", p.Name, p.Kind)
		}
	}
	for _, s := range c.Switches {
		if s.Kind != "" {
			if _, ok := kinds[s.Kind]; !ok {
				return fmt.Errorf("switch --%s: unknown kind %q", s.Long, s.Kind)
			}
		}
	}
	for _, child := range c.Children {
		if err := checkKinds(child); err != nil {
			return err
		}
	}
	return nil
}

type generator struct {
	buf bytes.Buffer
	pkg string
}

func (g *generator) printf(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}

// checkNames rejects command names whose exported struct names collide,
// since generated types share one flat namespace like the grammar file's
// authors expect.
func (g *generator) checkNames(c *dsl.Cmd, seen map[string]string) error {
	n := typeName(c.Name)
	if prev, ok := seen[n]; ok {
		return fmt.Errorf("commands %q and %q both generate type %s", prev, c.Name, n)
	}
	seen[n] = c.Name
	for _, child := range c.Children {
		if err := g.checkNames(child, seen); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) file(root *dsl.Cmd, grammar *gram.Grammar) {
	g.printf("// Code generated by gramgen. DO NOT EDIT.\n\n")
	g.printf("package %s\n\n", g.pkg)
	g.printf("import (\n")
	if usesDuration(root) {
		g.printf("\t%q\n\n", "time")
	}
	g.printf("\t%q\n", "github.com/dzonerzy/go-gram/gram")
	g.printf(")\n\n")

	g.structs(root)

	rootType := typeName(root.Name)
	g.printf("// %sHelp is the rendered help text for '%s'.\n", rootType, root.Name)
	g.printf("const %sHelp = %s\n\n", rootType, quoteMultiline(grammar.Help()))

	g.printf("var %sGrammar = build%sGrammar()\n\n", varName(root.Name), rootType)
	g.grammarFunc(root)

	g.printf("// Parse%s matches an argument list (conventionally os.Args[1:])\n", rootType)
	g.printf("// against the %s grammar.\n", root.Name)
	g.printf("func Parse%s(args []string) (*%s, error) {\n", rootType, rootType)
	g.printf("\tout, err := %sGrammar.Parse(args)\n", varName(root.Name))
	g.printf("\tif err != nil {\n\t\treturn nil, err\n\t}\n")
	g.printf("\treturn fill%s(out), nil\n", rootType)
	g.printf("}\n\n")

	g.fillFuncs(root)
}

func (g *generator) structs(c *dsl.Cmd) {
	n := typeName(c.Name)
	if c.Doc != "" {
		g.printf("// %s holds the parsed arguments for '%s': %s\n", n, c.Name, firstLine(c.Doc))
	} else {
		g.printf("// %s holds the parsed arguments for '%s'.\n", n, c.Name)
	}
	g.printf("type %s struct {\n", n)
	for _, p := range c.Positionals {
		g.printf("\t%s %s\n", fieldName(p.Name), slotType(kinds[p.Kind].goType, p.Arity))
	}
	for _, s := range c.Switches {
		if s.Kind == "" {
			g.printf("\t%s %s\n", fieldName(s.Long), boolSlotType(s.Arity))
		} else {
			g.printf("\t%s %s\n", fieldName(s.Long), slotType(kinds[s.Kind].goType, s.Arity))
		}
	}
	if len(c.Children) > 0 {
		g.printf("\tCmd %sCmd\n", n)
	}
	g.printf("}\n\n")

	if len(c.Children) > 0 {
		g.printf("// %sCmd identifies the subcommand selected under '%s'.\n", n, c.Name)
		g.printf("type %sCmd struct {\n", n)
		g.printf("\tKind string\n")
		for _, child := range c.Children {
			g.printf("\t%s *%s\n", typeName(child.Name), typeName(child.Name))
		}
		g.printf("}\n\n")
	}

	for _, child := range c.Children {
		g.structs(child)
	}
}

func (g *generator) grammarFunc(root *dsl.Cmd) {
	rootType := typeName(root.Name)
	g.printf("func build%sGrammar() *gram.Grammar {\n", rootType)
	g.printf("\tb := gram.New(%q, %q)\n", root.Name, root.Doc)
	g.declStatements(root, "b", "\t")
	g.printf("\treturn b.Build()\n")
	g.printf("}\n\n")
}

func (g *generator) declStatements(c *dsl.Cmd, recv, indent string) {
	if len(c.Aliases) > 0 {
		quoted := make([]string, len(c.Aliases))
		for i, a := range c.Aliases {
			quoted[i] = strconv.Quote(a)
		}
		g.printf("%s%s.Alias(%s)\n", indent, recv, strings.Join(quoted, ", "))
	}
	for _, p := range c.Positionals {
		g.printf("%s%s.Positional(%q, %s, %q)%s\n",
			indent, recv, p.Name, kinds[p.Kind].gramKind, p.Doc, positionalArityCall(p.Arity))
	}
	for _, s := range c.Switches {
		g.printf("%s%s.Switch(%q, %q)%s%s%s\n",
			indent, recv, s.Long, s.Doc, shortCall(s.Short), switchArityCall(s.Arity), valueCall(s))
	}
	for _, child := range c.Children {
		v := varName(child.Name)
		if v == "b" {
			// Would shadow the root builder variable.
			v = "bCmd"
		}
		if child.Default {
			g.printf("%s%s := %s.DefaultCommand(%q, %q)\n", indent, v, recv, child.Name, child.Doc)
		} else {
			g.printf("%s%s := %s.Command(%q, %q)\n", indent, v, recv, child.Name, child.Doc)
		}
		g.declStatements(child, v, indent)
		if !branchUses(child) {
			g.printf("%s_ = %s\n", indent, v)
		}
	}
}

// branchUses reports whether a child command's builder variable is used
// after creation (any declarations inside it).
func branchUses(c *dsl.Cmd) bool {
	return len(c.Aliases) > 0 || len(c.Positionals) > 0 || len(c.Switches) > 0 || len(c.Children) > 0
}

func (g *generator) fillFuncs(c *dsl.Cmd) {
	n := typeName(c.Name)
	g.printf("func fill%s(o *gram.Outcome) *%s {\n", n, n)
	g.printf("\tv := &%s{}\n", n)
	for _, p := range c.Positionals {
		g.fillSlot(fieldName(p.Name), kinds[p.Kind], p.Arity, true, p.Name)
	}
	for _, s := range c.Switches {
		if s.Kind == "" {
			switch s.Arity {
			case dsl.Repeated:
				g.printf("\tv.%s = o.Count(%q)\n", fieldName(s.Long), s.Long)
			default:
				g.printf("\tv.%s = o.Has(%q)\n", fieldName(s.Long), s.Long)
			}
			continue
		}
		g.fillSlot(fieldName(s.Long), kinds[s.Kind], s.Arity, false, s.Long)
	}
	if len(c.Children) > 0 {
		g.printf("\tif o.Sub != nil {\n")
		g.printf("\t\tv.Cmd.Kind = o.Sub.Command\n")
		g.printf("\t\tswitch o.Sub.Command {\n")
		for _, child := range c.Children {
			g.printf("\t\tcase %q:\n", child.Name)
			g.printf("\t\t\tv.Cmd.%s = fill%s(o.Sub)\n", typeName(child.Name), typeName(child.Name))
		}
		g.printf("\t\t}\n")
		g.printf("\t}\n")
	}
	g.printf("\treturn v\n")
	g.printf("}\n\n")

	for _, child := range c.Children {
		g.fillFuncs(child)
	}
}

func (g *generator) fillSlot(field string, k kindInfo, arity dsl.Arity, positional bool, name string) {
	getter := k.getter
	occurrences := "Occurrences"
	if positional {
		getter = k.argGetter
		occurrences = "Args"
	}
	switch arity {
	case dsl.Required:
		g.printf("\tv.%s, _ = o.%s(%q)\n", field, getter, name)
	case dsl.Optional:
		g.printf("\tif x, ok := o.%s(%q); ok {\n\t\tv.%s = &x\n\t}\n", getter, name, field)
	case dsl.Repeated:
		g.printf("\tfor _, it := range o.%s(%q) {\n", occurrences, name)
		g.printf("\t\tv.%s = append(v.%s, it.Typed.(%s))\n", field, field, k.goType)
		g.printf("\t}\n")
	}
}

func slotType(goType string, arity dsl.Arity) string {
	switch arity {
	case dsl.Optional:
		return "*" + goType
	case dsl.Repeated:
		return "[]" + goType
	default:
		return goType
	}
}

func boolSlotType(arity dsl.Arity) string {
	if arity == dsl.Repeated {
		return "int" // occurrence count
	}
	return "bool"
}

func positionalArityCall(a dsl.Arity) string {
	switch a {
	case dsl.Optional:
		return ".Optional()"
	case dsl.Repeated:
		return ".Repeated()"
	default:
		return ""
	}
}

func switchArityCall(a dsl.Arity) string {
	switch a {
	case dsl.Required:
		return ".Required()"
	case dsl.Repeated:
		return ".Repeated()"
	default:
		return ""
	}
}

func shortCall(r rune) string {
	if r == 0 {
		return ""
	}
	return fmt.Sprintf(".Short(%q)", r)
}

func valueCall(s dsl.Switch) string {
	if s.Kind == "" {
		return ""
	}
	return fmt.Sprintf(".Value(%q, %s)", s.ValueName, kinds[s.Kind].gramKind)
}

func usesDuration(c *dsl.Cmd) bool {
	for _, p := range c.Positionals {
		if p.Kind == "duration" {
			return true
		}
	}
	for _, s := range c.Switches {
		if s.Kind == "duration" {
			return true
		}
	}
	for _, child := range c.Children {
		if usesDuration(child) {
			return true
		}
	}
	return false
}

// typeName converts a kebab-case command name to an exported Go name.
func typeName(name string) string {
	return camel(name, true)
}

func fieldName(name string) string {
	return camel(name, true)
}

func varName(name string) string {
	return camel(name, false)
}

func camel(name string, exportFirst bool) string {
	var b strings.Builder
	up := exportFirst
	for _, r := range name {
		switch {
		case r == '-' || r == '_' || r == '.':
			up = true
		case up:
			b.WriteRune(toUpper(r))
			up = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func toUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}

func firstLine(doc string) string {
	if i := strings.IndexByte(doc, '\n'); i != -1 {
		return doc[:i]
	}
	return doc
}

// quoteMultiline prefers a raw string literal, falling back to a quoted
// one when the text itself contains a backtick.
func quoteMultiline(s string) string {
	if !strings.Contains(s, "`") {
		return "`" + s + "`"
	}
	return strconv.Quote(s)
}
