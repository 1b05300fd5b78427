// Package dsl parses grammar definition files: the authoring syntax that
// gramgen compiles into Go declarations and runtime glue.
//
// A definition describes one command tree:
//
//	/// Run basic system diagnostics.
//	cmd healthck
//	    /// Optional configuration file.
//	    optional config: path
//	{
//	    /// Verbosity level, can be repeated multiple times.
//	    repeated -v, --verbose
//	    optional -j, --jobs n: int
//	    default cmd quick { optional -s, --strict }
//	    cmd full | f {}
//	}
//
// Positional arguments sit between the command name and the opening
// brace; switches and nested cmd blocks sit inside the braces. Doc
// comments (///) attach to the following declaration.
package dsl

import "fmt"

// Arity mirrors the three cardinality keywords of the definition syntax.
type Arity int

const (
	Optional Arity = iota
	Required
	Repeated
)

func (a Arity) String() string {
	switch a {
	case Required:
		return "required"
	case Repeated:
		return "repeated"
	default:
		return "optional"
	}
}

// Grammar is a parsed definition file.
type Grammar struct {
	Root *Cmd
}

// Cmd is one command block.
type Cmd struct {
	Name        string
	Aliases     []string
	Doc         string
	Default     bool
	Positionals []Positional
	Switches    []Switch
	Children    []*Cmd
}

// Switch is one switch declaration. Kind is empty for boolean switches.
type Switch struct {
	Long      string
	Short     rune
	Arity     Arity
	ValueName string
	Kind      string
	Doc       string
}

// Positional is one positional declaration.
type Positional struct {
	Name  string
	Arity Arity
	Kind  string
	Doc   string
}

// Parse reads a grammar definition. Errors carry 1-based line numbers.
func Parse(src string) (*Grammar, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	root, err := p.parseRoot()
	if err != nil {
		return nil, err
	}
	return &Grammar{Root: root}, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.peek()
	p.pos++
	return t
}

func (p *parser) errf(t token, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", t.line, fmt.Sprintf(format, args...))
}

func (p *parser) expect(kind tokKind, what string) (token, error) {
	t := p.next()
	if t.kind != kind {
		return t, p.errf(t, "expected %s, found %q", what, t.display())
	}
	return t, nil
}

// docs consumes a run of /// comments and joins them.
func (p *parser) docs() string {
	var doc string
	for p.peek().kind == tokDoc {
		t := p.next()
		if doc != "" {
			doc += "\n"
		}
		doc += t.text
	}
	return doc
}

func (p *parser) parseRoot() (*Cmd, error) {
	doc := p.docs()
	kw := p.next()
	if kw.kind != tokIdent || kw.text != "cmd" {
		return nil, p.errf(kw, "definition must start with 'cmd', found %q", kw.display())
	}
	cmd, err := p.parseCmd(doc, false)
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errf(t, "trailing input after top-level command: %q", t.display())
	}
	return cmd, nil
}

// parseCmd continues after the 'cmd' keyword.
func (p *parser) parseCmd(doc string, isDefault bool) (*Cmd, error) {
	name, err := p.expect(tokIdent, "command name")
	if err != nil {
		return nil, err
	}
	cmd := &Cmd{Name: name.text, Doc: doc, Default: isDefault}

	for p.peek().kind == tokPipe {
		p.next()
		alias, aerr := p.expect(tokIdent, "command alias")
		if aerr != nil {
			return nil, aerr
		}
		cmd.Aliases = append(cmd.Aliases, alias.text)
	}

	// Positionals between the name and the brace.
	for p.peek().kind != tokLBrace {
		pdoc := p.docs()
		pos, perr := p.parsePositional(pdoc)
		if perr != nil {
			return nil, perr
		}
		cmd.Positionals = append(cmd.Positionals, pos)
	}

	if _, err = p.expect(tokLBrace, "'{'"); err != nil {
		return nil, err
	}
	for {
		if p.peek().kind == tokRBrace {
			p.next()
			return cmd, nil
		}
		idoc := p.docs()
		t := p.peek()
		switch {
		case t.kind == tokIdent && t.text == "default":
			p.next()
			if kw := p.next(); kw.kind != tokIdent || kw.text != "cmd" {
				return nil, p.errf(kw, "expected 'cmd' after 'default', found %q", kw.display())
			}
			child, cerr := p.parseCmd(idoc, true)
			if cerr != nil {
				return nil, cerr
			}
			cmd.Children = append(cmd.Children, child)
		case t.kind == tokIdent && t.text == "cmd":
			p.next()
			child, cerr := p.parseCmd(idoc, false)
			if cerr != nil {
				return nil, cerr
			}
			cmd.Children = append(cmd.Children, child)
		case t.kind == tokIdent && isArity(t.text):
			sw, serr := p.parseSwitch(idoc)
			if serr != nil {
				return nil, serr
			}
			cmd.Switches = append(cmd.Switches, sw)
		case t.kind == tokEOF:
			return nil, p.errf(t, "unterminated command block for %q", cmd.Name)
		default:
			return nil, p.errf(t, "expected switch or subcommand declaration, found %q", t.display())
		}
	}
}

func (p *parser) parsePositional(doc string) (Positional, error) {
	arity, err := p.arity()
	if err != nil {
		return Positional{}, err
	}
	name, err := p.expect(tokIdent, "positional name")
	if err != nil {
		return Positional{}, err
	}
	if _, err = p.expect(tokColon, "':'"); err != nil {
		return Positional{}, err
	}
	kind, err := p.expect(tokIdent, "value kind")
	if err != nil {
		return Positional{}, err
	}
	return Positional{Name: name.text, Arity: arity, Kind: kind.text, Doc: doc}, nil
}

func (p *parser) parseSwitch(doc string) (Switch, error) {
	arity, err := p.arity()
	if err != nil {
		return Switch{}, err
	}
	sw := Switch{Arity: arity, Doc: doc}

	t := p.next()
	if t.kind == tokShort {
		sw.Short = t.short
		if _, err = p.expect(tokComma, "','"); err != nil {
			return Switch{}, err
		}
		t = p.next()
	}
	if t.kind != tokLong {
		return Switch{}, p.errf(t, "expected long switch name, found %q", t.display())
	}
	sw.Long = t.text

	// Optional value descriptor: name ':' kind. The colon lookahead
	// keeps the arity keyword of the next declaration from being eaten
	// as a value name.
	if p.peek().kind == tokIdent && p.peekAt(1).kind == tokColon {
		name := p.next()
		if _, err = p.expect(tokColon, "':'"); err != nil {
			return Switch{}, err
		}
		kind, kerr := p.expect(tokIdent, "value kind")
		if kerr != nil {
			return Switch{}, kerr
		}
		sw.ValueName = name.text
		sw.Kind = kind.text
	}
	return sw, nil
}

func (p *parser) arity() (Arity, error) {
	t := p.next()
	if t.kind != tokIdent || !isArity(t.text) {
		return 0, p.errf(t, "expected 'optional', 'required' or 'repeated', found %q", t.display())
	}
	switch t.text {
	case "required":
		return Required, nil
	case "repeated":
		return Repeated, nil
	default:
		return Optional, nil
	}
}

func isArity(s string) bool {
	return s == "optional" || s == "required" || s == "repeated"
}
