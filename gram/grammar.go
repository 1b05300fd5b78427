// Package gram implements a declarative-grammar-driven command line
// argument parser. A Grammar describing commands, switches and positional
// arguments is compiled once and then matched against any number of
// argument lists; each match yields either a structured Outcome or a
// categorized *ParseError. Help text is rendered from the same grammar,
// so the matcher and the help output can never disagree.
package gram

import (
	"fmt"
	"strings"
)

// Arity is the cardinality constraint on a switch or positional argument.
type Arity uint8

const (
	Optional Arity = iota // zero or one occurrence
	Required              // exactly one occurrence
	Repeated              // zero or more occurrences
)

// String returns the lowercase arity keyword as used in grammar files.
func (a Arity) String() string {
	switch a {
	case Optional:
		return "optional"
	case Required:
		return "required"
	case Repeated:
		return "repeated"
	default:
		return fmt.Sprintf("arity(%d)", uint8(a))
	}
}

// Switch is a named flag. Long names are mandatory, short names are
// optional single-letter aliases. A switch without a value descriptor is
// boolean: only its presence (or, for Repeated, its count) is recorded.
//
// Switches are inherited: a switch declared on a command is visible at
// that command and every descendant, and may be supplied anywhere in the
// argument list regardless of where the subcommand name appears.
type Switch struct {
	Long      string
	Short     rune // 0 when absent
	Arity     Arity
	ValueName string // empty for boolean switches
	Kind      Kind   // value kind; meaningful only when ValueName != ""
	Doc       string

	help  bool      // short-circuits matching into a help request
	parse ParseFunc // resolved against the kind table at Build time
	owner *Command
}

// TakesValue reports whether the switch consumes a value argument.
func (s *Switch) TakesValue() bool { return s.ValueName != "" }

// display returns the switch name as the user writes it.
func (s *Switch) display() string { return "--" + s.Long }

// Positional is an argument consumed by declaration order. Positionals
// are not inherited by subcommands.
type Positional struct {
	Name  string
	Arity Arity
	Kind  Kind
	Doc   string

	parse ParseFunc
}

// Command is one node of the grammar tree.
type Command struct {
	name        string
	aliases     []string
	doc         string
	hidden      bool
	switches    []*Switch
	byLong      map[string]*Switch
	byShort     map[rune]*Switch
	positionals []*Positional
	children    []*Command
	byChild     map[string]*Command // names and aliases of direct children
	defaultCmd  *Command
	parent      *Command
}

func newCommand(name, doc string) *Command {
	return &Command{
		name:    name,
		doc:     doc,
		byLong:  make(map[string]*Switch),
		byShort: make(map[rune]*Switch),
		byChild: make(map[string]*Command),
	}
}

// Name returns the command's primary identifier.
func (c *Command) Name() string { return c.name }

// Aliases returns the command's alternate invocation names.
func (c *Command) Aliases() []string { return c.aliases }

// Doc returns the command's documentation text.
func (c *Command) Doc() string { return c.doc }

// Hidden reports whether the command is excluded from help output.
func (c *Command) Hidden() bool { return c.hidden }

// Parent returns the enclosing command, or nil for the root.
func (c *Command) Parent() *Command { return c.parent }

// Children returns the direct subcommands in declaration order.
func (c *Command) Children() []*Command { return c.children }

// DefaultChild returns the subcommand selected when no subcommand name is
// supplied, or nil if the grammar designates none.
func (c *Command) DefaultChild() *Command { return c.defaultCmd }

// Positionals returns the command's positional descriptors in order.
func (c *Command) Positionals() []*Positional { return c.positionals }

// Switches returns the switches declared at this command only.
func (c *Command) Switches() []*Switch { return c.switches }

// VisibleSwitches returns every switch settable at this command: its own
// declarations first, then inherited ones walking toward the root.
func (c *Command) VisibleSwitches() []*Switch {
	var out []*Switch
	for n := c; n != nil; n = n.parent {
		out = append(out, n.switches...)
	}
	return out
}

// Path returns the command names from the root down to this command.
func (c *Command) Path() []string {
	var rev []string
	for n := c; n != nil; n = n.parent {
		rev = append(rev, n.name)
	}
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// lookupSwitch resolves a long name against this command and its
// ancestors. Inherited switches stay visible at every descendant.
func (c *Command) lookupSwitch(long string) *Switch {
	for n := c; n != nil; n = n.parent {
		if sw := n.byLong[long]; sw != nil {
			return sw
		}
	}
	return nil
}

// lookupShort resolves a short alias against this command and its
// ancestors.
func (c *Command) lookupShort(r rune) *Switch {
	for n := c; n != nil; n = n.parent {
		if sw := n.byShort[r]; sw != nil {
			return sw
		}
	}
	return nil
}

// lookupChild resolves a direct subcommand by name or alias. Matching is
// exact: no prefix expansion.
func (c *Command) lookupChild(name string) *Command {
	return c.byChild[name]
}

// Grammar is the compiled, immutable tree of command descriptors. It is
// built once, validated eagerly, and safe to share between any number of
// concurrent Parse calls.
type Grammar struct {
	root *Command
}

// Root returns the top-level command node.
func (g *Grammar) Root() *Command { return g.root }

// Help renders the help text for the root command.
func (g *Grammar) Help() string { return renderHelp(g.root) }

// HelpFor renders the help text for the subcommand reached by the given
// names. It reports false if the path does not resolve.
func (g *Grammar) HelpFor(path ...string) (string, bool) {
	cmd := g.root
	for _, name := range path {
		next := cmd.lookupChild(name)
		if next == nil {
			return "", false
		}
		cmd = next
	}
	return renderHelp(cmd), true
}

// Structural validation. Violations are programming errors in the grammar
// definition, not user input, so they panic rather than surfacing through
// the ParseError taxonomy.

func validate(cmd *Command, kinds map[Kind]ParseFunc) {
	path := strings.Join(cmd.Path(), " ")

	defaults := 0
	for _, child := range cmd.children {
		for _, name := range append([]string{child.name}, child.aliases...) {
			if name == "" {
				panic(fmt.Sprintf("gram: empty subcommand name under %q", path))
			}
			if cmd.byChild[name] != nil {
				panic(fmt.Sprintf("gram: duplicate subcommand name %q under %q", name, path))
			}
			cmd.byChild[name] = child
		}
		if child == cmd.defaultCmd {
			defaults++
		}
	}
	if cmd.defaultCmd != nil && defaults != 1 {
		panic(fmt.Sprintf("gram: default subcommand of %q is not one of its children", path))
	}

	for _, sw := range cmd.switches {
		if sw.Long == "" {
			panic(fmt.Sprintf("gram: switch with empty long name in %q", path))
		}
		if cmd.byLong[sw.Long] != nil {
			panic(fmt.Sprintf("gram: duplicate switch --%s in %q", sw.Long, path))
		}
		cmd.byLong[sw.Long] = sw
		if sw.Short != 0 {
			if cmd.byShort[sw.Short] != nil {
				panic(fmt.Sprintf("gram: duplicate short -%c in %q", sw.Short, path))
			}
			cmd.byShort[sw.Short] = sw
		}
		// Shadowing an inherited name is disallowed, not resolved.
		if up := cmd.parent; up != nil {
			if clash := up.lookupSwitch(sw.Long); clash != nil {
				panic(fmt.Sprintf("gram: switch --%s in %q shadows the one declared at %q",
					sw.Long, path, strings.Join(clash.owner.Path(), " ")))
			}
			if sw.Short != 0 {
				if clash := up.lookupShort(sw.Short); clash != nil {
					panic(fmt.Sprintf("gram: short -%c in %q shadows --%s declared at %q",
						sw.Short, path, clash.Long, strings.Join(clash.owner.Path(), " ")))
				}
			}
		}
		if sw.TakesValue() {
			fn, ok := kinds[sw.Kind]
			if !ok {
				panic(fmt.Sprintf("gram: switch --%s in %q uses unregistered kind %q", sw.Long, path, sw.Kind))
			}
			sw.parse = fn
		}
	}

	seenPos := make(map[string]bool)
	sawOptional, sawRepeated := false, false
	for _, p := range cmd.positionals {
		if p.Name == "" {
			panic(fmt.Sprintf("gram: positional with empty name in %q", path))
		}
		if seenPos[p.Name] || posNameVisible(cmd.parent, p.Name) {
			panic(fmt.Sprintf("gram: duplicate positional name %q in %q", p.Name, path))
		}
		seenPos[p.Name] = true
		if sawRepeated {
			panic(fmt.Sprintf("gram: positional %q in %q follows a repeated positional", p.Name, path))
		}
		switch p.Arity {
		case Repeated:
			sawRepeated = true
		case Optional:
			sawOptional = true
		case Required:
			if sawOptional {
				panic(fmt.Sprintf("gram: required positional %q in %q follows an optional one", p.Name, path))
			}
		}
		fn, ok := kinds[p.Kind]
		if !ok {
			panic(fmt.Sprintf("gram: positional %q in %q uses unregistered kind %q", p.Name, path, p.Kind))
		}
		p.parse = fn
	}
	if sawRepeated && len(cmd.children) > 0 {
		// A repeated slot never exhausts, so subcommands behind it could
		// never be named on the command line.
		panic(fmt.Sprintf("gram: command %q combines a repeated positional with subcommands", path))
	}

	for _, child := range cmd.children {
		validate(child, kinds)
	}
}

func posNameVisible(cmd *Command, name string) bool {
	for n := cmd; n != nil; n = n.parent {
		for _, p := range n.positionals {
			if p.Name == name {
				return true
			}
		}
	}
	return false
}
