package gram

import "fmt"

// Builder assembles a grammar tree prior to compilation. Construction is
// fluent in the usual style: command builders return switch and
// positional builders, and Back() returns to the enclosing context.
// Build() validates the whole tree eagerly and panics on structural
// defects, since those are programming errors rather than user input.
type Builder struct {
	CommandBuilder

	kinds  map[Kind]ParseFunc
	noHelp bool
	built  bool
}

// New starts a grammar rooted at a command with the given name and doc.
func New(name, doc string) *Builder {
	b := &Builder{kinds: builtinKinds()}
	b.CommandBuilder = CommandBuilder{cmd: newCommand(name, doc), b: b}
	return b
}

// RegisterKind adds or replaces a value kind in the coercion table. It
// must be called before Build.
func (b *Builder) RegisterKind(kind Kind, fn ParseFunc) *Builder {
	if fn == nil {
		panic(fmt.Sprintf("gram: nil parser registered for kind %q", kind))
	}
	b.kinds[kind] = fn
	return b
}

// NoHelp suppresses the automatic -h, --help switch.
func (b *Builder) NoHelp() *Builder {
	b.noHelp = true
	return b
}

// Build validates the grammar and freezes it. Unless disabled, a help
// switch is injected at the root so every command answers -h/--help.
func (b *Builder) Build() *Grammar {
	if b.built {
		panic("gram: Build called twice on the same builder")
	}
	b.built = true

	root := b.CommandBuilder.cmd
	if !b.noHelp && !declaresHelp(root) {
		short := 'h'
		if shortVisible(root, 'h') {
			short = 0
		}
		root.switches = append(root.switches, &Switch{
			Long:  "help",
			Short: short,
			Doc:   "Prints help",
			help:  true,
			owner: root,
		})
	}
	validate(root, b.kinds)
	return &Grammar{root: root}
}

func declaresHelp(cmd *Command) bool {
	for _, sw := range cmd.switches {
		if sw.Long == "help" || sw.help {
			return true
		}
	}
	for _, child := range cmd.children {
		if declaresHelp(child) {
			return true
		}
	}
	return false
}

func shortVisible(cmd *Command, r rune) bool {
	for _, sw := range cmd.switches {
		if sw.Short == r {
			return true
		}
	}
	for _, child := range cmd.children {
		if shortVisible(child, r) {
			return true
		}
	}
	return false
}

// CommandBuilder configures one command node.
type CommandBuilder struct {
	cmd    *Command
	b      *Builder
	parent *CommandBuilder
}

// Alias adds alternate invocation names for the command.
func (c *CommandBuilder) Alias(aliases ...string) *CommandBuilder {
	c.cmd.aliases = append(c.cmd.aliases, aliases...)
	return c
}

// Hidden excludes the command from help output; it remains matchable.
func (c *CommandBuilder) Hidden() *CommandBuilder {
	c.cmd.hidden = true
	return c
}

// Switch declares a switch on this command. The long name is given
// without leading dashes. Switches default to Optional arity and are
// boolean until Value is called.
func (c *CommandBuilder) Switch(long, doc string) *SwitchBuilder {
	sw := &Switch{Long: long, Doc: doc, Arity: Optional, owner: c.cmd}
	c.cmd.switches = append(c.cmd.switches, sw)
	return &SwitchBuilder{sw: sw, cmd: c}
}

// Positional declares the next positional argument. Positionals default
// to Required arity.
func (c *CommandBuilder) Positional(name string, kind Kind, doc string) *PositionalBuilder {
	p := &Positional{Name: name, Arity: Required, Kind: kind, Doc: doc}
	c.cmd.positionals = append(c.cmd.positionals, p)
	return &PositionalBuilder{pos: p, cmd: c}
}

// Command declares a subcommand and switches the builder into it.
func (c *CommandBuilder) Command(name, doc string) *CommandBuilder {
	child := newCommand(name, doc)
	child.parent = c.cmd
	c.cmd.children = append(c.cmd.children, child)
	return &CommandBuilder{cmd: child, b: c.b, parent: c}
}

// DefaultCommand declares a subcommand selected automatically when no
// subcommand name is supplied. A command may designate at most one.
func (c *CommandBuilder) DefaultCommand(name, doc string) *CommandBuilder {
	if c.cmd.defaultCmd != nil {
		panic(fmt.Sprintf("gram: command %q already has a default subcommand", c.cmd.name))
	}
	child := c.Command(name, doc)
	c.cmd.defaultCmd = child.cmd
	return child
}

// Back returns to the enclosing command builder.
func (c *CommandBuilder) Back() *CommandBuilder {
	if c.parent == nil {
		return c
	}
	return c.parent
}

// Build compiles the grammar from wherever the chain currently is.
func (c *CommandBuilder) Build() *Grammar {
	return c.b.Build()
}

// SwitchBuilder configures one switch.
type SwitchBuilder struct {
	sw  *Switch
	cmd *CommandBuilder
}

// Short sets a single-letter alias for the switch.
func (s *SwitchBuilder) Short(r rune) *SwitchBuilder {
	s.sw.Short = r
	return s
}

// Required makes the switch mandatory.
func (s *SwitchBuilder) Required() *SwitchBuilder {
	s.sw.Arity = Required
	return s
}

// Repeated allows the switch to occur any number of times.
func (s *SwitchBuilder) Repeated() *SwitchBuilder {
	s.sw.Arity = Repeated
	return s
}

// Value attaches a value descriptor, making the switch value-carrying.
func (s *SwitchBuilder) Value(name string, kind Kind) *SwitchBuilder {
	s.sw.ValueName = name
	s.sw.Kind = kind
	return s
}

// Help marks the switch as a help request: matching it short-circuits the
// parse and yields the rendered help for the current command.
func (s *SwitchBuilder) Help() *SwitchBuilder {
	s.sw.help = true
	return s
}

// Back returns to the command the switch belongs to.
func (s *SwitchBuilder) Back() *CommandBuilder { return s.cmd }

// PositionalBuilder configures one positional argument.
type PositionalBuilder struct {
	pos *Positional
	cmd *CommandBuilder
}

// Optional makes the positional optional. Optional positionals must
// follow all required ones.
func (p *PositionalBuilder) Optional() *PositionalBuilder {
	p.pos.Arity = Optional
	return p
}

// Repeated makes the positional consume all remaining bare arguments. It
// must be the last positional of its command.
func (p *PositionalBuilder) Repeated() *PositionalBuilder {
	p.pos.Arity = Repeated
	return p
}

// Back returns to the command the positional belongs to.
func (p *PositionalBuilder) Back() *CommandBuilder { return p.cmd }
