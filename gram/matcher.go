package gram

import (
	"github.com/dzonerzy/go-gram/internal/intern"
)

// Parse matches an argument list (conventionally os.Args[1:]) against the
// grammar. It returns the root Outcome of the resolved command chain, or
// a *ParseError describing the first failure. Parsing is a pure function
// of (Grammar, args): the grammar is never mutated and no state survives
// the call, so a Grammar may be shared by concurrent parses.
func (g *Grammar) Parse(args []string) (*Outcome, error) {
	m := &matcher{
		tz:       NewTokenizer(args),
		cur:      g.root,
		outcomes: map[*Command]*Outcome{},
	}
	m.root = newOutcome(g.root)
	m.outcomes[g.root] = m.root
	m.leaf = m.root
	return m.run()
}

// matcher is the per-parse state machine. State: the current command
// node, the outcome chain built so far, and the cursor position into the
// node's positional slots. Switch occurrences land on the outcome of the
// declaring command, which is what makes inherited switches independent
// of token order.
type matcher struct {
	tz       *Tokenizer
	cur      *Command
	root     *Outcome
	leaf     *Outcome
	outcomes map[*Command]*Outcome
	posIndex int
}

func (m *matcher) run() (*Outcome, error) {
	for {
		tok, ok := m.tz.Next()
		if !ok {
			break
		}
		var err error
		switch tok.Kind {
		case TokenSeparator:
			// Tokenizer forces everything after it to Bare.
		case TokenLong:
			err = m.handleSwitch(m.cur.lookupSwitch(intern.Intern(tok.Name)), tok)
		case TokenShort:
			var sw *Switch
			if tok.Short != 0 {
				sw = m.cur.lookupShort(tok.Short)
			}
			err = m.handleSwitch(sw, tok)
		case TokenBare:
			err = m.handleBare(tok)
		}
		if err != nil {
			return nil, err
		}
	}
	if err := m.finalize(); err != nil {
		return nil, err
	}
	return m.root, nil
}

func (m *matcher) handleSwitch(sw *Switch, tok Token) error {
	if sw == nil {
		return newUnknownSwitchError(tok.Raw, m.cur.VisibleSwitches())
	}
	if sw.help {
		return newHelpError(renderHelp(m.cur))
	}

	out := m.outcomes[sw.owner]
	if sw.Arity != Repeated && len(out.Switches[sw.Long]) > 0 {
		return newDuplicateSwitchError(sw)
	}

	if !sw.TakesValue() {
		if tok.HasValue {
			return newExcessValueError(sw, tok.Raw)
		}
		out.Switches[sw.Long] = append(out.Switches[sw.Long], Value{Typed: true})
		return nil
	}

	raw := tok.Value
	if !tok.HasValue {
		next, ok := m.tz.Peek()
		if !ok || next.Kind != TokenBare {
			return newMissingValueError(sw)
		}
		m.tz.Next()
		raw = next.Raw
	}
	typed, err := sw.parse(raw)
	if err != nil {
		return newSwitchConversionError(sw, raw, err)
	}
	out.Switches[sw.Long] = append(out.Switches[sw.Long], Value{Raw: raw, Typed: typed})
	return nil
}

// handleBare routes a bare token: an unfilled positional slot takes
// priority; once positionals are exhausted the token is tried as a
// subcommand name, then against the default child, and only then fails.
func (m *matcher) handleBare(tok Token) error {
	if m.posIndex < len(m.cur.positionals) {
		p := m.cur.positionals[m.posIndex]
		if p.Arity != Repeated {
			m.posIndex++
		}
		typed, err := p.parse(tok.Raw)
		if err != nil {
			return newPositionalConversionError(p, tok.Raw, err)
		}
		m.leaf.Positionals[p.Name] = append(m.leaf.Positionals[p.Name], Value{Raw: tok.Raw, Typed: typed})
		return nil
	}

	if len(m.cur.children) > 0 {
		if child := m.cur.lookupChild(tok.Raw); child != nil {
			return m.descend(child)
		}
		if m.cur.defaultCmd != nil {
			if err := m.descend(m.cur.defaultCmd); err != nil {
				return err
			}
			return m.handleBare(tok)
		}
		return newUnexpectedArgumentError(tok.Raw, m.cur.children)
	}
	return newUnexpectedArgumentError(tok.Raw, nil)
}

// descend narrows the match to a child command. The parent's positional
// slots can no longer be filled, so their Required arity is checked here;
// required switches stay open until finalize because inherited switches
// remain settable after the descent.
func (m *matcher) descend(child *Command) error {
	if err := m.checkPositionals(m.cur, m.leaf); err != nil {
		return err
	}
	out := newOutcome(child)
	m.leaf.Sub = out
	m.leaf = out
	m.outcomes[child] = out
	m.cur = child
	m.posIndex = 0
	return nil
}

func (m *matcher) checkPositionals(cmd *Command, out *Outcome) error {
	for _, p := range cmd.positionals {
		if p.Arity == Required && len(out.Positionals[p.Name]) == 0 {
			return newMissingRequiredPositionalError(p)
		}
	}
	return nil
}

// finalize runs once the token stream is exhausted: select default
// subcommands all the way down, then verify Required arity for every
// switch and positional along the resolved path.
func (m *matcher) finalize() error {
	for len(m.cur.children) > 0 {
		if m.cur.defaultCmd == nil {
			return newMissingSubcommandError(m.cur)
		}
		if err := m.descend(m.cur.defaultCmd); err != nil {
			return err
		}
	}

	for n := m.cur; n != nil; n = n.parent {
		out := m.outcomes[n]
		for _, sw := range n.switches {
			if sw.Arity == Required && len(out.Switches[sw.Long]) == 0 {
				return newMissingRequiredSwitchError(sw)
			}
		}
	}
	return m.checkPositionals(m.cur, m.leaf)
}
