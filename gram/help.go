package gram

import "strings"

// Help rendering is a pure function of the grammar: the same node always
// produces the same text, and the matcher derives its usage hints from
// the exact same descriptors.
//
// Layout:
//
//	Usage:  app <positional> [--switch] [-f <val>] [-h]
//	Arguments:
//	  <positional>         doc text
//
//	Options:
//	  -f, --flag <val>     doc text
//	  -h, --help           Prints help
//
//	Commands:
//	  subcommand           doc text

const helpGap = 5

type helpRow struct {
	left string
	doc  string
}

func renderHelp(cmd *Command) string {
	var b strings.Builder

	if cmd.doc != "" {
		b.WriteString(cmd.doc)
		b.WriteByte('\n')
	}
	b.WriteString("Usage:  ")
	b.WriteString(usageLine(cmd))
	b.WriteByte('\n')

	args := argumentRows(cmd)
	opts := optionRows(cmd)
	cmds := commandRows(cmd)
	width := 0
	for _, rows := range [][]helpRow{args, opts, cmds} {
		for _, r := range rows {
			if len(r.left) > width {
				width = len(r.left)
			}
		}
	}

	first := true
	for _, sec := range []struct {
		title string
		rows  []helpRow
	}{
		{"Arguments:", args},
		{"Options:", opts},
		{"Commands:", cmds},
	} {
		if len(sec.rows) == 0 {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString(sec.title)
		b.WriteByte('\n')
		for _, r := range sec.rows {
			writeRow(&b, r, width)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeRow(b *strings.Builder, r helpRow, width int) {
	b.WriteString("  ")
	b.WriteString(r.left)
	if r.doc != "" {
		lines := strings.Split(r.doc, "\n")
		b.WriteString(strings.Repeat(" ", width-len(r.left)+helpGap))
		b.WriteString(lines[0])
		for _, line := range lines[1:] {
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", 2+width+helpGap))
			b.WriteString(line)
		}
	}
	b.WriteByte('\n')
}

func usageLine(cmd *Command) string {
	parts := cmd.Path()
	for _, p := range cmd.positionals {
		parts = append(parts, positionalToken(p))
	}
	for _, sw := range cmd.VisibleSwitches() {
		parts = append(parts, switchToken(sw))
	}
	if len(cmd.children) > 0 {
		if cmd.defaultCmd != nil {
			parts = append(parts, "[COMMAND]")
		} else {
			parts = append(parts, "<COMMAND>")
		}
	}
	return strings.Join(parts, " ")
}

// positionalToken renders a positional in usage notation: <name> when
// required, [name] when optional, [name]... when repeated.
func positionalToken(p *Positional) string {
	switch p.Arity {
	case Required:
		return "<" + p.Name + ">"
	case Repeated:
		return "[" + p.Name + "]..."
	default:
		return "[" + p.Name + "]"
	}
}

// switchToken renders a switch in usage notation, preferring the short
// form when one exists: -f <val>, [--switch], [-v]...
func switchToken(sw *Switch) string {
	name := sw.display()
	if sw.Short != 0 {
		name = "-" + string(sw.Short)
	}
	if sw.TakesValue() {
		name += " <" + sw.ValueName + ">"
	}
	switch sw.Arity {
	case Required:
		return name
	case Repeated:
		return "[" + name + "]..."
	default:
		return "[" + name + "]"
	}
}

func argumentRows(cmd *Command) []helpRow {
	rows := make([]helpRow, 0, len(cmd.positionals))
	for _, p := range cmd.positionals {
		rows = append(rows, helpRow{left: positionalToken(p), doc: p.Doc})
	}
	return rows
}

func optionRows(cmd *Command) []helpRow {
	visible := cmd.VisibleSwitches()
	rows := make([]helpRow, 0, len(visible))
	for _, sw := range visible {
		left := "    "
		if sw.Short != 0 {
			left = "-" + string(sw.Short) + ", "
		}
		left += sw.display()
		if sw.TakesValue() {
			left += " <" + sw.ValueName + ">"
		}
		rows = append(rows, helpRow{left: left, doc: sw.Doc})
	}
	return rows
}

func commandRows(cmd *Command) []helpRow {
	rows := make([]helpRow, 0, len(cmd.children))
	for _, child := range cmd.children {
		if child.hidden {
			continue
		}
		doc := child.doc
		if child == cmd.defaultCmd {
			if doc != "" {
				doc += " (default)"
			} else {
				doc = "(default)"
			}
		}
		rows = append(rows, helpRow{left: child.name, doc: doc})
	}
	return rows
}
