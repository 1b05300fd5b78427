package gram

import "time"

// Value is one collected occurrence of a switch or positional.
type Value struct {
	Raw   string // the raw argument text, verbatim
	Typed any    // coerced value; true for boolean switch occurrences
}

// Outcome is the structured result of one parse. It mirrors the
/// subcommand chain actually invoked: each node holds the occurrences of
// the switches declared at that command plus its own positional values,
// and Sub points at the selected subcommand's outcome, nil at the leaf.
//
// The typed accessors resolve names across the whole resolved path, so
// callers normally only touch the root outcome. An Outcome is built
// during a single parse pass and never mutated afterwards.
type Outcome struct {
	Command     string
	Switches    map[string][]Value
	Positionals map[string][]Value
	Sub         *Outcome
}

func newOutcome(cmd *Command) *Outcome {
	return &Outcome{
		Command:     cmd.name,
		Switches:    make(map[string][]Value),
		Positionals: make(map[string][]Value),
	}
}

// Selected returns the command names of the resolved path, root first.
func (o *Outcome) Selected() []string {
	var path []string
	for n := o; n != nil; n = n.Sub {
		path = append(path, n.Command)
	}
	return path
}

// Leaf returns the innermost outcome of the resolved path.
func (o *Outcome) Leaf() *Outcome {
	n := o
	for n.Sub != nil {
		n = n.Sub
	}
	return n
}

// Occurrences returns the collected values of a switch by long name,
// searching the whole resolved path. Switch names are unique along the
// path by grammar invariant, so the first hit is the only one.
func (o *Outcome) Occurrences(long string) []Value {
	for n := o; n != nil; n = n.Sub {
		if vs, ok := n.Switches[long]; ok {
			return vs
		}
	}
	return nil
}

// Count returns how many times the switch occurred.
func (o *Outcome) Count(long string) int { return len(o.Occurrences(long)) }

// Has reports whether the switch occurred at least once.
func (o *Outcome) Has(long string) bool { return o.Count(long) > 0 }

// Args returns the collected values of a positional by name, searching
// the whole resolved path.
func (o *Outcome) Args(name string) []Value {
	for n := o; n != nil; n = n.Sub {
		if vs, ok := n.Positionals[name]; ok {
			return vs
		}
	}
	return nil
}

func firstSwitch(o *Outcome, long string) (Value, bool) {
	vs := o.Occurrences(long)
	if len(vs) == 0 {
		return Value{}, false
	}
	return vs[0], true
}

func firstArg(o *Outcome, name string) (Value, bool) {
	vs := o.Args(name)
	if len(vs) == 0 {
		return Value{}, false
	}
	return vs[0], true
}

// Switch value accessors. Each returns the zero value and false when the
// switch did not occur or carries a different kind.

func (o *Outcome) GetString(long string) (string, bool) {
	v, ok := firstSwitch(o, long)
	if !ok {
		return "", false
	}
	s, ok := v.Typed.(string)
	return s, ok
}

func (o *Outcome) GetInt(long string) (int64, bool) {
	v, ok := firstSwitch(o, long)
	if !ok {
		return 0, false
	}
	n, ok := v.Typed.(int64)
	return n, ok
}

func (o *Outcome) GetUint(long string) (uint64, bool) {
	v, ok := firstSwitch(o, long)
	if !ok {
		return 0, false
	}
	n, ok := v.Typed.(uint64)
	return n, ok
}

func (o *Outcome) GetFloat(long string) (float64, bool) {
	v, ok := firstSwitch(o, long)
	if !ok {
		return 0, false
	}
	f, ok := v.Typed.(float64)
	return f, ok
}

func (o *Outcome) GetDuration(long string) (time.Duration, bool) {
	v, ok := firstSwitch(o, long)
	if !ok {
		return 0, false
	}
	d, ok := v.Typed.(time.Duration)
	return d, ok
}

// GetPath returns a path-kind switch value verbatim.
func (o *Outcome) GetPath(long string) (string, bool) {
	return o.GetString(long)
}

func (o *Outcome) GetBytes(long string) ([]byte, bool) {
	v, ok := firstSwitch(o, long)
	if !ok {
		return nil, false
	}
	b, ok := v.Typed.([]byte)
	return b, ok
}

// Strings returns all occurrences of a repeated string-or-path switch.
func (o *Outcome) Strings(long string) []string {
	vs := o.Occurrences(long)
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if s, ok := v.Typed.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Ints returns all occurrences of a repeated integer switch.
func (o *Outcome) Ints(long string) []int64 {
	vs := o.Occurrences(long)
	out := make([]int64, 0, len(vs))
	for _, v := range vs {
		if n, ok := v.Typed.(int64); ok {
			out = append(out, n)
		}
	}
	return out
}

// Positional accessors, mirroring the switch ones.

func (o *Outcome) ArgString(name string) (string, bool) {
	v, ok := firstArg(o, name)
	if !ok {
		return "", false
	}
	s, ok := v.Typed.(string)
	return s, ok
}

func (o *Outcome) ArgInt(name string) (int64, bool) {
	v, ok := firstArg(o, name)
	if !ok {
		return 0, false
	}
	n, ok := v.Typed.(int64)
	return n, ok
}

func (o *Outcome) ArgUint(name string) (uint64, bool) {
	v, ok := firstArg(o, name)
	if !ok {
		return 0, false
	}
	n, ok := v.Typed.(uint64)
	return n, ok
}

func (o *Outcome) ArgFloat(name string) (float64, bool) {
	v, ok := firstArg(o, name)
	if !ok {
		return 0, false
	}
	f, ok := v.Typed.(float64)
	return f, ok
}

func (o *Outcome) ArgDuration(name string) (time.Duration, bool) {
	v, ok := firstArg(o, name)
	if !ok {
		return 0, false
	}
	d, ok := v.Typed.(time.Duration)
	return d, ok
}

func (o *Outcome) ArgPath(name string) (string, bool) {
	return o.ArgString(name)
}

func (o *Outcome) ArgBytes(name string) ([]byte, bool) {
	v, ok := firstArg(o, name)
	if !ok {
		return nil, false
	}
	b, ok := v.Typed.([]byte)
	return b, ok
}

// ArgStrings returns all values of a repeated string-or-path positional.
func (o *Outcome) ArgStrings(name string) []string {
	vs := o.Args(name)
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if s, ok := v.Typed.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ArgBytesAll returns all values of a repeated bytes positional.
func (o *Outcome) ArgBytesAll(name string) [][]byte {
	vs := o.Args(name)
	out := make([][]byte, 0, len(vs))
	for _, v := range vs {
		if b, ok := v.Typed.([]byte); ok {
			out = append(out, b)
		}
	}
	return out
}
