// Package intern canonicalizes switch and command names so repeated
// parses of the same grammar share one string per name instead of
// re-slicing the argument on every lookup.
package intern

import "sync"

// Table is a thread-safe string interner.
type Table struct {
	mu      sync.RWMutex
	strings map[string]string
}

// NewTable creates an interner with the given initial capacity.
func NewTable(capacity int) *Table {
	if capacity <= 0 {
		capacity = 64
	}
	return &Table{strings: make(map[string]string, capacity)}
}

// Intern returns the canonical copy of s, storing it on first sight.
func (t *Table) Intern(s string) string {
	t.mu.RLock()
	if canon, ok := t.strings[s]; ok {
		t.mu.RUnlock()
		return canon
	}
	t.mu.RUnlock()

	t.mu.Lock()
	defer t.mu.Unlock()
	if canon, ok := t.strings[s]; ok {
		return canon
	}
	t.strings[s] = s
	return s
}

// PreIntern seeds the table.
func (t *Table) PreIntern(values []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range values {
		t.strings[s] = s
	}
}

// Len returns the number of interned strings.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.strings)
}

// commonNames covers switch names that nearly every grammar declares.
var commonNames = []string{
	"help", "version", "verbose", "quiet", "config", "output",
	"jobs", "force", "dry-run", "color", "debug",
}

var global = func() *Table {
	t := NewTable(128)
	t.PreIntern(commonNames)
	return t
}()

// Intern canonicalizes s through the process-wide table.
func Intern(s string) string {
	return global.Intern(s)
}
