package health

import (
	"context"
	"sort"
	"sync"
)

// Table maps component names to a synthetic health flag.
//
// Contract:
//   - Concurrency: safe for concurrent use; writes are last-write-wins.
//   - Lookup: names that were never set are healthy.
//   - Ownership: Snapshot and Names return copies.
type Table struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewTable creates a table with every default component set healthy.
func NewTable(defaults ...string) *Table {
	t := &Table{flags: make(map[string]bool, len(defaults))}
	for _, name := range defaults {
		t.flags[name] = true
	}
	return t
}

// Healthy reports the flag for name.
func (t *Table) Healthy(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	healthy, ok := t.flags[name]
	if !ok {
		return true
	}
	return healthy
}

// Status reports the flag for name as a Status.
func (t *Table) Status(name string) Status {
	return StatusOf(t.Healthy(name))
}

// Set records the flag for name, creating the entry if needed.
func (t *Table) Set(name string, healthy bool) {
	t.mu.Lock()
	t.flags[name] = healthy
	t.mu.Unlock()
}

// Known reports whether name has an entry.
func (t *Table) Known(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.flags[name]
	return ok
}

// Snapshot returns a copy of every entry.
func (t *Table) Snapshot() map[string]bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]bool, len(t.flags))
	for name, healthy := range t.flags {
		out[name] = healthy
	}
	return out
}

// Names returns the known component names in sorted order.
func (t *Table) Names() []string {
	t.mu.RLock()
	names := make([]string, 0, len(t.flags))
	for name := range t.flags {
		names = append(names, name)
	}
	t.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Checkers returns one checker per known entry.
func (t *Table) Checkers() []Checker {
	names := t.Names()
	checkers := make([]Checker, 0, len(names))
	for _, name := range names {
		checkers = append(checkers, &flagChecker{table: t, name: name})
	}
	return checkers
}

// Checker returns a checker that reads the flag for name on every check.
func (t *Table) Checker(name string) Checker {
	return &flagChecker{table: t, name: name}
}

var _ Source = (*Table)(nil)

type flagChecker struct {
	table *Table
	name  string
}

func (c *flagChecker) Name() string {
	return c.name
}

func (c *flagChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	if c.table.Healthy(c.name) {
		return Healthy("flag set healthy")
	}
	return Unhealthy("flag set unhealthy", ErrCheckFailed)
}
