// Package marker implements the placeholder side channel between structural
// emission and the final text. The emitter writes tokens in place of
// comment and blank-line runs and records their content in a Table; Expand
// later replaces the tokens with the recorded lines.
package marker

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Sentinel prefixes every token. Text without it is never rewritten.
const Sentinel = "__HUML_"

const (
	linesKind = "LINES_"
	emptyKind = "EMPTY_"
	eolKind   = "EOL_"
	suffix    = "__"

	idWidth  = 6
	// MaxEmpty is the largest run an empty-line token can stand for.
	MaxEmpty = 999999
	maxID    = 999999
)

// Table holds the content referenced by the tokens of a single emission. A
// Table must not be shared between emissions.
type Table struct {
	entries []string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of recorded entries.
func (t *Table) Len() int { return len(t.entries) }

func (t *Table) add(s string) (uint32, error) {
	if len(t.entries) > maxID {
		return 0, fmt.Errorf("marker: table full at %d entries", len(t.entries))
	}
	id, err := safecast.Conv[uint32](len(t.entries))
	if err != nil {
		return 0, fmt.Errorf("marker: table full: %w", err)
	}
	t.entries = append(t.entries, s)
	return id, nil
}

// Lookup returns the content recorded under id.
func (t *Table) Lookup(id int) (string, bool) {
	if t == nil || id < 0 || id >= len(t.entries) {
		return "", false
	}
	return t.entries[id], true
}

// Lines records block, a run of already indented lines, and returns the
// token that stands for it on a line of its own.
func (t *Table) Lines(block []string) (string, error) {
	id, err := t.add(strings.Join(block, "\n"))
	if err != nil {
		return "", err
	}
	return LinesToken(id), nil
}

// Comment records an end-of-line comment and returns the token to append to
// the line carrying it.
func (t *Table) Comment(comment string) (string, error) {
	id, err := t.add(comment)
	if err != nil {
		return "", err
	}
	return CommentToken(id), nil
}

// LinesToken formats the whole-line token for id.
func LinesToken(id uint32) string {
	return fmt.Sprintf("%s%s%06d%s", Sentinel, linesKind, id, suffix)
}

// CommentToken formats the line-suffix token for id.
func CommentToken(id uint32) string {
	return fmt.Sprintf("%s%s%06d%s", Sentinel, eolKind, id, suffix)
}

// Empty returns the token that expands to n blank lines, n clamped to
// [0, MaxEmpty]. It needs no table entry.
func Empty(n int) string {
	return fmt.Sprintf("%s%s%06d%s", Sentinel, emptyKind, min(max(n, 0), MaxEmpty), suffix)
}
