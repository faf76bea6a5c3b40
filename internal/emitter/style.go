package emitter

import (
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// SequenceStyle is the layout chosen for one sequence.
type SequenceStyle int

const (
	// SequenceInline puts every item on its dash line. Container items are
	// written in flow form.
	SequenceInline SequenceStyle = iota
	// SequenceBlock gives container items a dash line of their own with the
	// container indented beneath it. Scalar and empty items stay on their
	// dash line.
	SequenceBlock
	// SequenceFlow writes the whole sequence in flow form, e.g. [a, b].
	SequenceFlow
)

func (s SequenceStyle) String() string {
	switch s {
	case SequenceInline:
		return "inline"
	case SequenceBlock:
		return "block"
	case SequenceFlow:
		return "flow"
	}
	return "unknown"
}

// Style makes the layout decisions the YAML grammar leaves open.
type Style interface {
	// KeyOrder returns the order in which the given mapping keys are
	// written. It must return a permutation of keys.
	KeyOrder(keys []string) []string
	// SequenceStyle picks the layout of a sequence from the shapes of its
	// items.
	SequenceStyle(items []Shape) SequenceStyle
	// ScalarStyle picks the engine style for a string scalar. Zero lets the
	// engine decide.
	ScalarStyle(s string) yaml.Style
}

// defaultPriorityKeys are hoisted to the front of every mapping by
// HumanFriendly, in this order.
var defaultPriorityKeys = []string{
	"apiVersion", "kind", "metadata", "name", "image", "imagePullPolicy",
	"env", "envFrom", "command", "args",
}

// DefaultPriorityKeys returns a copy of the default priority list.
func DefaultPriorityKeys() []string {
	return slices.Clone(defaultPriorityKeys)
}

// HumanFriendly is the default Style. Keys in its priority list come first
// in list order and all other keys keep their relative order. Sequences are
// inline unless an item is a non-empty container. Multi-line strings are
// literal blocks.
type HumanFriendly struct {
	priority []string
	rank     map[string]int
}

// NewHumanFriendly returns a HumanFriendly style using priority, or the
// default priority list when priority is nil.
func NewHumanFriendly(priority []string) *HumanFriendly {
	if priority == nil {
		priority = defaultPriorityKeys
	}
	h := &HumanFriendly{
		priority: slices.Clone(priority),
		rank:     make(map[string]int, len(priority)),
	}
	for i, k := range h.priority {
		if _, dup := h.rank[k]; !dup {
			h.rank[k] = i
		}
	}
	return h
}

// PriorityKeys returns a copy of the priority list.
func (h *HumanFriendly) PriorityKeys() []string {
	return slices.Clone(h.priority)
}

// KeyOrder implements Style with a stable partition.
func (h *HumanFriendly) KeyOrder(keys []string) []string {
	var first, rest []string
	for _, k := range keys {
		if _, ok := h.rank[k]; ok {
			first = append(first, k)
		} else {
			rest = append(rest, k)
		}
	}
	slices.SortStableFunc(first, func(a, b string) int {
		return h.rank[a] - h.rank[b]
	})
	return append(first, rest...)
}

// SequenceStyle implements Style.
func (h *HumanFriendly) SequenceStyle(items []Shape) SequenceStyle {
	for _, s := range items {
		if s == ShapeMapping || s == ShapeSequence {
			return SequenceBlock
		}
	}
	return SequenceInline
}

// ScalarStyle implements Style. YAML 1.1 booleans such as "yes" and "off"
// are double quoted so older parsers read them back as strings.
func (h *HumanFriendly) ScalarStyle(s string) yaml.Style {
	switch {
	case strings.Contains(s, "\n"):
		return yaml.LiteralStyle
	case isOldBool(s):
		return yaml.DoubleQuotedStyle
	}
	return 0
}

func isOldBool(s string) bool {
	switch s {
	case "y", "Y", "yes", "Yes", "YES", "on", "On", "ON",
		"n", "N", "no", "No", "NO", "off", "Off", "OFF":
		return true
	}
	return false
}
