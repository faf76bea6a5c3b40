package annotated

import (
	"iter"
	"slices"

	"gopkg.in/yaml.v3"
)

// Seq is an ordered list of values. Sequences returned by Load carry
// per-index comment and layout metadata.
type Seq struct {
	items []any
	meta  map[int]*Metadata
	head  []string
	foot  []string
}

// NewSeq returns a sequence of items without metadata.
func NewSeq(items ...any) *Seq {
	return &Seq{items: slices.Clone(items)}
}

// Len returns the number of items.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the item at index i. It panics if i is out of range, like a
// slice index.
func (s *Seq) At(i int) any {
	return s.items[i]
}

// Items returns a copy of the items.
func (s *Seq) Items() []any {
	if s == nil {
		return nil
	}
	return slices.Clone(s.items)
}

// Set replaces the item at index i. Metadata recorded for i is kept.
func (s *Seq) Set(i int, v any) {
	s.items[i] = v
}

// Append adds items at the end. Appended items never have metadata.
func (s *Seq) Append(items ...any) {
	s.items = append(s.items, items...)
}

// All iterates over the items in order.
func (s *Seq) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		if s == nil {
			return
		}
		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}

// ItemComments returns the comments recorded for index i. Unknown indices
// yield empty metadata.
func (s *Seq) ItemComments(i int) CommentMetadata {
	return s.ItemMetadata(i).Comments
}

// ItemFormatting returns the layout metadata recorded for index i.
func (s *Seq) ItemFormatting(i int) FormattingMetadata {
	return s.ItemMetadata(i).Formatting
}

// ItemMetadata returns a copy of all metadata recorded for index i.
func (s *Seq) ItemMetadata(i int) Metadata {
	if s == nil || i < 0 || i >= len(s.items) {
		return Metadata{}
	}
	return cloneMetadata(s.meta[i])
}

// HasMetadata reports whether any item carries metadata.
func (s *Seq) HasMetadata() bool {
	return s != nil && (len(s.meta) > 0 || len(s.head) > 0 || len(s.foot) > 0)
}

// HeadComments returns the comment lines written above the document start
// marker of a loaded document, with blank lines between them as "".
func (s *Seq) HeadComments() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.head)
}

// FootComments returns the comment lines that followed the last item of a
// loaded document.
func (s *Seq) FootComments() []string {
	if s == nil {
		return nil
	}
	return slices.Clone(s.foot)
}

func (s *Seq) setMeta(i int, md *Metadata) {
	if md == nil {
		return
	}
	if s.meta == nil {
		s.meta = make(map[int]*Metadata)
	}
	s.meta[i] = md
}

// MarshalYAML lets the YAML engine encode a Seq.
func (s *Seq) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, item := range s.items {
		var in yaml.Node
		if err := in.Encode(item); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &in)
	}
	return n, nil
}
