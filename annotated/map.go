package annotated

import (
	"iter"
	"slices"

	"gopkg.in/yaml.v3"
)

const strTag = "!!str"

// Map is an insertion-ordered string-keyed mapping. Maps returned by Load
// additionally carry per-key comment and layout metadata; maps built with
// NewMap carry none. Reads, iteration and equality ignore metadata.
type Map struct {
	keys   []string
	values map[string]any
	tags   map[string]string
	meta   map[string]*Metadata
	head   []string
	foot   []string
}

// NewMap returns an empty map without metadata.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores v under key. A new key is appended at the end; an existing key
// keeps its position and metadata. Set never creates metadata.
func (m *Map) Set(key string, v any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Delete removes key together with its metadata.
func (m *Map) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	delete(m.meta, key)
	delete(m.tags, key)
	m.keys = slices.DeleteFunc(m.keys, func(k string) bool { return k == key })
}

// All iterates over the entries in insertion order.
func (m *Map) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// KeyTag returns the YAML tag the key resolved to when loaded, "!!str" for
// keys that were not loaded or were loaded as strings.
func (m *Map) KeyTag(key string) string {
	if m == nil {
		return strTag
	}
	if tag, ok := m.tags[key]; ok {
		return tag
	}
	return strTag
}

// KeyComments returns the comments recorded for key. Unknown keys yield
// empty metadata.
func (m *Map) KeyComments(key string) CommentMetadata {
	return m.KeyMetadata(key).Comments
}

// KeyFormatting returns the layout metadata recorded for key.
func (m *Map) KeyFormatting(key string) FormattingMetadata {
	return m.KeyMetadata(key).Formatting
}

// KeyMetadata returns a copy of all metadata recorded for key.
func (m *Map) KeyMetadata(key string) Metadata {
	if m == nil {
		return Metadata{}
	}
	return cloneMetadata(m.meta[key])
}

// HasMetadata reports whether any entry carries metadata.
func (m *Map) HasMetadata() bool {
	return m != nil && (len(m.meta) > 0 || len(m.head) > 0 || len(m.foot) > 0)
}

// HeadComments returns the comment lines written above the document start
// marker of a loaded document, with blank lines between them as "".
func (m *Map) HeadComments() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.head)
}

// FootComments returns the comment lines that followed the last entry of a
// loaded document. Only the root container of a document has them.
func (m *Map) FootComments() []string {
	if m == nil {
		return nil
	}
	return slices.Clone(m.foot)
}

func (m *Map) setMeta(key string, md *Metadata) {
	if md == nil {
		return
	}
	if m.meta == nil {
		m.meta = make(map[string]*Metadata)
	}
	m.meta[key] = md
}

func (m *Map) setTag(key, tag string) {
	if tag == "" || tag == strTag {
		return
	}
	if m.tags == nil {
		m.tags = make(map[string]string)
	}
	m.tags[key] = tag
}

// MarshalYAML lets the YAML engine encode a Map in insertion order.
func (m *Map) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		var vn yaml.Node
		if err := vn.Encode(m.values[k]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: m.KeyTag(k), Value: k},
			&vn,
		)
	}
	return n, nil
}
