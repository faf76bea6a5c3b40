package annotated

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	herrors "github.com/KimNorgaard/go-huml/errors"
)

// Load parses every document in src into annotated values. Mappings become
// *Map, sequences *Seq and scalars plain Go values (string, int, float64,
// bool or nil). Malformed input yields a *errors.SyntaxError.
func Load(src []byte) ([]any, error) {
	s := newSource(src)
	dec := yaml.NewDecoder(bytes.NewReader(src))
	var docs []any
	floor := 0
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, herrors.FromEngine(err)
		}
		l := &loader{src: s, visiting: make(map[*yaml.Node]bool)}
		v, last, err := l.document(&doc, floor)
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
		floor = last
	}
}

// FromNode converts a node tree produced by the YAML engine into annotated
// values without metadata.
func FromNode(n *yaml.Node) (any, error) {
	l := &loader{src: newSource(nil), visiting: make(map[*yaml.Node]bool)}
	if n.Kind == yaml.DocumentNode {
		if len(n.Content) == 0 {
			return nil, nil
		}
		n = n.Content[0]
	}
	return l.value(n, -1, 0, true)
}

type loader struct {
	src      *source
	visiting map[*yaml.Node]bool
}

// document converts one document whose text starts after line floor. It
// returns the last line the document claims, foot comments included.
func (l *loader) document(doc *yaml.Node, floor int) (any, int, error) {
	if len(doc.Content) == 0 {
		return nil, floor, nil
	}
	root := doc.Content[0]
	v, err := l.value(root, -1, floor, false)
	if err != nil {
		return nil, floor, err
	}
	head := l.src.headRun(root.Line, floor)
	foot, last := l.src.trailingRun(l.src.endLine(root, -1))
	switch c := v.(type) {
	case *Map:
		c.head, c.foot = head, foot
	case *Seq:
		c.head, c.foot = head, foot
	}
	return v, last, nil
}

// value converts n. floor is the last line that belongs to whatever precedes
// n's first entry; bare disables metadata collection below flow collections
// and aliases.
func (l *loader) value(n *yaml.Node, parentIndent, floor int, bare bool) (any, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, nodeError(n, err.Error())
		}
		return v, nil
	case yaml.AliasNode:
		if n.Alias == nil || l.visiting[n.Alias] {
			return nil, nodeError(n, fmt.Sprintf("anchor %q value contains itself", n.Value))
		}
		l.visiting[n.Alias] = true
		defer delete(l.visiting, n.Alias)
		return l.value(n.Alias, parentIndent, n.Alias.Line, true)
	case yaml.MappingNode:
		return l.mapping(n, floor, bare || n.Style&yaml.FlowStyle != 0)
	case yaml.SequenceNode:
		return l.sequence(n, floor, bare || n.Style&yaml.FlowStyle != 0)
	case yaml.DocumentNode:
		v, _, err := l.document(n, floor)
		return v, err
	}
	return nil, nodeError(n, fmt.Sprintf("unexpected node kind %d", n.Kind))
}

func (l *loader) mapping(n *yaml.Node, floor int, bare bool) (*Map, error) {
	m := NewMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		key, tag, err := mapKey(k)
		if err != nil {
			return nil, err
		}
		if m.Has(key) {
			if prev := m.KeyTag(key); prev != tag {
				return nil, nodeError(k, fmt.Sprintf("mapping key %q (%s) collides with key %q (%s) once keys are strings", key, tag, key, prev))
			}
			return nil, nodeError(k, fmt.Sprintf("mapping key %q already defined", key))
		}
		if !bare {
			eol := k.LineComment
			if eol == "" && v.Line == k.Line {
				eol = v.LineComment
			}
			m.setMeta(key, newMetadata(l.src.leadingRun(k.Line, floor), commentText(eol)))
		}
		val, err := l.value(v, k.Column-1, k.Line, bare)
		if err != nil {
			return nil, err
		}
		m.Set(key, val)
		m.setTag(key, tag)
		if !bare {
			floor = max(k.Line, l.src.endLine(v, k.Column-1))
		}
	}
	return m, nil
}

func (l *loader) sequence(n *yaml.Node, floor int, bare bool) (*Seq, error) {
	s := &Seq{}
	for i, item := range n.Content {
		anchor := item.Line
		eol := ""
		if item.Kind == yaml.MappingNode || item.Kind == yaml.SequenceNode {
			if dash, c := l.src.dashLine(item.Line - 1); dash && item.Line-1 > floor {
				anchor, eol = item.Line-1, c
			}
		} else {
			eol = item.LineComment
		}
		if !bare {
			s.setMeta(i, newMetadata(l.src.leadingRun(anchor, floor), commentText(eol)))
		}
		val, err := l.value(item, n.Column-1, anchor, bare)
		if err != nil {
			return nil, err
		}
		s.items = append(s.items, val)
		if !bare {
			floor = max(anchor, l.src.endLine(item, n.Column-1))
		}
	}
	return s, nil
}

func mapKey(k *yaml.Node) (key, tag string, err error) {
	if k.Kind == yaml.AliasNode && k.Alias != nil {
		k = k.Alias
	}
	if k.Kind != yaml.ScalarNode {
		return "", "", nodeError(k, "complex mapping keys are not supported")
	}
	return k.Value, k.ShortTag(), nil
}

// commentText normalises a comment attributed by the engine to a single
// "# ..." line.
func commentText(c string) string {
	c = strings.TrimSpace(c)
	if i := strings.IndexByte(c, '\n'); i >= 0 {
		c = strings.TrimSpace(c[:i])
	}
	return c
}

func nodeError(n *yaml.Node, msg string) error {
	return &herrors.SyntaxError{
		Line:   n.Line,
		Column: n.Column,
		Err:    fmt.Errorf("yaml: line %d: %s", n.Line, msg),
	}
}
