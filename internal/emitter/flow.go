package emitter

import (
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-huml/annotated"
	"github.com/KimNorgaard/go-huml/internal/normalize"
)

// flow renders a container in flow style, e.g. {a: 1, b: [x, y]}.
func (e *Emitter) flow(v any) (rendered, error) {
	n, err := e.node(v)
	if err != nil {
		return rendered{}, err
	}
	n.Style |= yaml.FlowStyle
	return e.engine(n)
}

// node converts a normalized value into an engine node tree, keeping the
// style's key order.
func (e *Emitter) node(v any) (*yaml.Node, error) {
	switch t := v.(type) {
	case *yaml.Node:
		if t.Tag == normalize.StrTag {
			c := *t
			c.Style = e.cfg.Style.ScalarStyle(t.Value)
			return &c, nil
		}
		return t, nil
	case *annotated.Map:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range e.keyOrder(t) {
			raw, _ := t.Get(k)
			child, err := e.child(raw)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: t.KeyTag(k), Value: k},
				child,
			)
		}
		return n, nil
	case *annotated.Seq:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, raw := range t.All() {
			child, err := e.child(raw)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, child)
		}
		return n, nil
	}
	return normalize.Null(), nil
}

func (e *Emitter) child(raw any) (*yaml.Node, error) {
	v, err := normalize.Value(raw)
	if err != nil {
		return nil, err
	}
	return e.node(v)
}
