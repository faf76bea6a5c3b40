package emitter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const wrapKey = "k"

// rendered is a value written by the engine. lines[0] is the text that
// follows "key: " or "- "; further lines are relative to the owning line's
// indentation.
type rendered struct {
	lines []string
	// open is set when the value ends in a literal block that keeps its
	// trailing newlines; nothing blank may follow it.
	open bool
}

// engine renders node as the value of a one-entry mapping and strips the
// wrapper, so the engine decides quoting, block headers and indentation
// indicators while the caller decides placement.
func (e *Emitter) engine(node *yaml.Node) (rendered, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(e.cfg.Indent)
	wrap := &yaml.Node{
		Kind: yaml.MappingNode,
		Tag:  "!!map",
		Content: []*yaml.Node{
			{Kind: yaml.ScalarNode, Tag: "!!str", Value: wrapKey},
			node,
		},
	}
	if err := enc.Encode(wrap); err != nil {
		return rendered{}, fmt.Errorf("huml: render %s: %w", node.Tag, err)
	}
	if err := enc.Close(); err != nil {
		return rendered{}, err
	}
	text := strings.TrimSuffix(buf.String(), "\n")
	var r rendered
	if rest, ok := strings.CutSuffix(text, "\n..."); ok {
		text, r.open = rest, true
	}
	r.lines = strings.Split(text, "\n")
	first, ok := strings.CutPrefix(r.lines[0], wrapKey+":")
	if !ok {
		return rendered{}, fmt.Errorf("huml: unexpected engine output %q", r.lines[0])
	}
	r.lines[0] = strings.TrimPrefix(first, " ")
	return r, nil
}

// keyProbe is the value placed after a key so the engine lays the key out
// as it would in a mapping.
const keyProbe = "x"

// key renders a mapping key carrying tag. Keys the engine cannot write as
// implicit keys, such as very long ones, come back as the lines of an
// explicit "? key" entry and an empty key text; the caller then writes the
// value after a bare ":".
func (e *Emitter) key(k, tag string) (string, []string, error) {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: k}
	if strings.ContainsAny(k, "\n\r") {
		n.Style = yaml.DoubleQuotedStyle
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(e.cfg.Indent)
	wrap := &yaml.Node{
		Kind:    yaml.MappingNode,
		Tag:     "!!map",
		Content: []*yaml.Node{n, {Kind: yaml.ScalarNode, Tag: "!!str", Value: keyProbe}},
	}
	if err := enc.Encode(wrap); err != nil {
		return "", nil, fmt.Errorf("huml: render key %q: %w", k, err)
	}
	if err := enc.Close(); err != nil {
		return "", nil, err
	}
	text := strings.TrimSuffix(buf.String(), "\n")
	if strings.HasPrefix(text, "? ") {
		lines := strings.Split(text, "\n")
		return "", lines[:len(lines)-1], nil
	}
	key, ok := strings.CutSuffix(text, ": "+keyProbe)
	if !ok || strings.Contains(key, "\n") {
		return "", nil, fmt.Errorf("huml: unexpected engine output %q", text)
	}
	return key, nil, nil
}

// scalar renders a scalar node, applying the style's scalar decision to
// strings.
func (e *Emitter) scalar(n *yaml.Node) (rendered, error) {
	if n.Tag != "!!str" {
		return e.engine(n)
	}
	c := *n
	c.Style = e.cfg.Style.ScalarStyle(n.Value)
	if c.Style&yaml.LiteralStyle == 0 {
		return e.engine(&c)
	}
	var r rendered
	if strings.HasPrefix(c.Value, "\n") {
		r = e.literal(c.Value)
	} else {
		var err error
		if r, err = e.engine(&c); err != nil {
			return rendered{}, err
		}
	}
	if !readsBack(r, c.Value) {
		c.Style = yaml.DoubleQuotedStyle
		return e.engine(&c)
	}
	return r, nil
}

// literal writes s as a literal block with an explicit indentation
// indicator. The engine loses leading line breaks of such blocks.
func (e *Emitter) literal(s string) rendered {
	body := strings.TrimRight(s, "\n")
	trailing := len(s) - len(body)

	var r rendered
	chomp := "-"
	var lines []string
	switch {
	case body == "":
		// Only line breaks: every one of them is an empty line.
		chomp, r.open = "+", true
		lines = make([]string, trailing)
	case trailing == 0:
		lines = strings.Split(body, "\n")
	case trailing == 1:
		chomp = ""
		lines = strings.Split(body, "\n")
	default:
		chomp, r.open = "+", true
		lines = append(strings.Split(body, "\n"), make([]string, trailing-1)...)
	}

	pad := strings.Repeat(" ", e.cfg.Indent)
	r.lines = make([]string, 0, len(lines)+1)
	r.lines = append(r.lines, "|"+strconv.Itoa(e.cfg.Indent)+chomp)
	for _, l := range lines {
		if l == "" {
			r.lines = append(r.lines, "")
			continue
		}
		r.lines = append(r.lines, pad+l)
	}
	return r
}

// readsBack reports whether the engine's rendering of a string decodes to
// want again.
func readsBack(r rendered, want string) bool {
	text := wrapKey + ": " + strings.Join(r.lines, "\n") + "\n"
	var got map[string]string
	if err := yaml.Unmarshal([]byte(text), &got); err != nil {
		return false
	}
	return got[wrapKey] == want
}
