// Package emitter lays out normalized values as block YAML. Structure is
// decided here with the help of a Style; scalars are written by the YAML
// engine. Comments and blank lines recorded by the loader are not written
// directly but as marker tokens that the caller expands afterwards.
package emitter

import (
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-huml/annotated"
	"github.com/KimNorgaard/go-huml/internal/marker"
	"github.com/KimNorgaard/go-huml/internal/normalize"
)

// Config controls an Emitter.
type Config struct {
	Indent             int
	Style              Style
	PreserveComments   bool
	PreserveEmptyLines bool
}

// Emitter writes documents as marked text. Its marker table collects the
// content of every token it writes and must be expanded once, after the
// last document.
type Emitter struct {
	cfg   Config
	table *marker.Table
	pad   []string
	lines []string
	open  bool
}

const defaultIndent = 2

// New returns an emitter recording marker content in table.
func New(cfg Config, table *marker.Table) *Emitter {
	if cfg.Indent <= 0 {
		cfg.Indent = defaultIndent
	}
	if cfg.Style == nil {
		cfg.Style = NewHumanFriendly(nil)
	}
	return &Emitter{cfg: cfg, table: table}
}

// Document renders v as one document. The result ends with a newline. A
// document whose last line belongs to a literal block that keeps its
// trailing newlines is terminated with "...".
func (e *Emitter) Document(v any) (string, error) {
	e.lines, e.open = e.lines[:0], false
	n, err := normalize.Value(v)
	if err != nil {
		return "", err
	}
	if err := e.head(n); err != nil {
		return "", err
	}
	switch t := n.(type) {
	case *annotated.Map:
		if t.Len() == 0 {
			e.write("{}")
			break
		}
		if err := e.mapping(t, 0); err != nil {
			return "", err
		}
	case *annotated.Seq:
		if t.Len() == 0 {
			e.write("[]")
			break
		}
		if err := e.sequence(t, 0); err != nil {
			return "", err
		}
	case *yaml.Node:
		r, err := e.scalar(t)
		if err != nil {
			return "", err
		}
		e.writeRendered(0, r.lines[0], "", r)
	}
	if err := e.foot(n); err != nil {
		return "", err
	}
	if e.open {
		e.write("...")
	}
	return strings.Join(e.lines, "\n") + "\n", nil
}

func (e *Emitter) indent(depth int) string {
	for len(e.pad) <= depth {
		e.pad = append(e.pad, strings.Repeat(" ", len(e.pad)*e.cfg.Indent))
	}
	return e.pad[depth]
}

func (e *Emitter) write(line string) {
	e.lines = append(e.lines, line)
	e.open = false
}

// writeRendered writes head followed by an engine rendering and its
// continuation lines. eol is appended to the first line.
func (e *Emitter) writeRendered(depth int, head, eol string, r rendered) {
	e.write(head + eol)
	pad := e.indent(depth)
	for _, l := range r.lines[1:] {
		if l == "" {
			e.write("")
			continue
		}
		e.write(pad + l)
	}
	e.open = r.open
}

func (e *Emitter) mapping(m *annotated.Map, depth int) error {
	pad := e.indent(depth)
	for _, k := range e.keyOrder(m) {
		raw, _ := m.Get(k)
		md := m.KeyMetadata(k)
		if err := e.leading(md, depth); err != nil {
			return err
		}
		eol, err := e.eol(md)
		if err != nil {
			return err
		}
		key, explicit, err := e.key(k, m.KeyTag(k))
		if err != nil {
			return err
		}
		v, err := normalize.Value(raw)
		if err != nil {
			return err
		}
		for _, l := range explicit {
			e.write(pad + l)
		}
		head := pad + key + ":"
		switch classify(v) {
		case ShapeScalar:
			r, err := e.scalar(v.(*yaml.Node))
			if err != nil {
				return err
			}
			e.writeRendered(depth, head+" "+r.lines[0], eol, r)
		case ShapeEmptyContainer:
			e.write(head + " " + emptyLiteral(v) + eol)
		case ShapeMapping:
			e.write(head + eol)
			if err := e.mapping(v.(*annotated.Map), depth+1); err != nil {
				return err
			}
		case ShapeSequence:
			s := v.(*annotated.Seq)
			items, shapes, err := e.items(s)
			if err != nil {
				return err
			}
			style := e.cfg.Style.SequenceStyle(shapes)
			if style == SequenceFlow {
				r, err := e.flow(s)
				if err != nil {
					return err
				}
				e.writeRendered(depth, head+" "+r.lines[0], eol, r)
				continue
			}
			e.write(head + eol)
			if err := e.seqItems(s, items, shapes, style, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// keyOrder asks the style for the key order, dropping anything that is not
// a key of m and appending keys the style left out.
func (e *Emitter) keyOrder(m *annotated.Map) []string {
	keys := m.Keys()
	order := e.cfg.Style.KeyOrder(keys)
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range order {
		if m.Has(k) && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, k := range keys {
		if !seen[k] {
			out = append(out, k)
		}
	}
	return out
}

// items normalizes and classifies every item of s once.
func (e *Emitter) items(s *annotated.Seq) ([]any, []Shape, error) {
	items := make([]any, s.Len())
	shapes := make([]Shape, s.Len())
	for i, raw := range s.All() {
		v, err := normalize.Value(raw)
		if err != nil {
			return nil, nil, err
		}
		items[i], shapes[i] = v, classify(v)
	}
	return items, shapes, nil
}

func (e *Emitter) sequence(s *annotated.Seq, depth int) error {
	items, shapes, err := e.items(s)
	if err != nil {
		return err
	}
	style := e.cfg.Style.SequenceStyle(shapes)
	if style == SequenceFlow {
		r, err := e.flow(s)
		if err != nil {
			return err
		}
		e.writeRendered(depth, e.indent(depth)+r.lines[0], "", r)
		return nil
	}
	return e.seqItems(s, items, shapes, style, depth)
}

func (e *Emitter) seqItems(s *annotated.Seq, items []any, shapes []Shape, style SequenceStyle, depth int) error {
	pad := e.indent(depth)
	for i, v := range items {
		md := s.ItemMetadata(i)
		if err := e.leading(md, depth); err != nil {
			return err
		}
		eol, err := e.eol(md)
		if err != nil {
			return err
		}
		switch shapes[i] {
		case ShapeScalar:
			r, err := e.scalar(v.(*yaml.Node))
			if err != nil {
				return err
			}
			e.writeRendered(depth, pad+"- "+r.lines[0], eol, r)
		case ShapeEmptyContainer:
			e.write(pad + "- " + emptyLiteral(v) + eol)
		default:
			if style == SequenceInline {
				r, err := e.flow(v)
				if err != nil {
					return err
				}
				e.writeRendered(depth, pad+"- "+r.lines[0], eol, r)
				continue
			}
			e.write(pad + "-" + eol)
			if m, ok := v.(*annotated.Map); ok {
				err = e.mapping(m, depth+1)
			} else {
				err = e.sequence(v.(*annotated.Seq), depth+1)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// leading writes the comment and blank-line run recorded above an entry.
func (e *Emitter) leading(md annotated.Metadata, depth int) error {
	comments := e.cfg.PreserveComments && len(md.Comments.CommentsBefore) > 0
	// Blank lines after a block that keeps its trailing newlines would
	// become part of its value.
	blanks := e.cfg.PreserveEmptyLines && md.Formatting.EmptyLinesBefore > 0 && !e.open
	switch {
	case comments && blanks && len(md.Leading) > 0:
		return e.block(md.Leading, depth)
	case comments:
		return e.block(md.Comments.CommentsBefore, depth)
	case blanks:
		e.write(marker.Empty(md.Formatting.EmptyLinesBefore))
	}
	return nil
}

// block records lines, indented to depth, and writes their token.
func (e *Emitter) block(lines []string, depth int) error {
	pad := e.indent(depth)
	out := make([]string, len(lines))
	for i, l := range lines {
		if l != "" {
			out[i] = pad + l
		}
	}
	tok, err := e.table.Lines(out)
	if err != nil {
		return err
	}
	e.write(tok)
	return nil
}

func (e *Emitter) eol(md annotated.Metadata) (string, error) {
	if !e.cfg.PreserveComments || md.Comments.EOLComment == "" {
		return "", nil
	}
	return e.table.Comment(md.Comments.EOLComment)
}

// head writes the comments that preceded the start marker of a loaded
// document.
func (e *Emitter) head(root any) error {
	if !e.cfg.PreserveComments {
		return nil
	}
	var head []string
	switch t := root.(type) {
	case *annotated.Map:
		head = t.HeadComments()
	case *annotated.Seq:
		head = t.HeadComments()
	}
	if !e.cfg.PreserveEmptyLines {
		head = slices.DeleteFunc(head, func(l string) bool { return l == "" })
	}
	if len(head) == 0 {
		return nil
	}
	return e.block(head, 0)
}

// foot writes the comments that followed the last entry of a loaded
// document.
func (e *Emitter) foot(root any) error {
	if !e.cfg.PreserveComments {
		return nil
	}
	var foot []string
	switch t := root.(type) {
	case *annotated.Map:
		foot = t.FootComments()
	case *annotated.Seq:
		foot = t.FootComments()
	}
	if len(foot) == 0 {
		return nil
	}
	if e.open {
		e.write("...")
	}
	return e.block(foot, 0)
}
