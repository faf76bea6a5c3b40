package annotated

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// source gives 1-based access to the raw lines of a document stream.
type source struct {
	lines []string
}

func newSource(src []byte) *source {
	text := strings.ReplaceAll(string(src), "\r\n", "\n")
	return &source{lines: strings.Split(text, "\n")}
}

func (s *source) line(n int) string {
	if n < 1 || n > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}

func (s *source) count() int { return len(s.lines) }

// leadingRun collects the blank and comment lines directly above line,
// stopping at the first content line or at floor (exclusive). Blank lines
// are returned as "" and comment lines trimmed of their indentation.
func (s *source) leadingRun(line, floor int) []string {
	var run []string
	n := line - 1
	for ; n > floor; n-- {
		raw := s.line(n)
		if !isBlankLine(raw) && !isCommentLine(raw) {
			break
		}
	}
	for n++; n < line; n++ {
		raw := s.line(n)
		if isBlankLine(raw) {
			run = append(run, "")
			continue
		}
		run = append(run, strings.TrimSpace(raw))
	}
	return run
}

// trailingRun collects the comment lines after line up to the next content
// line. Blank lines are skipped. last is the line of the final comment, or
// line itself when there is none.
func (s *source) trailingRun(line int) (run []string, last int) {
	last = line
	for n := line + 1; n <= s.count(); n++ {
		raw := s.line(n)
		if isBlankLine(raw) {
			continue
		}
		if !isCommentLine(raw) {
			break
		}
		run = append(run, strings.TrimSpace(raw))
		last = n
	}
	return run, last
}

// headRun collects the comments above the "---" marker that opens the
// document whose first content is on line first. Blank lines between the
// comments are kept as ""; blank lines around them are dropped.
func (s *source) headRun(first, floor int) []string {
	start := first
	if !isDocumentStart(s.line(start)) {
		start = first - len(s.leadingRun(first, floor)) - 1
		if start <= floor || !isDocumentStart(s.line(start)) {
			return nil
		}
	}
	run := s.leadingRun(start, floor)
	for len(run) > 0 && run[0] == "" {
		run = run[1:]
	}
	for len(run) > 0 && run[len(run)-1] == "" {
		run = run[:len(run)-1]
	}
	return run
}

func isDocumentStart(line string) bool {
	return line == "---" || strings.HasPrefix(line, "--- ") || strings.HasPrefix(line, "---\t")
}

// dashLine reports whether line n holds nothing but a sequence dash,
// optionally followed by a comment, and returns that comment.
func (s *source) dashLine(n int) (bool, string) {
	t := strings.TrimSpace(s.line(n))
	if !strings.HasPrefix(t, "-") {
		return false, ""
	}
	rest := strings.TrimSpace(t[1:])
	switch {
	case rest == "":
		return true, ""
	case strings.HasPrefix(rest, "#"):
		return true, rest
	}
	return false, ""
}

// blockScalarEnd returns the last line of a literal or folded scalar whose
// header is on line start at column col. The body is every following line
// that is blank or indented deeper than parentIndent. Trailing blank lines
// belong to the gap after the scalar unless the header keeps them ("|+").
func (s *source) blockScalarEnd(start, col, parentIndent int) int {
	keep := keepsTrailing(s.line(start), col)
	end := start
	for n := start + 1; n <= s.count(); n++ {
		raw := s.line(n)
		if isBlankLine(raw) {
			if keep && n < s.count() {
				end = n
			}
			continue
		}
		if indentOf(raw) <= parentIndent {
			break
		}
		end = n
	}
	return end
}

// keepsTrailing reports whether the block scalar header starting at column
// col of line carries the keep chomping indicator.
func keepsTrailing(line string, col int) bool {
	if col < 1 || col > len(line) {
		return false
	}
	header := line[col-1:]
	if i := strings.IndexAny(header, " \t#"); i >= 0 {
		header = header[:i]
	}
	return strings.Contains(header, "+")
}

// endLine returns the last source line occupied by n, a node nested under
// a parent indented by parentIndent columns.
func (s *source) endLine(n *yaml.Node, parentIndent int) int {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return n.Line
		}
		return s.endLine(n.Content[0], -1)
	case yaml.MappingNode:
		if n.Style&yaml.FlowStyle != 0 || len(n.Content) == 0 {
			return s.flowEnd(n)
		}
		last := n.Content[len(n.Content)-1]
		key := n.Content[len(n.Content)-2]
		return max(key.Line, s.endLine(last, key.Column-1))
	case yaml.SequenceNode:
		if n.Style&yaml.FlowStyle != 0 || len(n.Content) == 0 {
			return s.flowEnd(n)
		}
		return s.endLine(n.Content[len(n.Content)-1], n.Column-1)
	case yaml.ScalarNode:
		if n.Style&(yaml.LiteralStyle|yaml.FoldedStyle) != 0 {
			return s.blockScalarEnd(n.Line, n.Column, parentIndent)
		}
		if strings.Contains(n.Value, "\n") || n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0 {
			return s.quotedEnd(n)
		}
		return n.Line
	}
	return n.Line
}

// flowEnd finds the line closing the flow collection opened at n.
func (s *source) flowEnd(n *yaml.Node) int {
	depth := 0
	var quote byte
	for l := n.Line; l <= s.count(); l++ {
		raw := s.line(l)
		from := 0
		if l == n.Line {
			from = max(n.Column-1, 0)
		}
		for i := from; i < len(raw); i++ {
			c := raw[i]
			switch {
			case quote != 0:
				if c == quote {
					quote = 0
				}
			case c == '"' || c == '\'':
				quote = c
			case c == '#' && (i == 0 || raw[i-1] == ' ' || raw[i-1] == '\t'):
				i = len(raw)
			case c == '[' || c == '{':
				depth++
			case c == ']' || c == '}':
				depth--
				if depth == 0 {
					return l
				}
			}
		}
		if depth == 0 {
			return l
		}
	}
	return n.Line
}

// quotedEnd finds the line on which a quoted or multi-line plain scalar
// starting at n ends.
func (s *source) quotedEnd(n *yaml.Node) int {
	if n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) == 0 {
		end := n.Line
		for l := n.Line + 1; l <= s.count(); l++ {
			raw := s.line(l)
			if isBlankLine(raw) {
				continue
			}
			if indentOf(raw) < n.Column || isCommentLine(raw) {
				break
			}
			end = l
		}
		return end
	}
	q := byte('"')
	if n.Style&yaml.SingleQuotedStyle != 0 {
		q = '\''
	}
	for l := n.Line; l <= s.count(); l++ {
		raw := s.line(l)
		from := 0
		if l == n.Line {
			from = n.Column
		}
		for i := from; i < len(raw); i++ {
			switch {
			case q == '"' && raw[i] == '\\':
				i++
			case raw[i] == q && q == '\'' && i+1 < len(raw) && raw[i+1] == '\'':
				i++
			case raw[i] == q:
				return l
			}
		}
	}
	return n.Line
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
