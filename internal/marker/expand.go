package marker

import (
	"strconv"
	"strings"
)

// tokenID parses tok as a token of kind and returns its id.
func tokenID(tok, kind string) (int, bool) {
	digits, ok := strings.CutPrefix(tok, Sentinel+kind)
	if !ok {
		return 0, false
	}
	digits, ok = strings.CutSuffix(digits, suffix)
	if !ok || len(digits) != idWidth {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// eolToken splits a line ending in a comment token into the text before
// the token and the token's id.
func eolToken(line string) (string, int, bool) {
	if !strings.HasSuffix(line, suffix) {
		return "", 0, false
	}
	i := strings.LastIndex(line, Sentinel+eolKind)
	if i < 0 {
		return "", 0, false
	}
	n, ok := tokenID(line[i:], eolKind)
	if !ok {
		return "", 0, false
	}
	return line[:i], n, true
}

// Expand replaces every token in text with the content it stands for.
// Whole-line tokens must fill their line and become the recorded lines or
// blank lines; comment tokens must end their line and become two spaces and
// the comment. Tokens whose id is not in t are removed. Text without the
// sentinel is returned as is.
func Expand(text string, t *Table) string {
	if !strings.Contains(text, Sentinel) {
		return text
	}
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if !strings.HasPrefix(line, Sentinel) && !strings.Contains(line, Sentinel+eolKind) {
			out = append(out, line)
			continue
		}
		if id, ok := tokenID(line, linesKind); ok {
			if block, found := t.Lookup(id); found {
				out = append(out, strings.Split(block, "\n")...)
			}
			continue
		}
		if n, ok := tokenID(line, emptyKind); ok {
			for range n {
				out = append(out, "")
			}
			continue
		}
		if head, id, ok := eolToken(line); ok {
			head = strings.TrimRight(head, " ")
			if c, found := t.Lookup(id); found {
				head += "  " + c
			}
			out = append(out, head)
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}
