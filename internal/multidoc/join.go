package multidoc

import "strings"

const (
	separator = "---"
	endMarker = "..."
)

// Join concatenates rendered documents, each ending in a newline, with a
// blank line and a "---" line between neighbours. With explicitEnd every
// document is terminated by "...". Zero documents yield "".
func Join(docs []string, explicitEnd bool) string {
	var b strings.Builder
	for i, d := range docs {
		if explicitEnd {
			d = End(d)
		}
		if i > 0 {
			d = Next(d)
		}
		b.WriteString(d)
	}
	return b.String()
}

// Next prefixes doc with the separator that follows a preceding document.
func Next(doc string) string {
	return "\n" + separator + "\n" + doc
}

// End terminates doc with "..." unless it already is.
func End(doc string) string {
	if strings.HasSuffix(doc, endMarker+"\n") {
		return doc
	}
	return doc + endMarker + "\n"
}
