package annotated

import (
	"fmt"
	"strings"
)

// CommentMetadata holds the comments attached to one mapping key or one
// sequence index.
type CommentMetadata struct {
	// CommentsBefore are the comment lines preceding the entry, in source
	// order and without their original indentation.
	CommentsBefore []string
	// EOLComment is the comment trailing the entry on its own line, or ""
	// when there is none.
	EOLComment string
}

// HasComments reports whether any comment is recorded.
func (c CommentMetadata) HasComments() bool {
	return len(c.CommentsBefore) > 0 || c.EOLComment != ""
}

func (c CommentMetadata) String() string {
	return fmt.Sprintf("CommentMetadata(before=%q, eol=%q)", c.CommentsBefore, c.EOLComment)
}

// FormattingMetadata holds layout information for one mapping key or one
// sequence index.
type FormattingMetadata struct {
	EmptyLinesBefore int
}

// Metadata is everything recorded for a single entry.
type Metadata struct {
	Comments   CommentMetadata
	Formatting FormattingMetadata
	// Leading is the raw run of blank ("") and comment lines above the
	// entry, in source order.
	Leading []string
}

// IsZero reports whether m carries no information.
func (m Metadata) IsZero() bool {
	return !m.Comments.HasComments() && m.Formatting.EmptyLinesBefore == 0 && len(m.Leading) == 0
}

// newMetadata builds the metadata for an entry from the blank/comment run
// found above it. Comments attach to the entry; blank lines are counted
// wherever they occur in the run.
func newMetadata(leading []string, eol string) *Metadata {
	md := &Metadata{Leading: leading}
	md.Comments.EOLComment = eol
	for _, line := range leading {
		if line == "" {
			md.Formatting.EmptyLinesBefore++
			continue
		}
		md.Comments.CommentsBefore = append(md.Comments.CommentsBefore, line)
	}
	if md.IsZero() {
		return nil
	}
	return md
}

func cloneMetadata(md *Metadata) Metadata {
	if md == nil {
		return Metadata{}
	}
	out := *md
	out.Leading = append([]string(nil), md.Leading...)
	out.Comments.CommentsBefore = append([]string(nil), md.Comments.CommentsBefore...)
	return out
}

func isCommentLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
