package huml

import (
	"fmt"

	"github.com/KimNorgaard/go-huml/internal/emitter"
)

// Option configures a dump.
type Option func(*options) error

type options struct {
	indent             int
	preserveComments   bool
	preserveEmptyLines bool
	priority           []string
	style              Style
	explicitEnd        bool
	kindOrder          *KindOrder
}

const (
	defaultIndent = 2
	minIndent     = 2
	maxIndent     = 9
)

func newOptions(opts []Option) (*options, error) {
	o := &options{indent: defaultIndent}
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

func (o *options) emitterConfig() emitter.Config {
	style := o.style
	if style == nil {
		style = emitter.NewHumanFriendly(o.priority)
	}
	return emitter.Config{
		Indent:             o.indent,
		Style:              style,
		PreserveComments:   o.preserveComments,
		PreserveEmptyLines: o.preserveEmptyLines,
	}
}

// Indent sets the number of spaces per nesting level.
//
// The number of spaces n must be between 2 and 9.
func Indent(n int) Option {
	return func(o *options) error {
		if n < minIndent || n > maxIndent {
			return fmt.Errorf("huml: indent must be between %d and %d, got %d", minIndent, maxIndent, n)
		}
		o.indent = n
		return nil
	}
}

// PreserveComments writes the comments recorded by LoadWithFormatting: the
// lines above each entry, end-of-line comments and the comments at the end
// of a document. It has no effect on values without recorded comments.
func PreserveComments() Option {
	return func(o *options) error {
		o.preserveComments = true
		return nil
	}
}

// PreserveEmptyLines writes the blank lines recorded above each entry by
// LoadWithFormatting.
func PreserveEmptyLines() Option {
	return func(o *options) error {
		o.preserveEmptyLines = true
		return nil
	}
}

// PreserveFormatting is PreserveComments and PreserveEmptyLines together.
// Comment and blank lines are then written in their original interleaving.
func PreserveFormatting() Option {
	return func(o *options) error {
		o.preserveComments = true
		o.preserveEmptyLines = true
		return nil
	}
}

// PriorityKeys replaces the list of keys the default style moves to the
// front of every mapping. It is ignored when WithStyle is used.
func PriorityKeys(keys ...string) Option {
	return func(o *options) error {
		o.priority = append([]string{}, keys...)
		return nil
	}
}

// WithStyle replaces the default HumanFriendly style.
func WithStyle(s Style) Option {
	return func(o *options) error {
		if s == nil {
			return fmt.Errorf("huml: style must not be nil")
		}
		o.style = s
		return nil
	}
}

// ExplicitEnd terminates every document with "...".
func ExplicitEnd() Option {
	return func(o *options) error {
		o.explicitEnd = true
		return nil
	}
}

// SortByKind reorders the documents given to DumpsAll by the value of the
// order's discriminator field before they are written.
func SortByKind(order KindOrder) Option {
	return func(o *options) error {
		if order.Field() == "" {
			return fmt.Errorf("huml: kind order needs a field")
		}
		o.kindOrder = &order
		return nil
	}
}
