package huml

import (
	"io"

	"github.com/KimNorgaard/go-huml/internal/multidoc"
)

// Encoder writes YAML documents to an output stream.
type Encoder struct {
	w     io.Writer
	opts  []Option
	count int
}

// NewEncoder returns a new encoder that writes to w. Every call to Encode
// writes one document; documents after the first are preceded by a
// separator.
func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: opts}
}

// Encode writes the YAML text of v to the stream. Nothing is written when v
// cannot be encoded.
func (e *Encoder) Encode(v any) error {
	o, err := newOptions(e.opts)
	if err != nil {
		return err
	}
	out, err := dumps([]any{v}, o)
	if err != nil {
		return err
	}
	if e.count > 0 {
		out = multidoc.Next(out)
	}
	if _, err := io.WriteString(e.w, out); err != nil {
		return err
	}
	e.count++
	return nil
}
