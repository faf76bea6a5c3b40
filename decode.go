package huml

import (
	"fmt"
	"io"

	"github.com/KimNorgaard/go-huml/annotated"
)

// Decoder reads annotated documents from an input stream.
type Decoder struct {
	r    io.Reader
	docs []any
	read bool
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder reads the whole of r on the first call to Decode. It is the
// caller's responsibility to call Close on r if required.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode returns the next document of the stream as LoadWithFormatting
// would. It returns io.EOF after the last document.
//
// If the input contains syntax errors, Decode returns a *SyntaxError.
func (d *Decoder) Decode() (any, error) {
	if !d.read {
		if d.r == nil {
			return nil, fmt.Errorf("huml: Decode(nil reader)")
		}
		data, err := io.ReadAll(d.r)
		if err != nil {
			return nil, err
		}
		d.read = true
		if d.docs, err = annotated.Load(data); err != nil {
			return nil, err
		}
	}
	if len(d.docs) == 0 {
		return nil, io.EOF
	}
	doc := d.docs[0]
	d.docs = d.docs[1:]
	return doc, nil
}
