package huml

import (
	"fmt"
	"io"
	"os"

	"github.com/KimNorgaard/go-huml/annotated"
	"github.com/KimNorgaard/go-huml/internal/emitter"
	"github.com/KimNorgaard/go-huml/internal/marker"
	"github.com/KimNorgaard/go-huml/internal/multidoc"
)

type (
	// Map is an ordered mapping with per-key formatting metadata.
	Map = annotated.Map
	// Seq is a sequence with per-item formatting metadata.
	Seq = annotated.Seq
	// CommentMetadata holds the comments recorded for one entry.
	CommentMetadata = annotated.CommentMetadata
	// FormattingMetadata holds the layout recorded for one entry.
	FormattingMetadata = annotated.FormattingMetadata
	// Style makes key order, sequence layout and scalar style decisions.
	Style = emitter.Style
	// Shape classifies a value for Style.SequenceStyle.
	Shape = emitter.Shape
	// SequenceStyle is a sequence layout.
	SequenceStyle = emitter.SequenceStyle
	// HumanFriendly is the default Style.
	HumanFriendly = emitter.HumanFriendly
	// KindOrder ranks documents by a discriminator field.
	KindOrder = multidoc.KindOrder
)

const (
	ShapeScalar         = emitter.ShapeScalar
	ShapeEmptyContainer = emitter.ShapeEmptyContainer
	ShapeSequence       = emitter.ShapeSequence
	ShapeMapping        = emitter.ShapeMapping

	SequenceInline = emitter.SequenceInline
	SequenceBlock  = emitter.SequenceBlock
	SequenceFlow   = emitter.SequenceFlow
)

// NewHumanFriendly returns the default style with its own priority list. A
// nil list selects DefaultPriorityKeys.
func NewHumanFriendly(priority []string) *HumanFriendly {
	return emitter.NewHumanFriendly(priority)
}

// DefaultPriorityKeys returns the keys the default style moves to the front
// of every mapping.
func DefaultPriorityKeys() []string {
	return emitter.DefaultPriorityKeys()
}

// NewKindOrder returns an order on field ranking kinds by position.
func NewKindOrder(field string, kinds ...string) KindOrder {
	return multidoc.NewKindOrder(field, kinds...)
}

// DefaultKindOrder ranks Kubernetes manifests by kind in install order.
func DefaultKindOrder() KindOrder {
	return multidoc.DefaultKindOrder()
}

// NewMap returns an empty Map without metadata.
func NewMap() *Map { return annotated.NewMap() }

// NewSeq returns a Seq of items without metadata.
func NewSeq(items ...any) *Seq { return annotated.NewSeq(items...) }

// Equal reports whether two values are structurally equal, ignoring key
// order and metadata.
func Equal(a, b any) bool { return annotated.Equal(a, b) }

// LoadWithFormatting parses the first document in src. Mappings are
// returned as *Map and sequences as *Seq, both carrying the comments and
// blank lines found above each entry. An empty stream yields nil.
func LoadWithFormatting(src []byte) (any, error) {
	docs, err := annotated.Load(src)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

// LoadAllWithFormatting parses every document in src.
func LoadAllWithFormatting(src []byte) ([]any, error) {
	return annotated.Load(src)
}

// LoadFile reads the file at path and parses its first document.
func LoadFile(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	src, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("huml: read %s: %w", path, err)
	}
	return LoadWithFormatting(src)
}

// Dumps returns the YAML text of v. Values loaded with LoadWithFormatting
// get their comments and blank lines back when PreserveComments,
// PreserveEmptyLines or PreserveFormatting is given; for other values
// those options have no effect.
func Dumps(v any, opts ...Option) (string, error) {
	o, err := newOptions(opts)
	if err != nil {
		return "", err
	}
	return dumps([]any{v}, o)
}

// DumpsAll returns the YAML stream of docs, separated by "---" lines.
// Zero documents yield "".
func DumpsAll(docs []any, opts ...Option) (string, error) {
	o, err := newOptions(opts)
	if err != nil {
		return "", err
	}
	if o.kindOrder != nil {
		docs = o.kindOrder.Sort(docs)
	}
	return dumps(docs, o)
}

// DumpsKubernetesManifests is DumpsAll with the documents sorted by
// DefaultKindOrder.
func DumpsKubernetesManifests(docs []any, opts ...Option) (string, error) {
	return DumpsAll(docs, append(opts, SortByKind(DefaultKindOrder()))...)
}

// Dump writes the YAML text of v to w.
func Dump(w io.Writer, v any, opts ...Option) error {
	out, err := Dumps(v, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// DumpAll writes the YAML stream of docs to w.
func DumpAll(w io.Writer, docs []any, opts ...Option) error {
	out, err := DumpsAll(docs, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// dumps renders every document against one marker table and expands the
// markers once, after the last document.
func dumps(docs []any, o *options) (string, error) {
	table := marker.NewTable()
	e := emitter.New(o.emitterConfig(), table)
	texts := make([]string, 0, len(docs))
	for _, d := range docs {
		text, err := e.Document(d)
		if err != nil {
			return "", err
		}
		texts = append(texts, text)
	}
	return marker.Expand(multidoc.Join(texts, o.explicitEnd), table), nil
}
