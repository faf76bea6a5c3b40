package emitter

import (
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-huml/annotated"
)

// Shape is the layout class of a normalized value.
type Shape int

const (
	ShapeScalar Shape = iota
	ShapeEmptyContainer
	ShapeSequence
	ShapeMapping
)

func (s Shape) String() string {
	switch s {
	case ShapeScalar:
		return "scalar"
	case ShapeEmptyContainer:
		return "empty"
	case ShapeSequence:
		return "sequence"
	case ShapeMapping:
		return "mapping"
	}
	return "unknown"
}

// classify returns the shape of a value returned by normalize.Value.
func classify(v any) Shape {
	switch t := v.(type) {
	case *annotated.Map:
		if t.Len() == 0 {
			return ShapeEmptyContainer
		}
		return ShapeMapping
	case *annotated.Seq:
		if t.Len() == 0 {
			return ShapeEmptyContainer
		}
		return ShapeSequence
	case *yaml.Node:
		return ShapeScalar
	}
	return ShapeScalar
}

// emptyLiteral is the compact form of an empty container.
func emptyLiteral(v any) string {
	if _, ok := v.(*annotated.Seq); ok {
		return "[]"
	}
	return "{}"
}
