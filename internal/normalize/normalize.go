// Package normalize converts arbitrary Go values into the three shapes the
// emitter understands: *annotated.Map, *annotated.Seq and scalar
// *yaml.Node values. Conversion is shallow; container children are
// normalized when the emitter reaches them.
package normalize

import (
	"errors"
	"maps"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-huml/annotated"
	herrors "github.com/KimNorgaard/go-huml/errors"
)

// Tags of the scalar nodes produced by Value.
const (
	StrTag   = "!!str"
	IntTag   = "!!int"
	FloatTag = "!!float"
	BoolTag  = "!!bool"
	NullTag  = "!!null"
)

var errUnsupported = errors.New("unsupported kind")

// Value returns v as a *annotated.Map, a *annotated.Seq or a scalar
// *yaml.Node. Go maps are returned with their keys sorted. Values with no
// direct rule go through the YAML engine's own representation.
func Value(v any) (any, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case *annotated.Map:
		if t == nil {
			return Null(), nil
		}
		return t, nil
	case *annotated.Seq:
		if t == nil {
			return Null(), nil
		}
		return t, nil
	case *yaml.Node:
		if t == nil {
			return Null(), nil
		}
		return fromNode(t)
	case yaml.Node:
		return fromNode(&t)
	case map[string]any:
		return sortedMap(reflect.ValueOf(t)), nil
	case []any:
		return annotated.NewSeq(t...), nil
	case string:
		return String(t), nil
	case bool:
		return scalar(BoolTag, strconv.FormatBool(t)), nil
	case int:
		return scalar(IntTag, strconv.Itoa(t)), nil
	case int64:
		return scalar(IntTag, strconv.FormatInt(t, 10)), nil
	case float64:
		return Float(t, 64), nil
	}
	if _, ok := v.(yaml.Marshaler); ok {
		return encoded(v)
	}

	rv := reflect.ValueOf(v)
	// Follow pointers and interfaces to find the concrete value.
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return Null(), nil
		}
		rv = rv.Elem()
		if rv.CanInterface() {
			if _, ok := rv.Interface().(yaml.Marshaler); ok {
				return encoded(rv.Interface())
			}
		}
	}

	switch rv.Kind() {
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return scalar(BoolTag, strconv.FormatBool(rv.Bool())), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return scalar(IntTag, strconv.FormatInt(rv.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return scalar(IntTag, strconv.FormatUint(rv.Uint(), 10)), nil
	case reflect.Float32:
		return Float(rv.Float(), 32), nil
	case reflect.Float64:
		return Float(rv.Float(), 64), nil
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return sortedMap(rv), nil
		}
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			break
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return annotated.NewSeq(items...), nil
	case reflect.Chan, reflect.Func, reflect.Complex64, reflect.Complex128, reflect.UnsafePointer:
		return nil, &herrors.EmitError{Type: rv.Type(), Err: errUnsupported}
	}
	return encoded(rv.Interface())
}

// String returns a string scalar node.
func String(s string) *yaml.Node {
	return scalar(StrTag, s)
}

// Null returns a null scalar node.
func Null() *yaml.Node {
	return scalar(NullTag, "null")
}

// Float returns a float scalar node whose text always reads back as a float.
func Float(f float64, bits int) *yaml.Node {
	var s string
	switch {
	case math.IsInf(f, 1):
		s = ".inf"
	case math.IsInf(f, -1):
		s = "-.inf"
	case math.IsNaN(f):
		s = ".nan"
	default:
		s = strconv.FormatFloat(f, 'g', -1, bits)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
	}
	return scalar(FloatTag, s)
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func sortedMap(rv reflect.Value) *annotated.Map {
	m := annotated.NewMap()
	if rv.Len() == 0 {
		return m
	}
	byKey := make(map[string]reflect.Value, rv.Len())
	for _, k := range rv.MapKeys() {
		byKey[k.String()] = k
	}
	for _, k := range slices.Sorted(maps.Keys(byKey)) {
		m.Set(k, rv.MapIndex(byKey[k]).Interface())
	}
	return m
}

// encoded falls back to the engine's representation of v.
func encoded(v any) (any, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, &herrors.EmitError{Type: reflect.TypeOf(v), Err: err}
	}
	return fromNode(&n)
}

func fromNode(n *yaml.Node) (any, error) {
	for n.Kind == yaml.DocumentNode || n.Kind == yaml.AliasNode {
		switch {
		case n.Kind == yaml.AliasNode && n.Alias != nil:
			n = n.Alias
		case n.Kind == yaml.DocumentNode && len(n.Content) > 0:
			n = n.Content[0]
		default:
			return Null(), nil
		}
	}
	if n.Kind == yaml.ScalarNode {
		c := *n
		c.Tag = n.ShortTag()
		c.Style &^= yaml.TaggedStyle
		c.HeadComment, c.LineComment, c.FootComment = "", "", ""
		c.Anchor = ""
		return &c, nil
	}
	v, err := annotated.FromNode(n)
	if err != nil {
		return nil, err
	}
	return Value(v)
}
