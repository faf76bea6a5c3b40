package annotated

import (
	"math"
	"reflect"
)

// Equal reports whether a and b are structurally equal: same keys with equal
// values for mappings (regardless of key order), same items in the same
// order for sequences, and equal scalars. Metadata is ignored, and *Map/*Seq
// compare equal to their plain map[string]any/[]any counterparts.
func Equal(a, b any) bool {
	if am, ok := asMap(a); ok {
		bm, ok := asMap(b)
		if !ok || len(am) != len(bm) {
			return false
		}
		for k, av := range am {
			bv, ok := bm[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	if as, ok := asSlice(a); ok {
		bs, ok := asSlice(b)
		if !ok || len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !Equal(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if _, ok := asMap(b); ok {
		return false
	}
	if _, ok := asSlice(b); ok {
		return false
	}
	return reflect.DeepEqual(scalarKey(a), scalarKey(b))
}

func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case *Map:
		if t == nil {
			return nil, false
		}
		return t.values, true
	case map[string]any:
		return t, true
	}
	return nil, false
}

func asSlice(v any) ([]any, bool) {
	switch t := v.(type) {
	case *Seq:
		if t == nil {
			return nil, false
		}
		return t.items, true
	case []any:
		return t, true
	}
	return nil, false
}

// scalarKey folds the numeric kinds onto int64, uint64 and float64 so that
// an int loaded by the engine equals an int64 built by hand.
func scalarKey(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			return int64(u)
		}
		return u
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return rv.Bool()
	}
	return v
}
