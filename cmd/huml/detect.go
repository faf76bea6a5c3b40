package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/KimNorgaard/go-huml"
)

func looksLikeJSON(text string) bool {
	text = strings.TrimSpace(text)
	return (strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}")) ||
		(strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]"))
}

// isJSONLines reports whether text holds at least two non-empty lines that
// each look like a JSON value.
func isJSONLines(text string) bool {
	n := 0
	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !looksLikeJSON(line) {
			return false
		}
		n++
	}
	return n > 1
}

func isMultiDocumentYAML(text string) bool {
	for line := range strings.SplitSeq(text, "\n") {
		if strings.TrimSpace(line) == "---" {
			return true
		}
	}
	return false
}

// itemsArray returns the items of a list object such as the output of
// "kubectl get -o json" when at least one of them is an object.
func itemsArray(v any) ([]any, bool) {
	m, ok := v.(*huml.Map)
	if !ok {
		return nil, false
	}
	raw, _ := m.Get("items")
	seq, ok := raw.(*huml.Seq)
	if !ok || seq.Len() == 0 {
		return nil, false
	}
	for _, item := range seq.All() {
		if _, ok := item.(*huml.Map); ok {
			return seq.Items(), true
		}
	}
	return nil, false
}

// decodeJSON decodes one JSON value keeping object key order.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid JSON: unexpected data after top-level value")
	}
	return v, nil
}

func decodeJSONValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := huml.NewMap()
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, fmt.Errorf("invalid JSON: %w", err)
				}
				key, _ := kt.(string)
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				m.Set(key, v)
			}
			_, err := dec.Token()
			return m, err
		case '[':
			var items []any
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				items = append(items, v)
			}
			_, err := dec.Token()
			return huml.NewSeq(items...), err
		}
		return nil, fmt.Errorf("invalid JSON: unexpected %q", t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	}
	return tok, nil
}

// parseDocuments splits text into documents according to format, which is
// "json", "yaml", "msgpack" or "auto".
func parseDocuments(text, format string) ([]any, error) {
	if format == "msgpack" {
		return parseMsgpack([]byte(text))
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	switch format {
	case "json":
		return parseJSON(text)
	case "yaml":
		return parseYAML(text)
	case "auto":
		if looksLikeJSON(text) {
			return parseJSON(text)
		}
		return parseYAML(text)
	}
	return nil, fmt.Errorf("unsupported input format %q", format)
}

func parseJSON(text string) ([]any, error) {
	if isJSONLines(text) {
		var docs []any
		for i, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			v, err := decodeJSON([]byte(line))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			docs = append(docs, v)
		}
		return docs, nil
	}
	v, err := decodeJSON([]byte(text))
	if err != nil {
		return nil, err
	}
	if items, ok := itemsArray(v); ok {
		return items, nil
	}
	return []any{v}, nil
}

func parseYAML(text string) ([]any, error) {
	docs, err := huml.LoadAllWithFormatting([]byte(text + "\n"))
	if err != nil {
		return nil, err
	}
	if !isMultiDocumentYAML(text) {
		return docs, nil
	}
	out := docs[:0]
	for _, d := range docs {
		if d != nil {
			out = append(out, d)
		}
	}
	return out, nil
}
