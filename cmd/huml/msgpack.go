package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/KimNorgaard/go-huml"
)

// parseMsgpack decodes every top-level MessagePack value in data as one
// document. Maps keep their encoded key order.
func parseMsgpack(data []byte) ([]any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetMapDecoder(decodeMsgpackMap)
	var docs []any
	for {
		v, err := dec.DecodeInterface()
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("invalid MessagePack: %w", err)
		}
		docs = append(docs, v)
	}
}

func decodeMsgpackMap(dec *msgpack.Decoder) (any, error) {
	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	m := huml.NewMap()
	for range max(n, 0) {
		k, err := dec.DecodeInterface()
		if err != nil {
			return nil, err
		}
		v, err := dec.DecodeInterface()
		if err != nil {
			return nil, err
		}
		key, ok := k.(string)
		if !ok {
			key = fmt.Sprint(k)
		}
		m.Set(key, v)
	}
	return m, nil
}
