// Package errors defines the error types returned when loading and emitting
// documents.
package errors

import (
	"reflect"
	"regexp"
	"strconv"
)

// SyntaxError reports malformed source text. Err is the error produced by
// the YAML engine and its message is returned unchanged by Error.
type SyntaxError struct {
	Line   int
	Column int // 0 when the engine only reports a line
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Err == nil {
		return "huml: syntax error at line " + strconv.Itoa(e.Line)
	}
	return e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

var positionRE = regexp.MustCompile(`line (\d+)(?:, column (\d+))?:`)

// FromEngine wraps an error returned by the YAML engine's parser, extracting
// the position embedded in its message.
func FromEngine(err error) *SyntaxError {
	se := &SyntaxError{Err: err}
	m := positionRE.FindStringSubmatch(err.Error())
	if m == nil {
		return se
	}
	se.Line, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		se.Column, _ = strconv.Atoi(m[2])
	}
	return se
}

// An EmitError reports a value that cannot be represented in YAML, such as
// a channel or a function, or a yaml.Marshaler that failed.
type EmitError struct {
	Type reflect.Type
	Err  error
}

func (e *EmitError) Error() string {
	return "huml: cannot emit value of type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *EmitError) Unwrap() error { return e.Err }
