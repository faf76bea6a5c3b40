package huml

import herrors "github.com/KimNorgaard/go-huml/errors"

// A SyntaxError reports malformed input. Its message is the YAML engine's
// message unchanged.
type SyntaxError = herrors.SyntaxError

// An EmitError reports a value that cannot be written as YAML.
type EmitError = herrors.EmitError
