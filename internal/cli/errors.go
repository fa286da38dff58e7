// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"errors"
	"fmt"
)

// Parse failure kinds. Every error returned by Parse wraps exactly one of
// these sentinels, so callers can discriminate with errors.Is.
var (
	// ErrUnknownCommand means the first token matched no known command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUnrecognizedToken means a flag was not in the active command's schema.
	ErrUnrecognizedToken = errors.New("unrecognized token")

	// ErrInvalidValue means a flag value failed type coercion, or a flag
	// appeared at end of input with no value to consume.
	ErrInvalidValue = errors.New("invalid value")

	// ErrMissingRequiredValue means a required flag or positional was still
	// absent when the input ran out.
	ErrMissingRequiredValue = errors.New("missing required value")

	// ErrNoCommandSpecified means the invocation carried no tokens at all.
	ErrNoCommandSpecified = errors.New("no command specified")
)

// ParseError describes a single parse or validation failure. Kind is one of
// the sentinel errors above; Token names the offending token or field.
type ParseError struct {
	Kind   error
	Token  string
	Detail string
}

func (e *ParseError) Error() string {
	switch {
	case e.Token == "" && e.Detail == "":
		return e.Kind.Error()
	case e.Detail == "":
		return fmt.Sprintf("%s: %q", e.Kind, e.Token)
	case e.Token == "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	default:
		return fmt.Sprintf("%s: %q (%s)", e.Kind, e.Token, e.Detail)
	}
}

// Unwrap exposes the sentinel kind to errors.Is.
func (e *ParseError) Unwrap() error {
	return e.Kind
}
