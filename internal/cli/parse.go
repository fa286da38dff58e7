// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"strconv"
	"strings"
)

// Invocation is the parser's intermediate result for one command: every flag
// value type-coerced and every positional bound to its declared name. Command
// builders read from it; nothing else does.
type Invocation struct {
	Command Command

	// RawArgs holds the tokens after the command name, verbatim.
	RawArgs []string

	stringFlags map[string]string
	intFlags    map[string]int
	positionals map[string][]string
}

// String returns the value of a string flag, or "" when it was not supplied.
func (inv Invocation) String(name string) string {
	return inv.stringFlags[name]
}

// Int returns the value of an integer flag, or 0 when it was not supplied.
func (inv Invocation) Int(name string) int {
	return inv.intFlags[name]
}

// Positional returns the first value bound to a positional, or "".
func (inv Invocation) Positional(name string) string {
	vals := inv.positionals[name]
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

// Positionals returns every value bound to a repeatable positional, in the
// order supplied.
func (inv Invocation) Positionals(name string) []string {
	return inv.positionals[name]
}

// isFlag reports whether a token names a flag rather than a positional value.
// A lone "-" is a positional by convention.
func isFlag(token string) bool {
	return len(token) > 1 && strings.HasPrefix(token, "-")
}

// Parse resolves raw argument tokens against the schema and returns the
// validated configuration for the selected command. The first token selects
// the command; the rest are matched against that command's options and
// positionals. On failure it returns a *ParseError and the caller observes
// no other effect.
func Parse(schema Schema, args []string) (TopLevelConfig, error) {
	if len(args) == 0 {
		return TopLevelConfig{}, &ParseError{Kind: ErrNoCommandSpecified}
	}

	spec, ok := schema.Lookup(args[0])
	if !ok {
		return TopLevelConfig{}, &ParseError{Kind: ErrUnknownCommand, Token: args[0]}
	}

	rest := args[1:]
	inv := Invocation{
		Command:     spec.Name,
		RawArgs:     rest,
		stringFlags: make(map[string]string),
		intFlags:    make(map[string]int),
		positionals: make(map[string][]string),
	}

	var loose []string // positional tokens, in order, bound below
	for i := 0; i < len(rest); i++ {
		tok := rest[i]
		if !isFlag(tok) {
			loose = append(loose, tok)
			continue
		}

		opt, ok := spec.option(tok)
		if !ok {
			return TopLevelConfig{}, &ParseError{Kind: ErrUnrecognizedToken, Token: tok}
		}
		i++
		if i == len(rest) {
			return TopLevelConfig{}, &ParseError{Kind: ErrInvalidValue, Token: tok, Detail: "flag needs a value"}
		}
		value := rest[i]

		// Last occurrence wins for single-valued flags.
		switch opt.Kind {
		case KindString:
			inv.stringFlags[opt.Name] = value
		case KindInt:
			n, err := strconv.Atoi(value)
			if err != nil {
				return TopLevelConfig{}, &ParseError{Kind: ErrInvalidValue, Token: value, Detail: opt.Name + " expects an integer"}
			}
			inv.intFlags[opt.Name] = n
		}
	}

	if err := bindPositionals(spec, loose, &inv); err != nil {
		return TopLevelConfig{}, err
	}

	for _, opt := range spec.Options {
		if !opt.Required {
			continue
		}
		_, haveStr := inv.stringFlags[opt.Name]
		_, haveInt := inv.intFlags[opt.Name]
		if !haveStr && !haveInt {
			return TopLevelConfig{}, &ParseError{Kind: ErrMissingRequiredValue, Token: opt.Name}
		}
	}

	return TopLevelConfig{Config: spec.Build(inv)}, nil
}

// bindPositionals assigns loose tokens to the command's declared positionals
// in order. A repeatable positional consumes all remaining tokens, appending
// to any values it already holds.
func bindPositionals(spec CommandSpec, loose []string, inv *Invocation) error {
	next := 0
	for _, pos := range spec.Positionals {
		if pos.Repeatable {
			inv.positionals[pos.Name] = append(inv.positionals[pos.Name], loose[next:]...)
			next = len(loose)
		} else if next < len(loose) {
			inv.positionals[pos.Name] = append(inv.positionals[pos.Name], loose[next])
			next++
		}
		if pos.Required && len(inv.positionals[pos.Name]) == 0 {
			return &ParseError{Kind: ErrMissingRequiredValue, Token: pos.Name}
		}
	}
	if next < len(loose) {
		return &ParseError{Kind: ErrUnrecognizedToken, Token: loose[next], Detail: "unexpected positional argument"}
	}
	return nil
}
