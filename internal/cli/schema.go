// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cli implements the command-line dispatch surface of pdfprep: the
// option schema, the typed per-command configuration, the parser/validator
// that turns raw argument tokens into a configuration, and the dispatcher
// that hands a validated configuration to the matching collaborator.
package cli

import (
	"fmt"
	"strings"
)

// ValueKind is the expected type of an option's value.
type ValueKind int

const (
	// KindString passes the value token through unchanged.
	KindString ValueKind = iota
	// KindInt parses the value token as a decimal integer.
	KindInt
)

// OptionSpec declares one named flag of a command.
type OptionSpec struct {
	// Name is the long flag name, matched as --name.
	Name string
	// Shorthand is the single-letter form, matched as -x. Optional.
	Shorthand string
	Kind      ValueKind
	Required  bool
	Usage     string
}

// PositionalSpec declares one positional argument of a command. Positionals
// are consumed in declaration order; a Repeatable positional greedily
// consumes all remaining positional tokens, accumulating them in order.
type PositionalSpec struct {
	Name       string
	Required   bool
	Repeatable bool
	Usage      string
}

// CommandSpec declares the full argument surface of one command, plus the
// builder that turns a parsed invocation into that command's typed payload.
// Only the builder for the selected command ever runs, so a payload can never
// be populated from another command's tokens.
type CommandSpec struct {
	Name        Command
	Summary     string
	Options     []OptionSpec
	Positionals []PositionalSpec
	Build       func(inv Invocation) CommandConfig
}

// option resolves a flag token (-x or --name) against the command's options.
func (c CommandSpec) option(token string) (OptionSpec, bool) {
	long := strings.HasPrefix(token, "--")
	name := strings.TrimLeft(token, "-")
	for _, opt := range c.Options {
		if long && opt.Name == name {
			return opt, true
		}
		if !long && opt.Shorthand == name {
			return opt, true
		}
	}
	return OptionSpec{}, false
}

// Schema is the immutable set of command specs known to the parser. It is
// constructed once per invocation and passed into Parse; there is no
// package-level parser state.
type Schema struct {
	commands []CommandSpec
}

// NewSchema builds a schema from the given command specs, preserving order
// for usage output.
func NewSchema(cmds ...CommandSpec) Schema {
	return Schema{commands: cmds}
}

// Lookup resolves a command name to its spec.
func (s Schema) Lookup(name string) (CommandSpec, bool) {
	for _, c := range s.commands {
		if string(c.Name) == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}

// Commands returns the declared command specs in declaration order.
func (s Schema) Commands() []CommandSpec {
	out := make([]CommandSpec, len(s.commands))
	copy(out, s.commands)
	return out
}

// Usage renders the one-line command summary printed on parse failure.
func (s Schema) Usage(progname string) string {
	names := make([]string, len(s.commands))
	for i, c := range s.commands {
		names[i] = string(c.Name)
	}
	return fmt.Sprintf("%s {%s}", progname, strings.Join(names, ", "))
}
