// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tools abstracts execution of the external PDF tools the
// collaborators shell out to, so they can be mocked in tests.
package tools

import (
	"context"
	"io"
	"os/exec"
)

// Executor runs external tool binaries.
type Executor interface {
	// LookPath reports where a binary resolves on PATH.
	LookPath(file string) (string, error)

	// Run executes a binary with the given arguments, wiring stdout and
	// stderr to the given writers. It blocks until the process exits and
	// returns its failure, if any.
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// NewExecutor returns the production executor.
func NewExecutor() Executor {
	return osExecutor{}
}
