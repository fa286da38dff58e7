// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "no command", args: nil, want: 1},
		{name: "unknown command", args: []string{"Frobnicate"}, want: 1},
		{name: "missing required input file", args: []string{"RenderImages", "-f", "png"}, want: 1},
		{name: "bad integer flag value", args: []string{"RenderImages", "-d", "high", "doc.pdf"}, want: 1},
		{name: "version", args: []string{"version"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, run(tt.args))
		})
	}
}
