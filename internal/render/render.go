// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render implements the image-rendering collaborator. It receives
// the verbatim RenderImages argument tokens, interprets them under its own
// flag semantics, and drives an external rasterizer (pdftoppm) to render
// PDF pages to image files.
package render

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/pdiddy/pdfprep/internal/tools"
	"github.com/pdiddy/pdfprep/pkg/types"
)

const defaultTool = "pdftoppm"

// formatFlags maps accepted output formats to the rasterizer's format flag.
// The empty value means the tool's native default (ppm).
var formatFlags = map[string]string{
	"png":  "-png",
	"jpeg": "-jpeg",
	"jpg":  "-jpeg",
	"tiff": "-tiff",
	"ppm":  "",
}

// Renderer rasterizes PDF pages by shelling out to an external tool.
type Renderer struct {
	bin    string
	exec   tools.Executor
	stderr io.Writer
}

// New creates a renderer using the configured tool binary, verifying that it
// resolves on PATH.
func New(cfg types.RenderConfig) (*Renderer, error) {
	return newRenderer(cfg, tools.NewExecutor(), os.Stderr)
}

func newRenderer(cfg types.RenderConfig, exec tools.Executor, stderr io.Writer) (*Renderer, error) {
	bin := cfg.Tool
	if bin == "" {
		bin = defaultTool
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("rasterizer %s not available: %w", bin, err)
	}
	return &Renderer{bin: bin, exec: exec, stderr: stderr}, nil
}

// options is the renderer's own reading of the argument tokens. Its defaults
// are independent of whatever the top-level parser saw in the same tokens.
type options struct {
	format    string
	prefix    string
	startPage int
	endPage   int
	dpi       int
	input     string
}

// parseOptions interprets the raw tokens with the renderer's own flag set.
func parseOptions(args []string) (options, error) {
	var opts options

	fs := pflag.NewFlagSet("RenderImages", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVarP(&opts.format, "format", "f", "png", "output image format")
	fs.StringVarP(&opts.prefix, "prefix", "p", "", "output filename prefix")
	fs.IntVarP(&opts.startPage, "startPage", "s", 1, "first page to render")
	fs.IntVarP(&opts.endPage, "endPage", "e", 0, "last page to render (0 means last page of the document)")
	fs.IntVarP(&opts.dpi, "dpi", "d", 150, "render resolution in dots per inch")

	if err := fs.Parse(args); err != nil {
		return options{}, fmt.Errorf("parsing render arguments: %w", err)
	}
	if fs.NArg() != 1 {
		return options{}, fmt.Errorf("render expects exactly one input file, got %d", fs.NArg())
	}
	opts.input = fs.Arg(0)

	if opts.prefix == "" {
		base := filepath.Base(opts.input)
		opts.prefix = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return opts, validate(opts)
}

// validate applies the renderer's value-level rules. These live here, not in
// the top-level parser, which checks invocation shape only.
func validate(opts options) error {
	if _, ok := formatFlags[opts.format]; !ok {
		return fmt.Errorf("unsupported image format %q", opts.format)
	}
	if opts.dpi <= 0 {
		return fmt.Errorf("dpi must be positive, got %d", opts.dpi)
	}
	if opts.startPage < 1 {
		return fmt.Errorf("startPage must be at least 1, got %d", opts.startPage)
	}
	if opts.endPage != 0 && opts.endPage < opts.startPage {
		return fmt.Errorf("endPage %d is before startPage %d", opts.endPage, opts.startPage)
	}
	return nil
}

// toolArgs maps the parsed options onto the rasterizer's command line.
func toolArgs(opts options) []string {
	var args []string
	if flag := formatFlags[opts.format]; flag != "" {
		args = append(args, flag)
	}
	args = append(args, "-r", strconv.Itoa(opts.dpi))
	args = append(args, "-f", strconv.Itoa(opts.startPage))
	if opts.endPage != 0 {
		args = append(args, "-l", strconv.Itoa(opts.endPage))
	}
	return append(args, opts.input, opts.prefix)
}

// Render interprets the raw argument tokens and runs the rasterizer. Image
// files are written next to the prefix, one per rendered page.
func (r *Renderer) Render(ctx context.Context, args []string) error {
	opts, err := parseOptions(args)
	if err != nil {
		return err
	}
	if _, err := os.Stat(opts.input); err != nil {
		return fmt.Errorf("input file: %w", err)
	}
	if err := r.exec.Run(ctx, r.bin, toolArgs(opts), io.Discard, r.stderr); err != nil {
		return fmt.Errorf("rendering %s with %s: %w", opts.input, r.bin, err)
	}
	return nil
}
