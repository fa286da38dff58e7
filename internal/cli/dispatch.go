// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"context"
	"fmt"
)

// ImageRenderer rasterizes PDF pages to image files. It receives the verbatim
// argument tokens that followed the RenderImages command name and interprets
// them under its own flag semantics.
type ImageRenderer interface {
	Render(ctx context.Context, args []string) error
}

// TextExtractor extracts text from the input PDFs, in order, into outputFile.
type TextExtractor interface {
	Extract(ctx context.Context, outputFile string, inputFiles []string) error
}

// Dispatcher routes a validated configuration to the collaborator matching
// its command. Exactly one collaborator is invoked per dispatch, and only
// after parsing has fully succeeded.
type Dispatcher struct {
	Renderer  ImageRenderer
	Extractor TextExtractor
}

// Dispatch branches on the payload variant and invokes the matching
// collaborator. A payload type with no branch here means the command
// enumeration and this switch have drifted apart; that pairing is kept in
// lock-step by TestDispatchCoversSchema.
func (d Dispatcher) Dispatch(ctx context.Context, cfg TopLevelConfig) error {
	switch c := cfg.Config.(type) {
	case ImageRenderConfig:
		return d.Renderer.Render(ctx, c.RawArgs)
	case TextExtractConfig:
		return d.Extractor.Extract(ctx, c.OutputFile, c.InputFiles)
	default:
		return fmt.Errorf("internal: no dispatch branch for command %q", cfg.Command())
	}
}
