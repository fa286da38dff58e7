// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

// Command names one supported top-level operation. Exactly one command is
// active per invocation.
type Command string

const (
	// CommandRenderImages rasterizes pages of a PDF to image files.
	CommandRenderImages Command = "RenderImages"
	// CommandPreprocessText extracts text from PDFs into one output file.
	CommandPreprocessText Command = "PreprocessText"
)

// CommandConfig is the typed payload of exactly one command. Each variant
// carries its own tag through the Command method, so a configuration can
// never pair a command with another command's payload.
type CommandConfig interface {
	Command() Command
}

// ImageRenderConfig is the payload for CommandRenderImages. The named fields
// exist so the parser can validate the shape of the invocation; the renderer
// itself consumes RawArgs and interprets the flags independently.
type ImageRenderConfig struct {
	Format    string
	Prefix    string
	StartPage int
	EndPage   int
	DPI       int
	InputFile string

	// RawArgs is the verbatim token list after the command name, in the
	// order given. This, not the parsed fields, is what dispatch hands to
	// the renderer.
	RawArgs []string
}

func (ImageRenderConfig) Command() Command { return CommandRenderImages }

// TextExtractConfig is the payload for CommandPreprocessText.
type TextExtractConfig struct {
	OutputFile string
	// InputFiles preserves the order given on the command line; duplicates
	// are kept.
	InputFiles []string
}

func (TextExtractConfig) Command() Command { return CommandPreprocessText }

// TopLevelConfig is the result of a successful parse: the selected command
// together with its payload. The command is derived from the payload, so the
// two cannot disagree.
type TopLevelConfig struct {
	Config CommandConfig
}

// Command returns the command the payload belongs to.
func (c TopLevelConfig) Command() Command {
	return c.Config.Command()
}

// renderImagesSpec declares the RenderImages argument surface. The command
// takes the flags below plus one required input file; downstream, the
// renderer re-parses the same tokens with its own defaults.
func renderImagesSpec() CommandSpec {
	return CommandSpec{
		Name:    CommandRenderImages,
		Summary: "Render pages of a PDF to image files",
		Options: []OptionSpec{
			{Name: "format", Shorthand: "f", Kind: KindString, Usage: "output image format"},
			{Name: "prefix", Shorthand: "p", Kind: KindString, Usage: "output filename prefix"},
			{Name: "startPage", Shorthand: "s", Kind: KindInt, Usage: "first page to render"},
			{Name: "endPage", Shorthand: "e", Kind: KindInt, Usage: "last page to render"},
			{Name: "dpi", Shorthand: "d", Kind: KindInt, Usage: "render resolution in dots per inch"},
		},
		Positionals: []PositionalSpec{
			{Name: "inputfile", Required: true, Usage: "PDF file to render"},
		},
		Build: func(inv Invocation) CommandConfig {
			return ImageRenderConfig{
				Format:    inv.String("format"),
				Prefix:    inv.String("prefix"),
				StartPage: inv.Int("startPage"),
				EndPage:   inv.Int("endPage"),
				DPI:       inv.Int("dpi"),
				InputFile: inv.Positional("inputfile"),
				RawArgs:   inv.RawArgs,
			}
		},
	}
}

// preprocessTextSpec declares the PreprocessText argument surface: an output
// file followed by one or more input files, all positional.
func preprocessTextSpec() CommandSpec {
	return CommandSpec{
		Name:    CommandPreprocessText,
		Summary: "Extract text from PDFs into one output file",
		Positionals: []PositionalSpec{
			{Name: "outputfile", Required: true, Usage: "file the extracted text is written to"},
			{Name: "inputfile", Required: true, Repeatable: true, Usage: "PDF files to extract, processed in order"},
		},
		Build: func(inv Invocation) CommandConfig {
			return TextExtractConfig{
				OutputFile: inv.Positional("outputfile"),
				InputFiles: inv.Positionals("inputfile"),
			}
		},
	}
}

// DefaultSchema returns the schema covering every supported command.
func DefaultSchema() Schema {
	return NewSchema(renderImagesSpec(), preprocessTextSpec())
}
