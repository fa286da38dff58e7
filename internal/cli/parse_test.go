// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRenderImages(t *testing.T) {
	schema := DefaultSchema()

	args := []string{"RenderImages", "-f", "png", "-s", "2", "-e", "5", "doc.pdf"}
	cfg, err := Parse(schema, args)
	require.NoError(t, err)
	require.Equal(t, CommandRenderImages, cfg.Command())

	render, ok := cfg.Config.(ImageRenderConfig)
	require.True(t, ok, "payload variant must match the command")
	assert.Equal(t, "png", render.Format)
	assert.Equal(t, 2, render.StartPage)
	assert.Equal(t, 5, render.EndPage)
	assert.Equal(t, "doc.pdf", render.InputFile)
	assert.Equal(t, []string{"-f", "png", "-s", "2", "-e", "5", "doc.pdf"}, render.RawArgs,
		"raw args after the command name are preserved verbatim")
}

func TestParseRenderImagesLongFlags(t *testing.T) {
	cfg, err := Parse(DefaultSchema(), []string{
		"RenderImages", "--format", "jpeg", "--prefix", "page-", "--dpi", "300", "doc.pdf",
	})
	require.NoError(t, err)

	render := cfg.Config.(ImageRenderConfig)
	assert.Equal(t, "jpeg", render.Format)
	assert.Equal(t, "page-", render.Prefix)
	assert.Equal(t, 300, render.DPI)
}

func TestParseLastOccurrenceWins(t *testing.T) {
	cfg, err := Parse(DefaultSchema(), []string{"RenderImages", "-d", "100", "-d", "200", "doc.pdf"})
	require.NoError(t, err)
	assert.Equal(t, 200, cfg.Config.(ImageRenderConfig).DPI)

	cfg, err = Parse(DefaultSchema(), []string{"RenderImages", "-f", "png", "-f", "jpeg", "doc.pdf"})
	require.NoError(t, err)
	assert.Equal(t, "jpeg", cfg.Config.(ImageRenderConfig).Format)
}

func TestParsePreprocessText(t *testing.T) {
	cfg, err := Parse(DefaultSchema(), []string{"PreprocessText", "out.txt", "a.pdf", "b.pdf"})
	require.NoError(t, err)
	require.Equal(t, CommandPreprocessText, cfg.Command())

	extract, ok := cfg.Config.(TextExtractConfig)
	require.True(t, ok)
	assert.Equal(t, "out.txt", extract.OutputFile)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, extract.InputFiles)
}

func TestParsePreprocessTextKeepsOrderAndDuplicates(t *testing.T) {
	cfg, err := Parse(DefaultSchema(), []string{
		"PreprocessText", "out.json", "b.pdf", "a.pdf", "b.pdf",
	})
	require.NoError(t, err)

	extract := cfg.Config.(TextExtractConfig)
	assert.Equal(t, []string{"b.pdf", "a.pdf", "b.pdf"}, extract.InputFiles,
		"inputs are accumulated in the order given, duplicates kept")
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantKind  error
		wantToken string
	}{
		{
			name:     "no tokens at all",
			args:     nil,
			wantKind: ErrNoCommandSpecified,
		},
		{
			name:      "first token is not a command",
			args:      []string{"Frobnicate", "doc.pdf"},
			wantKind:  ErrUnknownCommand,
			wantToken: "Frobnicate",
		},
		{
			name:      "flag not in the command schema",
			args:      []string{"RenderImages", "-x", "1", "doc.pdf"},
			wantKind:  ErrUnrecognizedToken,
			wantToken: "-x",
		},
		{
			name:      "non-numeric value for integer flag",
			args:      []string{"RenderImages", "-s", "two", "doc.pdf"},
			wantKind:  ErrInvalidValue,
			wantToken: "two",
		},
		{
			name:      "flag at end of input with no value",
			args:      []string{"RenderImages", "doc.pdf", "-d"},
			wantKind:  ErrInvalidValue,
			wantToken: "-d",
		},
		{
			name:      "render with no input file",
			args:      []string{"RenderImages", "-f", "png"},
			wantKind:  ErrMissingRequiredValue,
			wantToken: "inputfile",
		},
		{
			name:      "extract with no inputs after the output file",
			args:      []string{"PreprocessText", "out.txt"},
			wantKind:  ErrMissingRequiredValue,
			wantToken: "inputfile",
		},
		{
			name:      "extract with nothing at all",
			args:      []string{"PreprocessText"},
			wantKind:  ErrMissingRequiredValue,
			wantToken: "outputfile",
		},
		{
			name:      "extra positional after the render input file",
			args:      []string{"RenderImages", "doc.pdf", "other.pdf"},
			wantKind:  ErrUnrecognizedToken,
			wantToken: "other.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(DefaultSchema(), tt.args)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Nil(t, cfg.Config, "no payload is populated on failure")

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.wantToken, perr.Token)
		})
	}
}

func TestSchemaLookup(t *testing.T) {
	schema := DefaultSchema()

	spec, ok := schema.Lookup("RenderImages")
	require.True(t, ok)
	assert.Equal(t, CommandRenderImages, spec.Name)

	_, ok = schema.Lookup("renderimages")
	assert.False(t, ok, "command names are case-sensitive")

	_, ok = schema.Lookup("")
	assert.False(t, ok)
}

func TestSchemaOptionLookup(t *testing.T) {
	spec, ok := DefaultSchema().Lookup("RenderImages")
	require.True(t, ok)

	opt, ok := spec.option("-f")
	require.True(t, ok)
	assert.Equal(t, "format", opt.Name)

	opt, ok = spec.option("--startPage")
	require.True(t, ok)
	assert.Equal(t, KindInt, opt.Kind)

	_, ok = spec.option("--f")
	assert.False(t, ok, "shorthands do not resolve as long flags")

	_, ok = spec.option("-format")
	assert.False(t, ok, "long names do not resolve as shorthands")
}

func TestSchemaUsage(t *testing.T) {
	got := DefaultSchema().Usage("pdfprep")
	assert.Equal(t, "pdfprep {RenderImages, PreprocessText}", got)
}
