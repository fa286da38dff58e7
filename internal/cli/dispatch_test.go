// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer records the argument list it was invoked with.
type fakeRenderer struct {
	calls [][]string
	err   error
}

func (f *fakeRenderer) Render(ctx context.Context, args []string) error {
	f.calls = append(f.calls, args)
	return f.err
}

// fakeExtractor records the output file and input list it was invoked with.
type fakeExtractor struct {
	calls []extractCall
	err   error
}

type extractCall struct {
	output string
	inputs []string
}

func (f *fakeExtractor) Extract(ctx context.Context, outputFile string, inputFiles []string) error {
	f.calls = append(f.calls, extractCall{output: outputFile, inputs: inputFiles})
	return f.err
}

func TestDispatchRenderImages(t *testing.T) {
	renderer := &fakeRenderer{}
	extractor := &fakeExtractor{}
	d := Dispatcher{Renderer: renderer, Extractor: extractor}

	cfg, err := Parse(DefaultSchema(), []string{"RenderImages", "-f", "png", "-s", "2", "-e", "5", "doc.pdf"})
	require.NoError(t, err)
	require.NoError(t, d.Dispatch(context.Background(), cfg))

	require.Len(t, renderer.calls, 1, "exactly one collaborator invocation")
	assert.Equal(t, []string{"-f", "png", "-s", "2", "-e", "5", "doc.pdf"}, renderer.calls[0],
		"renderer receives the residual tokens verbatim")
	assert.Empty(t, extractor.calls)
}

func TestDispatchPreprocessText(t *testing.T) {
	renderer := &fakeRenderer{}
	extractor := &fakeExtractor{}
	d := Dispatcher{Renderer: renderer, Extractor: extractor}

	cfg, err := Parse(DefaultSchema(), []string{"PreprocessText", "out.txt", "a.pdf", "b.pdf"})
	require.NoError(t, err)
	require.NoError(t, d.Dispatch(context.Background(), cfg))

	require.Len(t, extractor.calls, 1)
	assert.Equal(t, "out.txt", extractor.calls[0].output)
	assert.Equal(t, []string{"a.pdf", "b.pdf"}, extractor.calls[0].inputs)
	assert.Empty(t, renderer.calls)
}

func TestDispatchPropagatesCollaboratorError(t *testing.T) {
	boom := errors.New("pdftoppm exploded")
	d := Dispatcher{Renderer: &fakeRenderer{err: boom}, Extractor: &fakeExtractor{}}

	cfg, err := Parse(DefaultSchema(), []string{"RenderImages", "doc.pdf"})
	require.NoError(t, err)

	err = d.Dispatch(context.Background(), cfg)
	assert.ErrorIs(t, err, boom)
}

// TestDispatchCoversSchema guards the lock-step pairing between the command
// set and the dispatch switch: every command the schema can build must land
// in a real branch, never in the internal-error default.
func TestDispatchCoversSchema(t *testing.T) {
	d := Dispatcher{Renderer: &fakeRenderer{}, Extractor: &fakeExtractor{}}

	for _, spec := range DefaultSchema().Commands() {
		cfg := TopLevelConfig{Config: spec.Build(Invocation{Command: spec.Name})}
		require.Equal(t, spec.Name, cfg.Command())
		assert.NoError(t, d.Dispatch(context.Background(), cfg),
			"command %q must have a dispatch branch", spec.Name)
	}
}

func TestDispatchUnknownPayload(t *testing.T) {
	d := Dispatcher{Renderer: &fakeRenderer{}, Extractor: &fakeExtractor{}}

	err := d.Dispatch(context.Background(), TopLevelConfig{Config: bogusConfig{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no dispatch branch")
}

type bogusConfig struct{}

func (bogusConfig) Command() Command { return Command("Bogus") }
