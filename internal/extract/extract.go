// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract implements the text-extraction collaborator. It runs an
// external extractor (pdftotext) over each input PDF in the order given,
// concatenates the results into one output file, and writes a YAML manifest
// describing the run.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdfprep/internal/tools"
	"github.com/pdiddy/pdfprep/pkg/types"
)

const defaultTool = "pdftotext"

// Journal records per-input processing state. A nil Journal disables
// journaling. *tasklog.Store satisfies it.
type Journal interface {
	Schedule(ctx context.Context, runID, input string) error
	MarkProcessing(ctx context.Context, runID, input string) error
	MarkDone(ctx context.Context, runID, input string) error
	MarkFailed(ctx context.Context, runID, input, detail string) error
}

// Extractor extracts text from PDFs by shelling out to an external tool.
type Extractor struct {
	bin     string
	exec    tools.Executor
	journal Journal
	log     io.Writer
}

// New creates an extractor using the configured tool binary, verifying that
// it resolves on PATH.
func New(cfg types.ExtractConfig, journal Journal) (*Extractor, error) {
	return newExtractor(cfg, journal, tools.NewExecutor(), os.Stderr)
}

func newExtractor(cfg types.ExtractConfig, journal Journal, exec tools.Executor, log io.Writer) (*Extractor, error) {
	bin := cfg.Tool
	if bin == "" {
		bin = defaultTool
	}
	if _, err := exec.LookPath(bin); err != nil {
		return nil, fmt.Errorf("extractor %s not available: %w", bin, err)
	}
	return &Extractor{bin: bin, exec: exec, journal: journal, log: log}, nil
}

// manifest describes one extraction run. It is written next to the output
// file as <output>.manifest.yaml.
type manifest struct {
	RunID      string          `yaml:"run_id"`
	OutputFile string          `yaml:"output_file"`
	CreatedAt  string          `yaml:"created_at"`
	Inputs     []manifestInput `yaml:"inputs"`
}

type manifestInput struct {
	Path  string `yaml:"path"`
	Bytes int    `yaml:"bytes"`
}

// Extract runs the extractor over every input, in order, and writes the
// concatenated text to outputFile. Duplicated inputs are processed again.
// Nothing is written to disk until every input has been extracted.
func (e *Extractor) Extract(ctx context.Context, outputFile string, inputFiles []string) error {
	if outputFile == "" || len(inputFiles) == 0 {
		return fmt.Errorf("extract needs an output file and at least one input file")
	}

	runID := uuid.NewString()
	for _, input := range inputFiles {
		if err := e.record(func() error { return e.journal.Schedule(ctx, runID, input) }); err != nil {
			return err
		}
	}

	m := manifest{
		RunID:      runID,
		OutputFile: outputFile,
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
	}

	var out bytes.Buffer
	for _, input := range inputFiles {
		if err := e.record(func() error { return e.journal.MarkProcessing(ctx, runID, input) }); err != nil {
			return err
		}

		text, err := e.extractOne(ctx, input)
		if err != nil {
			e.record(func() error { return e.journal.MarkFailed(ctx, runID, input, err.Error()) })
			fmt.Fprintf(e.log, "failed:    %s (%v)\n", input, err)
			return err
		}
		if err := e.record(func() error { return e.journal.MarkDone(ctx, runID, input) }); err != nil {
			return err
		}
		fmt.Fprintf(e.log, "extracted: %s\n", input)

		fmt.Fprintf(&out, "--- %s ---\n", input)
		out.Write(text)
		if len(text) == 0 || text[len(text)-1] != '\n' {
			out.WriteByte('\n')
		}
		m.Inputs = append(m.Inputs, manifestInput{Path: input, Bytes: len(text)})
	}

	if err := os.WriteFile(outputFile, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outputFile, err)
	}
	return e.writeManifest(m)
}

// extractOne runs the tool for a single input, capturing its stdout.
func (e *Extractor) extractOne(ctx context.Context, input string) ([]byte, error) {
	if _, err := os.Stat(input); err != nil {
		return nil, fmt.Errorf("input file: %w", err)
	}
	var stdout bytes.Buffer
	if err := e.exec.Run(ctx, e.bin, []string{input, "-"}, &stdout, e.log); err != nil {
		return nil, fmt.Errorf("extracting %s with %s: %w", input, e.bin, err)
	}
	return stdout.Bytes(), nil
}

func (e *Extractor) writeManifest(m manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	path := m.OutputFile + ".manifest.yaml"
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// record runs a journal operation, skipping it when no journal is attached.
func (e *Extractor) record(op func() error) error {
	if e.journal == nil {
		return nil
	}
	return op()
}
