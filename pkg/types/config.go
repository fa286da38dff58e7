// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the configuration structs shared between the CLI entry
// point and the collaborator packages.
package types

// RenderConfig holds settings for the image-rendering collaborator.
type RenderConfig struct {
	// Tool is the rasterizer binary (default "pdftoppm").
	Tool string `json:"tool" yaml:"tool"`
}

// ExtractConfig holds settings for the text-extraction collaborator.
type ExtractConfig struct {
	// Tool is the text-extraction binary (default "pdftotext").
	Tool string `json:"tool" yaml:"tool"`
}

// TaskLogConfig holds settings for the processing journal.
type TaskLogConfig struct {
	// Path is the journal database file. Empty disables the journal.
	Path string `json:"path" yaml:"path"`
}
