// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// MergeEngine identifies how merge concatenates input files.
type MergeEngine string

const (
	// EngineOutline merges through pdfcpu's file merger and adds one
	// bookmark per input file, titled with the file name.
	EngineOutline MergeEngine = "outline"
	// EngineStream merges the inputs as streams into a single writer and
	// adds no bookmarks.
	EngineStream MergeEngine = "stream"
)

// DefaultOutputName is the output file name used when none is given.
const DefaultOutputName = "binder.pdf"

// ParseMergeEngine maps a user-supplied engine name to a MergeEngine.
// The numeric aliases "1" (outline) and "2" (stream) are accepted. An empty
// name selects the stream engine.
func ParseMergeEngine(s string) (MergeEngine, error) {
	switch s {
	case "", "2", string(EngineStream):
		return EngineStream, nil
	case "1", string(EngineOutline):
		return EngineOutline, nil
	}
	return "", fmt.Errorf("unknown merge engine %q: use outline (1) or stream (2)", s)
}

// Config holds the options shared by every mode.
type Config struct {
	// Engine selects the merge engine: outline or stream.
	Engine MergeEngine `json:"engine" yaml:"engine"`

	// OutputName is the output file for merge and extract modes
	// (default "binder.pdf").
	OutputName string `json:"output_file_name" yaml:"output_file_name"`

	// FolderPath is the directory searched for input files. Empty means
	// the working directory.
	FolderPath string `json:"folder_path,omitempty" yaml:"folder_path,omitempty"`

	// OutputDir is the directory outputs are written to (default ".").
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	// Rotation is the clockwise rotation in degrees applied to each output
	// page. Must be a multiple of 90.
	Rotation int `json:"page_rotation" yaml:"page_rotation"`

	// Verbose prints the operation plan alongside the work.
	Verbose bool `json:"verbose" yaml:"verbose"`

	// Check prints the operation plan and writes nothing.
	Check bool `json:"check_output" yaml:"check_output"`
}

// WithDefaults returns a copy of c with empty fields filled in.
func (c Config) WithDefaults() Config {
	if c.Engine == "" {
		c.Engine = EngineStream
	}
	if c.OutputName == "" {
		c.OutputName = DefaultOutputName
	}
	if c.FolderPath == "" {
		c.FolderPath = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return c
}
