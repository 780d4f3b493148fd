// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jobs reads YAML job files that describe a sequence of merge,
// split, and extract requests.
//
// A job file looks like:
//
//	defaults:
//	  engine: outline
//	  output_dir: out
//	jobs:
//	  - mode: merge
//	    pattern: 'chapter.*\.pdf'
//	    output: book.pdf
//	  - mode: split
//	    pattern: book.pdf
//	    range: [1, 0, 1]
//	    rotation: 90
package jobs

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/ppdf/internal/pages"
	"github.com/pdiddy/ppdf/pkg/types"
)

// File is the on-disk representation of a job file.
type File struct {
	Defaults Defaults `yaml:"defaults"`
	Jobs     []Job    `yaml:"jobs"`
}

// Defaults holds settings applied to every job that does not override them.
type Defaults struct {
	Engine    string `yaml:"engine,omitempty"`
	Folder    string `yaml:"folder,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
	Rotation  *int   `yaml:"rotation,omitempty"`
}

// Job is one request in a job file. Range takes the same values as the
// split and extract flags: start, optional end, optional step, or -1.
type Job struct {
	Mode      string `yaml:"mode"`
	Pattern   string `yaml:"pattern"`
	Range     []int  `yaml:"range,omitempty"`
	Output    string `yaml:"output,omitempty"`
	Engine    string `yaml:"engine,omitempty"`
	Folder    string `yaml:"folder,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
	Rotation  *int   `yaml:"rotation,omitempty"`
}

// ReadFile loads a job file from disk.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading job file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a job file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing job file: %w", err)
	}
	if len(f.Jobs) == 0 {
		return nil, fmt.Errorf("job file lists no jobs")
	}
	return &f, nil
}

// Requests validates every job and turns it into a Request. Settings come
// from the job first, then the file's defaults, then base.
func (f *File) Requests(base types.Config) ([]types.Request, error) {
	reqs := make([]types.Request, 0, len(f.Jobs))
	for i, j := range f.Jobs {
		req, err := j.request(f.Defaults, base)
		if err != nil {
			return nil, fmt.Errorf("job %d: %w", i+1, err)
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

func (j Job) request(d Defaults, base types.Config) (types.Request, error) {
	mode, err := types.ParseMode(j.Mode)
	if err != nil {
		return types.Request{}, err
	}
	if j.Pattern == "" {
		return types.Request{}, fmt.Errorf("%s job has no pattern", mode)
	}

	cfg := base
	cfg.Engine, err = types.ParseMergeEngine(first(j.Engine, d.Engine, string(base.Engine)))
	if err != nil {
		return types.Request{}, err
	}
	cfg.FolderPath = first(j.Folder, d.Folder, base.FolderPath)
	cfg.OutputDir = first(j.OutputDir, d.OutputDir, base.OutputDir)
	cfg.OutputName = first(j.Output, base.OutputName)
	switch {
	case j.Rotation != nil:
		cfg.Rotation = *j.Rotation
	case d.Rotation != nil:
		cfg.Rotation = *d.Rotation
	}
	if _, err := pages.NormalizeRotation(cfg.Rotation); err != nil {
		return types.Request{}, err
	}

	req := types.Request{Mode: mode, Pattern: j.Pattern, Config: cfg}
	switch mode {
	case types.ModeSplit, types.ModeExtract:
		vals := j.Range
		if len(vals) == 0 {
			vals = []int{-1}
		}
		req.Range, err = pages.FromArgs(vals, types.AllPages)
		if err != nil {
			return types.Request{}, err
		}
	case types.ModeOdd:
		req.Range = types.OddPages
	case types.ModeEven:
		req.Range = types.EvenPages
	}
	return req, nil
}

// first returns the first non-empty value.
func first(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
