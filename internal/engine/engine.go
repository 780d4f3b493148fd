// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine wraps the PDF library behind the four primitives the
// binder needs: page count, merge, page collection, and rotation.
package engine

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/ppdf/internal/pages"
	"github.com/pdiddy/ppdf/pkg/types"
)

// ErrNoInputs is returned when Merge is called without input files.
var ErrNoInputs = errors.New("no input files")

// Engine performs page-level operations on PDF files. Implementations
// open, process, and close each file within a single call.
type Engine interface {
	// Name identifies the engine in status output.
	Name() string

	// PageCount returns the number of pages in the PDF at path.
	PageCount(path string) (int, error)

	// Merge concatenates inputs, in order, into a new PDF at output.
	Merge(inputs []string, output string) error

	// Collect writes the given 1-based pages of input, in the given order,
	// to a new PDF at output.
	Collect(input, output string, pages []int) error

	// Rotate turns the given pages of the PDF at path clockwise by degrees,
	// rewriting the file in place. A nil page list rotates every page.
	Rotate(path string, degrees int, pages []int) error
}

func init() {
	// Keep pdfcpu from creating a configuration directory under the
	// user's home. Defaults are built in.
	api.DisableConfigDir()
}

// PDFCPU implements Engine with github.com/pdfcpu/pdfcpu.
type PDFCPU struct {
	kind types.MergeEngine
}

// New returns a pdfcpu engine whose Merge follows kind.
func New(kind types.MergeEngine) (*PDFCPU, error) {
	switch kind {
	case types.EngineOutline, types.EngineStream:
		return &PDFCPU{kind: kind}, nil
	}
	return nil, fmt.Errorf("unsupported merge engine %q", kind)
}

// Name returns "pdfcpu (outline)" or "pdfcpu (stream)".
func (p *PDFCPU) Name() string {
	return fmt.Sprintf("pdfcpu (%s)", p.kind)
}

// config returns a fresh pdfcpu configuration. pdfcpu mutates the
// configuration during a run, so each call gets its own.
func (p *PDFCPU) config() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.CreateBookmarks = p.kind == types.EngineOutline
	return conf
}

func (p *PDFCPU) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

func (p *PDFCPU) Merge(inputs []string, output string) error {
	if len(inputs) == 0 {
		return ErrNoInputs
	}
	for _, in := range inputs {
		if _, err := os.Stat(in); err != nil {
			return fmt.Errorf("merge input %s: %w", in, err)
		}
	}

	if p.kind == types.EngineOutline {
		if err := api.MergeCreateFile(inputs, output, false, p.config()); err != nil {
			return fmt.Errorf("merging into %s: %w", output, err)
		}
		return nil
	}
	return p.mergeStreams(inputs, output)
}

// mergeStreams feeds every input to pdfcpu as an open stream and writes the
// merged document to output. All handles are closed before returning.
func (p *PDFCPU) mergeStreams(inputs []string, output string) (err error) {
	files := make([]*os.File, 0, len(inputs))
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	readers := make([]io.ReadSeeker, 0, len(inputs))
	for _, in := range inputs {
		f, err := os.Open(in)
		if err != nil {
			return fmt.Errorf("opening %s: %w", in, err)
		}
		files = append(files, f)
		readers = append(readers, f)
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", output, err)
	}
	defer func() {
		if cerr := out.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", output, cerr)
		}
		if err != nil {
			os.Remove(output)
		}
	}()

	if err := api.MergeRaw(readers, out, false, p.config()); err != nil {
		return fmt.Errorf("merging into %s: %w", output, err)
	}
	return nil
}

func (p *PDFCPU) Collect(input, output string, ps []int) error {
	if len(ps) == 0 {
		return fmt.Errorf("collecting from %s: %w", input, pages.ErrInvalidPage)
	}
	if err := api.CollectFile(input, output, pages.Selection(ps), p.config()); err != nil {
		return fmt.Errorf("collecting pages of %s into %s: %w", input, output, err)
	}
	return nil
}

func (p *PDFCPU) Rotate(path string, degrees int, ps []int) error {
	var sel []string
	if ps != nil {
		sel = pages.Selection(ps)
	}
	if err := api.RotateFile(path, "", degrees, sel, p.config()); err != nil {
		return fmt.Errorf("rotating %s by %d: %w", path, degrees, err)
	}
	return nil
}
