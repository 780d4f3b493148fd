// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package binder runs merge, split, and extract requests. It selects the
// input files, resolves page ranges, and drives an engine.Engine to write
// the outputs.
package binder

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/ppdf/internal/engine"
	"github.com/pdiddy/ppdf/internal/pages"
	"github.com/pdiddy/ppdf/internal/selection"
	"github.com/pdiddy/ppdf/pkg/types"
)

var (
	// ErrNoMatches is returned when a merge pattern selects no files.
	ErrNoMatches = errors.New("no files match pattern")
	// ErrUnknownMode is returned for a request without a valid mode.
	ErrUnknownMode = errors.New("unknown mode")
)

// EngineFactory builds the engine for a request's merge engine setting.
type EngineFactory func(kind types.MergeEngine) (engine.Engine, error)

// DefaultEngines builds pdfcpu engines.
func DefaultEngines(kind types.MergeEngine) (engine.Engine, error) {
	return engine.New(kind)
}

// Binder executes requests one at a time.
type Binder struct {
	engines  EngineFactory
	out      io.Writer
	log      *logrus.Logger
	progress io.Writer
}

// New returns a Binder that writes status lines to out, diagnostics to log,
// and split progress to progress. A nil log or progress discards that
// output.
func New(engines EngineFactory, out io.Writer, log *logrus.Logger, progress io.Writer) *Binder {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if progress == nil {
		progress = io.Discard
	}
	return &Binder{engines: engines, out: out, log: log, progress: progress}
}

// Run executes req. In check mode it prints the plan and writes nothing;
// the returned Result then has no outputs.
func (b *Binder) Run(req types.Request) (types.Result, error) {
	cfg := req.Config.WithDefaults()
	rot, err := pages.NormalizeRotation(cfg.Rotation)
	if err != nil {
		return types.Result{}, err
	}

	b.log.WithFields(logrus.Fields{
		"mode":    req.Mode,
		"pattern": req.Pattern,
		"folder":  cfg.FolderPath,
		"engine":  cfg.Engine,
	}).Debug("running request")

	switch req.Mode {
	case types.ModeMerge:
		return b.merge(req.Pattern, cfg, rot)
	case types.ModeSplit:
		return b.split(req.Pattern, req.Range, cfg, rot)
	case types.ModeExtract:
		return b.extract(req.Mode, req.Pattern, req.Range, cfg, rot)
	case types.ModeOdd:
		return b.extract(req.Mode, req.Pattern, types.OddPages, cfg, rot)
	case types.ModeEven:
		return b.extract(req.Mode, req.Pattern, types.EvenPages, cfg, rot)
	}
	return types.Result{}, fmt.Errorf("%w %q", ErrUnknownMode, req.Mode)
}

func (b *Binder) merge(pattern string, cfg types.Config, rot int) (types.Result, error) {
	result := types.Result{Mode: types.ModeMerge}
	output := filepath.Join(cfg.OutputDir, cfg.OutputName)

	names, err := selection.Select(cfg.FolderPath, pattern)
	if err != nil {
		return result, err
	}
	names = b.withoutOutput(names, cfg.FolderPath, output)
	if len(names) == 0 {
		return result, fmt.Errorf("%w %q in %s", ErrNoMatches, pattern, cfg.FolderPath)
	}
	result.Inputs = selection.ResolveAll(cfg.FolderPath, names)

	if cfg.Check {
		writeMergePlan(b.out, names, cfg)
		return result, nil
	}

	e, err := b.engines(cfg.Engine)
	if err != nil {
		return result, err
	}
	fmt.Fprintf(b.out, "Binding with %s...\n", e.Name())

	for _, in := range result.Inputs {
		n, err := e.PageCount(in)
		if err != nil {
			return result, err
		}
		b.log.WithFields(logrus.Fields{"input": in, "pages": n}).Debug("merge input")
		result.Pages += n
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output directory: %w", err)
	}
	if err := e.Merge(result.Inputs, output); err != nil {
		return result, err
	}
	if rot != 0 {
		if err := e.Rotate(output, rot, nil); err != nil {
			return result, err
		}
	}
	result.Outputs = []string{output}
	fmt.Fprintln(b.out, "Done!")

	if cfg.Verbose {
		writeMergePlan(b.out, names, cfg)
	}
	fmt.Fprintf(b.out, "Merged %d files (%d pages) into %s\n", len(result.Inputs), result.Pages, output)
	return result, nil
}

// withoutOutput drops the merge output from the candidate inputs, so a
// rerun does not fold the previous binder into the new one.
func (b *Binder) withoutOutput(names []string, dir, output string) []string {
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return names
	}
	kept := make([]string, 0, len(names))
	for _, n := range names {
		inAbs, err := filepath.Abs(selection.Resolve(dir, n))
		if err == nil && inAbs == outAbs {
			b.log.WithField("file", n).Warn("skipping merge output in input selection")
			continue
		}
		kept = append(kept, n)
	}
	return kept
}

func (b *Binder) split(name string, r types.PageRange, cfg types.Config, rot int) (types.Result, error) {
	input := selection.Resolve(cfg.FolderPath, name)
	result := types.Result{Mode: types.ModeSplit, Inputs: []string{input}}

	if cfg.Check || cfg.Verbose {
		writeRangePlan(b.out, types.ModeSplit, name, r, cfg)
	}
	if cfg.Check {
		return result, nil
	}

	e, ps, err := b.open(input, r, cfg)
	if err != nil {
		return result, err
	}

	bar := progressbar.NewOptions(len(ps),
		progressbar.OptionSetWriter(b.progress),
		progressbar.OptionSetDescription("Splitting "+filepath.Base(input)),
		progressbar.OptionShowCount(),
	)
	for _, p := range ps {
		output := filepath.Join(cfg.OutputDir, fmt.Sprintf("page %d.pdf", p))
		if err := e.Collect(input, output, []int{p}); err != nil {
			return result, err
		}
		if rot != 0 {
			if err := e.Rotate(output, rot, nil); err != nil {
				return result, err
			}
		}
		b.log.WithFields(logrus.Fields{"page": p, "output": output}).Debug("wrote page")
		result.Outputs = append(result.Outputs, output)
		result.Pages++
		bar.Add(1)
	}
	bar.Finish()
	fmt.Fprintln(b.progress)

	fmt.Fprintf(b.out, "Split %s into %d files\n", input, len(result.Outputs))
	return result, nil
}

func (b *Binder) extract(mode types.Mode, name string, r types.PageRange, cfg types.Config, rot int) (types.Result, error) {
	input := selection.Resolve(cfg.FolderPath, name)
	output := filepath.Join(cfg.OutputDir, cfg.OutputName)
	result := types.Result{Mode: mode, Inputs: []string{input}}

	if cfg.Check || cfg.Verbose {
		writeRangePlan(b.out, mode, name, r, cfg)
	}
	if cfg.Check {
		return result, nil
	}

	e, ps, err := b.open(input, r, cfg)
	if err != nil {
		return result, err
	}
	if err := e.Collect(input, output, ps); err != nil {
		return result, err
	}
	if rot != 0 {
		if err := e.Rotate(output, rot, nil); err != nil {
			return result, err
		}
	}
	result.Outputs = []string{output}
	result.Pages = len(ps)

	fmt.Fprintf(b.out, "Extracted %d pages from %s into %s\n", len(ps), input, output)
	return result, nil
}

// open builds the engine, resolves r against the input's page count, and
// makes sure the output directory exists.
func (b *Binder) open(input string, r types.PageRange, cfg types.Config) (engine.Engine, []int, error) {
	e, err := b.engines(cfg.Engine)
	if err != nil {
		return nil, nil, err
	}
	n, err := e.PageCount(input)
	if err != nil {
		return nil, nil, err
	}
	ps, err := pages.Resolve(r, n)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", input, err)
	}
	b.log.WithFields(logrus.Fields{
		"input":    input,
		"pages":    n,
		"range":    r.String(),
		"selected": len(ps),
	}).Debug("resolved page range")

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating output directory: %w", err)
	}
	return e, ps, nil
}
