// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pages resolves page ranges against a document's page count and
// validates page rotations.
package pages

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/pdiddy/ppdf/pkg/types"
)

var (
	// ErrInvalidPage reports a range whose start lies outside the document
	// or beyond its end.
	ErrInvalidPage = errors.New("invalid page index")
	// ErrInvalidStep reports a step below 1.
	ErrInvalidStep = errors.New("invalid page step")
	// ErrInvalidRotation reports a rotation that is not a multiple of 90.
	ErrInvalidRotation = errors.New("invalid page rotation")
)

// wholeDocument is the single argument that selects every page.
const wholeDocument = -1

// FromArgs builds a range from the numeric arguments of split and extract:
// start, then optional end (default 0, the last page) and step (default 1).
// A lone -1 selects whole.
func FromArgs(vals []int, whole types.PageRange) (types.PageRange, error) {
	switch {
	case len(vals) == 1 && vals[0] == wholeDocument:
		return whole, nil
	case len(vals) == 0 || len(vals) > 3:
		return types.PageRange{}, fmt.Errorf("expected start[,end[,step]], got %d values", len(vals))
	}

	r := types.PageRange{Start: vals[0], End: 0, Step: 1}
	if len(vals) > 1 {
		r.End = vals[1]
	}
	if len(vals) > 2 {
		r.Step = vals[2]
	}
	if r.End < 0 {
		return types.PageRange{}, fmt.Errorf("end page %d: %w", r.End, ErrInvalidPage)
	}
	return r, nil
}

// Resolve returns the 1-based page numbers r selects in a document of
// pageCount pages, in traversal order. An End of 0 or past the last page is
// clamped to pageCount.
func Resolve(r types.PageRange, pageCount int) ([]int, error) {
	if r.Step < 1 {
		return nil, fmt.Errorf("step %d: %w", r.Step, ErrInvalidStep)
	}
	if r.Start < 1 || r.Start > pageCount {
		return nil, fmt.Errorf("start page %d of %d: %w", r.Start, pageCount, ErrInvalidPage)
	}

	end := r.End
	if end == 0 || end > pageCount {
		end = pageCount
	}
	if r.Start > end {
		return nil, fmt.Errorf("start page %d after end page %d: %w", r.Start, end, ErrInvalidPage)
	}

	// Counted up front so a huge step cannot overflow past end.
	n := (end-r.Start)/r.Step + 1
	out := make([]int, n)
	for i := range out {
		out[i] = r.Start + i*r.Step
	}
	return out, nil
}

// Count returns how many pages Resolve would select.
func Count(r types.PageRange, pageCount int) (int, error) {
	ps, err := Resolve(r, pageCount)
	if err != nil {
		return 0, err
	}
	return len(ps), nil
}

// NormalizeRotation reduces deg into [0, 360). Negative values rotate
// counterclockwise, so -90 becomes 270.
func NormalizeRotation(deg int) (int, error) {
	if deg%90 != 0 {
		return 0, fmt.Errorf("%d degrees is not a multiple of 90: %w", deg, ErrInvalidRotation)
	}
	return ((deg % 360) + 360) % 360, nil
}

// Selection renders page numbers as pdfcpu page selectors.
func Selection(ps []int) []string {
	sel := make([]string, len(ps))
	for i, p := range ps {
		sel[i] = strconv.Itoa(p)
	}
	return sel
}
