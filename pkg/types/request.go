// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Mode selects one of the mutually exclusive operations.
type Mode string

const (
	ModeMerge   Mode = "merge"
	ModeSplit   Mode = "split"
	ModeExtract Mode = "extract"
	ModeOdd     Mode = "odd"
	ModeEven    Mode = "even"
)

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeMerge, ModeSplit, ModeExtract, ModeOdd, ModeEven:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q: use merge, split, extract, odd, or even", s)
}

// PageRange describes which pages go into an output. Start is 1-based.
// An End of 0 means the last page of the document.
type PageRange struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
	Step  int `json:"step" yaml:"step"`
}

var (
	// AllPages covers the whole document.
	AllPages = PageRange{Start: 1, End: 0, Step: 1}
	// OddPages covers pages 1, 3, 5, ...
	OddPages = PageRange{Start: 1, End: 0, Step: 2}
	// EvenPages covers pages 2, 4, 6, ...
	EvenPages = PageRange{Start: 2, End: 0, Step: 2}
)

// EndLabel renders End for display, using "last" for 0.
func (r PageRange) EndLabel() string {
	if r.End == 0 {
		return "last"
	}
	return fmt.Sprintf("%d", r.End)
}

func (r PageRange) String() string {
	return fmt.Sprintf("%d-%s/%d", r.Start, r.EndLabel(), r.Step)
}

// Request is one unit of work: a mode applied to the files named by Pattern.
// For merge, Pattern is a regular expression matched against the folder
// listing. For the other modes it names a single input file.
type Request struct {
	Mode    Mode      `json:"mode" yaml:"mode"`
	Pattern string    `json:"pattern" yaml:"pattern"`
	Range   PageRange `json:"range" yaml:"range"`
	Config  Config    `json:"config" yaml:"config"`
}

// Result reports what a Request produced.
type Result struct {
	Mode    Mode     `json:"mode" yaml:"mode"`
	Inputs  []string `json:"inputs" yaml:"inputs"`
	Outputs []string `json:"outputs" yaml:"outputs"`
	// Pages is the number of pages written across all outputs.
	Pages int `json:"pages" yaml:"pages"`
}

// DryRun reports whether the request only printed its plan.
func (r Result) DryRun() bool {
	return len(r.Outputs) == 0
}
