// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package binder

import (
	"fmt"
	"io"

	"github.com/pdiddy/ppdf/pkg/types"
)

// writeMergePlan prints the files a merge will bind and where it writes.
func writeMergePlan(w io.Writer, names []string, cfg types.Config) {
	fmt.Fprintln(w, "Files to be merged:")
	fmt.Fprintln(w, "---")
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "output file name: %s\n", cfg.OutputName)
	fmt.Fprintf(w, "Page rotation: %d\n", cfg.Rotation)
}

// writeRangePlan prints the input, range, and rotation of a split or
// extract request.
func writeRangePlan(w io.Writer, mode types.Mode, input string, r types.PageRange, cfg types.Config) {
	if mode == types.ModeSplit {
		fmt.Fprintf(w, "File to be splitted: %s\n", input)
	} else {
		fmt.Fprintf(w, "File to extract from: %s\n", input)
		fmt.Fprintf(w, "output file name: %s\n", cfg.OutputName)
	}

	switch mode {
	case types.ModeOdd:
		fmt.Fprintln(w, "Extract odd pages")
	case types.ModeEven:
		fmt.Fprintln(w, "Extract even pages")
	default:
		fmt.Fprintf(w, "start page: %d\n", r.Start)
		fmt.Fprintf(w, "end page:   %s\n", r.EndLabel())
		fmt.Fprintf(w, "step:       %d\n", r.Step)
	}
	fmt.Fprintf(w, "Page rotation: %d\n", cfg.Rotation)
}
