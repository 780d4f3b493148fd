package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ppdf/internal/binder"
	"github.com/pdiddy/ppdf/internal/pages"
	"github.com/pdiddy/ppdf/pkg/types"
)

// ErrNoMode is returned when none of the mode flags is given.
var ErrNoMode = errors.New("select a mode: -m (merge), -s (split), -e (extract), -o (odd), or -n (even)")

var modeFlags = []string{"merge", "split", "extract", "odd", "even"}

// addModeFlags registers the mutually exclusive mode flags on cmd.
func addModeFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("merge", "m", false, "merge the matching files into one")
	cmd.Flags().IntSliceP("split", "s", nil, "split to one file per page: start,end,step")
	cmd.Flags().IntSliceP("extract", "e", nil, "extract to a single file: start,end,step")
	cmd.Flags().BoolP("odd", "o", false, "extract odd pages to a single file")
	cmd.Flags().BoolP("even", "n", false, "extract even pages to a single file")
	cmd.MarkFlagsMutuallyExclusive(modeFlags...)
}

// requestFromFlags builds the request selected by cmd's mode flags.
func requestFromFlags(cmd *cobra.Command, pattern string, cfg types.Config) (types.Request, error) {
	flags := cmd.Flags()
	req := types.Request{Pattern: pattern, Config: cfg}

	merge, _ := flags.GetBool("merge")
	odd, _ := flags.GetBool("odd")
	even, _ := flags.GetBool("even")

	var err error
	switch {
	case merge:
		req.Mode = types.ModeMerge
	case flags.Changed("split"):
		req.Mode = types.ModeSplit
		vals, _ := flags.GetIntSlice("split")
		req.Range, err = pages.FromArgs(vals, types.AllPages)
	case flags.Changed("extract"):
		req.Mode = types.ModeExtract
		vals, _ := flags.GetIntSlice("extract")
		req.Range, err = pages.FromArgs(vals, types.AllPages)
	case odd:
		req.Mode = types.ModeOdd
		req.Range = types.OddPages
	case even:
		req.Mode = types.ModeEven
		req.Range = types.EvenPages
	default:
		return req, ErrNoMode
	}
	return req, err
}

func runBind(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	req, err := requestFromFlags(cmd, args[0], cfg)
	if err != nil {
		return err
	}

	b := binder.New(binder.DefaultEngines, cmd.OutOrStdout(), newLogger(cfg.Verbose), cmd.ErrOrStderr())
	_, err = b.Run(req)
	return err
}
