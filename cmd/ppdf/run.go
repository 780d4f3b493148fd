package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/ppdf/internal/binder"
	"github.com/pdiddy/ppdf/internal/jobs"
)

var runCmd = &cobra.Command{
	Use:   "run <jobs.yaml>",
	Short: "Run the requests listed in a YAML job file",
	Long: `Run reads a job file and executes each job in order, stopping at the
first failure. Every job names a mode (merge, split, extract, odd, even) and
a pattern; engine, folder, output, output_dir, rotation, and range are
optional and fall back to the file's defaults, then to the usual flags and
configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runJobs,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runJobs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	f, err := jobs.ReadFile(args[0])
	if err != nil {
		return err
	}
	reqs, err := f.Requests(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b := binder.New(binder.DefaultEngines, out, newLogger(cfg.Verbose), cmd.ErrOrStderr())
	pagesWritten, planned := 0, 0
	for i, req := range reqs {
		fmt.Fprintf(out, "[%d/%d] %s %s\n", i+1, len(reqs), req.Mode, req.Pattern)
		res, err := b.Run(req)
		if err != nil {
			return fmt.Errorf("job %d (%s %s): %w", i+1, req.Mode, req.Pattern, err)
		}
		if res.DryRun() {
			planned++
			continue
		}
		pagesWritten += res.Pages
	}

	fmt.Fprintf(out, "\nRan %d jobs (%d pages written", len(reqs), pagesWritten)
	if planned > 0 {
		fmt.Fprintf(out, ", %d planned only", planned)
	}
	fmt.Fprintln(out, ")")
	return nil
}
