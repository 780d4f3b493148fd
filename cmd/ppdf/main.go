// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the ppdf CLI, which merges, splits,
// and extracts pages from PDF files selected by filename pattern.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/ppdf/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd binds, splits, or extracts pages. The subcommands run job files
// and print the version.
var rootCmd = &cobra.Command{
	Use:   "ppdf <pattern>",
	Short: "Merge, split, or extract pages from PDF files",
	Long: `ppdf merges, splits, or extracts PDF pages.

In merge mode (-m) the pattern is a case-insensitive regular expression
matched against the start of each file name in the folder (-p). Matches are
bound in natural order, so file2.pdf comes before file10.pdf. In every other
mode the pattern names a single input file.

Split (-s) and extract (-e) take start,end,step. An end of 0 means the last
page, and -1 alone selects the whole document. Split writes one "page N.pdf"
per page. Extract, odd (-o), and even (-n) write a single file (-f).

Examples:
  ppdf ".*pdf" -m -f output_file.pdf
  ppdf pdf_file_name.pdf -s 4,4,1
  ppdf scan.pdf -o -r 90 -f odd.pdf`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	RunE:          runBind,
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default: ./ppdf.yaml or ~/.config/ppdf/config.yaml)")
	flags.StringP("output-file-name", "f", "", "output file name for merge and extract (default binder.pdf)")
	flags.StringP("folder-path", "p", "", "folder containing the input files (default: working directory)")
	flags.StringP("output-dir", "d", "", "directory outputs are written to (default: working directory)")
	flags.IntP("page-rotation", "r", 0, "clockwise rotation applied to each output page, a multiple of 90")
	flags.StringP("engine", "g", "", "merge engine: outline (1, adds bookmarks) or stream (2, default)")
	flags.BoolP("verbose", "v", false, "print the plan and debug logs")
	flags.BoolP("check-output", "c", false, "print the plan without writing anything")
	bindConfigKeys(flags)

	addModeFlags(rootCmd)
}

// configKeys maps config file and PPDF_* environment keys to their flags.
var configKeys = map[string]string{
	"output_file_name": "output-file-name",
	"folder_path":      "folder-path",
	"output_dir":       "output-dir",
	"page_rotation":    "page-rotation",
	"engine":           "engine",
	"verbose":          "verbose",
	"check_output":     "check-output",
}

func bindConfigKeys(flags *pflag.FlagSet) {
	for key, flag := range configKeys {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(err)
		}
	}
	viper.SetDefault("output_file_name", types.DefaultOutputName)
	viper.SetDefault("engine", string(types.EngineStream))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("ppdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "ppdf"))
		}
	}

	viper.SetEnvPrefix("PPDF")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the shared options from flags, environment, config
// file, and defaults, in that order of precedence.
func loadConfig() (types.Config, error) {
	kind, err := types.ParseMergeEngine(viper.GetString("engine"))
	if err != nil {
		return types.Config{}, err
	}
	return types.Config{
		Engine:     kind,
		OutputName: viper.GetString("output_file_name"),
		FolderPath: viper.GetString("folder_path"),
		OutputDir:  viper.GetString("output_dir"),
		Rotation:   viper.GetInt("page_rotation"),
		Verbose:    viper.GetBool("verbose"),
		Check:      viper.GetBool("check_output"),
	}, nil
}

// newLogger returns the stderr logger. Debug output is shown only when
// verbose is set.
func newLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	log.SetLevel(logrus.WarnLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
