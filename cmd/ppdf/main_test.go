package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/ppdf/internal/pdftest"
	"github.com/pdiddy/ppdf/pkg/types"
)

func parseModeFlags(t *testing.T, args ...string) (types.Request, error) {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addModeFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return requestFromFlags(cmd, "in.pdf", types.Config{})
}

func TestRequestFromFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantMode  types.Mode
		wantRange types.PageRange
	}{
		{name: "merge", args: []string{"-m"}, wantMode: types.ModeMerge},
		{name: "split triple", args: []string{"-s", "4,4,1"}, wantMode: types.ModeSplit, wantRange: types.PageRange{Start: 4, End: 4, Step: 1}},
		{name: "split whole document", args: []string{"-s", "-1"}, wantMode: types.ModeSplit, wantRange: types.AllPages},
		{name: "extract repeated flag", args: []string{"-e", "2", "-e", "9"}, wantMode: types.ModeExtract, wantRange: types.PageRange{Start: 2, End: 9, Step: 1}},
		{name: "odd", args: []string{"-o"}, wantMode: types.ModeOdd, wantRange: types.OddPages},
		{name: "even", args: []string{"--even"}, wantMode: types.ModeEven, wantRange: types.EvenPages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := parseModeFlags(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, req.Mode)
			assert.Equal(t, tt.wantRange, req.Range)
			assert.Equal(t, "in.pdf", req.Pattern)
		})
	}
}

func TestRequestFromFlags_Errors(t *testing.T) {
	_, err := parseModeFlags(t)
	assert.ErrorIs(t, err, ErrNoMode)

	_, err = parseModeFlags(t, "-s", "1,2,3,4")
	assert.Error(t, err)
}

func TestModeFlagsAreExclusive(t *testing.T) {
	cmd := &cobra.Command{Use: "test", Args: cobra.ExactArgs(1), RunE: func(*cobra.Command, []string) error { return nil }}
	addModeFlags(cmd)
	cmd.SetArgs([]string{"a.pdf", "-m", "-o"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "none of the others can be")
}

// execute runs rootCmd with args and returns its stdout. Flag values and
// viper state are reset afterwards so tests do not leak into each other.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(resetRoot)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func resetRoot() {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	rootCmd.PersistentFlags().VisitAll(reset)
	rootCmd.Flags().VisitAll(reset)

	viper.Reset()
	bindConfigKeys(rootCmd.PersistentFlags())
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ppdf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRootCommand_MergeCheck(t *testing.T) {
	dir := t.TempDir()
	pdftest.Write(t, dir, "b10.pdf", 1)
	pdftest.Write(t, dir, "b9.pdf", 1)
	t.Chdir(t.TempDir())

	out, err := execute(t, `b\d+`, "-m", "-c", "-p", dir, "-f", "all.pdf")
	require.NoError(t, err)

	assert.Equal(t, "Files to be merged:\n---\nb9.pdf\nb10.pdf\n---\noutput file name: all.pdf\nPage rotation: 0\n", out)
	_, err = os.Stat(filepath.Join(dir, "all.pdf"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	_, err := execute(t, "version")
	require.NoError(t, err)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, types.Config{Engine: types.EngineStream, OutputName: types.DefaultOutputName}, cfg)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, "output_file_name: from-file.pdf\nengine: outline\npage_rotation: 180\noutput_dir: out\n")
	_, err := execute(t, "version", "--config", path)
	require.NoError(t, err)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-file.pdf", cfg.OutputName)
	assert.Equal(t, types.EngineOutline, cfg.Engine)
	assert.Equal(t, 180, cfg.Rotation)
	assert.Equal(t, "out", cfg.OutputDir)
}

func TestLoadConfig_FlagOverridesFile(t *testing.T) {
	path := writeConfig(t, "output_file_name: from-file.pdf\nengine: outline\n")
	_, err := execute(t, "version", "--config", path, "-f", "from-flag.pdf", "-g", "2")
	require.NoError(t, err)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-flag.pdf", cfg.OutputName)
	assert.Equal(t, types.EngineStream, cfg.Engine)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PPDF_OUTPUT_FILE_NAME", "from-env.pdf")
	t.Setenv("PPDF_PAGE_ROTATION", "90")
	_, err := execute(t, "version")
	require.NoError(t, err)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env.pdf", cfg.OutputName)
	assert.Equal(t, 90, cfg.Rotation)
}

func TestLoadConfig_BadEngine(t *testing.T) {
	path := writeConfig(t, "engine: fitz\n")
	_, err := execute(t, "version", "--config", path)
	require.NoError(t, err)

	_, err = loadConfig()
	assert.Error(t, err)
}

func TestRootCommand_EnvironmentReachesPlan(t *testing.T) {
	dir := t.TempDir()
	pdftest.Write(t, dir, "doc.pdf", 1)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PPDF_OUTPUT_FILE_NAME", "env.pdf")

	out, err := execute(t, "doc", "-m", "-c", "-p", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "output file name: env.pdf\n")
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	pdftest.Write(t, dir, "a1.pdf", 2)
	pdftest.Write(t, dir, "a2.pdf", 3)
	outDir := filepath.Join(t.TempDir(), "out")
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	jobFile := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(jobFile, []byte(`defaults:
  engine: outline
  folder: `+dir+`
  output_dir: `+outDir+`
jobs:
  - mode: merge
    pattern: 'a\d'
    output: book.pdf
  - mode: odd
    pattern: book.pdf
    folder: `+outDir+`
    output: odd.pdf
    rotation: 90
`), 0o644))

	out, err := execute(t, "run", jobFile)
	require.NoError(t, err)

	assert.Contains(t, out, "[1/2] merge a\\d\n")
	assert.Contains(t, out, "[2/2] odd book.pdf\n")
	assert.Contains(t, out, "Ran 2 jobs (8 pages written)\n")

	book := filepath.Join(outDir, "book.pdf")
	assert.Equal(t, 5, pdftest.PageCount(t, book))
	odd := filepath.Join(outDir, "odd.pdf")
	require.Equal(t, 3, pdftest.PageCount(t, odd))
	for p := 1; p <= 3; p++ {
		assert.Equal(t, 90, pdftest.Rotation(t, odd, p), "page %d", p)
	}
}

func TestRunCommand_CheckOnly(t *testing.T) {
	dir := t.TempDir()
	pdftest.Write(t, dir, "a1.pdf", 2)
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	jobFile := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(jobFile, []byte("jobs:\n  - {mode: merge, pattern: a, folder: "+dir+"}\n"), 0o644))

	out, err := execute(t, "run", jobFile, "-c")
	require.NoError(t, err)
	assert.Contains(t, out, "Ran 1 jobs (0 pages written, 1 planned only)\n")
	_, err = os.Stat(types.DefaultOutputName)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunCommand_StopsAtFailingJob(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	jobFile := filepath.Join(t.TempDir(), "jobs.yaml")
	require.NoError(t, os.WriteFile(jobFile, []byte("jobs:\n  - {mode: merge, pattern: nothing, folder: "+dir+"}\n  - {mode: odd, pattern: x.pdf}\n"), 0o644))

	out, err := execute(t, "run", jobFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job 1 (merge nothing)")
	assert.NotContains(t, out, "[2/2]")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "ppdf dev\n", out)
}
