// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest writes small, valid PDF fixtures and inspects the files
// tests produce.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/require"
)

// Build returns an uncompressed PDF with pageCount blank pages.
// Page i (1-based) has a MediaBox whose width is 600+i points, so a page's
// origin can be recognized after it has been copied to another file.
func Build(pageCount int) []byte {
	var b bytes.Buffer
	offsets := make([]int, 0, pageCount+2)

	obj := func(body string) {
		offsets = append(offsets, b.Len())
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	b.WriteString("%PDF-1.4\n")
	obj("<< /Type /Catalog /Pages 2 0 R >>")

	var kids bytes.Buffer
	for i := 0; i < pageCount; i++ {
		fmt.Fprintf(&kids, "%d 0 R ", i+3)
	}
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /Resources << >> >>", kids.String(), pageCount))

	for i := 1; i <= pageCount; i++ {
		obj(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %d 792] >>", 600+i))
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(offsets)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return b.Bytes()
}

// Write stores a pageCount-page fixture at dir/name and returns its path.
func Write(t testing.TB, dir, name string, pageCount int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, Build(pageCount), 0o644))
	return path
}

// PageCount returns the page count of the PDF at path.
func PageCount(t testing.TB, path string) int {
	t.Helper()
	n, err := api.PageCountFile(path)
	require.NoError(t, err)
	return n
}

// Rotation returns the effective /Rotate value of the given 1-based page.
func Rotation(t testing.TB, path string, page int) int {
	t.Helper()
	ctx := readContext(t, path)
	_, _, inh, err := ctx.PageDict(page, false)
	require.NoError(t, err)
	return inh.Rotate
}

// Width returns the MediaBox width of the given 1-based page. Pages built by
// Build are 600+n points wide, where n is the page's number in the fixture.
func Width(t testing.TB, path string, page int) int {
	t.Helper()
	ctx := readContext(t, path)
	_, _, inh, err := ctx.PageDict(page, false)
	require.NoError(t, err)
	require.NotNil(t, inh.MediaBox)
	return int(inh.MediaBox.Width())
}

// Outline returns the top-level bookmarks of the PDF at path as
// "title@page" entries, in outline order. A file without an outline yields
// an empty slice.
func Outline(t testing.TB, path string) []string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	bms, err := api.Bookmarks(f, nil)
	require.NoError(t, err)
	out := make([]string, 0, len(bms))
	for _, bm := range bms {
		out = append(out, fmt.Sprintf("%s@%d", bm.Title, bm.PageFrom))
	}
	return out
}

func readContext(t testing.TB, path string) *model.Context {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	require.NoError(t, err)
	require.NoError(t, ctx.EnsurePageCount())
	return ctx
}
