// Package pdftest writes small PDF fixtures for loader tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Write writes a PDF with one page per entry of pages and returns its path.
// Each page entry is a list of lines drawn top to bottom in 24pt Helvetica.
func Write(t testing.TB, pages [][]string) string {
	t.Helper()

	streams := make([]string, len(pages))
	esc := strings.NewReplacer(`\`, `\\`, "(", `\(`, ")", `\)`)
	for i, lines := range pages {
		var cs strings.Builder
		cs.WriteString("BT /F1 24 Tf 72 720 Td ")
		for j, ln := range lines {
			if j > 0 {
				cs.WriteString("0 -30 Td ")
			}
			cs.WriteString("(" + esc.Replace(ln) + ") Tj ")
		}
		cs.WriteString("ET")
		streams[i] = cs.String()
	}
	return WriteContent(t, streams)
}

// WriteContent writes a PDF whose pages use the given raw content streams,
// with /F1 bound to Helvetica. Streams are written as is, so callers can
// produce damaged pages.
func WriteContent(t testing.TB, streams []string) string {
	t.Helper()

	n := len(streams)
	// 1 catalog, 2 pages tree, 3 font, then a page and a content stream per page.
	objs := make([]string, 3+2*n)
	kids := make([]string, n)
	for i := range streams {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	widths := strings.TrimSpace(strings.Repeat("500 ", 95))
	objs[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	objs[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n)
	objs[2] = "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding " +
		"/FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>"

	for i, content := range streams {
		objs[3+2*i] = fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
			"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i)
		objs[4+2*i] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objs)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)

	path := filepath.Join(t.TempDir(), "book.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}
