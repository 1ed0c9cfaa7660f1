package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// splitNonEmptyLines trims each line and drops blanks, mirroring what the
// segmenter does with extracted text.
func splitNonEmptyLines(s string) []string {
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}

func TestExtract(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("plain text", func(t *testing.T) {
		content := "Hello world this is a test."
		path := filepath.Join(tmpDir, "test.txt")
		os.WriteFile(path, []byte(content), 0644)

		got, err := Extract(path)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if got != content {
			t.Errorf("got %q, want %q", got, content)
		}
	})

	t.Run("unknown extension falls back to plain text", func(t *testing.T) {
		content := "raw bytes as-is"
		path := filepath.Join(tmpDir, "test.log")
		os.WriteFile(path, []byte(content), 0644)

		got, err := Extract(path)
		if err != nil {
			t.Fatalf("Extract: %v", err)
		}
		if got != content {
			t.Errorf("got %q, want %q", got, content)
		}
	})

	t.Run("nonexistent file", func(t *testing.T) {
		_, err := Extract(filepath.Join(tmpDir, "nonexistent.txt"))
		if err == nil {
			t.Error("expected error")
		}
	})
}

func TestEPUBFormat(t *testing.T) {
	f := &EPUBFormat{}
	if f.Name() != "EPUB" {
		t.Errorf("Name() = %q, want EPUB", f.Name())
	}
	if exts := f.Extensions(); len(exts) != 1 || exts[0] != ".epub" {
		t.Errorf("Extensions() = %v, want [.epub]", exts)
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) == 0 {
		t.Error("no formats registered")
	}
	want := map[string]bool{
		"EPUB (.epub)":              false,
		"Markdown (.md, .markdown)": false,
	}
	for _, f := range formats {
		if _, ok := want[f]; ok {
			want[f] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("%s not registered: %v", name, formats)
		}
	}
}

func TestParagraphsFromHTML(t *testing.T) {
	html := `<html><body>
<h1>Title</h1>
<p>First paragraph with <em>emphasis</em> inline.</p>
<p>Second paragraph.</p>
</body></html>`

	got := paragraphsFromHTML(html)

	// Block boundaries become newlines; inline elements do not split.
	wantLines := []string{"Title", "First paragraph with emphasis inline.", "Second paragraph."}
	var lines []string
	for _, l := range splitNonEmptyLines(got) {
		lines = append(lines, l)
	}
	if len(lines) != len(wantLines) {
		t.Fatalf("got %d paragraphs %q, want %d", len(lines), lines, len(wantLines))
	}
	for i := range lines {
		if lines[i] != wantLines[i] {
			t.Errorf("paragraph %d = %q, want %q", i, lines[i], wantLines[i])
		}
	}
}
