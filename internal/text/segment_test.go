package text

import (
	"errors"
	"strings"
	"testing"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		paragraphs int
		starts     []int
		totalWords int
	}{
		{
			name:       "two lines",
			input:      "Hello world.\nSecond line here.",
			paragraphs: 2,
			starts:     []int{0, 2},
			totalWords: 5,
		},
		{
			name:       "blank lines skipped",
			input:      "First paragraph here.\n\n\nSecond one.",
			paragraphs: 2,
			starts:     []int{0, 3},
			totalWords: 5,
		},
		{
			name:       "windows line endings",
			input:      "One two\r\nThree four",
			paragraphs: 2,
			starts:     []int{0, 2},
			totalWords: 4,
		},
		{
			name:       "old mac line endings",
			input:      "One\rTwo",
			paragraphs: 2,
			starts:     []int{0, 1},
			totalWords: 2,
		},
		{
			name:       "whitespace collapsed",
			input:      "Hello    world\t\ttest",
			paragraphs: 1,
			starts:     []int{0},
			totalWords: 3,
		},
		{
			name:       "single word",
			input:      "Hello",
			paragraphs: 1,
			starts:     []int{0},
			totalWords: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Segment(tt.input)
			if err != nil {
				t.Fatalf("Segment(%q): %v", tt.input, err)
			}
			if len(doc.Paragraphs) != tt.paragraphs {
				t.Fatalf("got %d paragraphs, want %d", len(doc.Paragraphs), tt.paragraphs)
			}
			if doc.TotalWords != tt.totalWords {
				t.Errorf("TotalWords = %d, want %d", doc.TotalWords, tt.totalWords)
			}
			for i, p := range doc.Paragraphs {
				if p.Index != i {
					t.Errorf("paragraph %d has Index %d", i, p.Index)
				}
				if p.StartWordIndex != tt.starts[i] {
					t.Errorf("paragraph %d StartWordIndex = %d, want %d", i, p.StartWordIndex, tt.starts[i])
				}
			}
		})
	}
}

func TestSegmentNoWords(t *testing.T) {
	for _, input := range []string{"", "   \n  ", "\r\n\r\n", "\t \t"} {
		_, err := Segment(input)
		if !errors.Is(err, ErrNoWords) {
			t.Errorf("Segment(%q) error = %v, want ErrNoWords", input, err)
		}
	}
}

func TestSegmentOffsetsAreRunningSums(t *testing.T) {
	doc, err := Segment("a b c\nd e\nf g h i")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}

	sum := 0
	for i, p := range doc.Paragraphs {
		if p.StartWordIndex != sum {
			t.Errorf("paragraph %d StartWordIndex = %d, want %d", i, p.StartWordIndex, sum)
		}
		sum += len(p.Words)
	}
	if doc.TotalWords != sum {
		t.Errorf("TotalWords = %d, want %d", doc.TotalWords, sum)
	}
}

func TestDocumentWord(t *testing.T) {
	doc, err := Segment("a b\nc d")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}

	for i, want := range []string{"a", "b", "c", "d"} {
		if got := doc.Word(i); got != want {
			t.Errorf("Word(%d) = %q, want %q", i, got, want)
		}
	}
	if got := doc.Word(4); got != "" {
		t.Errorf("Word(4) = %q, want empty", got)
	}
	if got := doc.Word(-1); got != "" {
		t.Errorf("Word(-1) = %q, want empty", got)
	}
}

func TestParagraphContaining(t *testing.T) {
	doc, err := Segment("a b c\nd e")
	if err != nil {
		t.Fatalf("Segment: %v", err)
	}

	tests := []struct {
		index    int
		expected int
	}{
		{0, 0},
		{2, 0},
		{3, 1},
		{4, 1},
		{5, 1}, // end of text maps to last paragraph
	}
	for _, tt := range tests {
		if got := doc.ParagraphContaining(tt.index); got != tt.expected {
			t.Errorf("ParagraphContaining(%d) = %d, want %d", tt.index, got, tt.expected)
		}
	}
}

func TestReflow(t *testing.T) {
	t.Run("groups whole sentences", func(t *testing.T) {
		input := "One two three. Four five. Six seven eight nine."
		doc, err := Reflow(input, 5)
		if err != nil {
			t.Fatalf("Reflow: %v", err)
		}

		// 3+2 words fit in the first paragraph, the third sentence
		// would exceed the target and starts a new one.
		if len(doc.Paragraphs) != 2 {
			t.Fatalf("got %d paragraphs, want 2", len(doc.Paragraphs))
		}
		if got := len(doc.Paragraphs[0].Words); got != 5 {
			t.Errorf("first paragraph has %d words, want 5", got)
		}
		if doc.Paragraphs[1].StartWordIndex != 5 {
			t.Errorf("second paragraph StartWordIndex = %d, want 5", doc.Paragraphs[1].StartWordIndex)
		}
	})

	t.Run("sentences stay intact", func(t *testing.T) {
		input := "Alpha beta gamma delta. Epsilon zeta!"
		doc, err := Reflow(input, 3)
		if err != nil {
			t.Fatalf("Reflow: %v", err)
		}

		// A sentence longer than the target still lands whole.
		if got := len(doc.Paragraphs); got != 2 {
			t.Fatalf("got %d paragraphs, want 2", got)
		}
		if got := doc.Paragraphs[0].Words[3]; got != "delta." {
			t.Errorf("first sentence split: last word %q", got)
		}
	})

	t.Run("trailing text without terminator", func(t *testing.T) {
		doc, err := Reflow("Complete sentence. trailing fragment here", 50)
		if err != nil {
			t.Fatalf("Reflow: %v", err)
		}
		if doc.TotalWords != 5 {
			t.Errorf("TotalWords = %d, want 5", doc.TotalWords)
		}
	})

	t.Run("preserves every word", func(t *testing.T) {
		input := "One two three. Four five? Six! Seven eight nine ten."
		doc, err := Reflow(input, 4)
		if err != nil {
			t.Fatalf("Reflow: %v", err)
		}

		var got []string
		for _, p := range doc.Paragraphs {
			got = append(got, p.Words...)
		}
		want := strings.Fields(input)
		if len(got) != len(want) {
			t.Fatalf("word count = %d, want %d", len(got), len(want))
		}
		for i := range got {
			if got[i] != want[i] {
				t.Errorf("word %d = %q, want %q", i, got[i], want[i])
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if _, err := Reflow("  \n ", 75); !errors.Is(err, ErrNoWords) {
			t.Errorf("error = %v, want ErrNoWords", err)
		}
	})
}

func BenchmarkSegment(b *testing.B) {
	text := strings.Repeat("Hello world this is a test sentence with multiple words.\n", 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Segment(text)
	}
}

func BenchmarkReflow(b *testing.B) {
	text := strings.Repeat("Hello world this is a test sentence with multiple words. ", 100)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Reflow(text, DefaultReflowTarget)
	}
}
