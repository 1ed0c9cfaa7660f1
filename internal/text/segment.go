// Package text turns raw input into the paragraph/word model used for RSVP
// playback, and computes the Optimal Recognition Point for each word.
package text

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoWords is returned when segmentation produces no words at all.
var ErrNoWords = errors.New("no words in input text")

// DefaultReflowTarget is the word count Reflow aims for per paragraph.
const DefaultReflowTarget = 75

// Paragraph is one display unit of the text: its words plus the offset of its
// first word in the flattened word sequence.
type Paragraph struct {
	Index          int
	Text           string
	Words          []string
	StartWordIndex int
}

// End returns the exclusive upper bound of the paragraph in the flattened
// word sequence.
func (p Paragraph) End() int {
	return p.StartWordIndex + len(p.Words)
}

// Document holds the segmented text. Paragraphs appear in source order and
// their word slices concatenate to the full word sequence.
type Document struct {
	Paragraphs []Paragraph
	TotalWords int
}

// Word returns the word at the given flattened index, or "" if out of range.
func (d *Document) Word(i int) string {
	for _, p := range d.Paragraphs {
		if i < p.End() {
			if i >= p.StartWordIndex {
				return p.Words[i-p.StartWordIndex]
			}
			break
		}
	}
	return ""
}

// ParagraphContaining returns the index of the paragraph holding word i. For
// i at or past the end of the text it returns the last paragraph.
func (d *Document) ParagraphContaining(i int) int {
	for pi, p := range d.Paragraphs {
		if i < p.End() {
			return pi
		}
	}
	return len(d.Paragraphs) - 1
}

// Segment splits text into paragraphs, one per non-empty physical line.
// Returns ErrNoWords when the input contains no words.
func Segment(text string) (*Document, error) {
	normalized := normalizeLineEndings(text)

	var doc Document
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words := extractWords(line)
		if len(words) == 0 {
			continue
		}
		doc.Paragraphs = append(doc.Paragraphs, Paragraph{
			Index:          len(doc.Paragraphs),
			Text:           line,
			Words:          words,
			StartWordIndex: doc.TotalWords,
		})
		doc.TotalWords += len(words)
	}

	if doc.TotalWords == 0 {
		return nil, ErrNoWords
	}
	return &doc, nil
}

// sentenceRegex matches one sentence: text up to terminal punctuation plus
// any trailing space.
var sentenceRegex = regexp.MustCompile(`[^.!?]*[.!?]+\s*`)

// Reflow regroups text into paragraphs of roughly target words by
// accumulating whole sentences. It is an alternative to Segment for text
// without natural line breaks and returns ErrNoWords on empty input.
func Reflow(text string, target int) (*Document, error) {
	if target <= 0 {
		target = DefaultReflowTarget
	}

	normalized := normalizeLineEndings(text)
	flat := strings.Join(extractWords(normalized), " ")

	sentences := sentenceRegex.FindAllString(flat, -1)
	if rest := flat[len(strings.Join(sentences, "")):]; strings.TrimSpace(rest) != "" {
		sentences = append(sentences, rest)
	}

	var doc Document
	var current []string
	flush := func() {
		if len(current) == 0 {
			return
		}
		joined := strings.Join(current, " ")
		doc.Paragraphs = append(doc.Paragraphs, Paragraph{
			Index:          len(doc.Paragraphs),
			Text:           joined,
			Words:          current,
			StartWordIndex: doc.TotalWords,
		})
		doc.TotalWords += len(current)
		current = nil
	}

	for _, s := range sentences {
		words := extractWords(s)
		if len(words) == 0 {
			continue
		}
		if len(current) > 0 && len(current)+len(words) > target {
			flush()
		}
		current = append(current, words...)
	}
	flush()

	if doc.TotalWords == 0 {
		return nil, ErrNoWords
	}
	return &doc, nil
}

// extractWords collapses whitespace runs and splits into words.
func extractWords(s string) []string {
	return strings.Fields(s)
}

func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
