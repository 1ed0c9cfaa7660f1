package source

import (
	"bufio"
	"os"
	"regexp"
	"strings"
)

// MarkdownFormat extracts readable text from Markdown files: inline markup
// is stripped so it is not read aloud, wrapped lines of one paragraph are
// joined, and blank lines become paragraph boundaries.
type MarkdownFormat struct{}

func init() {
	Register(&MarkdownFormat{})
}

func (f *MarkdownFormat) Name() string         { return "Markdown" }
func (f *MarkdownFormat) Extensions() []string { return []string{".md", ".markdown"} }

var (
	headerRegex   = regexp.MustCompile(`^#{1,6}\s+`)
	bulletRegex   = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s+`)
	linkRegex     = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	imageRegex    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	emphasisRegex = regexp.MustCompile(`(\*{1,3}|_{1,3}|~~)([^*_~]+)(\*{1,3}|_{1,3}|~~)`)
	codeSpanRegex = regexp.MustCompile("`([^`]*)`")
)

func (f *MarkdownFormat) Extract(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var out strings.Builder
	var current []string
	inFence := false

	flush := func() {
		if len(current) > 0 {
			out.WriteString(strings.Join(current, " "))
			out.WriteString("\n")
			current = nil
		}
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			flush()
			continue
		}
		if inFence {
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}

		// Headings and list items read as their own paragraphs.
		if headerRegex.MatchString(trimmed) || bulletRegex.MatchString(trimmed) {
			flush()
			out.WriteString(stripInline(trimmed))
			out.WriteString("\n")
			continue
		}

		current = append(current, stripInline(trimmed))
	}
	flush()

	return out.String(), scanner.Err()
}

// stripInline removes markup that should not be displayed as words.
func stripInline(s string) string {
	s = headerRegex.ReplaceAllString(s, "")
	s = bulletRegex.ReplaceAllString(s, "")
	s = imageRegex.ReplaceAllString(s, "")
	s = linkRegex.ReplaceAllString(s, "$1")
	s = emphasisRegex.ReplaceAllString(s, "$2")
	s = codeSpanRegex.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
