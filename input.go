package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferduque/fasty/internal/engine"
	"github.com/ferduque/fasty/internal/source"
	"github.com/ferduque/fasty/internal/text"
)

// loadText returns the input text from the file argument or stdin.
func loadText(args []string) (string, error) {
	if len(args) > 0 {
		filename := args[0]
		content, err := source.Extract(filename)
		if err != nil {
			return "", fmt.Errorf("failed to read file '%s': %w", filename, err)
		}
		return content, nil
	}

	stat, _ := os.Stdin.Stat()
	if (stat.Mode() & os.ModeCharDevice) != 0 {
		return "", fmt.Errorf("no input provided, provide a file or pipe text to stdin")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("error reading stdin: %w", err)
	}
	return string(data), nil
}

// buildDocument segments the text, optionally reflowing it into paragraphs
// of roughly DefaultReflowTarget words for input without line structure.
func buildDocument(input string, reflow bool) (*text.Document, error) {
	if strings.TrimSpace(input) == "" {
		return nil, text.ErrNoWords
	}
	if reflow {
		return text.Reflow(input, text.DefaultReflowTarget)
	}
	return text.Segment(input)
}

// engineOptions assembles the engine configuration shared by both frontends.
func engineOptions(wpm, pauseMs int, debugFile string) ([]engine.Option, func(), error) {
	opts := []engine.Option{
		engine.WithWPM(wpm),
		engine.WithSentencePause(time.Duration(pauseMs) * time.Millisecond),
	}
	cleanup := func() {}

	if debugFile != "" {
		f, err := os.OpenFile(debugFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open debug log: %w", err)
		}
		log := zerolog.New(f).With().Timestamp().Logger()
		opts = append(opts, engine.WithLogger(log))
		cleanup = func() { f.Close() }
	}

	return opts, cleanup, nil
}
