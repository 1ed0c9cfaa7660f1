//go:build !gui

package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ferduque/fasty/internal/engine"
	"github.com/ferduque/fasty/internal/source"
	"github.com/ferduque/fasty/internal/text"
)

// Version info (injected via ldflags)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	minWPM  = 100
	maxWPM  = 1500
	wpmStep = 50
)

var (
	focusStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF0000"))

	wordStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Padding(0, 1)

	controlsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)

	pausedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)

	breakStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AAFF")).
			Bold(true)
)

type model struct {
	engine *engine.Engine
	doc    *text.Document
	snap   engine.Snapshot
	bar    progress.Model

	quitting bool
	width    int
	height   int
}

// snapshotMsg carries a fresh engine snapshot into the update loop.
type snapshotMsg engine.Snapshot

// Init starts playback once the event loop is running, so the engine's
// first snapshot has somewhere to go.
func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		m.engine.Load(m.doc)
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case " ":
			m.engine.HandleUserActivation()
			return m, nil

		case "up", "+", "=":
			if wpm := m.engine.WPM(); wpm < maxWPM {
				m.engine.SetWPM(wpm + wpmStep)
			}
			return m, nil

		case "down", "-":
			if wpm := m.engine.WPM(); wpm > minWPM {
				m.engine.SetWPM(wpm - wpmStep)
			}
			return m, nil

		case "left":
			m.engine.StepBackward()
			return m, nil

		case "right":
			m.engine.StepForward()
			return m, nil

		case "r", "R":
			m.engine.RestartCurrentParagraph()
			return m, nil

		case "q", "Q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = barWidth(msg.Width)
		return m, nil

	case snapshotMsg:
		m.snap = engine.Snapshot(msg)
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.snap

	status := statusStyle.Render(fmt.Sprintf("Word %d/%d | %d WPM",
		snap.Counter.Current,
		snap.Counter.Total,
		m.engine.WPM(),
	)) + " " + m.bar.ViewAs(snap.Progress/100)

	message := ""
	if snap.Status.Message != "" {
		style := pausedStyle
		if snap.Status.IsBreak {
			style = breakStyle
		}
		message = style.Render(snap.Status.Message)
	}

	controls := controlsStyle.Render("SPACE: play/pause/continue  ↑/↓: speed  ←/→: step word  R: restart paragraph  Q: quit")

	// Reserve 3 lines: status at top, message and controls at bottom.
	avail := m.height - 3
	if avail < 1 {
		avail = 1
	}
	vPad := avail / 2

	var sb strings.Builder

	sb.WriteString(status)
	sb.WriteString("\n")

	for i := 0; i < vPad; i++ {
		sb.WriteString("\n")
	}

	sb.WriteString(anchorORPLine(snap, m.width))

	for i := 0; i < avail-vPad; i++ {
		sb.WriteString("\n")
	}

	sb.WriteString(message)
	sb.WriteString("\n")
	sb.WriteString(controls)

	return sb.String()
}

// anchorORPLine renders the split word with its focus character at the
// horizontal center of the terminal.
func anchorORPLine(snap engine.Snapshot, width int) string {
	split := snap.Split
	if split.IsBlank() {
		return ""
	}

	pad := width/2 - utf8.RuneCountInString(split.Before)
	if pad < 0 {
		pad = 0
	}

	return strings.Repeat(" ", pad) +
		wordStyle.Render(split.Before) +
		focusStyle.Render(split.Focus) +
		wordStyle.Render(split.After)
}

func barWidth(termWidth int) int {
	w := termWidth - 40
	if w > 30 {
		w = 30
	}
	if w < 10 {
		w = 10
	}
	return w
}

func main() {
	wpm := flag.Int("w", engine.DefaultWPM, "Words per minute")
	pauseMs := flag.Int("pause", 0, "Extra pause after sentence-ending words (milliseconds)")
	reflow := flag.Bool("reflow", false, "Regroup text into paragraphs by sentence, for input without line breaks")
	debugFile := flag.String("debug", "", "Write an engine event trace to this file")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Fasty - Terminal RSVP Reading Tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  fasty [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nFile formats: plain text, %s\n", strings.Join(source.SupportedFormats(), ", "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fasty file.txt              Read from file at 300 WPM\n")
		fmt.Fprintf(os.Stderr, "  fasty -w 500 file.txt       Read from file at 500 WPM\n")
		fmt.Fprintf(os.Stderr, "  fasty -pause 250 book.epub  Pause 250ms after each sentence\n")
		fmt.Fprintf(os.Stderr, "  cat file.txt | fasty        Read from stdin\n")
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  SPACE    Play/pause, continue past a paragraph break\n")
		fmt.Fprintf(os.Stderr, "  +/-      Increase/decrease speed by 50 WPM\n")
		fmt.Fprintf(os.Stderr, "  ↑/↓      Increase/decrease speed by 50 WPM\n")
		fmt.Fprintf(os.Stderr, "  ←/→      Step one word back/forward\n")
		fmt.Fprintf(os.Stderr, "  R        Restart current paragraph\n")
		fmt.Fprintf(os.Stderr, "  Q        Quit\n")
	}
	flag.Parse()

	if *showVersion || *showVersionLong {
		fmt.Printf("fasty %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	input, err := loadText(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Try: fasty -h")
		os.Exit(1)
	}

	doc, err := buildDocument(input, *reflow)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error: No text to read.")
		os.Exit(1)
	}

	opts, cleanup, err := engineOptions(*wpm, *pauseMs, *debugFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	var p *tea.Program
	eng := engine.New(func(s engine.Snapshot) {
		p.Send(snapshotMsg(s))
	}, opts...)

	m := model{
		engine: eng,
		doc:    doc,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:  80,
		height: 24,
	}
	m.bar.Width = barWidth(m.width)

	p = tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
