//go:build gui

package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

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

// wordDisplay lays out the before/focus/after triplet with the focus glyph
// anchored at the horizontal center of the window.
func wordDisplay(split text.Split, fontSize float32, windowWidth float32) *fyne.Container {
	beforeText := canvas.NewText(split.Before, color.White)
	beforeText.TextSize = fontSize
	beforeText.TextStyle.Bold = true

	focusText := canvas.NewText(split.Focus, color.RGBA{R: 255, G: 0, B: 0, A: 255})
	focusText.TextSize = fontSize
	focusText.TextStyle.Bold = true

	afterText := canvas.NewText(split.After, color.White)
	afterText.TextSize = fontSize
	afterText.TextStyle.Bold = true

	beforeSize := beforeText.MinSize()
	focusSize := focusText.MinSize()

	centerX := windowWidth / 2
	beforeX := centerX - beforeSize.Width
	if beforeX < 0 {
		beforeX = 0
	}

	c := &fyne.Container{
		Layout: &centerVerticalLayout{},
		Objects: []fyne.CanvasObject{
			beforeText,
			focusText,
			afterText,
		},
	}

	beforeText.Move(fyne.NewPos(beforeX, 0))
	focusText.Move(fyne.NewPos(centerX, 0))
	afterText.Move(fyne.NewPos(centerX+focusSize.Width, 0))

	return c
}

type centerVerticalLayout struct{}

func (l *centerVerticalLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var maxH float32
	for _, o := range objects {
		size := o.MinSize()
		if size.Height > maxH {
			maxH = size.Height
		}
	}
	return fyne.NewSize(0, maxH)
}

func (l *centerVerticalLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	var maxH float32
	for _, o := range objects {
		objSize := o.MinSize()
		if objSize.Height > maxH {
			maxH = objSize.Height
		}
	}

	y := (size.Height - maxH) / 2
	if y < 0 {
		y = 0
	}

	for _, o := range objects {
		pos := o.Position()
		o.Move(fyne.NewPos(pos.X, y))
		o.Resize(o.MinSize())
	}
}

func main() {
	wpm := flag.Int("w", engine.DefaultWPM, "Words per minute")
	pauseMs := flag.Int("pause", 0, "Extra pause after sentence-ending words (milliseconds)")
	reflow := flag.Bool("reflow", false, "Regroup text into paragraphs by sentence, for input without line breaks")
	debugFile := flag.String("debug", "", "Write an engine event trace to this file")
	showVersion := flag.Bool("v", false, "Show version information")
	showVersionLong := flag.Bool("version", false, "Show version information")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Fasty - GUI RSVP Reading Tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  fasty [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nFile formats: plain text, %s\n", strings.Join(source.SupportedFormats(), ", "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  fasty file.txt              Read from file at 300 WPM\n")
		fmt.Fprintf(os.Stderr, "  fasty -pause 250 book.epub  Pause 250ms after each sentence\n")
		fmt.Fprintf(os.Stderr, "  cat file.txt | fasty        Read from stdin\n")
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

	a := app.New()
	w := a.NewWindow("fasty - Speed Reader")

	fontSize := float32(72)

	statusLabel := widget.NewLabel("")
	statusLabel.Alignment = fyne.TextAlignCenter

	messageLabel := widget.NewLabel("")
	messageLabel.Alignment = fyne.TextAlignCenter

	controlsLabel := widget.NewLabel("SPACE: play/pause  ↑/↓: speed  +/-: font  ←/→: step word  R: restart paragraph  Q: quit")
	controlsLabel.Alignment = fyne.TextAlignCenter

	wordContainer := container.NewStack()

	renderSnapshot := func(snap engine.Snapshot, wpm int) {
		canvasWidth := w.Canvas().Size().Width
		if canvasWidth <= 0 {
			canvasWidth = 800
		}

		wordContainer.Objects = []fyne.CanvasObject{
			wordDisplay(snap.Split, fontSize, canvasWidth),
		}
		wordContainer.Refresh()

		pauseText := ""
		if !snap.Playing && snap.Started {
			pauseText = " [PAUSED]"
		}
		statusLabel.SetText(fmt.Sprintf("Word %d/%d | %d WPM | %.0f%%%s",
			snap.Counter.Current, snap.Counter.Total, wpm, snap.Progress, pauseText))
		messageLabel.SetText(snap.Status.Message)
	}

	var eng *engine.Engine
	eng = engine.New(func(snap engine.Snapshot) {
		fyne.Do(func() { renderSnapshot(snap, eng.WPM()) })
	}, opts...)

	w.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		switch key.Name {
		case fyne.KeySpace:
			eng.HandleUserActivation()

		case fyne.KeyUp:
			if wpm := eng.WPM(); wpm < maxWPM {
				eng.SetWPM(wpm + wpmStep)
				renderSnapshot(eng.Snapshot(), eng.WPM())
			}

		case fyne.KeyDown:
			if wpm := eng.WPM(); wpm > minWPM {
				eng.SetWPM(wpm - wpmStep)
				renderSnapshot(eng.Snapshot(), eng.WPM())
			}

		case fyne.KeyLeft:
			eng.StepBackward()

		case fyne.KeyRight:
			eng.StepForward()

		case fyne.KeyF:
			w.SetFullScreen(!w.FullScreen())

		case fyne.KeyQ:
			a.Quit()
		}
	})

	w.Canvas().SetOnTypedRune(func(r rune) {
		switch r {
		case 'r', 'R':
			eng.RestartCurrentParagraph()

		case '+', '=':
			if fontSize < 200 {
				fontSize += 5
				renderSnapshot(eng.Snapshot(), eng.WPM())
			}
		case '-':
			if fontSize > 20 {
				fontSize -= 5
				renderSnapshot(eng.Snapshot(), eng.WPM())
			}
		}
	})

	content := container.NewBorder(
		statusLabel,
		container.NewVBox(messageLabel, controlsLabel),
		nil, nil,
		wordContainer,
	)

	w.Resize(fyne.NewSize(800, 600))
	w.SetContent(content)

	// Load after the window shows so the first snapshot can be drawn.
	go func() {
		time.Sleep(100 * time.Millisecond)
		eng.Load(doc)
		eng.Pause() // GUI starts paused
	}()

	w.ShowAndRun()
}
