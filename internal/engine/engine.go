// Package engine implements the RSVP playback engine: a state machine over
// the segmented text that sequences timed word advancement, sentence-end
// pausing, and manual navigation. The engine never touches a display; it
// emits immutable snapshots through a render callback and is driven entirely
// through its command methods.
package engine

import (
	"regexp"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ferduque/fasty/internal/text"
)

// Playback mode.
type Mode int

const (
	ModeNotStarted Mode = iota
	ModePlaying
	ModePaused
)

func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	default:
		return "not-started"
	}
}

// DefaultWPM is the reading rate used when none is configured.
const DefaultWPM = 300

// Counter is the 1-based position of the displayed word.
type Counter struct {
	Current int
	Total   int
}

// Snapshot is the full renderable state of the engine. Frontends consume
// snapshots and never reach into the engine's fields.
type Snapshot struct {
	Split    text.Split
	Word     string
	Counter  Counter
	Progress float64 // percentage
	Status   Status
	Playing  bool
	Started  bool
}

// RenderFunc receives a snapshot whenever the visible state changes.
// Snapshots are delivered in emission order after the state change commits,
// possibly from a timer goroutine. A consumer that blocks delays later
// deliveries but never blocks engine commands or timer callbacks.
type RenderFunc func(Snapshot)

// Option configures an Engine.
type Option func(*Engine)

// WithClock substitutes the timer source, used by tests.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger enables an event trace of state transitions and timer activity.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithSentencePause sets the extra delay after sentence-ending words.
func WithSentencePause(d time.Duration) Option {
	return func(e *Engine) { e.sentencePause = d }
}

// WithWPM sets the initial reading rate.
func WithWPM(wpm int) Option {
	return func(e *Engine) {
		if wpm > 0 {
			e.wpm = wpm
		}
	}
}

// Engine owns playback position, mode, and the advance timers. All command
// methods serialize against timer callbacks, so every callback observes a
// consistent position/mode snapshot.
type Engine struct {
	mu     sync.Mutex
	clock  Clock
	log    zerolog.Logger
	render RenderFunc

	doc        *text.Document
	mode       Mode
	hasStarted bool
	wordIndex  int
	paraIndex  int

	wpm           int
	sentencePause time.Duration

	// gen invalidates callbacks from timers cancelled after firing but
	// before acquiring the lock. Bumped by cancelTimersLocked.
	gen          uint64
	advanceTimer Timer
	pauseTimer   Timer

	// split and word are the displayed state; both are zero while the
	// display is blanked for a sentence pause.
	split text.Split
	word  string

	// renderMu admits one snapshot-delivering goroutine at a time, keeping
	// emission order while mu is free during the render call itself.
	renderMu sync.Mutex
	pending  []Snapshot
}

// New creates an engine that reports display changes through render.
func New(render RenderFunc, opts ...Option) *Engine {
	e := &Engine{
		clock:  NewClock(),
		log:    zerolog.Nop(),
		render: render,
		wpm:    DefaultWPM,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start segments text and begins playback from the first word. On empty
// input it returns text.ErrNoWords and leaves all state untouched.
func (e *Engine) Start(input string) error {
	doc, err := text.Segment(input)
	if err != nil {
		return err
	}
	e.Load(doc)
	return nil
}

// Load begins playback of an already-segmented document, replacing any
// previous text wholesale.
func (e *Engine) Load(doc *text.Document) {
	e.mu.Lock()
	e.cancelTimersLocked()
	e.doc = doc
	e.startLocked()
	e.mu.Unlock()
	e.flush()
}

// startLocked resets position and transitions to Playing.
func (e *Engine) startLocked() {
	e.wordIndex, e.paraIndex = 0, 0
	e.hasStarted = true
	e.mode = ModePlaying
	e.log.Info().Int("words", e.doc.TotalWords).Int("paragraphs", len(e.doc.Paragraphs)).Msg("start")
	e.showCurrentWordLocked()
	e.armAdvanceLocked()
}

// Play resumes timed advancement. No-op while already playing or at the end
// of the text, which is recoverable only via ContinueAfterParagraph.
func (e *Engine) Play() {
	e.mu.Lock()
	e.playLocked()
	e.mu.Unlock()
	e.flush()
}

func (e *Engine) playLocked() {
	if e.doc == nil || e.mode == ModePlaying || e.wordIndex >= e.doc.TotalWords {
		return
	}
	e.mode = ModePlaying
	e.log.Debug().Int("word", e.wordIndex).Msg("play")
	e.showCurrentWordLocked()
	e.armAdvanceLocked()
}

// Pause stops playback and cancels both timers unconditionally. This is the
// sole guaranteed cancellation point for in-flight advances.
func (e *Engine) Pause() {
	e.mu.Lock()
	e.pauseLocked()
	e.mu.Unlock()
	e.flush()
}

func (e *Engine) pauseLocked() {
	if e.doc == nil {
		return
	}
	e.cancelTimersLocked()
	e.mode = ModePaused
	e.log.Debug().Int("word", e.wordIndex).Msg("pause")
	// A display blanked for a sentence pause stays blank until Play
	// re-renders the current word.
	e.emitLocked()
}

// StepForward moves one word ahead, pausing first. Clamped at the last word.
func (e *Engine) StepForward() { e.step(1) }

// StepBackward moves one word back, pausing first. Clamped at the first word.
func (e *Engine) StepBackward() { e.step(-1) }

func (e *Engine) step(delta int) {
	e.mu.Lock()
	e.stepLocked(delta)
	e.mu.Unlock()
	e.flush()
}

func (e *Engine) stepLocked(delta int) {
	if !e.hasStarted || e.doc == nil {
		return
	}
	e.cancelTimersLocked()
	e.mode = ModePaused

	idx := e.wordIndex + delta
	if idx < 0 {
		idx = 0
	}
	if max := e.doc.TotalWords - 1; idx > max {
		idx = max
	}
	e.wordIndex = idx
	e.paraIndex = e.doc.ParagraphContaining(idx)
	e.showCurrentWordLocked()
}

// ContinueAfterParagraph resumes past a paragraph-break pause: from the end
// of the last paragraph it wraps around to the beginning, otherwise it jumps
// to the next paragraph's first word. Either way playback resumes.
func (e *Engine) ContinueAfterParagraph() {
	e.mu.Lock()
	e.continueAfterParagraphLocked()
	e.mu.Unlock()
	e.flush()
}

func (e *Engine) continueAfterParagraphLocked() {
	if !e.hasStarted || e.doc == nil {
		return
	}
	e.cancelTimersLocked()

	last := len(e.doc.Paragraphs) - 1
	if e.paraIndex >= last {
		e.wordIndex, e.paraIndex = 0, 0
		e.log.Debug().Msg("wrap to start")
	} else {
		e.paraIndex++
		e.wordIndex = e.doc.Paragraphs[e.paraIndex].StartWordIndex
		e.log.Debug().Int("paragraph", e.paraIndex).Msg("continue")
	}

	e.mode = ModePaused
	e.playLocked()
}

// RestartCurrentParagraph rewinds to the current paragraph's first word and
// plays, regardless of pause state.
func (e *Engine) RestartCurrentParagraph() {
	e.mu.Lock()
	if e.hasStarted && e.doc != nil {
		e.cancelTimersLocked()
		e.wordIndex = e.doc.Paragraphs[e.paraIndex].StartWordIndex
		e.mode = ModePaused
		e.playLocked()
	}
	e.mu.Unlock()
	e.flush()
}

// HandleUserActivation is the unified primary gesture: start when not
// started, continue past a paragraph break, resume when paused, otherwise
// pause.
func (e *Engine) HandleUserActivation() {
	e.mu.Lock()
	e.handleUserActivationLocked()
	e.mu.Unlock()
	e.flush()
}

func (e *Engine) handleUserActivationLocked() {
	if e.doc == nil {
		return
	}
	switch e.mode {
	case ModeNotStarted:
		e.startLocked()
	case ModePaused:
		if e.wordIndex >= e.doc.Paragraphs[e.paraIndex].End() {
			e.continueAfterParagraphLocked()
			return
		}
		e.playLocked()
	default:
		e.pauseLocked()
	}
}

// Reset returns position and mode to their initial values without touching
// the loaded document.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.cancelTimersLocked()
	e.mode = ModeNotStarted
	e.hasStarted = false
	e.wordIndex, e.paraIndex = 0, 0
	e.split = text.Split{}
	e.word = ""
	e.log.Debug().Msg("reset")
	e.emitLocked()
	e.mu.Unlock()
	e.flush()
}

// SetWPM changes the reading rate. While playing it re-arms a fresh timer
// for the same current word so nothing is skipped or repeated; a pending
// sentence-pause interval is independent of the rate and is left to run.
func (e *Engine) SetWPM(wpm int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if wpm <= 0 {
		return
	}
	e.wpm = wpm
	e.log.Debug().Int("wpm", wpm).Msg("set wpm")
	if e.mode == ModePlaying && e.pauseTimer == nil {
		e.cancelTimersLocked()
		e.armAdvanceLocked()
	}
}

// WPM returns the current reading rate.
func (e *Engine) WPM() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wpm
}

// SetSentencePause changes the extra delay after sentence-ending words,
// taking effect from the next word.
func (e *Engine) SetSentencePause(d time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if d < 0 {
		return
	}
	e.sentencePause = d
}

// Snapshot returns the current renderable state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// sentenceEndRegex matches words ending a sentence: terminal punctuation
// optionally followed by a single closing quote.
var sentenceEndRegex = regexp.MustCompile(`[.!?]["'”’]?$`)

func isSentenceEnd(word string) bool {
	return sentenceEndRegex.MatchString(word)
}

func (e *Engine) baseInterval() time.Duration {
	return time.Minute / time.Duration(e.wpm)
}

// armAdvanceLocked schedules the advance for the currently displayed word.
func (e *Engine) armAdvanceLocked() {
	gen := e.gen
	e.advanceTimer = e.clock.AfterFunc(e.baseInterval(), func() {
		e.onAdvance(gen)
	})
}

// onAdvance fires after the current word's base interval. For sentence-ending
// words with a configured pause it blanks the display and chains the
// sentence-pause timer; otherwise it advances directly.
func (e *Engine) onAdvance(gen uint64) {
	e.mu.Lock()
	e.onAdvanceLocked(gen)
	e.mu.Unlock()
	e.flush()
}

func (e *Engine) onAdvanceLocked(gen uint64) {
	if gen != e.gen || e.mode != ModePlaying {
		return
	}
	e.advanceTimer = nil

	if e.sentencePause > 0 && isSentenceEnd(e.doc.Word(e.wordIndex)) {
		e.split = text.Split{}
		e.word = ""
		e.emitLocked()
		g := e.gen
		e.pauseTimer = e.clock.AfterFunc(e.sentencePause, func() {
			e.onSentencePause(g)
		})
		return
	}
	e.advanceLocked()
}

func (e *Engine) onSentencePause(gen uint64) {
	e.mu.Lock()
	if gen == e.gen && e.mode == ModePlaying {
		e.pauseTimer = nil
		e.advanceLocked()
	}
	e.mu.Unlock()
	e.flush()
}

// advanceLocked is the index-advance step: move to the next word, or pause
// at the paragraph boundary.
func (e *Engine) advanceLocked() {
	e.wordIndex++

	if e.wordIndex >= e.doc.Paragraphs[e.paraIndex].End() {
		e.cancelTimersLocked()
		e.mode = ModePaused
		e.log.Debug().Int("paragraph", e.paraIndex).Msg("paragraph boundary")
		e.emitLocked()
		return
	}
	e.showCurrentWordLocked()
	e.armAdvanceLocked()
}

// showCurrentWordLocked recomputes the ORP split for the current word and
// emits it before any further timer is armed.
func (e *Engine) showCurrentWordLocked() {
	e.word = e.doc.Word(e.wordIndex)
	e.split = text.SplitORP(e.word)
	e.emitLocked()
}

// cancelTimersLocked stops both timers and invalidates any callback that
// already fired but has not yet run.
func (e *Engine) cancelTimersLocked() {
	e.gen++
	if e.advanceTimer != nil {
		e.advanceTimer.Stop()
		e.advanceTimer = nil
	}
	if e.pauseTimer != nil {
		e.pauseTimer.Stop()
		e.pauseTimer = nil
	}
}

// emitLocked queues the current snapshot for delivery by flush.
func (e *Engine) emitLocked() {
	if e.render != nil {
		e.pending = append(e.pending, e.snapshotLocked())
	}
}

// flush delivers queued snapshots with the state lock released, so a slow
// render consumer never blocks a command or a timer callback. One goroutine
// drains at a time; a contender leaves its snapshot for the active drainer.
func (e *Engine) flush() {
	if e.render == nil {
		return
	}
	for {
		if !e.renderMu.TryLock() {
			return
		}
		for {
			e.mu.Lock()
			if len(e.pending) == 0 {
				e.mu.Unlock()
				break
			}
			snap := e.pending[0]
			e.pending = e.pending[1:]
			e.mu.Unlock()
			e.render(snap)
		}
		e.renderMu.Unlock()

		// A contender may have queued between the empty check and the
		// release above. Re-check so its snapshot is not stranded.
		e.mu.Lock()
		again := len(e.pending) > 0
		e.mu.Unlock()
		if !again {
			return
		}
	}
}

func (e *Engine) snapshotLocked() Snapshot {
	s := Snapshot{
		Split:   e.split,
		Word:    e.word,
		Status:  e.statusLocked(),
		Playing: e.mode == ModePlaying,
		Started: e.hasStarted,
	}
	if e.doc == nil {
		return s
	}
	current := e.wordIndex + 1
	if current > e.doc.TotalWords {
		current = e.doc.TotalWords
	}
	s.Counter = Counter{Current: current, Total: e.doc.TotalWords}
	s.Progress = float64(current) / float64(e.doc.TotalWords) * 100
	return s
}
