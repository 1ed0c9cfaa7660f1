package engine

// Status is the message shown alongside the word display. IsBreak marks
// paragraph and end-of-text pauses, which frontends style differently from
// an ordinary pause.
type Status struct {
	Message string
	IsBreak bool
}

const (
	msgPaused         = "Paused. Press space to continue."
	msgEndOfParagraph = "End of paragraph. Press space to continue."
	msgEndOfText      = "End of text. Press space to restart."
)

// statusLocked derives the status purely from position, mode, and paragraph
// boundaries. It is the only place the paragraph-break distinction is made.
func (e *Engine) statusLocked() Status {
	if e.mode != ModePaused || e.doc == nil {
		return Status{}
	}

	para := e.doc.Paragraphs[e.paraIndex]
	switch {
	case e.wordIndex >= e.doc.TotalWords:
		return Status{Message: msgEndOfText, IsBreak: true}
	case e.wordIndex >= para.End():
		return Status{Message: msgEndOfParagraph, IsBreak: true}
	default:
		return Status{Message: msgPaused}
	}
}
