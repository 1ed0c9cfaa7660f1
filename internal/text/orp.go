package text

// Split is a word divided around its Optimal Recognition Point. Focus is a
// single character, or "" when the ORP index falls past the end of the word.
type Split struct {
	Before string
	Focus  string
	After  string
}

// IsBlank reports whether the split renders as nothing, used for the blank
// interval after a sentence-ending word.
func (s Split) IsBlank() bool {
	return s.Before == "" && s.Focus == "" && s.After == ""
}

// ORPIndex returns the Optimal Recognition Point for a word: the character
// (rune) index the eye should fixate on. The fixation offset is looked up
// from the word's length ignoring punctuation, then shifted past any leading
// punctuation so it lands on a letter of the real word.
func ORPIndex(word string) int {
	runes := []rune(word)

	var cleanLen int
	for _, r := range runes {
		if isASCIIAlnum(r) {
			cleanLen++
		}
	}

	offset := fixationOffset(cleanLen)

	leading := 0
	for _, r := range runes {
		if isASCIIAlnum(r) {
			break
		}
		leading++
	}

	return offset + leading
}

func fixationOffset(n int) int {
	switch {
	case n <= 2:
		return 0
	case n <= 5:
		return 1
	case n <= 9:
		return 2
	case n <= 13:
		return 3
	default:
		return 4
	}
}

// SplitORP divides a word into before/focus/after around its ORP.
// The parts always concatenate back to the original word.
func SplitORP(word string) Split {
	runes := []rune(word)
	idx := ORPIndex(word)

	if idx >= len(runes) {
		return Split{Before: word}
	}
	return Split{
		Before: string(runes[:idx]),
		Focus:  string(runes[idx]),
		After:  string(runes[idx+1:]),
	}
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
