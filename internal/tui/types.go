package tui

import "github.com/csheth/mushaf/internal/corpus"

type stage int

const (
	stageLoading stage = iota
	stageDisplay
	stageFailed
)

const heroTaglineFormat = "Read the full text, %s at a time."

const (
	minViewportWidth          = 40
	minViewportHeight         = 5
	viewportHorizontalPadding = 4
	layoutChrome              = 11
)

const jumpPlaceholder = "Ayah #"

type corpusResultMsg struct {
	verses  []corpus.Verse
	refresh bool
	err     error
}

// pageMaterializedMsg is emitted after a jump target's page has been written
// into the viewport. Scrolling to the verse happens only on this message.
type pageMaterializedMsg struct {
	token uint64
	page  int
}
