package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/mushaf/internal/corpus"
)

type pageLayout struct {
	windowWidth    int
	windowHeight   int
	viewportWidth  int
	viewportHeight int
}

func newPageLayout() pageLayout {
	return pageLayout{
		viewportWidth:  80,
		viewportHeight: 20,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.viewportWidth = innerWidth
	contentHeight := height - layoutChrome
	if contentHeight < minViewportHeight {
		contentHeight = minViewportHeight
	}
	l.viewportHeight = contentHeight
}

// pageView is one rendered page. verseLines[i] is the first viewport line of
// the i-th verse on the page.
type pageView struct {
	content    string
	verseLines []int
}

type contentBuilder struct {
	builder strings.Builder
	lines   int
}

func (cb *contentBuilder) WriteString(s string) {
	cb.builder.WriteString(s)
	cb.lines += strings.Count(s, "\n")
}

func (cb *contentBuilder) WriteRune(r rune) {
	cb.builder.WriteRune(r)
	if r == '\n' {
		cb.lines++
	}
}

func (cb *contentBuilder) String() string {
	return cb.builder.String()
}

func (cb *contentBuilder) Line() int {
	return cb.lines
}

func buildPageContent(verses []corpus.Verse, width, focused int) pageView {
	if width < minViewportWidth {
		width = minViewportWidth
	}
	cb := &contentBuilder{}
	lines := make([]int, 0, len(verses))
	for idx, verse := range verses {
		lines = append(lines, cb.Line())
		writeVerse(cb, verse, width, idx == focused)
		if idx < len(verses)-1 {
			cb.WriteRune('\n')
		}
	}
	return pageView{content: cb.String(), verseLines: lines}
}

func writeVerse(cb *contentBuilder, verse corpus.Verse, width int, focused bool) {
	badge := badgeStyle.Render(fmt.Sprintf("%d", verse.ID))
	marker := "  "
	if focused {
		badge = focusedBadgeStyle.Render(fmt.Sprintf("%d", verse.ID))
		marker = focusMarkerStyle.Render("▸ ")
	}
	reference := referenceStyle.Render(verseReference(verse))
	cb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, marker, badge, " ", reference))
	cb.WriteRune('\n')

	textWidth := width - 2
	body := wordwrap.String(verse.Text, textWidth)
	cb.WriteString(verseTextStyle.Width(textWidth).Render(body))
	cb.WriteRune('\n')

	divider := fmt.Sprintf("%s (Surah %d), Juz %d", verse.ChapterName, verse.ChapterNumber, verse.SectionNumber)
	cb.WriteString(dividerStyle.Width(textWidth).Render(wordwrap.String(divider, textWidth-2)))
	cb.WriteRune('\n')
}

func verseReference(verse corpus.Verse) string {
	name := verse.ChapterEnglishName
	if name == "" {
		name = fmt.Sprintf("Surah %d", verse.ChapterNumber)
	}
	if verse.NumberInChapter > 0 {
		return fmt.Sprintf("%s %d:%d", name, verse.ChapterNumber, verse.NumberInChapter)
	}
	return name
}
