package tui

import (
	"strings"
	"testing"

	"github.com/csheth/mushaf/internal/corpus"
)

func TestPageLayoutUpdate(t *testing.T) {
	cases := []struct {
		name           string
		width          int
		height         int
		viewportWidth  int
		viewportHeight int
	}{
		{name: "standard", width: 80, height: 24, viewportWidth: 76, viewportHeight: 13},
		{name: "wide", width: 200, height: 50, viewportWidth: 196, viewportHeight: 39},
		{name: "tiny", width: 20, height: 8, viewportWidth: minViewportWidth, viewportHeight: minViewportHeight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			layout := newPageLayout()
			layout.Update(tc.width, tc.height)
			if layout.viewportWidth != tc.viewportWidth {
				t.Fatalf("viewport width mismatch: got %d want %d", layout.viewportWidth, tc.viewportWidth)
			}
			if layout.viewportHeight != tc.viewportHeight {
				t.Fatalf("viewport height mismatch: got %d want %d", layout.viewportHeight, tc.viewportHeight)
			}
		})
	}
}

func TestBuildPageContentRecordsVerseLines(t *testing.T) {
	verses := fixtureVerses(3, 0)
	verses[1].Text = strings.Repeat("long ayah text ", 20)

	view := buildPageContent(verses, 60, -1)
	if len(view.verseLines) != 3 {
		t.Fatalf("expected three anchors, got %v", view.verseLines)
	}
	if view.verseLines[0] != 0 {
		t.Fatalf("first verse should start at line 0, got %d", view.verseLines[0])
	}
	lines := strings.Split(view.content, "\n")
	for i, verse := range verses {
		start := view.verseLines[i]
		if i > 0 && start <= view.verseLines[i-1] {
			t.Fatalf("anchors must increase: %v", view.verseLines)
		}
		if start >= len(lines) {
			t.Fatalf("anchor %d past end of content", start)
		}
		if !strings.Contains(lines[start], verseReference(verse)) {
			t.Fatalf("line %d should open verse %d, got %q", start, verse.ID, lines[start])
		}
	}
	if view.verseLines[2]-view.verseLines[1] <= view.verseLines[1]-view.verseLines[0] {
		t.Fatalf("wrapped verse should take more lines: %v", view.verseLines)
	}
}

func TestBuildPageContentMarksFocus(t *testing.T) {
	verses := fixtureVerses(2, 0)
	plain := buildPageContent(verses, 60, -1)
	if strings.Contains(plain.content, "▸") {
		t.Fatal("no verse should be marked without focus")
	}
	focused := buildPageContent(verses, 60, 1)
	lines := strings.Split(focused.content, "\n")
	if !strings.Contains(lines[focused.verseLines[1]], "▸") {
		t.Fatalf("focused verse should carry the marker:\n%s", focused.content)
	}
	if strings.Contains(lines[focused.verseLines[0]], "▸") {
		t.Fatal("only the focused verse should be marked")
	}
}

func TestBuildPageContentEmptyPage(t *testing.T) {
	view := buildPageContent(nil, 80, -1)
	if view.content != "" || len(view.verseLines) != 0 {
		t.Fatalf("empty page should render nothing, got %q", view.content)
	}
}

func TestVerseReferenceFallback(t *testing.T) {
	got := verseReference(corpus.Verse{ChapterNumber: 2, NumberInChapter: 255})
	if got != "Surah 2 2:255" {
		t.Fatalf("unexpected reference %q", got)
	}
}
