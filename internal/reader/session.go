// Package reader keeps the per-view reading state: the loaded verse
// sequence, the current page, the refresh flag and a focus request that is
// waiting for its page to be rendered.
package reader

import (
	"errors"
	"slices"

	"github.com/csheth/mushaf/internal/corpus"
	"github.com/csheth/mushaf/internal/pager"
)

// DefaultPageSize matches the ten ayahs per page of the mobile reader.
const DefaultPageSize = 10

var ErrBusy = errors.New("refresh in progress")

// Focus is a resolved jump. Token identifies the request so a stale render
// signal cannot release a newer one.
type Focus struct {
	Index  int
	Page   int
	Offset int
	Token  uint64
}

// Session is owned by a single UI loop and is not safe for concurrent use.
type Session struct {
	pageSize int
	verses   []corpus.Verse
	page     int
	loading  bool
	pending  *Focus
	tokens   uint64
}

func New(pageSize int) *Session {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Session{pageSize: pageSize, page: 1}
}

func (s *Session) PageSize() int {
	return s.pageSize
}

// CurrentPage is the 1-based page on screen.
func (s *Session) CurrentPage() int {
	return s.page
}

// Len is the number of verses in the installed sequence.
func (s *Session) Len() int {
	return len(s.verses)
}

func (s *Session) Loaded() bool {
	return s.verses != nil
}

func (s *Session) Loading() bool {
	return s.loading
}

// PageCount reports how many non-empty pages the sequence has.
func (s *Session) PageCount() int {
	return pager.PageCount(len(s.verses), s.pageSize)
}

// Verses returns the current page. An unloaded session has no pages.
func (s *Session) Verses() []corpus.Verse {
	return pager.Page(s.verses, s.pageSize, s.page)
}

// HasNext reports whether Next would move.
func (s *Session) HasNext() bool {
	return pager.Advance(s.verses, s.pageSize, s.page, pager.Next) != s.page
}

// HasPrev reports whether Prev would move.
func (s *Session) HasPrev() bool {
	return pager.Advance(s.verses, s.pageSize, s.page, pager.Previous) != s.page
}

// BeginRefresh marks a load as outstanding. It returns false if one already
// is, so callers never issue overlapping refreshes.
func (s *Session) BeginRefresh() bool {
	if s.loading {
		return false
	}
	s.loading = true
	return true
}

// CompleteRefresh installs verses as the new sequence in one step and starts
// over on page 1. The slice is copied so the caller cannot mutate it later.
func (s *Session) CompleteRefresh(verses []corpus.Verse) {
	installed := slices.Clone(verses)
	if installed == nil {
		installed = []corpus.Verse{}
	}
	s.verses = installed
	s.page = 1
	s.pending = nil
	s.loading = false
}

// FailRefresh clears the loading flag and keeps whatever was installed.
func (s *Session) FailRefresh() {
	s.loading = false
}

// Next moves one page forward and reports whether the page changed.
func (s *Session) Next() bool {
	return s.advance(pager.Next)
}

// Prev moves one page back and reports whether the page changed.
func (s *Session) Prev() bool {
	return s.advance(pager.Previous)
}

func (s *Session) advance(dir pager.Direction) bool {
	if s.loading {
		return false
	}
	target := pager.Advance(s.verses, s.pageSize, s.page, dir)
	if target == s.page {
		return false
	}
	s.page = target
	s.pending = nil
	return true
}

// Jump is the first half of a jump: it resolves input, switches the page and
// records the in-page offset as pending. The second half is Materialized.
// A rejected jump changes nothing.
func (s *Session) Jump(input string) (Focus, error) {
	if s.loading {
		return Focus{}, ErrBusy
	}
	pos, err := pager.Resolve(s.verses, s.pageSize, input)
	if err != nil {
		return Focus{}, err
	}
	index, _ := pager.ParseIndex(input)
	s.tokens++
	focus := Focus{Index: index, Page: pos.Page, Offset: pos.Offset, Token: s.tokens}
	s.page = pos.Page
	s.pending = &focus
	return focus, nil
}

// Pending returns the focus still waiting for its page to render.
func (s *Session) Pending() (Focus, bool) {
	if s.pending == nil {
		return Focus{}, false
	}
	return *s.pending, true
}

// Materialized is called once the page for token has been rendered. It hands
// back the focus to scroll to, at most once, and only while that page is
// still the current one.
func (s *Session) Materialized(token uint64) (Focus, bool) {
	if s.pending == nil || s.pending.Token != token {
		return Focus{}, false
	}
	focus := *s.pending
	s.pending = nil
	if focus.Page != s.page {
		return Focus{}, false
	}
	return focus, true
}
