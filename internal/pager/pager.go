// Package pager slices an ordered sequence into fixed-size pages and maps
// absolute indexes onto (page, offset) positions. Pages are 1-based, indexes
// and offsets are 0-based. Nothing here holds state.
package pager

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Direction selects the neighbour page for Advance.
type Direction int

const (
	Previous Direction = -1
	Next     Direction = 1
)

// Position locates one item: Page is 1-based, Offset is the index inside
// that page.
type Position struct {
	Page   int
	Offset int
}

var (
	ErrMalformed  = errors.New("index is not a non-negative integer")
	ErrOutOfRange = errors.New("index out of range")
)

// IndexErrorKind distinguishes unparseable input from a parsed index that
// falls outside the sequence.
type IndexErrorKind int

const (
	Malformed IndexErrorKind = iota + 1
	OutOfRange
)

// IndexError reports a rejected jump. Index and Len are only meaningful for
// OutOfRange.
type IndexError struct {
	Kind  IndexErrorKind
	Input string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	switch e.Kind {
	case OutOfRange:
		return fmt.Sprintf("index %d out of range [0, %d)", e.Index, e.Len)
	default:
		return fmt.Sprintf("malformed index %q", e.Input)
	}
}

func (e *IndexError) Unwrap() error {
	if e.Kind == OutOfRange {
		return ErrOutOfRange
	}
	return ErrMalformed
}

// Page returns items[(n-1)*size : n*size] clipped to the sequence. An empty
// result means there is no such page; it is not an error. The returned slice
// has its capacity capped so appending to it never touches items.
func Page[T any](items []T, pageSize, pageNumber int) []T {
	if pageSize < 1 || pageNumber < 1 {
		return nil
	}
	// Guard the multiplication for absurd page numbers.
	if pageNumber-1 > len(items)/pageSize {
		return nil
	}
	start := (pageNumber - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end:end]
}

// PageCount is the number of non-empty pages for total items.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize < 1 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Locate maps an absolute index onto its page and in-page offset.
func Locate(total, pageSize, index int) (Position, error) {
	if pageSize < 1 {
		return Position{}, fmt.Errorf("page size must be positive, got %d", pageSize)
	}
	if index < 0 || index >= total {
		return Position{}, &IndexError{Kind: OutOfRange, Input: strconv.Itoa(index), Index: index, Len: total}
	}
	return Position{Page: index/pageSize + 1, Offset: index % pageSize}, nil
}

// ParseIndex accepts a base-10 integer surrounded by optional whitespace.
// Trailing garbage such as "12abc" is rejected rather than truncated. Signs
// parse, so "-1" comes back as -1 and is left for Locate to reject.
func ParseIndex(input string) (int, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return 0, &IndexError{Kind: Malformed, Input: input}
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, &IndexError{Kind: Malformed, Input: input}
	}
	return value, nil
}

// Resolve turns raw jump input into a position inside items.
func Resolve[T any](items []T, pageSize int, input string) (Position, error) {
	index, err := ParseIndex(input)
	if err != nil {
		return Position{}, err
	}
	pos, err := Locate(len(items), pageSize, index)
	if err != nil {
		var idxErr *IndexError
		if errors.As(err, &idxErr) {
			idxErr.Input = input
		}
		return Position{}, err
	}
	return pos, nil
}

// Advance returns the page to show after moving one step in dir. Moving past
// either end leaves current unchanged.
func Advance[T any](items []T, pageSize, current int, dir Direction) int {
	switch dir {
	case Next:
		if len(Page(items, pageSize, current+1)) > 0 {
			return current + 1
		}
	case Previous:
		if current > 1 {
			return current - 1
		}
	}
	return current
}
