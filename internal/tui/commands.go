package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/mushaf/internal/corpus"
)

// defaultFetchTimeout matches the corpus client's HTTP timeout.
const defaultFetchTimeout = 30 * time.Second

var errNoLoader = errors.New("no scripture source configured")

func loadCorpusJob(loader corpus.Loader, timeout time.Duration, refresh bool) jobRunner {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return func(parent context.Context) (tea.Msg, error) {
		if loader == nil {
			return corpusResultMsg{refresh: refresh, err: errNoLoader}, errNoLoader
		}
		ctx, cancel := context.WithTimeout(parent, timeout)
		defer cancel()
		verses, err := loader.Load(ctx)
		if err != nil {
			return corpusResultMsg{refresh: refresh, err: err}, err
		}
		return corpusResultMsg{verses: verses, refresh: refresh}, nil
	}
}

func pageMaterializedCmd(token uint64, page int) tea.Cmd {
	return func() tea.Msg {
		return pageMaterializedMsg{token: token, page: page}
	}
}

func jobBadge(snapshot jobSnapshot) string {
	switch snapshot.Status {
	case jobStatusRunning:
		return string(snapshot.Kind) + " running…"
	case jobStatusFailed:
		return string(snapshot.Kind) + " failed"
	default:
		badge := string(snapshot.Kind) + " " + snapshot.Duration.Round(10*time.Millisecond).String()
		if snapshot.Summary != "" {
			badge += " · " + snapshot.Summary
		}
		return badge
	}
}

func (msg corpusResultMsg) jobSummary() string {
	if msg.err != nil {
		return ""
	}
	return fmt.Sprintf("%d ayahs", len(msg.verses))
}
