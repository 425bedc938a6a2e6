package tui

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindFetch   jobKind = "fetch"
	jobKindRefresh jobKind = "refresh"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

// jobSnapshot is one state of a job. Summary describes what a successful job
// produced, such as "6236 ayahs".
type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
	Summary     string
}

// jobSummarizer is implemented by payloads that can describe their result
// for the status bar and the job log.
type jobSummarizer interface {
	jobSummary() string
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

type jobBus struct {
	counter int64
	now     func() time.Time
}

func newJobBus() *jobBus {
	return &jobBus{now: time.Now}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

// Start announces the job, then runs it off the update loop. There is no
// cancellation: if the program exits first the result is dropped.
func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	started := jobSnapshot{ID: b.nextID(kind), Kind: kind, Status: jobStatusRunning, StartedAt: b.now()}
	announce := func() tea.Msg {
		return jobSignalMsg{Snapshot: started}
	}
	run := func() tea.Msg {
		payload, err := runner(context.Background())
		return b.finish(started, payload, err)
	}
	return tea.Sequence(announce, run)
}

func (b *jobBus) finish(started jobSnapshot, payload tea.Msg, err error) jobResultEnvelope {
	done := started
	done.CompletedAt = b.now()
	done.Duration = done.CompletedAt.Sub(started.StartedAt)
	switch {
	case err != nil:
		done.Status = jobStatusFailed
		done.Err = err.Error()
	default:
		done.Status = jobStatusSucceeded
		if summarizer, ok := payload.(jobSummarizer); ok {
			done.Summary = summarizer.jobSummary()
		}
	}
	log.Printf("[jobs] %s %s %s (duration=%s, summary=%q, err=%v)", done.ID, done.Kind, done.Status, done.Duration, done.Summary, err)
	return jobResultEnvelope{Snapshot: done, Payload: payload}
}
