package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/mushaf/internal/corpus"
	"github.com/csheth/mushaf/internal/reader"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Loader       corpus.Loader
	PageSize     int
	Edition      string
	FetchTimeout time.Duration
}

// New returns a tea.Model ready to be mounted into a Program. The corpus is
// requested as soon as the program starts.
func New(config Config) tea.Model {
	jumpInput := textinput.New()
	jumpInput.Placeholder = jumpPlaceholder
	jumpInput.Prompt = "↪ "
	jumpInput.CharLimit = 8
	jumpInput.Width = 12

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	pages := paginator.New()
	pages.Type = paginator.Arabic
	pages.ArabicFormat = "Page %d of %d"

	session := reader.New(config.PageSize)
	pages.PerPage = session.PageSize()

	return &model{
		config:       config,
		stage:        stageLoading,
		session:      session,
		jobs:         newJobBus(),
		jobSnapshots: map[jobKind]jobSnapshot{},
		jumpInput:    jumpInput,
		spinner:      spin,
		viewport:     vp,
		pages:        pages,
		layout:       newPageLayout(),
		focusOffset:  -1,
		infoMessage:  "Fetching the full text…",
	}
}

type model struct {
	config  Config
	stage   stage
	session *reader.Session

	jobs         *jobBus
	jobSnapshots map[jobKind]jobSnapshot

	jumpInput textinput.Model
	spinner   spinner.Model
	viewport  viewport.Model
	pages     paginator.Model
	layout    pageLayout

	verseLines   []int
	focusOffset  int
	renderedPage int
	infoMessage  string
	errorMessage string
	helpVisible  bool
}

func (m *model) Init() tea.Cmd {
	if !m.session.BeginRefresh() {
		return nil
	}
	return tea.Batch(
		m.spinner.Tick,
		m.jobs.Start(jobKindFetch, m.corpusJob(false)),
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case jobSignalMsg:
		m.recordJob(msg.Snapshot)
		return m, nil
	case jobResultEnvelope:
		m.recordJob(msg.Snapshot)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case corpusResultMsg:
		return m.handleCorpusResult(msg)
	case pageMaterializedMsg:
		m.handleMaterialized(msg)
		return m, nil
	case spinner.TickMsg:
		if m.session.Loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.viewport.Width = m.layout.viewportWidth
		m.viewport.Height = m.layout.viewportHeight
		if m.stage == stageDisplay {
			m.refreshViewport()
		}
		return m, nil
	case tea.MouseMsg:
		if m.stage == stageDisplay {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) recordJob(snapshot jobSnapshot) {
	m.jobSnapshots[snapshot.Kind] = snapshot
}

func (m *model) handleCorpusResult(msg corpusResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.session.FailRefresh()
		m.errorMessage = msg.err.Error()
		if !m.session.Loaded() {
			m.stage = stageFailed
			m.infoMessage = "Press r to try again or q to quit."
			return m, nil
		}
		m.infoMessage = "Refresh failed; still showing the previous text."
		return m, nil
	}
	m.session.CompleteRefresh(msg.verses)
	// SetTotalPages ignores zero, which would leave a stale count behind.
	m.pages.TotalPages = max(m.session.PageCount(), 1)
	m.syncPaginator()
	m.stage = stageDisplay
	m.focusOffset = -1
	m.errorMessage = ""
	if msg.refresh {
		m.infoMessage = fmt.Sprintf("Refreshed %d ayahs.", m.session.Len())
	} else {
		m.infoMessage = fmt.Sprintf("Loaded %d ayahs.", m.session.Len())
	}
	m.refreshViewport()
	m.viewport.GotoTop()
	return m, nil
}

func (m *model) handleMaterialized(msg pageMaterializedMsg) {
	focus, ok := m.session.Materialized(msg.token)
	if !ok {
		log.Printf("[reader] dropped stale focus token=%d page=%d", msg.token, msg.page)
		return
	}
	m.focusOffset = focus.Offset
	m.refreshViewport()
	if focus.Offset < len(m.verseLines) {
		m.viewport.SetYOffset(m.verseLines[focus.Offset])
	}
	m.infoMessage = fmt.Sprintf("Jumped to ayah #%d.", focus.Index)
}

func (m *model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.stage {
	case stageLoading:
		if key.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	case stageFailed:
		switch key.String() {
		case "q", "esc":
			return m, tea.Quit
		case "r":
			return m, m.startRefresh()
		}
		return m, nil
	case stageDisplay:
		if m.jumpInput.Focused() {
			return m.handleJumpKey(key)
		}
		return m.handleDisplayKey(key)
	default:
		return m, nil
	}
}

func (m *model) handleJumpKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.jumpInput.SetValue("")
		m.jumpInput.Blur()
		return m, nil
	case tea.KeyEnter:
		value := m.jumpInput.Value()
		m.jumpInput.SetValue("")
		m.jumpInput.Blur()
		return m, m.submitJump(value)
	}
	var cmd tea.Cmd
	m.jumpInput, cmd = m.jumpInput.Update(key)
	return m, cmd
}

// submitJump switches the page and renders it. Scrolling to the verse waits
// for the pageMaterializedMsg the returned command emits.
func (m *model) submitJump(value string) tea.Cmd {
	focus, err := m.session.Jump(value)
	if err != nil {
		log.Printf("[reader] jump %q ignored: %v", strings.TrimSpace(value), err)
		return nil
	}
	m.syncPaginator()
	m.focusOffset = -1
	m.refreshViewport()
	m.viewport.GotoTop()
	return pageMaterializedCmd(focus.Token, m.renderedPage)
}

func (m *model) handleDisplayKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "right", "l", "n":
		m.turnPage(m.session.Next())
		return m, nil
	case "left", "h", "p":
		m.turnPage(m.session.Prev())
		return m, nil
	case "/", ":":
		if m.session.Loading() {
			m.infoMessage = "Wait for the refresh to finish."
			return m, nil
		}
		return m, m.jumpInput.Focus()
	case "r":
		return m, m.startRefresh()
	case "g":
		m.viewport.GotoTop()
		return m, nil
	case "G":
		m.viewport.GotoBottom()
		return m, nil
	case "?":
		m.helpVisible = !m.helpVisible
		return m, nil
	case "q":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(key)
	return m, cmd
}

func (m *model) turnPage(moved bool) {
	if !moved {
		return
	}
	m.syncPaginator()
	m.focusOffset = -1
	m.refreshViewport()
	m.viewport.GotoTop()
}

func (m *model) startRefresh() tea.Cmd {
	if !m.session.BeginRefresh() {
		m.infoMessage = "Refresh already running."
		return nil
	}
	if m.stage == stageFailed {
		m.stage = stageLoading
	}
	m.errorMessage = ""
	m.infoMessage = "Refreshing…"
	m.jumpInput.Blur()
	return tea.Batch(
		m.spinner.Tick,
		m.jobs.Start(jobKindRefresh, m.corpusJob(true)),
	)
}

func (m *model) corpusJob(refresh bool) jobRunner {
	return loadCorpusJob(m.config.Loader, m.config.FetchTimeout, refresh)
}

func (m *model) syncPaginator() {
	m.pages.Page = m.session.CurrentPage() - 1
}

func (m *model) refreshViewport() {
	view := buildPageContent(m.session.Verses(), m.viewport.Width, m.focusOffset)
	m.verseLines = view.verseLines
	m.renderedPage = m.session.CurrentPage()
	m.viewport.SetContent(view.content)
}
