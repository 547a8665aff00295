// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thavelick/just-type-it/internal/layout"
	"github.com/thavelick/just-type-it/internal/model"
	"github.com/thavelick/just-type-it/internal/navigator"
	"github.com/thavelick/just-type-it/internal/session"
	"github.com/thavelick/just-type-it/internal/stats"
	"github.com/thavelick/just-type-it/internal/store"
)

const contentWidthPct = 0.70

type mode int

const (
	modeTyping mode = iota
	modeSummary
)

// summary holds metrics captured at the moment a session ended.
type summary struct {
	elapsed   time.Duration
	wpm       float64
	accuracy  float64
	correct   int
	total     int
	mistyped  []model.WordCount
	completed bool
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	nav      *navigator.Navigator
	store    *store.Store
	obs      session.Observer
	widthPct float64

	width  int
	height int

	practice string
	runes    []rune
	lay      layout.Map

	sess    *session.Session
	tracker *stats.Tracker

	mode         mode
	summary      summary
	summaryTable table.Model
	notice       string
}

// NewModel constructs the typing TUI model. The store and observer may
// be nil.
func NewModel(nav *navigator.Navigator, st *store.Store, obs session.Observer, widthPct float64) *Model {
	if widthPct <= 0 || widthPct > 1 {
		widthPct = contentWidthPct
	}
	m := &Model{nav: nav, store: st, obs: obs, widthPct: widthPct}
	m.startSession()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode == modeSummary {
			return m.updateSummary(msg)
		}
		return m.updateTyping(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.sess.Apply(session.Cancel)
	case tea.KeyBackspace, tea.KeyDelete:
		m.sess.Apply(session.Backspace)
	case tea.KeyEnter:
		m.sess.Apply(session.Enter)
	case tea.KeySpace:
		m.sess.Apply(session.Rune(' '))
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.sess.Apply(session.Rune(r))
			if m.sess.Done() {
				break
			}
		}
	default:
		return m, nil
	}
	if m.sess.Done() {
		return m.finishSession()
	}
	return m, nil
}

func (m *Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "r":
		m.startSession()
	case "d":
		if err := m.nav.Drill(m.summary.mistyped); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.startSession()
	case "n":
		if !m.nav.CanLoadNext() {
			m.notice = navigator.ErrNoLibrary.Error()
			return m, nil
		}
		if err := m.nav.LoadNext(); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.startSession()
	case "b":
		if err := m.nav.GoBack(); err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.startSession()
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startSession() {
	m.practice = m.nav.PracticeString()
	m.runes = []rune(m.practice)
	m.tracker = stats.NewTracker()
	m.sess = session.New(m.practice, m.tracker, m.obs)
	m.mode = modeTyping
	m.notice = ""
	m.relayout()
}

func (m *Model) relayout() {
	m.lay = layout.Compute(m.practice, m.contentWidth())
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return len(m.runes) + 1
	}
	width := int(float64(m.width) * m.widthPct)
	if width < 1 {
		width = 1
	}
	return width
}

// finishSession captures metrics, persists the session, and switches to
// the summary screen. A session with no keystrokes quits outright.
func (m *Model) finishSession() (tea.Model, tea.Cmd) {
	if m.tracker.Total() == 0 {
		return m, tea.Quit
	}
	elapsed := m.tracker.Elapsed()
	m.summary = summary{
		elapsed:   elapsed,
		wpm:       m.tracker.WPM(m.sess.Position()),
		accuracy:  m.tracker.Accuracy(),
		correct:   m.tracker.Correct(),
		total:     m.tracker.Total(),
		mistyped:  m.tracker.TopMistyped(navigator.DrillWordLimit),
		completed: m.sess.Completed(),
	}
	m.saveSession(elapsed)
	m.summaryTable = newMistypedTable(m.summary.mistyped)
	m.mode = modeSummary
	return m, nil
}

func (m *Model) saveSession(elapsed time.Duration) {
	if m.store == nil {
		return
	}
	rec := model.SessionRecord{
		StartedAt:  m.tracker.StartedAt(),
		EndedAt:    m.tracker.StartedAt().Add(elapsed),
		Source:     m.nav.Current().Source,
		TextLen:    m.sess.Len(),
		Position:   m.sess.Position(),
		Correct:    m.tracker.Correct(),
		Total:      m.tracker.Total(),
		DurationMs: elapsed.Milliseconds(),
		Completed:  m.sess.Completed(),
	}
	if _, err := m.store.InsertSession(context.Background(), rec, m.tracker.TopMistyped(-1)); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
