package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/thavelick/just-type-it/internal/model"
	"github.com/thavelick/just-type-it/internal/session"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.mode == modeSummary {
		return m.viewSummary()
	}
	return m.viewTyping()
}

func (m *Model) viewTyping() string {
	var b strings.Builder
	if source := m.nav.Current().Source; source != "" {
		b.WriteString(sourceStyle.Render("— " + source))
		b.WriteString("\n\n")
	}
	b.WriteString(m.renderText())
	b.WriteString("\n\n")
	b.WriteString(m.renderTypingLine())
	content := b.String()

	footer := m.renderFooter()
	if m.width == 0 || m.height == 0 {
		return content + "\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

// renderText colors each character of the practice string by its typing
// state and breaks lines where the layout map says they break.
func (m *Model) renderText() string {
	position := m.sess.Position()
	hasError := m.sess.HasError()

	var b strings.Builder
	row := 0
	for i, r := range m.runes {
		for m.lay.Pos[i].Row > row {
			b.WriteByte('\n')
			row++
		}
		displayed := r
		if r == '\n' {
			displayed = session.EnterMarker
		}
		var style lipgloss.Style
		switch {
		case i < position:
			style = correctStyle
		case i == position && hasError:
			style = errorStyle
		case i == position:
			style = cursorStyle
		default:
			style = pendingStyle
		}
		b.WriteString(style.Render(string(displayed)))
	}
	return b.String()
}

// renderTypingLine shows the correctly typed part of the current word
// followed by the outstanding error buffer.
func (m *Model) renderTypingLine() string {
	_, start := m.sess.CurrentWord()
	typed := string(m.runes[start:m.sess.Position()])
	typed = strings.ReplaceAll(typed, "\n", string(session.EnterMarker))
	buffer := m.sess.ErrorBuffer()

	var b strings.Builder
	b.WriteString(footerStyle.Render("Typing: "))
	b.WriteString(typedStyle.Render(typed))
	if buffer != "" {
		b.WriteString(bufferStyle.Render(buffer))
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	if !m.tracker.Started() || m.sess.Position() == 0 {
		return footerStyle.Render("Start typing to begin · ESC to quit")
	}
	elapsed := m.tracker.Elapsed()
	wpm := m.tracker.WPM(m.sess.Position())
	accuracy := m.tracker.Accuracy()
	progress := int(float64(m.sess.Position()) / float64(m.sess.Len()) * 100)
	return footerStyle.Render(fmt.Sprintf(
		"Time %.1fs · WPM %.1f · Accuracy %.1f%% · Progress %d%% · ESC to quit",
		elapsed.Seconds(), wpm, accuracy, progress,
	))
}

func (m *Model) viewSummary() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Session Summary"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Time: %.2f seconds\n", m.summary.elapsed.Seconds())
	fmt.Fprintf(&b, "WPM: %.2f\n", m.summary.wpm)
	fmt.Fprintf(&b, "Accuracy: %.2f%%\n", m.summary.accuracy)
	fmt.Fprintf(&b, "Correct keystrokes: %d\n", m.summary.correct)
	fmt.Fprintf(&b, "Total keystrokes: %d\n", m.summary.total)
	if !m.summary.completed {
		b.WriteString(footerStyle.Render("(session cancelled)"))
		b.WriteByte('\n')
	}
	if len(m.summary.mistyped) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Top Mistyped Words"))
		b.WriteString("\n")
		b.WriteString(m.summaryTable.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(promptStyle.Render(m.summaryPrompt()))
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(bufferStyle.Render(m.notice))
	}
	content := b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// summaryPrompt offers only the navigation actions that are currently
// valid.
func (m *Model) summaryPrompt() string {
	actions := []string{"[r]epeat"}
	if len(m.summary.mistyped) > 0 {
		actions = append(actions, "[d]rill mistakes")
	}
	if m.nav.CanLoadNext() {
		actions = append(actions, "[n]ext text")
	}
	if m.nav.CanGoBack() {
		actions = append(actions, "[b]ack")
	}
	actions = append(actions, "[q]uit")
	return strings.Join(actions, "  ")
}

func newMistypedTable(mistyped []model.WordCount) table.Model {
	wordWidth := runewidth.StringWidth("Word")
	for _, wc := range mistyped {
		if w := runewidth.StringWidth(wc.Word); w > wordWidth {
			wordWidth = w
		}
	}
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Word", Width: wordWidth},
		{Title: "Errors", Width: 6},
	}
	rows := make([]table.Row, 0, len(mistyped))
	for i, wc := range mistyped {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			wc.Word,
			fmt.Sprintf("%d", wc.Count),
		})
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Cell
	t.SetStyles(styles)
	return t
}
