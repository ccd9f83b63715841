package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/flashdeck/internal/csvimport"
	"github.com/verte-zerg/flashdeck/internal/model"
	"github.com/verte-zerg/flashdeck/internal/report"
	"github.com/verte-zerg/flashdeck/internal/session"
)

const (
	maxContentWidth = 72
	minContentWidth = 20
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	accentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	navStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B0B0B0"))
	cardStyle     = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	panelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	wordStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	labelStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	valueStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	exampleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8")).Italic(true)
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	understoodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	learningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	barFilledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#52C41A"))
	barEmptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
)

var exampleRows = [][]string{
	{
		"ephemeral",
		"はかない",
		"/ɪˈfem(ə)rəl/",
		"lasting for a very short time",
		"The ephemeral beauty of cherry blossoms makes them special.",
	},
	{
		"serendipity",
		"幸運な偶然",
		"/ˌserənˈdɪpəti/",
		"finding good things without looking for them",
		"Meeting my best friend was pure serendipity, as we both love the same, rare books.",
	},
}

// View implements tea.Model.
func (m *Model) View() string {
	width := m.contentWidth()
	var body string
	if m.svc.Empty() || m.importing {
		body = m.renderUpload(width)
	} else {
		body = m.renderReview(width)
	}
	footer := m.help.View(m.keys)
	if m.width == 0 || m.height == 0 {
		return body + "\n\n" + footer
	}
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
	}
	bodyHeight := m.height - 1
	content := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return content + "\n" + footerLine
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return maxContentWidth
	}
	return maxInt(minContentWidth, minInt(maxContentWidth, m.width-4))
}

func (m *Model) renderUpload(width int) string {
	lines := []string{
		titleStyle.Render("English Flash Cards"),
		subtitleStyle.Render("Upload your CSV and start learning!"),
		"",
	}

	var panel []string
	panel = append(panel, valueStyle.Render("Upload CSV File"))
	panel = append(panel, mutedStyle.Render("Columns: "+strings.Join(csvimport.Headers, ", ")))
	panel = append(panel, "")
	switch {
	case m.loading:
		panel = append(panel, accentStyle.Render("Processing..."))
	case m.importing:
		panel = append(panel, m.input.View())
	default:
		panel = append(panel, mutedStyle.Render("press i to choose a file, ? for an example"))
	}
	if m.errMsg != "" {
		panel = append(panel, errorStyle.Render(m.errMsg))
	}
	lines = append(lines, panelStyle.Width(width).Render(strings.Join(panel, "\n")))

	if m.showExample {
		lines = append(lines, "", renderExample(width))
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

func renderExample(width int) string {
	rows := make([][]string, len(exampleRows))
	for i, row := range exampleRows {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = report.Truncate(cell, 24)
		}
	}
	table := report.FormatTable(csvimport.Headers, rows, nil)
	lines := make([]string, 0, len(table)+3)
	lines = append(lines, valueStyle.Render("CSV File Structure Example"), "")
	for i, line := range table {
		line = report.Truncate(line, maxInt(1, width-4))
		if i == 0 {
			lines = append(lines, labelStyle.Render(line))
			continue
		}
		lines = append(lines, mutedStyle.Render(line))
	}
	lines = append(lines, "", mutedStyle.Render("Save your spreadsheet as CSV with these exact column headers."))
	return panelStyle.Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderReview(width int) string {
	card, ok := m.svc.Current()
	if !ok {
		return ""
	}
	parts := []string{
		renderNav(m.svc.Cursor(), m.svc.Total(), m.svc.AtStart(), m.svc.AtEnd()),
		"",
		renderProgress(m.svc.UnderstoodCount(), m.svc.Total(), width),
		"",
	}
	if m.flipped {
		parts = append(parts, renderBack(card, width))
	} else {
		parts = append(parts, renderFront(card, width))
	}
	return lipgloss.JoinVertical(lipgloss.Center, parts...)
}

func renderNav(cursor, total int, atStart, atEnd bool) string {
	prev := navStyle.Render("← Previous")
	if atStart {
		prev = mutedStyle.Render("← Previous")
	}
	next := navStyle.Render("Next →")
	if atEnd {
		next = mutedStyle.Render("Next →")
	}
	counter := valueStyle.Render(fmt.Sprintf("%d / %d", cursor+1, total))
	return prev + "    " + counter + "    " + next
}

// renderProgress draws the mastery block: a title line with the
// percentage, a bar and the "U of T words mastered" summary.
func renderProgress(understood, total, width int) string {
	percent := session.ProgressPercentage(understood, total)
	label := labelStyle.Render("Learning Progress")
	value := accentStyle.Render(fmt.Sprintf("%d%%", percent))
	gap := maxInt(1, width-lipgloss.Width(label)-lipgloss.Width(value))
	header := label + strings.Repeat(" ", gap) + value

	filled := width * percent / 100
	bar := barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))

	summary := mutedStyle.Render(fmt.Sprintf("%d of %d words mastered", understood, total))
	return strings.Join([]string{header, bar, summary}, "\n")
}

func renderFront(card model.Card, width int) string {
	inner := innerWidth(width)
	lines := []string{wordStyle.Render(card.Word)}
	if card.Phonetic != "" {
		lines = append(lines, labelStyle.Render(card.Phonetic))
	}
	if card.Example != "" {
		styled := buildHighlightRunes(card.Example, card.Word, exampleStyle, highlightStyle)
		lines = append(lines, "", wrapStyledRunes(styled, inner))
	}
	lines = append(lines, "", renderStatus(card.Status), "", mutedStyle.Render("press space to see the meaning"))
	return cardStyle.Render(lipgloss.NewStyle().Width(inner).Align(lipgloss.Center).Render(strings.Join(lines, "\n")))
}

func renderBack(card model.Card, width int) string {
	inner := innerWidth(width)
	var lines []string
	if card.Definition != "" {
		lines = append(lines, labelStyle.Render("English Definition"), valueStyle.Width(inner).Render(card.Definition), "")
	}
	lines = append(lines, labelStyle.Render("Japanese Translation"), valueStyle.Render(card.Meaning), "")
	lines = append(lines, mutedStyle.Render("u understood · r still learning"))
	return cardStyle.Render(lipgloss.NewStyle().Width(inner).Render(strings.Join(lines, "\n")))
}

func renderStatus(status model.Status) string {
	if status == model.Understood {
		return understoodStyle.Render("understood")
	}
	return learningStyle.Render("learning")
}

func innerWidth(width int) int {
	return maxInt(1, width-cardStyle.GetHorizontalFrameSize())
}
