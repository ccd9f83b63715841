package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/flashdeck/internal/csvimport"
	"github.com/verte-zerg/flashdeck/internal/deck"
	"github.com/verte-zerg/flashdeck/internal/model"
)

type importDoneMsg struct {
	seq   int
	cards []model.Card
	err   error
}

// Model implements the Bubble Tea review UI.
type Model struct {
	svc  *deck.Service
	keys keyMap
	help help.Model

	input       textinput.Model
	importing   bool
	loading     bool
	importSeq   int
	showExample bool
	errMsg      string

	flipped bool

	width  int
	height int
}

// NewModel constructs a review TUI model over svc.
func NewModel(svc *deck.Service) *Model {
	input := textinput.New()
	input.Prompt = "CSV file: "
	input.Placeholder = "~/words.csv"
	input.CharLimit = 0

	m := &Model{
		svc:   svc,
		keys:  newKeyMap(),
		help:  help.New(),
		input: input,
	}
	m.syncKeys()
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
		m.help.Width = msg.Width
		m.input.Width = maxInt(10, msg.Width-len(m.input.Prompt)-4)
		return m, nil
	case importDoneMsg:
		m.finishImport(msg)
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.importing {
			return m.updateImport(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Flip):
		m.flipped = !m.flipped
	case key.Matches(msg, m.keys.Next):
		m.svc.Navigate(deck.Forward)
		m.flipped = false
	case key.Matches(msg, m.keys.Previous):
		m.svc.Navigate(deck.Backward)
		m.flipped = false
	case key.Matches(msg, m.keys.Understood):
		m.svc.MarkStatus(ctx, model.Understood)
		m.flipped = false
	case key.Matches(msg, m.keys.Learning):
		m.svc.MarkStatus(ctx, model.Learning)
		m.flipped = false
	case key.Matches(msg, m.keys.Shuffle):
		m.svc.Reshuffle(ctx)
		m.flipped = false
	case key.Matches(msg, m.keys.Reset):
		m.svc.Reset(ctx)
		m.flipped = false
		m.errMsg = ""
	case key.Matches(msg, m.keys.Import):
		m.importing = true
		m.errMsg = ""
		m.syncKeys()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Example):
		m.showExample = !m.showExample
	}
	m.syncKeys()
	return m, nil
}

func (m *Model) updateImport(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.importing = false
		m.loading = false
		m.importSeq++
		m.input.Blur()
		m.syncKeys()
		return m, nil
	case tea.KeyEnter:
		path := expandHome(strings.TrimSpace(m.input.Value()))
		if path == "" {
			return m, nil
		}
		m.loading = true
		m.errMsg = ""
		m.importSeq++
		return m, m.readFileCmd(m.importSeq, path)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// readFileCmd parses the file off the UI goroutine. The session is only
// touched when the result comes back through Update.
func (m *Model) readFileCmd(seq int, path string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		cards, err := svc.ReadFile(path)
		return importDoneMsg{seq: seq, cards: cards, err: err}
	}
}

// finishImport applies a read result. Results from a cancelled or
// superseded prompt are dropped.
func (m *Model) finishImport(msg importDoneMsg) {
	if !m.importing || msg.seq != m.importSeq {
		return
	}
	m.loading = false
	if msg.err != nil {
		m.errMsg = csvimport.UserMessage(msg.err)
		return
	}
	m.svc.ImportCards(context.Background(), msg.cards)
	m.importing = false
	m.input.Blur()
	m.input.SetValue("")
	m.flipped = false
	m.showExample = false
	m.syncKeys()
}

func (m *Model) syncKeys() {
	reviewing := !m.svc.Empty() && !m.importing
	m.keys.setReviewing(reviewing, m.svc.AtStart(), m.svc.AtEnd())
	if m.importing {
		m.keys.Import.SetEnabled(false)
		m.keys.Example.SetEnabled(false)
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
