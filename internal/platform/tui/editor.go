// Package tui provides the terminal settings editor for Terminal Heist.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/terminal-heist/internal/config"
)

// Editor layout constants
const (
	keyColumnWidth   = 26
	valueColumnWidth = 14
	chromeLines      = 9 // title, legend, blank lines, status, help
)

// SaveFunc persists the edited settings.
type SaveFunc func(config.GameConfig) error

// savedMsg reports the outcome of a save started by the editor.
type savedMsg struct {
	err error
}

// EditorModel is the Bubble Tea model for the settings editor.
type EditorModel struct {
	cfg     config.GameConfig
	fields  []config.Field
	cursor  int
	editing bool
	input   textinput.Model
	keys    EditorKeyMap
	help    help.Model
	theme   HeistTheme
	save    SaveFunc

	width  int
	height int

	status   string
	err      error
	dirty    bool // edited since the last save
	saved    bool // at least one save succeeded
	quitting bool
}

// NewEditorModel creates an editor over a copy of cfg. save may be nil, in
// which case the save key reports an error instead of writing.
func NewEditorModel(cfg config.GameConfig, save SaveFunc, width, height int) EditorModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 32

	h := help.New()
	h.Width = width

	return EditorModel{
		cfg:    cfg,
		fields: config.Fields(),
		input:  ti,
		keys:   DefaultEditorKeyMap(),
		help:   h,
		theme:  NewHeistTheme(cfg),
		save:   save,
		width:  width,
		height: height,
	}
}

// Init initializes the model.
func (m EditorModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.dirty = false
		m.saved = true
		m.status = "settings saved"
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.fields[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.fields)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Edit):
		v, _ := m.cfg.Get(f.Key)
		m.input.SetValue(fmt.Sprint(v))
		m.input.CursorEnd()
		m.editing = true
		m.err = nil
		m.status = ""
		cmd := m.input.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.Reset):
		before, _ := m.cfg.Get(f.Key)
		if err := m.cfg.ResetKey(f.Key); err != nil {
			m.err = err
			return m, nil
		}
		after, _ := m.cfg.Get(f.Key)
		if before != after {
			m.dirty = true
			m.theme = NewHeistTheme(m.cfg)
		}
		m.err = nil
		m.status = fmt.Sprintf("%s reset to %v", f.Key, after)

	case key.Matches(msg, m.keys.Save):
		if m.save == nil {
			m.err = errors.New("no settings file to save to")
			return m, nil
		}
		return m, m.saveCmd()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

func (m EditorModel) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.fields[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Commit):
		before, _ := m.cfg.Get(f.Key)
		if err := m.cfg.Set(f.Key, m.input.Value()); err != nil {
			m.err = err
			return m, nil
		}
		after, _ := m.cfg.Get(f.Key)
		m.stopEditing()
		if before != after {
			m.dirty = true
			m.theme = NewHeistTheme(m.cfg)
			m.status = fmt.Sprintf("%s = %v", f.Key, after)
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditorModel) stopEditing() {
	m.editing = false
	m.err = nil
	m.input.Blur()
}

func (m EditorModel) saveCmd() tea.Cmd {
	cfg := m.cfg
	save := m.save
	return func() tea.Msg {
		return savedMsg{err: save(cfg)}
	}
}

// View renders the editor.
func (m EditorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "TERMINAL HEIST SETTINGS"
	if m.dirty {
		title += " *"
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Title.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Legend(), m.width))
	b.WriteString("\n\n")

	for _, line := range m.visibleLines() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.err != nil:
		b.WriteString(m.theme.Error.Render(m.err.Error()))
	case m.status != "":
		b.WriteString(m.theme.Status.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

// visibleLines builds the grouped field list and windows it around the
// cursor when the terminal is too short to show everything.
func (m EditorModel) visibleLines() []string {
	var (
		lines      []string
		cursorLine int
		group      config.Group
	)

	for i, f := range m.fields {
		if f.Group != group {
			group = f.Group
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, m.theme.Group.Render(string(group)))
		}
		if i == m.cursor {
			cursorLine = len(lines)
		}
		lines = append(lines, m.renderField(i, f))
	}

	avail := m.height - chromeLines
	if avail <= 0 || len(lines) <= avail {
		return lines
	}

	start := cursorLine - avail/2
	if start < 0 {
		start = 0
	}
	if start+avail > len(lines) {
		start = len(lines) - avail
	}
	return lines[start : start+avail]
}

func (m EditorModel) renderField(i int, f config.Field) string {
	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}

	v, _ := m.cfg.Get(f.Key)
	value := fmt.Sprint(v)
	if role, ok := RoleForKey(f.Key); ok {
		value = m.theme.Swatch(role) + " " + value
	}
	if m.editing && i == m.cursor {
		value = m.input.View()
	}

	keyText := padRight(f.Key, keyColumnWidth)
	if i == m.cursor {
		keyText = m.theme.Selected.Render(keyText)
	} else {
		keyText = m.theme.Key.Render(keyText)
	}

	return cursor + keyText + " " + m.theme.Value.Render(padRight(value, valueColumnWidth)) + " " + m.theme.Usage.Render(f.Usage)
}

// Config returns the edited settings.
func (m EditorModel) Config() config.GameConfig {
	return m.cfg
}

// IsEditing returns true while a value is being typed.
func (m EditorModel) IsEditing() bool {
	return m.editing
}

// IsDirty returns true if there are edits that were not saved.
func (m EditorModel) IsDirty() bool {
	return m.dirty
}

// Err returns the last error shown to the user.
func (m EditorModel) Err() error {
	return m.err
}

// EditorResult holds the outcome of an editor session.
type EditorResult struct {
	Config  config.GameConfig
	Saved   bool // at least one save succeeded
	Unsaved bool // edits were made after the last save
}

// RunEditor runs the settings editor until the user quits.
func RunEditor(cfg config.GameConfig, save SaveFunc, width, height int) (EditorResult, error) {
	model := NewEditorModel(cfg, save, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return EditorResult{Config: cfg}, err
	}

	m, ok := finalModel.(EditorModel)
	if !ok {
		return EditorResult{Config: cfg}, nil
	}

	return EditorResult{Config: m.cfg, Saved: m.saved, Unsaved: m.dirty}, nil
}
