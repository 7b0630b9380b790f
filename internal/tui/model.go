package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contacts/internal/command"
)

// Entry is one executed command in the transcript.
type Entry struct {
	Input  string
	Output string
	Failed bool
}

// Model is the Bubble Tea model for the interactive session. Finished entries
// are printed above the input line so the terminal scrollback keeps them.
type Model struct {
	dispatcher *command.Dispatcher
	input      textinput.Model
	prompt     string
	banner     string
	history    []Entry
	done       bool
	width      int
}

// NewModel creates a Model that executes entered lines with d.
func NewModel(d *command.Dispatcher, prompt, banner string) Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.PromptStyle = promptStyle
	ti.CharLimit = maxLineBytes
	ti.Placeholder = strings.Join(command.Verbs(), " | ")
	ti.Focus()

	return Model{
		dispatcher: d,
		input:      ti,
		prompt:     prompt,
		banner:     banner,
	}
}

// Init prints the banner and starts the cursor blink.
func (m Model) Init() tea.Cmd {
	if m.banner == "" {
		return textinput.Blink
	}
	return tea.Batch(tea.Println(bannerStyle.Render(m.banner)), textinput.Blink)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(0, msg.Width-lipgloss.Width(m.input.Prompt)-1)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit executes the current input line and records the result.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	res := m.dispatcher.Execute(line)
	e := Entry{Input: line, Output: res.Output, Failed: res.Err != nil}
	m.history = append(m.history, e)

	printed := tea.Println(renderEntry(m.prompt, e))
	if res.Exit {
		m.done = true
		return m, tea.Sequence(printed, tea.Quit)
	}
	return m, printed
}

// View renders the input line while the session is active.
func (m Model) View() string {
	if m.done {
		return ""
	}
	return m.input.View() + "\n" + hintStyle.Render("esc to quit") + "\n"
}

// History returns the executed entries in order.
func (m Model) History() []Entry {
	out := make([]Entry, len(m.history))
	copy(out, m.history)
	return out
}

// Done reports whether the session has finished.
func (m Model) Done() bool { return m.done }

func renderEntry(prompt string, e Entry) string {
	out := outputStyle.Render(e.Output)
	if e.Failed {
		out = errorStyle.Render(e.Output)
	}
	return promptStyle.Render(prompt) + e.Input + "\n" + out
}
