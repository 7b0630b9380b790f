package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contacts/internal/command"
)

// TUISession runs the command loop as a Bubble Tea program.
type TUISession struct {
	dispatcher *command.Dispatcher
	w          io.Writer
	prompt     string
	banner     string
}

// Run starts the Bubble Tea program reading keys from in. It returns nil when
// the user exits, or the context error if ctx is cancelled first.
func (s *TUISession) Run(ctx context.Context, in io.Reader) error {
	model := NewModel(s.dispatcher, s.prompt, s.banner)
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(s.w),
	)

	if _, err := p.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return &SessionError{Mode: ModeTUI, Err: err}
	}
	return nil
}
