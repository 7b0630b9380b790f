// Package tui runs the interactive read-eval-print session, either as plain
// line-oriented text or as a Bubble Tea terminal UI.
package tui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/smileynet/contacts/internal/command"
)

// Session modes, matching config ui.mode values.
const (
	ModeAuto  = "auto"
	ModePlain = "plain"
	ModeTUI   = "tui"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// Session reads commands from in until exit, end of input or cancellation.
type Session interface {
	Run(ctx context.Context, in io.Reader) error
}

// SessionError reports a failure of the session machinery itself, as opposed
// to a command failure, which is always shown to the user and never returned.
type SessionError struct {
	Mode string
	Err  error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s session: %v", e.Mode, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// Options configures session creation.
type Options struct {
	Writer io.Writer // Output destination (default: os.Stdout).
	Mode   string    // ModeAuto, ModePlain or ModeTUI; empty means ModeAuto.
	Prompt string    // Shown before each line in plain mode and as the input prompt in TUI mode.
	Banner string    // Printed once at startup; empty disables it.
	Quiet  bool      // Plain mode only: no banner and no prompt (script input).
}

// NewSession returns a TUI session when the mode asks for one or, in auto
// mode, when the writer is a TTY. Quiet sessions are always plain.
func NewSession(d *command.Dispatcher, opts Options) Session {
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	useTUI := false
	switch opts.Mode {
	case ModeTUI:
		useTUI = true
	case ModeAuto, "":
		useTUI = isTTY(opts.Writer)
	}
	if opts.Quiet {
		useTUI = false
	}

	if useTUI {
		return &TUISession{dispatcher: d, w: opts.Writer, prompt: opts.Prompt, banner: opts.Banner}
	}
	return &PlainSession{dispatcher: d, w: opts.Writer, prompt: opts.Prompt, banner: opts.Banner, quiet: opts.Quiet}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainSession prints a prompt, reads one line, prints the command result and
// repeats.
type PlainSession struct {
	dispatcher *command.Dispatcher
	w          io.Writer
	prompt     string
	banner     string
	quiet      bool
}

// Run loops over input lines. End of input stops the session cleanly; a
// cancelled context is checked between lines.
func (s *PlainSession) Run(ctx context.Context, in io.Reader) error {
	if !s.quiet && s.banner != "" {
		_, _ = fmt.Fprintln(s.w, s.banner)
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.quiet {
			_, _ = fmt.Fprint(s.w, s.prompt)
		}
		if !sc.Scan() {
			break
		}

		res := s.dispatcher.Execute(sc.Text())
		_, _ = fmt.Fprintln(s.w, res.Output)
		if res.Exit {
			return nil
		}
	}

	if err := sc.Err(); err != nil {
		return &SessionError{Mode: ModePlain, Err: err}
	}
	// Leave the cursor on a fresh line after the last prompt.
	if !s.quiet {
		_, _ = fmt.Fprintln(s.w)
	}
	return nil
}
