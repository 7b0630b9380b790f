package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/contacts"
	"github.com/smileynet/contacts/internal/command"
	"github.com/smileynet/contacts/internal/config"
	"github.com/smileynet/contacts/internal/contact"
	"github.com/smileynet/contacts/internal/logging"
	"github.com/smileynet/contacts/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for contacts.
type CLI struct {
	Version    kong.VersionFlag `help:"Show version." short:"V"`
	ConfigFile string           `help:"Extra config file, applied over user and project config." short:"c" type:"path" placeholder:"PATH"`

	Repl   ReplCmd   `cmd:"" default:"withargs" help:"Start the interactive assistant (default)."`
	Exec   ExecCmd   `cmd:"" help:"Run commands from a script file, one per line."`
	Config ConfigCmd `cmd:"" help:"Inspect or initialise configuration."`
}

// globals carries process-wide wiring into command Run methods.
type globals struct {
	configFile string
	stdin      io.Reader
	stdout     io.Writer
}

// loadConfig loads layered config from user, project and flag paths with env overrides.
func loadConfig(extra string) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/contacts/config.yaml"),
		"contacts.yaml",
		extra,
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newDispatcher builds a dispatcher over a fresh, empty address book.
func newDispatcher(cfg *config.Config, logger *zap.Logger) *command.Dispatcher {
	return command.New(contact.NewAddressBook(),
		command.WithLogger(logger),
		command.WithSuggestions(cfg.Commands.Suggest),
	)
}

// ReplCmd runs the interactive read-eval-print session.
type ReplCmd struct {
	Plain bool `help:"Force plain text output even if stdout is a TTY." default:"false"`
}

// Run executes the repl command.
func (r *ReplCmd) Run(g *globals) error {
	cfg, err := loadConfig(g.configFile)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	if r.Plain {
		cfg.UI.Mode = tui.ModePlain
	}

	logger, cleanup, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer func() { _ = cleanup() }()

	logger.Info("session starting", zap.String("mode", cfg.UI.Mode))
	session := tui.NewSession(newDispatcher(cfg, logger), tui.Options{
		Writer: g.stdout,
		Mode:   cfg.UI.Mode,
		Prompt: cfg.UI.Prompt,
		Banner: cfg.UI.Banner,
	})
	return r.run(context.Background(), session, g.stdin)
}

// run executes the session, enabling testable wiring.
func (r *ReplCmd) run(ctx context.Context, s tui.Session, in io.Reader) error {
	if err := s.Run(ctx, in); err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	return nil
}

// ExecCmd runs a script of commands through a quiet plain session.
type ExecCmd struct {
	Script string `arg:"" help:"Script file to run, or - for stdin."`
}

// Run executes the exec command.
func (e *ExecCmd) Run(g *globals) error {
	cfg, err := loadConfig(g.configFile)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	logger, cleanup, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	defer func() { _ = cleanup() }()

	in := g.stdin
	if e.Script != "-" {
		f, err := os.Open(e.Script)
		if err != nil {
			return fmt.Errorf("exec: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	logger.Info("running script", zap.String("script", e.Script))
	return e.run(context.Background(), g.stdout, newDispatcher(cfg, logger), in)
}

// run executes the script with the given dispatcher, enabling testable wiring.
func (e *ExecCmd) run(ctx context.Context, w io.Writer, d *command.Dispatcher, in io.Reader) error {
	s := tui.NewSession(d, tui.Options{Writer: w, Mode: tui.ModePlain, Quiet: true})
	if err := s.Run(ctx, in); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	return nil
}

// ConfigCmd groups configuration subcommands.
type ConfigCmd struct {
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration as YAML."`
	Init ConfigInitCmd `cmd:"" help:"Write the default configuration template."`
}

// ConfigShowCmd prints the merged configuration.
type ConfigShowCmd struct{}

// Run executes the config show command.
func (c *ConfigShowCmd) Run(g *globals) error {
	cfg, err := loadConfig(g.configFile)
	if err != nil {
		return fmt.Errorf("config show: %w", err)
	}
	data, err := cfg.Marshal()
	if err != nil {
		return fmt.Errorf("config show: %w", err)
	}
	_, err = g.stdout.Write(data)
	return err
}

// ConfigInitCmd writes the embedded config template to disk.
type ConfigInitCmd struct {
	Path  string `arg:"" optional:"" help:"Destination file." default:"contacts.yaml" type:"path"`
	Force bool   `help:"Overwrite an existing file."`
}

// Run executes the config init command.
func (c *ConfigInitCmd) Run(g *globals) error {
	if !c.Force {
		if _, err := os.Stat(c.Path); err == nil {
			return fmt.Errorf("config init: %s already exists (use --force to overwrite)", c.Path)
		}
	}
	data, err := contacts.ConfigTemplate()
	if err != nil {
		return fmt.Errorf("config init: %w", err)
	}
	if err := os.WriteFile(c.Path, data, 0o644); err != nil {
		return fmt.Errorf("config init: %w", err)
	}
	_, _ = fmt.Fprintf(g.stdout, "Wrote %s\n", c.Path)
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitSession = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var se *tui.SessionError
	if errors.As(err, &se) {
		return exitSession
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contacts"),
		kong.Description("An in-memory contact assistant."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&globals{
		configFile: cli.ConfigFile,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
