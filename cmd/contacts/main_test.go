package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/contacts/internal/command"
	"github.com/smileynet/contacts/internal/config"
	"github.com/smileynet/contacts/internal/tui"
)

// errExitCalled is a sentinel used to catch kong's os.Exit calls in tests.
var errExitCalled = errors.New("exit called")

func newParser(t *testing.T, cli *CLI) *kong.Kong {
	t.Helper()
	k, err := kong.New(cli, kong.Vars{"version": "test"})
	if err != nil {
		t.Fatal(err)
	}
	return k
}

// isolate points HOME and the working directory at empty temp dirs so user and
// project config files on the host do not leak into tests.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"CONTACTS_UI_MODE", "CONTACTS_PROMPT", "CONTACTS_LOG_LEVEL", "CONTACTS_LOG_FILE", "CONTACTS_SUGGEST"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestCLI_Parse(t *testing.T) {
	t.Run("version flag prints version commit and date", func(t *testing.T) {
		// Given: a CLI parser with version, commit, and date fields
		var cli CLI
		var buf bytes.Buffer
		versionStr := "v1.0.0 abc1234 2026-01-01T00:00:00Z"
		k, err := kong.New(&cli,
			kong.Vars{"version": versionStr},
			kong.Writers(&buf, &buf),
			kong.Exit(func(int) { panic(errExitCalled) }),
		)
		if err != nil {
			t.Fatal(err)
		}

		// When: --version flag is passed
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic from --version flag")
			}
			err, ok := r.(error)
			if !ok || !errors.Is(err, errExitCalled) {
				panic(r)
			}

			// Then: version, commit, and date are all present in output
			output := buf.String()
			for _, want := range []string{"v1.0.0", "abc1234", "2026-01-01T00:00:00Z"} {
				if !strings.Contains(output, want) {
					t.Errorf("version output = %q, want to contain %q", output, want)
				}
			}
		}()

		k.Parse([]string{"--version"}) //nolint:errcheck // --version triggers panic via Exit hook
	})

	t.Run("no args selects repl", func(t *testing.T) {
		var cli CLI
		kctx, err := newParser(t, &cli).Parse([]string{})
		if err != nil {
			t.Fatal(err)
		}
		if kctx.Command() != "repl" {
			t.Errorf("got command %q, want %q", kctx.Command(), "repl")
		}
	})

	t.Run("default repl accepts plain flag", func(t *testing.T) {
		var cli CLI
		if _, err := newParser(t, &cli).Parse([]string{"--plain"}); err != nil {
			t.Fatal(err)
		}
		if !cli.Repl.Plain {
			t.Error("Repl.Plain = false, want true")
		}
	})

	t.Run("exec parses script path", func(t *testing.T) {
		var cli CLI
		kctx, err := newParser(t, &cli).Parse([]string{"exec", "-"})
		if err != nil {
			t.Fatal(err)
		}
		if kctx.Command() != "exec <script>" {
			t.Errorf("got command %q, want %q", kctx.Command(), "exec <script>")
		}
	})

	t.Run("config init defaults path", func(t *testing.T) {
		var cli CLI
		kctx, err := newParser(t, &cli).Parse([]string{"config", "init"})
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(kctx.Command(), "config init") {
			t.Errorf("got command %q, want config init", kctx.Command())
		}
		if filepath.Base(cli.Config.Init.Path) != "contacts.yaml" {
			t.Errorf("Path = %q, want contacts.yaml", cli.Config.Init.Path)
		}
	})

	t.Run("global config file flag", func(t *testing.T) {
		var cli CLI
		if _, err := newParser(t, &cli).Parse([]string{"-c", "extra.yaml", "config", "show"}); err != nil {
			t.Fatal(err)
		}
		if filepath.Base(cli.ConfigFile) != "extra.yaml" {
			t.Errorf("ConfigFile = %q, want extra.yaml", cli.ConfigFile)
		}
	})

	t.Run("unknown command errors", func(t *testing.T) {
		var cli CLI
		if _, err := newParser(t, &cli).Parse([]string{"config", "explode"}); err == nil {
			t.Fatal("expected error for unknown subcommand")
		}
	})
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: exitSuccess},
		{name: "session error", err: fmt.Errorf("repl: %w", &tui.SessionError{Mode: tui.ModePlain, Err: io.ErrUnexpectedEOF}), want: exitSession},
		{name: "setup error", err: errors.New("config: bad"), want: exitSetup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// fakeSession records the reader it was given and returns err.
type fakeSession struct {
	in  io.Reader
	err error
}

func (f *fakeSession) Run(_ context.Context, in io.Reader) error {
	f.in = in
	return f.err
}

func TestReplCmd_run(t *testing.T) {
	t.Run("passes input through", func(t *testing.T) {
		s := &fakeSession{}
		in := strings.NewReader("exit\n")
		if err := (&ReplCmd{}).run(context.Background(), s, in); err != nil {
			t.Fatalf("run() error = %v", err)
		}
		if s.in != in {
			t.Error("session did not receive the input reader")
		}
	})

	t.Run("wraps session errors", func(t *testing.T) {
		s := &fakeSession{err: &tui.SessionError{Mode: tui.ModeTUI, Err: errors.New("no tty")}}
		err := (&ReplCmd{}).run(context.Background(), s, strings.NewReader(""))
		if exitCode(err) != exitSession {
			t.Errorf("exitCode(%v) = %d, want %d", err, exitCode(err), exitSession)
		}
	})
}

func TestReplCmd_Run_PlainTranscript(t *testing.T) {
	isolate(t)

	var out bytes.Buffer
	g := &globals{
		stdin:  strings.NewReader("hello\nadd alice 1234567890\nall\nexit\n"),
		stdout: &out,
	}
	if err := (&ReplCmd{Plain: true}).Run(g); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "Welcome to the assistant bot!\n" +
		"Enter a command: How can I help you?\n" +
		"Enter a command: Contact alice added with phones: 1234567890\n" +
		"Enter a command: Contact name: alice, phones: 1234567890\n" +
		"Enter a command: Good bye!\n"
	if out.String() != want {
		t.Errorf("transcript mismatch\ngot:\n%s\nwant:\n%s", out.String(), want)
	}
}

func TestReplCmd_Run_InvalidConfig(t *testing.T) {
	dir := isolate(t)
	if err := os.WriteFile(filepath.Join(dir, "contacts.yaml"), []byte("ui:\n  mode: gui\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := (&ReplCmd{}).Run(&globals{stdin: strings.NewReader(""), stdout: io.Discard})
	if err == nil {
		t.Fatal("Run() should fail on invalid config")
	}
	if exitCode(err) != exitSetup {
		t.Errorf("exitCode = %d, want %d", exitCode(err), exitSetup)
	}
}

func TestExecCmd_run(t *testing.T) {
	// Given a script and a dispatcher with suggestions on
	cfg := config.DefaultConfig()
	cfg.Commands.Suggest = true
	d := newDispatcher(&cfg, zap.NewNop())
	script := strings.NewReader("add bob 1112223333\nphnoe bob\nphone bob\nexit\nhello\n")

	// When the script runs
	var out bytes.Buffer
	if err := (&ExecCmd{}).run(context.Background(), &out, d, script); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	// Then each result is printed without prompts and execution stops at exit
	want := "Contact bob added with phones: 1112223333\n" +
		"Invalid command. Did you mean \"phone\"?\n" +
		"bob: 1112223333\n" +
		"Good bye!\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
	if _, ok := d.Book().Find("bob"); !ok {
		t.Error("script did not populate the book")
	}
}

func TestExecCmd_Run_FromFile(t *testing.T) {
	dir := isolate(t)
	script := filepath.Join(dir, "script.txt")
	if err := os.WriteFile(script, []byte("add carol 0935673555\nphone carol\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := (&ExecCmd{Script: script}).Run(&globals{stdout: &out}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasSuffix(out.String(), "carol: 0935673555\n") {
		t.Errorf("output = %q", out.String())
	}
}

func TestExecCmd_Run_MissingFile(t *testing.T) {
	isolate(t)
	err := (&ExecCmd{Script: "nope.txt"}).Run(&globals{stdout: io.Discard})
	if err == nil {
		t.Fatal("Run() should fail for a missing script")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Run() error = %v, want os.ErrNotExist", err)
	}
}

func TestConfigInitCmd_Run(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "contacts.yaml")

	// First write succeeds.
	var out bytes.Buffer
	if err := (&ConfigInitCmd{Path: path}).Run(&globals{stdout: &out}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Wrote") {
		t.Errorf("output = %q, want confirmation", out.String())
	}
	if _, err := config.Load(path); err != nil {
		t.Errorf("written template does not load: %v", err)
	}

	// Second write refuses without --force.
	if err := (&ConfigInitCmd{Path: path}).Run(&globals{stdout: io.Discard}); err == nil {
		t.Error("Run() should refuse to overwrite")
	}
	if err := (&ConfigInitCmd{Path: path, Force: true}).Run(&globals{stdout: io.Discard}); err != nil {
		t.Errorf("Run(--force) error = %v", err)
	}
}

func TestConfigShowCmd_Run_LayersExtraFile(t *testing.T) {
	dir := isolate(t)
	extra := filepath.Join(dir, "extra.yaml")
	if err := os.WriteFile(extra, []byte("commands:\n  suggest: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := (&ConfigShowCmd{}).Run(&globals{configFile: extra, stdout: &out}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, want := range []string{"suggest: true", "mode: auto", "level: info"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestNewDispatcher_StartsEmpty(t *testing.T) {
	cfg := config.DefaultConfig()
	d := newDispatcher(&cfg, zap.NewNop())
	if res := d.Execute("all"); res.Output != command.MsgNoContacts {
		t.Errorf("Output = %q, want %q", res.Output, command.MsgNoContacts)
	}
}
