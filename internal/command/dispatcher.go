package command

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/smileynet/contacts/internal/contact"
)

// ErrUnknownCommand is reported for blank lines and verbs outside the command table.
var ErrUnknownCommand = errors.New("command: unknown command")

// Result is the outcome of executing one input line.
type Result struct {
	Kind   Kind
	Output string // text to print; always set
	Exit   bool   // session should end after printing Output
	Err    error  // underlying failure, already translated into Output
}

// Dispatcher executes input lines against a single AddressBook.
// It is not safe for concurrent use.
type Dispatcher struct {
	book     *contact.AddressBook
	registry *Registry
	logger   *zap.Logger
	suggest  bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithRegistry replaces the default command table.
func WithRegistry(r *Registry) Option {
	return func(d *Dispatcher) { d.registry = r }
}

// WithLogger sets the logger used for command tracing.
func WithLogger(l *zap.Logger) Option {
	return func(d *Dispatcher) { d.logger = l }
}

// WithSuggestions enables "did you mean" hints for mistyped verbs.
func WithSuggestions(enabled bool) Option {
	return func(d *Dispatcher) { d.suggest = enabled }
}

// New creates a Dispatcher over book. A nil book starts empty.
func New(book *contact.AddressBook, opts ...Option) *Dispatcher {
	if book == nil {
		book = contact.NewAddressBook()
	}
	d := &Dispatcher{
		book:     book,
		registry: DefaultRegistry(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Book returns the address book the dispatcher mutates.
func (d *Dispatcher) Book() *contact.AddressBook { return d.book }

// Execute parses and runs one input line. Handler failures are translated into
// user-facing text; Execute itself never fails.
func (d *Dispatcher) Execute(line string) Result {
	in := Parse(line)

	h, ok := d.registry.Lookup(in.Kind)
	if !ok {
		d.logger.Debug("unknown command", zap.String("verb", in.Verb))
		return Result{
			Kind:   KindUnknown,
			Output: d.unknownMessage(in.Verb),
			Err:    fmt.Errorf("%w: %q", ErrUnknownCommand, in.Verb),
		}
	}

	d.logger.Debug("dispatching command",
		zap.Stringer("kind", in.Kind),
		zap.Int("args", len(in.Args)))

	out, err := h(in.Args, d.book)
	if err != nil {
		ce := classify(in.Verb, err)
		d.logger.Debug("command failed",
			zap.Stringer("kind", in.Kind),
			zap.Stringer("error_kind", ce.Kind),
			zap.Error(err))
		return Result{Kind: in.Kind, Output: Translate(ce), Err: ce}
	}

	return Result{Kind: in.Kind, Output: out, Exit: in.Kind.Terminal()}
}

func (d *Dispatcher) unknownMessage(verb string) string {
	if !d.suggest {
		return MsgInvalidCommand
	}
	if s, ok := Suggest(verb, d.registry.Verbs()); ok {
		return fmt.Sprintf("%s Did you mean %q?", MsgInvalidCommand, s)
	}
	return MsgInvalidCommand
}
