package command

import (
	"fmt"
	"sort"

	"github.com/smileynet/contacts/internal/contact"
)

// Handler executes one command against the book and returns the text to print.
type Handler func(args []string, book *contact.AddressBook) (string, error)

// Registry maps command kinds to handlers.
// It is not safe for concurrent use; registration should happen at startup.
type Registry struct {
	handlers map[Kind]Handler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Kind]Handler)}
}

// DefaultRegistry returns a Registry bound to the fixed command table.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(KindHello, hello)
	r.Register(KindAdd, addContact)
	r.Register(KindChange, changeContact)
	r.Register(KindPhone, showPhone)
	r.Register(KindAll, showAll)
	r.Register(KindExit, goodbye)
	r.Register(KindClose, goodbye)
	return r
}

// Register binds h to k. Overwrites an existing binding.
// Panics if k is KindUnknown or h is nil (programmer error).
func (r *Registry) Register(k Kind, h Handler) {
	if k == KindUnknown {
		panic("command: Register called with KindUnknown")
	}
	if h == nil {
		panic(fmt.Sprintf("command: Register called with nil handler for %s", k))
	}
	r.handlers[k] = h
}

// Lookup returns the handler bound to k.
func (r *Registry) Lookup(k Kind) (Handler, bool) {
	h, ok := r.handlers[k]
	return h, ok
}

// Verbs returns registered verbs in sorted order.
func (r *Registry) Verbs() []string {
	names := make([]string, 0, len(r.handlers))
	for k := range r.handlers {
		names = append(names, k.String())
	}
	sort.Strings(names)
	return names
}
