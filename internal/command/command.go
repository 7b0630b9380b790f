// Package command parses input lines into commands and dispatches them to
// handlers that operate on a contact.AddressBook.
package command

import "strings"

// Kind identifies a recognized command verb.
type Kind int

const (
	KindUnknown Kind = iota
	KindHello
	KindAdd
	KindChange
	KindPhone
	KindAll
	KindExit
	KindClose
)

var kindVerbs = map[Kind]string{
	KindHello:  "hello",
	KindAdd:    "add",
	KindChange: "change",
	KindPhone:  "phone",
	KindAll:    "all",
	KindExit:   "exit",
	KindClose:  "close",
}

var verbKinds = func() map[string]Kind {
	m := make(map[string]Kind, len(kindVerbs))
	for k, v := range kindVerbs {
		m[v] = k
	}
	return m
}()

// ParseKind resolves a lower-case verb to its Kind, or KindUnknown.
func ParseKind(verb string) Kind {
	return verbKinds[verb]
}

func (k Kind) String() string {
	if v, ok := kindVerbs[k]; ok {
		return v
	}
	return "unknown"
}

// Terminal reports whether the command ends the session.
func (k Kind) Terminal() bool {
	return k == KindExit || k == KindClose
}

// Verbs returns every recognized verb in declaration order.
func Verbs() []string {
	out := make([]string, 0, len(kindVerbs))
	for k := KindHello; k <= KindClose; k++ {
		out = append(out, kindVerbs[k])
	}
	return out
}

// Input is a parsed command line.
type Input struct {
	Kind Kind
	Verb string // lower-cased first token; empty for a blank line
	Args []string
}

// Parse splits line on whitespace. The first token is lower-cased and resolved
// to a Kind; names and phones in Args keep their case.
func Parse(line string) Input {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Input{Kind: KindUnknown}
	}
	verb := strings.ToLower(fields[0])
	return Input{
		Kind: ParseKind(verb),
		Verb: verb,
		Args: fields[1:],
	}
}
