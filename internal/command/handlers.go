package command

import (
	"fmt"
	"strings"

	"github.com/smileynet/contacts/internal/contact"
)

// Fixed replies.
const (
	MsgGreeting   = "How can I help you?"
	MsgGoodbye    = "Good bye!"
	MsgNoContacts = "No contacts."
)

func hello(_ []string, _ *contact.AddressBook) (string, error) {
	return MsgGreeting, nil
}

func goodbye(_ []string, _ *contact.AddressBook) (string, error) {
	return MsgGoodbye, nil
}

// addContact builds a fresh record from name and phones and stores it,
// replacing any record of the same name. The book is untouched if any phone
// is malformed.
func addContact(args []string, book *contact.AddressBook) (string, error) {
	if len(args) < 2 {
		return "", insufficientArgs("add", "at least 2", len(args))
	}
	name, phones := args[0], args[1:]

	rec, err := contact.NewRecord(name)
	if err != nil {
		return "", err
	}
	for _, p := range phones {
		if err := rec.AddPhone(p); err != nil {
			return "", err
		}
	}
	book.AddRecord(rec)
	return fmt.Sprintf("Contact %s added with phones: %s", name, strings.Join(phones, "; ")), nil
}

func changeContact(args []string, book *contact.AddressBook) (string, error) {
	if len(args) != 3 {
		return "", insufficientArgs("change", "3", len(args))
	}
	name, oldPhone, newPhone := args[0], args[1], args[2]

	rec, ok := book.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", contact.ErrRecordNotFound, name)
	}
	if err := rec.EditPhone(oldPhone, newPhone); err != nil {
		return "", err
	}
	return fmt.Sprintf("Phone for %s updated from %s to %s.", name, oldPhone, newPhone), nil
}

func showPhone(args []string, book *contact.AddressBook) (string, error) {
	if len(args) != 1 {
		return "", insufficientArgs("phone", "1", len(args))
	}
	name := args[0]

	rec, ok := book.Find(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", contact.ErrRecordNotFound, name)
	}
	return fmt.Sprintf("%s: %s", name, rec.JoinPhones()), nil
}

func showAll(_ []string, book *contact.AddressBook) (string, error) {
	if book.Len() == 0 {
		return MsgNoContacts, nil
	}
	records := book.Records()
	lines := make([]string, len(records))
	for i, r := range records {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n"), nil
}
