// Package contact holds the in-memory contact model: validated field values,
// records and the address book that indexes them by name.
package contact

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptyName indicates a contact name with no visible characters.
	ErrEmptyName = errors.New("contact: name cannot be empty")
	// ErrInvalidPhone indicates a phone value that is not exactly 10 digits.
	ErrInvalidPhone = errors.New("contact: phone must contain exactly 10 digits")
)

// phonePattern matches exactly ten ASCII digits with no separators.
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Name identifies a contact and is the AddressBook key.
type Name struct {
	value string
}

// NewName returns a Name, rejecting empty or blank text.
func NewName(s string) (Name, error) {
	if strings.TrimSpace(s) == "" {
		return Name{}, ErrEmptyName
	}
	return Name{value: s}, nil
}

func (n Name) String() string { return n.value }

// Phone is a phone number of exactly 10 decimal digits.
type Phone struct {
	value string
}

// NewPhone validates s and returns it as a Phone.
func NewPhone(s string) (Phone, error) {
	if !phonePattern.MatchString(s) {
		return Phone{}, fmt.Errorf("%w: %q", ErrInvalidPhone, s)
	}
	return Phone{value: s}, nil
}

func (p Phone) String() string { return p.value }
