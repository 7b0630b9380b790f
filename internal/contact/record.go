package contact

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPhoneNotFound indicates an edit targeted a phone the record does not hold.
var ErrPhoneNotFound = errors.New("contact: phone not found")

// Record is a single contact: a name plus an ordered list of phones.
// Duplicate phones are allowed.
type Record struct {
	name   Name
	phones []Phone
}

// NewRecord creates a Record with no phones.
func NewRecord(name string) (*Record, error) {
	n, err := NewName(name)
	if err != nil {
		return nil, err
	}
	return &Record{name: n}, nil
}

// Name returns the contact name.
func (r *Record) Name() Name { return r.name }

// Phones returns a copy of the record's phones in insertion order.
func (r *Record) Phones() []Phone {
	out := make([]Phone, len(r.phones))
	copy(out, r.phones)
	return out
}

// AddPhone validates value and appends it.
func (r *Record) AddPhone(value string) error {
	p, err := NewPhone(value)
	if err != nil {
		return err
	}
	r.phones = append(r.phones, p)
	return nil
}

// RemovePhone drops every phone equal to value. Removing an absent phone is a no-op.
func (r *Record) RemovePhone(value string) {
	kept := r.phones[:0]
	for _, p := range r.phones {
		if p.value != value {
			kept = append(kept, p)
		}
	}
	r.phones = kept
}

// EditPhone replaces the first phone equal to oldValue with newValue.
// newValue must pass the same validation as AddPhone.
func (r *Record) EditPhone(oldValue, newValue string) error {
	p, err := NewPhone(newValue)
	if err != nil {
		return err
	}
	for i := range r.phones {
		if r.phones[i].value == oldValue {
			r.phones[i] = p
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrPhoneNotFound, oldValue)
}

// FindPhone returns the first phone equal to value.
func (r *Record) FindPhone(value string) (Phone, bool) {
	for _, p := range r.phones {
		if p.value == value {
			return p, true
		}
	}
	return Phone{}, false
}

// JoinPhones renders the phones separated by "; ".
func (r *Record) JoinPhones() string {
	vals := make([]string, len(r.phones))
	for i, p := range r.phones {
		vals[i] = p.value
	}
	return strings.Join(vals, "; ")
}

func (r *Record) String() string {
	return fmt.Sprintf("Contact name: %s, phones: %s", r.name, r.JoinPhones())
}
