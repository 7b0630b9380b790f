package contact

import (
	"errors"
	"fmt"
	"slices"
)

// ErrRecordNotFound indicates no record is stored under the requested name.
var ErrRecordNotFound = errors.New("contact: record not found")

// AddressBook maps contact names to records and remembers insertion order.
// It is not safe for concurrent use.
type AddressBook struct {
	records map[string]*Record
	order   []string
}

// NewAddressBook creates an empty AddressBook.
func NewAddressBook() *AddressBook {
	return &AddressBook{records: make(map[string]*Record)}
}

// AddRecord stores r under its name. An existing record with the same name is
// replaced wholesale and keeps its position in the iteration order.
func (b *AddressBook) AddRecord(r *Record) {
	key := r.Name().String()
	if _, ok := b.records[key]; !ok {
		b.order = append(b.order, key)
	}
	b.records[key] = r
}

// Find returns the record stored under name.
func (b *AddressBook) Find(name string) (*Record, bool) {
	r, ok := b.records[name]
	return r, ok
}

// Delete removes the record stored under name.
func (b *AddressBook) Delete(name string) error {
	if _, ok := b.records[name]; !ok {
		return fmt.Errorf("%w: %q", ErrRecordNotFound, name)
	}
	delete(b.records, name)
	b.order = slices.DeleteFunc(b.order, func(k string) bool { return k == name })
	return nil
}

// Records returns all records in insertion order.
func (b *AddressBook) Records() []*Record {
	out := make([]*Record, 0, len(b.order))
	for _, k := range b.order {
		out = append(out, b.records[k])
	}
	return out
}

// Len returns the number of stored records.
func (b *AddressBook) Len() int { return len(b.records) }
