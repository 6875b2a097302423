// Package vocab implements the bidirectional name/index vocabularies that
// the matrix builders resolve slot and action names against.
package vocab

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownName is returned when encoding a name the vocabulary
	// has never seen.
	ErrUnknownName = errors.New("vocab: unknown name")
	// ErrIndexRange is returned when decoding an index outside the
	// vocabulary.
	ErrIndexRange = errors.New("vocab: index out of range")
)

// Vocab maps between names and dense integer indices in both directions.
// Indices are assigned in first-seen order and never change once assigned,
// so re-fitting with a superset of the data keeps old indices valid.
type Vocab struct {
	toID  map[string]int
	names []string
}

// New returns a vocabulary seeded with the given names in order.
func New(names ...string) *Vocab {
	v := &Vocab{toID: make(map[string]int)}
	for _, n := range names {
		v.Add(n)
	}
	return v
}

// Add inserts a name if absent and returns its index.
func (v *Vocab) Add(name string) int {
	if id, ok := v.toID[name]; ok {
		return id
	}
	id := len(v.names)
	v.toID[name] = id
	v.names = append(v.names, name)
	return id
}

// Fit observes batches of names in order, appending unseen ones.
func (v *Vocab) Fit(batches ...[]string) {
	for _, batch := range batches {
		for _, name := range batch {
			v.Add(name)
		}
	}
}

// ID returns the index assigned to name.
func (v *Vocab) ID(name string) (int, bool) {
	id, ok := v.toID[name]
	return id, ok
}

// Name returns the name at index id.
func (v *Vocab) Name(id int) (string, bool) {
	if id < 0 || id >= len(v.names) {
		return "", false
	}
	return v.names[id], true
}

// Contains reports whether name is in the vocabulary.
func (v *Vocab) Contains(name string) bool {
	_, ok := v.toID[name]
	return ok
}

// Len returns the number of names in the vocabulary.
func (v *Vocab) Len() int {
	return len(v.names)
}

// Names returns a copy of all names in index order.
func (v *Vocab) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Encode maps names to indices, failing on the first unknown name.
func (v *Vocab) Encode(names []string) ([]int, error) {
	ids := make([]int, len(names))
	for i, name := range names {
		id, ok := v.toID[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}
		ids[i] = id
	}
	return ids, nil
}

// Decode maps indices back to names, failing on the first index outside
// the vocabulary.
func (v *Vocab) Decode(ids []int) ([]string, error) {
	names := make([]string, len(ids))
	for i, id := range ids {
		name, ok := v.Name(id)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrIndexRange, id)
		}
		names[i] = name
	}
	return names, nil
}
