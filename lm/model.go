// Package lm holds an immutable n-gram backoff language model (order ≤ 3)
// and reads it from the ARPA text format or from its JSON persisted form.
package lm

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"strings"
)

// MaxOrder is the highest n-gram order a Model holds.
const MaxOrder = 3

var (
	ErrNoSections = errors.New("lm: no n-gram sections found")
	ErrEmptyKey   = errors.New("lm: empty n-gram key")
)

// Key is an n-gram: one to MaxOrder words joined by single spaces.
type Key string

// NewKey joins words with single spaces, verbatim. Empty words are kept, so
// NewKey("", "the") is " the", a key no model contains.
func NewKey(words ...string) Key {
	return Key(strings.Join(words, " "))
}

// Order returns the number of space separated words in k.
func (k Key) Order() int {
	if k == "" {
		return 0
	}
	return strings.Count(string(k), " ") + 1
}

func (k Key) String() string {
	return string(k)
}

// Entry is the log10 probability of an n-gram and its log10 backoff weight.
// LogBW is 0 (a factor of 1) when the source carried no weight.
type Entry struct {
	LogP  float64 `json:"log_p"`
	LogBW float64 `json:"log_bw"`
}

// Model maps n-gram keys to entries. It is never modified after
// construction and is safe for concurrent readers.
type Model struct {
	entries  map[Key]Entry
	counts   [MaxOrder + 1]int
	declared [MaxOrder + 1]int
}

func newModel(entries map[Key]Entry, declared [MaxOrder + 1]int) *Model {
	m := &Model{entries: entries, declared: declared}
	for k := range entries {
		m.counts[k.Order()]++
	}
	return m
}

// NewModel builds a Model from entries, which it copies.
func NewModel(entries map[Key]Entry) (*Model, error) {
	owned := make(map[Key]Entry, len(entries))
	for k, e := range entries {
		if k == "" {
			return nil, ErrEmptyKey
		}
		if o := k.Order(); o > MaxOrder {
			return nil, fmt.Errorf("lm: key %q has order %d, max is %d", k, o, MaxOrder)
		}
		owned[k] = e
	}
	return newModel(owned, [MaxOrder + 1]int{}), nil
}

// Lookup returns the entry for k and whether it exists.
func (m *Model) Lookup(k Key) (Entry, bool) {
	e, ok := m.entries[k]
	return e, ok
}

// Len returns the number of n-grams of every order.
func (m *Model) Len() int {
	return len(m.entries)
}

// Count returns the number of n-grams of the given order held by m.
func (m *Model) Count(order int) int {
	if order < 1 || order > MaxOrder {
		return 0
	}
	return m.counts[order]
}

// DeclaredCount returns the count the ARPA header declared for order, or 0
// when the model was not read from ARPA text.
func (m *Model) DeclaredCount(order int) int {
	if order < 1 || order > MaxOrder {
		return 0
	}
	return m.declared[order]
}

// All iterates over every n-gram in unspecified order.
func (m *Model) All() iter.Seq2[Key, Entry] {
	return maps.All(m.entries)
}

// ToMap returns the persisted form of m: n-gram text to entry.
func (m *Model) ToMap() map[string]Entry {
	out := make(map[string]Entry, len(m.entries))
	for k, e := range m.entries {
		out[string(k)] = e
	}
	return out
}

// FromMap rebuilds a Model from its persisted form.
func FromMap(entries map[string]Entry) (*Model, error) {
	keyed := make(map[Key]Entry, len(entries))
	for k, e := range entries {
		keyed[Key(k)] = e
	}
	return NewModel(keyed)
}
