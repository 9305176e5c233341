package ngramspell

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"maps"
	"os"
	"regexp"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

// wordRe matches runs of word characters in any script, plus "_".
var wordRe = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// ParseWords lower-cases text and returns its word-character runs, in order
// and with repeats.
func ParseWords(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// Dictionary counts the words of a corpus. It is read-only once built;
// With and Without return modified copies.
type Dictionary struct {
	words map[string]int
}

// NewDictionary counts the words read from corpus.
func NewDictionary(corpus io.Reader) (*Dictionary, error) {
	d := &Dictionary{words: make(map[string]int)}

	scanner := bufio.NewScanner(corpus)
	scanner.Buffer(make([]byte, 0, 64*1024), 16<<20)
	for scanner.Scan() {
		for _, w := range ParseWords(scanner.Text()) {
			d.words[w]++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: reading corpus: %w", err)
	}
	return d, nil
}

// LoadDictionaryFile counts the words of the corpus file at path.
func LoadDictionaryFile(path string) (*Dictionary, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: %w", err)
	}
	defer file.Close()
	return NewDictionary(file)
}

// NewDictionaryFromCounts builds a Dictionary from word counts. Words are
// lower-cased; counts of words that collide are summed.
func NewDictionaryFromCounts(counts map[string]int) *Dictionary {
	d := &Dictionary{words: make(map[string]int, len(counts))}
	for w, c := range counts {
		d.words[strings.ToLower(w)] += c
	}
	return d
}

// With returns a copy of d that also contains words, each counted once more.
func (d *Dictionary) With(words ...string) *Dictionary {
	cp := &Dictionary{words: maps.Clone(d.words)}
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			cp.words[w]++
		}
	}
	return cp
}

// Without returns a copy of d with words removed.
func (d *Dictionary) Without(words ...string) *Dictionary {
	cp := &Dictionary{words: maps.Clone(d.words)}
	for _, w := range words {
		delete(cp.words, strings.ToLower(strings.TrimSpace(w)))
	}
	return cp
}

// Len returns the number of distinct words.
func (d *Dictionary) Len() int {
	return len(d.words)
}

// Contains reports whether word is in the dictionary, as given.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[word]
	return ok
}

// Count returns how often word occurred in the corpus.
func (d *Dictionary) Count(word string) int {
	return d.words[word]
}

// Known returns the distinct words of seq that are in the dictionary.
func (d *Dictionary) Known(seq iter.Seq[string]) mapset.Set[string] {
	known := mapset.NewThreadUnsafeSet[string]()
	for w := range seq {
		if d.Contains(w) {
			known.Add(w)
		}
	}
	return known
}
