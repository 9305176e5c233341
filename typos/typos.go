// Package typos makes synthetic spelling mistakes for building test sets.
package typos

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"math/rand/v2"
	"strings"
	"unicode"
	"unicode/utf8"

	ngramspell "github.com/zchrykng/go-ngramspell"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"

	// MinLength is the length a word must exceed to receive a typo.
	MinLength = 3
	// MinEssayWords is the shortest corpus line GenerateEssays uses.
	MinEssayWords = 100
	// Window is the number of words per typo in an essay.
	Window = 10

	maxAttempts = 100
)

// ErrNoTypo is returned when every attempt at mutating a word produced
// another dictionary word.
var ErrNoTypo = errors.New("typos: could not make a non-word")

// Lexicon reports whether a word is known.
type Lexicon interface {
	Contains(word string) bool
}

// Maker mutates words into non-words. It is not safe for concurrent use.
type Maker struct {
	lexicon Lexicon
	rng     *rand.Rand
}

// NewMaker returns a Maker whose mutations avoid the words of lexicon.
// The same seed always yields the same typos.
func NewMaker(lexicon Lexicon, seed uint64) *Maker {
	return &Maker{
		lexicon: lexicon,
		rng:     rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Mistake replaces one letter of word (80% of the time) or two letters at
// distinct positions with different random lowercase letters, retrying
// until the result is not a known word.
func (m *Maker) Mistake(word string) (string, error) {
	letters := []rune(word)
	if len(letters) == 0 {
		return "", fmt.Errorf("typos: empty word")
	}
	for range maxAttempts {
		typo := make([]rune, len(letters))
		copy(typo, letters)

		first := m.rng.IntN(len(typo))
		typo[first] = m.otherLetter(typo[first])
		if len(typo) > 1 && m.rng.IntN(10) < 2 {
			second := m.rng.IntN(len(typo) - 1)
			if second >= first {
				second++
			}
			typo[second] = m.otherLetter(typo[second])
		}

		if s := string(typo); !m.lexicon.Contains(s) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w from %q", ErrNoTypo, word)
}

// otherLetter returns a random lowercase letter other than r.
func (m *Maker) otherLetter(r rune) rune {
	choices := alphabet
	if i := strings.IndexRune(alphabet, r); i >= 0 {
		choices = alphabet[:i] + alphabet[i+1:]
	}
	return rune(choices[m.rng.IntN(len(choices))])
}

// Typo is a mistake placed in an essay.
type Typo struct {
	Position int    // Position is the word index in the essay
	Word     string // Word is the original word
	Typo     string
}

// Essay is a corpus line rewritten with typos.
type Essay struct {
	Raw   string
	Text  string
	Typos []Typo
}

// Eligible reports whether word may receive a typo: longer than MinLength
// and without digits.
func Eligible(word string) bool {
	if utf8.RuneCountInString(word) <= MinLength {
		return false
	}
	return strings.IndexFunc(word, unicode.IsDigit) < 0
}

// Essay puts at most one typo in each Window of words. A window whose
// randomly chosen word is not eligible gets none.
func (m *Maker) Essay(words []string) ([]string, []Typo, error) {
	out := make([]string, len(words))
	copy(out, words)

	var typos []Typo
	for i := range len(words) / Window {
		low := i * Window
		high := min(low+Window-1, len(words)-1)
		pos := low + m.rng.IntN(high-low+1)

		word := out[pos]
		if !Eligible(word) {
			continue
		}
		typo, err := m.Mistake(word)
		if err != nil {
			return nil, nil, err
		}
		out[pos] = typo
		typos = append(typos, Typo{Position: pos, Word: word, Typo: typo})
	}
	return out, typos, nil
}

// GenerateEssays yields an Essay for each line of corpus with at least
// MinEssayWords words, up to limit essays. A limit of zero or less means
// no limit. Words are lower-cased the way the dictionary sees them.
func (m *Maker) GenerateEssays(corpus io.Reader, limit int) iter.Seq2[Essay, error] {
	return func(yield func(Essay, error) bool) {
		scanner := bufio.NewScanner(corpus)
		scanner.Buffer(make([]byte, 64*1024), 16<<20)

		n := 0
		for scanner.Scan() {
			if limit > 0 && n >= limit {
				return
			}
			raw := strings.TrimSpace(scanner.Text())
			words := ngramspell.ParseWords(raw)
			if len(words) < MinEssayWords {
				continue
			}
			out, typos, err := m.Essay(words)
			if err != nil {
				yield(Essay{}, err)
				return
			}
			n++
			if !yield(Essay{Raw: raw, Text: strings.Join(out, " "), Typos: typos}, nil) {
				return
			}
		}
		if err := scanner.Err(); err != nil {
			yield(Essay{}, fmt.Errorf("typos: reading corpus: %w", err))
		}
	}
}

// WriteTypos writes one "word: typo" line per typo.
func WriteTypos(w io.Writer, typos []Typo) error {
	for _, t := range typos {
		if _, err := fmt.Fprintf(w, "%s: %s\n", t.Word, t.Typo); err != nil {
			return err
		}
	}
	return nil
}
