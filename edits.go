package ngramspell

import (
	"context"
	"iter"

	mapset "github.com/deckarep/golang-set/v2"
)

const letters = "abcdefghijklmnopqrstuvwxyz"

// ctxCheckInterval is how many generated edits pass between context checks.
const ctxCheckInterval = 1 << 12

// edits1Seq yields every single-edit variant of word, with repeats and
// possibly word itself (substituting a letter by itself, swapping equal
// neighbours).
func edits1Seq(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		r := []rune(word)
		buf := make([]rune, 0, len(r)+1)
		emit := func(parts ...[]rune) bool {
			buf = buf[:0]
			for _, p := range parts {
				buf = append(buf, p...)
			}
			return yield(string(buf))
		}

		for i := 0; i <= len(r); i++ {
			left, right := r[:i], r[i:]
			if len(right) > 0 {
				// delete
				if !emit(left, right[1:]) {
					return
				}
			}
			if len(right) > 1 {
				// transpose
				if !emit(left, []rune{right[1], right[0]}, right[2:]) {
					return
				}
			}
			for _, c := range letters {
				if len(right) > 0 {
					// replace
					if !emit(left, []rune{c}, right[1:]) {
						return
					}
				}
				// insert
				if !emit(left, []rune{c}, right) {
					return
				}
			}
		}
	}
}

// Edits1 returns every distinct string one delete, adjacent transpose,
// substitution or insertion away from word. Word itself is never included.
func Edits1(word string) mapset.Set[string] {
	edits := mapset.NewThreadUnsafeSet[string]()
	for e := range edits1Seq(word) {
		edits.Add(e)
	}
	edits.Remove(word)
	return edits
}

// Edits2 lazily yields the edits of every edit of word. Nothing is
// materialized beyond the first-level set, so the sequence may repeat
// strings; ranging over it again starts over.
func Edits2(word string) iter.Seq[string] {
	return func(yield func(string) bool) {
		Edits1(word).Each(func(e1 string) bool {
			for e2 := range edits1Seq(e1) {
				if !yield(e2) {
					return true
				}
			}
			return false
		})
	}
}

// setSeq adapts a set to a sequence.
func setSeq(s mapset.Set[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		s.Each(func(w string) bool {
			return !yield(w)
		})
	}
}

// untilDone passes seq through until ctx is done.
func untilDone(ctx context.Context, seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		n := 0
		for w := range seq {
			n++
			if n%ctxCheckInterval == 0 && ctx.Err() != nil {
				return
			}
			if !yield(w) {
				return
			}
		}
	}
}
