package ngramspell

import (
	"fmt"
	"sort"
)

// Candidate is a dictionary word proposed as the correction of a typo
type Candidate struct {
	Term        string  `json:"term"`        // Term is the proposed word
	Probability float64 `json:"probability"` // Probability of Term given the two preceding words
	Count       int     `json:"count"`       // Count of Term in the dictionary corpus
	Distance    int     `json:"distance"`    // Distance between the typo and Term in edits
}

// Less reports whether c ranks before other: higher probability first, then
// the more frequent word, then the lexicographically smaller word.
func (c Candidate) Less(other Candidate) bool {
	if c.Probability != other.Probability {
		return c.Probability > other.Probability
	}
	if c.Count != other.Count {
		return c.Count > other.Count
	}
	return c.Term < other.Term
}

// String implements the stringer interface
func (c Candidate) String() string {
	return fmt.Sprintf("{%s, %g, %d, %d}", c.Term, c.Probability, c.Count, c.Distance)
}

// Candidates exists to implement the sort interface
type Candidates []Candidate

// Len returns the length of the Candidates array
func (cs Candidates) Len() int {
	return len(cs)
}

// Swap the positions of two Candidate in the array
func (cs Candidates) Swap(i, j int) {
	cs[i], cs[j] = cs[j], cs[i]
}

// Less compares two Candidate items by ranking order
func (cs Candidates) Less(i, j int) bool {
	return cs[i].Less(cs[j])
}

// Sort orders cs best first.
func (cs Candidates) Sort() {
	sort.Sort(cs)
}

// Terms returns the candidate words in ranking order.
func (cs Candidates) Terms() []string {
	terms := make([]string, len(cs))
	for i, c := range cs {
		terms[i] = c.Term
	}
	return terms
}

// Closest returns the leading candidates that share the best probability.
func (cs Candidates) Closest() Candidates {
	if len(cs) == 0 {
		return nil
	}
	n := 1
	for n < len(cs) && cs[n].Probability == cs[0].Probability {
		n++
	}
	return cs[:n]
}
