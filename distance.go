package ngramspell

import (
	"fmt"

	"github.com/hbollon/go-edlib"
)

// distanceFunc resolves algorithm to its edlib implementation.
func distanceFunc(algorithm edlib.Algorithm) (func(a, b string) int, error) {
	switch algorithm {
	case edlib.OSADamerauLevenshtein:
		return edlib.OSADamerauLevenshteinDistance, nil
	case edlib.DamerauLevenshtein:
		return edlib.DamerauLevenshteinDistance, nil
	case edlib.Levenshtein:
		return edlib.LevenshteinDistance, nil
	case edlib.Lcs:
		return edlib.LCSEditDistance, nil
	}
	return nil, fmt.Errorf("ngramspell: unsupported distance algorithm %d", algorithm)
}

// Distance returns the edit distance between a and b under algorithm.
func Distance(a, b string, algorithm edlib.Algorithm) (int, error) {
	f, err := distanceFunc(algorithm)
	if err != nil {
		return -1, err
	}
	return f(a, b), nil
}
