package ngramspell

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// asciiPunctuation is the ASCII punctuation set, symbols included.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

func isPunctuation(r rune) bool {
	return strings.ContainsRune(asciiPunctuation, r) || unicode.IsPunct(r)
}

func allPunctuation(token string) bool {
	for _, r := range token {
		if !isPunctuation(r) {
			return false
		}
	}
	return true
}

// isNumeric reports whether token is digits with at most one decimal point.
func isNumeric(token string) bool {
	digits := strings.Replace(token, ".", "", 1)
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isSingleLetter(token string) bool {
	r, size := utf8.DecodeRuneInString(token)
	return size == len(token) && unicode.IsLetter(r)
}

// Detect reports whether token looks like a typo. Punctuation, numbers and
// single letters never are; anything else is a typo unless dict holds it
// as given or lower-cased.
func Detect(dict *Dictionary, token string) bool {
	switch {
	case token == "":
		return false
	case allPunctuation(token):
		return false
	case isNumeric(token):
		return false
	case isSingleLetter(token):
		return false
	}
	return !dict.Contains(token) && !dict.Contains(strings.ToLower(token))
}
