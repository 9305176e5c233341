// Package ngramspell detects and corrects misspelled words in English
// sentences. Candidates come from the dictionary words one or two edits
// away from a typo; a trigram language model with Katz backoff picks the
// most probable one given the two words before it.
package ngramspell
