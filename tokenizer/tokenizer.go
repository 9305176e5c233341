// Package tokenizer segments English sentences the way the Penn Treebank
// does, and maps every token back to its byte span in the input.
//
// The rules only ever insert spaces, so each token is a substring of the
// input. Double quotes are kept as typed rather than rewritten to `` and ''.
package tokenizer

import (
	"fmt"
	"regexp"
	"strings"
)

type rule struct {
	re   *regexp.Regexp
	repl string
}

func (r rule) apply(s string) string {
	return r.re.ReplaceAllString(s, r.repl)
}

var (
	startingQuotes = []rule{
		{regexp.MustCompile(`^"`), `" `},
		{regexp.MustCompile(`([ (\[{<])"`), `$1 " `},
	}

	punctuation = []rule{
		{regexp.MustCompile(`([:,])([^\d])`), ` $1 $2`},
		{regexp.MustCompile(`([:,])$`), ` $1 `},
		{regexp.MustCompile(`\.\.\.`), ` ... `},
		{regexp.MustCompile(`[;@#$%&]`), ` $0 `},
		// sentence-final period, possibly followed by closing brackets or quotes
		{regexp.MustCompile(`([^.])(\.)([\])}>"']*)\s*$`), `$1 $2$3 `},
		{regexp.MustCompile(`[?!]`), ` $0 `},
		{regexp.MustCompile(`([^'])' `), `$1 ' `},
	}

	parens = rule{regexp.MustCompile(`[\]\[(){}<>]`), ` $0 `}

	doubleDashes = rule{regexp.MustCompile(`--`), ` -- `}

	endingQuotes = []rule{
		{regexp.MustCompile(`"`), ` " `},
		{regexp.MustCompile(`([^' ])('[sS]|'[mM]|'[dD]|') `), `$1 $2 `},
		{regexp.MustCompile(`([^' ])('ll|'LL|'re|'RE|'ve|'VE|n't|N'T) `), `$1 $2 `},
	}

	contractions = []rule{
		{regexp.MustCompile(`(?i)\b(can)(not)\b`), ` $1 $2 `},
		{regexp.MustCompile(`(?i)\b(d)('ye)\b`), ` $1 $2 `},
		{regexp.MustCompile(`(?i)\b(gim)(me)\b`), ` $1 $2 `},
		{regexp.MustCompile(`(?i)\b(gon)(na)\b`), ` $1 $2 `},
		{regexp.MustCompile(`(?i)\b(got)(ta)\b`), ` $1 $2 `},
		{regexp.MustCompile(`(?i)\b(lem)(me)\b`), ` $1 $2 `},
		{regexp.MustCompile(`(?i)\b(more)('n)\b`), ` $1 $2 `},
		{regexp.MustCompile(`(?i)\b(wan)(na)\s`), ` $1 $2 `},
		{regexp.MustCompile(`(?i) ('t)(is)\b`), ` $1 $2 `},
		{regexp.MustCompile(`(?i) ('t)(was)\b`), ` $1 $2 `},
	}
)

// Tokenize splits text into Treebank-style tokens.
func Tokenize(text string) []string {
	for _, r := range startingQuotes {
		text = r.apply(text)
	}
	for _, r := range punctuation {
		text = r.apply(text)
	}
	text = parens.apply(text)
	text = doubleDashes.apply(text)

	// the ending rules anchor on a following space
	text = " " + text + " "
	for _, r := range endingQuotes {
		text = r.apply(text)
	}
	for _, r := range contractions {
		text = r.apply(text)
	}
	return strings.Fields(text)
}

// Token is a token and its position in the original text.
// text[Start:End] == Text always holds; offsets are in bytes.
type Token struct {
	Index  int    `json:"index"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Length int    `json:"length"`
	Text   string `json:"token"`
}

// String returns a debug representation, e.g. 1:"cat"[4:7].
func (t Token) String() string {
	return fmt.Sprintf("%d:%q[%d:%d]", t.Index, t.Text, t.Start, t.End)
}

// SpanTokenize tokenizes text and resolves each token's span by searching
// forward from the end of the previous token, so a repeated word maps to
// its own occurrence.
func SpanTokenize(text string) []Token {
	words := Tokenize(text)
	tokens := make([]Token, 0, len(words))
	start := 0
	for _, w := range words {
		i := strings.Index(text[start:], w)
		if i < 0 {
			continue
		}
		begin := start + i
		end := begin + len(w)
		tokens = append(tokens, Token{
			Index:  len(tokens),
			Start:  begin,
			End:    end,
			Length: len(w),
			Text:   w,
		})
		start = end
	}
	return tokens
}
