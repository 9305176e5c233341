package lm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/edsrzf/mmap-go"

	"github.com/zchrykng/go-ngramspell/staging"
)

// ErrNotFinite is wrapped by a ParseError for an infinite or NaN value.
var ErrNotFinite = errors.New("lm: value is not finite")

const (
	dataMarker = `\data\`
	endMarker  = `\end\`
)

// ParseError reports a line of ARPA text the parser could not accept.
type ParseError struct {
	Line   int    // 1-based line number
	Text   string // the offending line, trimmed
	Reason string
	Err    error // underlying numeric error, if any
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lm: line %d: %s: %v (%q)", e.Line, e.Reason, e.Err, e.Text)
	}
	return fmt.Sprintf("lm: line %d: %s (%q)", e.Line, e.Reason, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// sectionOrder reports whether line is a `\k-grams:` marker and returns k.
func sectionOrder(line string) (int, bool) {
	if !strings.HasPrefix(line, `\`) || !strings.HasSuffix(line, "-grams:") {
		return 0, false
	}
	k, err := strconv.Atoi(line[1 : len(line)-len("-grams:")])
	if err != nil {
		return 0, false
	}
	return k, true
}

// declaredCount parses a header line of the form "ngram k=N".
func declaredCount(line string) (order, count int, ok bool) {
	rest, found := strings.CutPrefix(line, "ngram ")
	if !found {
		return 0, 0, false
	}
	o, c, found := strings.Cut(strings.TrimSpace(rest), "=")
	if !found {
		return 0, 0, false
	}
	order, err := strconv.Atoi(strings.TrimSpace(o))
	if err != nil {
		return 0, 0, false
	}
	count, err = strconv.Atoi(strings.TrimSpace(c))
	if err != nil {
		return 0, 0, false
	}
	return order, count, true
}

// ParseARPA reads an ARPA backoff language model of order at most MaxOrder.
// Records are tab separated: log_p, the n-gram, and an optional backoff
// weight. Nothing is returned unless the whole input parses.
func ParseARPA(r io.Reader) (*Model, error) {
	var (
		declared [MaxOrder + 1]int
		current  int // order of the open section, 0 while in the header
		lineNo   int
	)
	stage := staging.NewStage[Key, Entry](1 << 12)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "" || line == dataMarker || line == endMarker {
			continue
		}
		if k, ok := sectionOrder(line); ok {
			if k < 1 || k > MaxOrder {
				return nil, &ParseError{Line: lineNo, Text: line, Reason: fmt.Sprintf("unsupported order %d", k)}
			}
			current = k
			continue
		}
		if current == 0 {
			if strings.Contains(line, "\t") {
				return nil, &ParseError{Line: lineNo, Text: line, Reason: "record outside any n-gram section"}
			}
			if o, c, ok := declaredCount(line); ok && o >= 1 && o <= MaxOrder {
				declared[o] = c
			}
			continue
		}

		key, entry, err := parseRecord(line, current)
		if err != nil {
			err.Line = lineNo
			return nil, err
		}
		if !stage.Add(key, entry) {
			return nil, &ParseError{Line: lineNo, Text: line, Reason: "duplicate n-gram"}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("lm: reading arpa: %w", err)
	}
	if current == 0 {
		return nil, ErrNoSections
	}

	entries := make(map[Key]Entry, stage.Len())
	stage.CommitTo(entries)
	return newModel(entries, declared), nil
}

func parseRecord(line string, order int) (Key, Entry, *ParseError) {
	fields := strings.Split(line, "\t")
	if len(fields) != 2 && len(fields) != 3 {
		return "", Entry{}, &ParseError{Text: line, Reason: fmt.Sprintf("want 2 or 3 tab separated fields, got %d", len(fields))}
	}

	logP, err := parseLog(fields[0])
	if err != nil {
		return "", Entry{}, &ParseError{Text: line, Reason: "bad log probability", Err: err}
	}

	key := Key(fields[1])
	if key.Order() != order {
		return "", Entry{}, &ParseError{Text: line, Reason: fmt.Sprintf("%d-gram in the %d-grams section", key.Order(), order)}
	}

	entry := Entry{LogP: logP}
	if len(fields) == 3 {
		entry.LogBW, err = parseLog(fields[2])
		if err != nil {
			return "", Entry{}, &ParseError{Text: line, Reason: "bad backoff weight", Err: err}
		}
	}
	return key, entry, nil
}

// parseLog parses a finite log10 value. Infinities and NaN have no JSON
// encoding, so they are rejected here rather than at save time.
func parseLog(field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// LoadARPAFile memory-maps path read-only and parses it as ARPA text.
func LoadARPAFile(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lm: open arpa: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("lm: stat arpa: %w", err)
	}
	if info.Size() == 0 {
		return ParseARPA(bytes.NewReader(nil))
	}

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("lm: mmap arpa: %w", err)
	}
	defer mapped.Unmap()

	return ParseARPA(bytes.NewReader(mapped))
}
