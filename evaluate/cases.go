package evaluate

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrorType marks the annotated errors that are spelling mistakes.
const ErrorType = "SPL"

// Case is one essay of the test set.
type Case struct {
	Sentences []Sentence `json:"ERRORSENTS"`
}

// Sentence is an annotated sentence of an essay.
type Sentence struct {
	Text   string  `json:"SENT"`
	Errors []Error `json:"ERRORS"`
}

// Error is an annotated error. Start counts characters, not bytes.
// Detected and Corrected are filled in by Evaluate.
type Error struct {
	Type      string `json:"type"`
	Start     Offset `json:"start"`
	Answer    string `json:"answer"`
	Detected  bool   `json:"detected"`
	Corrected bool   `json:"corrected"`
}

// Offset is a character offset that decodes from a JSON number or a
// numeric string.
type Offset int

func (o *Offset) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		data = []byte(s)
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("evaluate: bad offset %s: %w", data, err)
	}
	*o = Offset(n)
	return nil
}

// ReadCases decodes one Case per non-blank line of r.
func ReadCases(r io.Reader) ([]Case, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16<<20)

	var cases []Case
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var c Case
		if err := json.Unmarshal(raw, &c); err != nil {
			return nil, fmt.Errorf("evaluate: line %d: %w", line, err)
		}
		cases = append(cases, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("evaluate: reading cases: %w", err)
	}
	return cases, nil
}

// LoadCases reads a JSON-lines test set from path.
func LoadCases(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCases(f)
}

// WriteCases encodes each case as one JSON line.
func WriteCases(w io.Writer, cases []Case) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	for i := range cases {
		if err := enc.Encode(&cases[i]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SaveCases writes cases to path as JSON lines.
func SaveCases(path string, cases []Case) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteCases(f, cases)
}
