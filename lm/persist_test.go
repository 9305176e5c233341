package lm

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zchrykng/go-ngramspell/utilities"
)

const tolerance = 1e-9

func equalModels(t *testing.T, got, want *Model) {
	t.Helper()
	if got.Len() != want.Len() {
		t.Fatalf("model has %d entries, want %d", got.Len(), want.Len())
	}
	for k, we := range want.All() {
		ge, ok := got.Lookup(k)
		if !ok {
			t.Errorf("missing n-gram %q", k)
			continue
		}
		if !utilities.ApproxEqual(ge.LogP, we.LogP, tolerance) || !utilities.ApproxEqual(ge.LogBW, we.LogBW, tolerance) {
			t.Errorf("n-gram %q = %+v, want %+v", k, ge, we)
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	parsed, err := ParseARPA(strings.NewReader(sampleARPA))
	if err != nil {
		t.Fatalf("ParseARPA: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, parsed); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	reloaded, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	equalModels(t, reloaded, parsed)
}

func TestFileRoundTrip(t *testing.T) {
	parsed, err := ParseARPA(strings.NewReader(sampleARPA))
	if err != nil {
		t.Fatalf("ParseARPA: %v", err)
	}
	path := filepath.Join(t.TempDir(), "lm.json")
	if err := SaveFile(path, parsed); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	equalModels(t, reloaded, parsed)

	arpaPath := filepath.Join(t.TempDir(), "corpus.lm")
	if err := os.WriteFile(arpaPath, []byte(sampleARPA), 0o644); err != nil {
		t.Fatal(err)
	}
	fromArpa, err := Open(arpaPath)
	if err != nil {
		t.Fatalf("Open arpa: %v", err)
	}
	equalModels(t, fromArpa, parsed)
}

func TestReadJSONLegacyStrings(t *testing.T) {
	input := `{"the": {"log_p": "-1.5", "log_bw": "-0.25"}, "the cat": {"log_p": "-0.5", "log_bw": 0.0}, "cat": {"log_p": -2}}`
	m, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	tests := []struct {
		key  Key
		want Entry
	}{
		{"the", Entry{LogP: -1.5, LogBW: -0.25}},
		{"the cat", Entry{LogP: -0.5}},
		{"cat", Entry{LogP: -2}},
	}
	for _, test := range tests {
		if got, _ := m.Lookup(test.key); got != test.want {
			t.Errorf("Lookup(%q) = %+v, want %+v", test.key, got, test.want)
		}
	}
}

func TestReadJSONErrors(t *testing.T) {
	inputs := map[string]string{
		"no log_p":      `{"the": {"log_bw": -0.1}}`,
		"bad number":    `{"the": {"log_p": "minus one"}}`,
		"order four":    `{"a b c d": {"log_p": -1}}`,
		"empty key":     `{"": {"log_p": -1}}`,
		"not an object": `[1, 2]`,
		"infinite text": `{"the": {"log_p": "-inf"}}`,
	}
	for name, input := range inputs {
		if _, err := ReadJSON(strings.NewReader(input)); err == nil {
			t.Errorf("%s: ReadJSON returned no error", name)
		}
	}
}
