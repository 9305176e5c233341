package lm

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// logValue decodes a JSON number or a numeric string. Older tables
// stored log_p as the raw ARPA text.
type logValue float64

func (v *logValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := parseLog(s)
		if err != nil {
			return err
		}
		*v = logValue(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = logValue(f)
	return nil
}

type persistedEntry struct {
	LogP  *logValue `json:"log_p"`
	LogBW *logValue `json:"log_bw"`
}

// WriteJSON writes m as a single JSON object of n-gram text to entry.
func WriteJSON(w io.Writer, m *Model) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(m.ToMap()); err != nil {
		return fmt.Errorf("lm: encode json: %w", err)
	}
	return nil
}

// ReadJSON reads the form written by WriteJSON. A missing log_bw is 0; a
// missing log_p is an error.
func ReadJSON(r io.Reader) (*Model, error) {
	var raw map[string]persistedEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("lm: decode json: %w", err)
	}
	entries := make(map[string]Entry, len(raw))
	for k, pe := range raw {
		if pe.LogP == nil {
			return nil, fmt.Errorf("lm: n-gram %q has no log_p", k)
		}
		e := Entry{LogP: float64(*pe.LogP)}
		if pe.LogBW != nil {
			e.LogBW = float64(*pe.LogBW)
		}
		entries[k] = e
	}
	return FromMap(entries)
}

// SaveFile writes m to path as JSON, replacing the file only once the write
// succeeded.
func SaveFile(path string, m *Model) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("lm: create temp: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err = WriteJSON(w, m); err != nil {
		return err
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("lm: flush json: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("lm: close temp: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("lm: rename: %w", err)
	}
	return nil
}

// LoadFile reads a JSON model written by SaveFile.
func LoadFile(path string) (*Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lm: open json: %w", err)
	}
	defer file.Close()
	return ReadJSON(bufio.NewReader(file))
}

// Open loads path as JSON when it ends in .json and as ARPA text otherwise.
func Open(path string) (*Model, error) {
	if path == "" {
		return nil, errors.New("lm: empty model path")
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return LoadFile(path)
	}
	return LoadARPAFile(path)
}
