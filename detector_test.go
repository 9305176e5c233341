package ngramspell

import "testing"

func TestDetect(t *testing.T) {
	d := fixtureDictionary()
	tests := []struct {
		token string
		typo  bool
	}{
		{"123", false},
		{"12.5", false},
		{"1.2.3", true},
		{"!", false},
		{"...", false},
		{"--", false},
		{"“", false}, // left double quotation mark
		{"a", false},
		{"I", false},
		{"é", false},
		{"12a", true},
		{"cat", false},
		{"Cat", false},
		{"CAT", false},
		{"sta", true},
		{"teh", true},
		{"n't", true},
		{"", false},
	}
	for _, test := range tests {
		if got := Detect(d, test.token); got != test.typo {
			t.Errorf("Detect(%q) = %v, want %v", test.token, got, test.typo)
		}
	}
}
