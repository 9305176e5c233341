package verbosity

type Verbosity int // Verbosity controls how much of the candidate ranking a typo record carries

const (
	Top     Verbosity = iota // Top carries the chosen correction only
	Closest                  // Closest carries every candidate tied with the best score
	All                      // All carries the full ranking, best first
)

// String returns the lower-case name used in configuration.
func (v Verbosity) String() string {
	switch v {
	case Top:
		return "top"
	case Closest:
		return "closest"
	case All:
		return "all"
	}
	return "unknown"
}

// Parse maps a configuration name back to a Verbosity.
func Parse(name string) (Verbosity, bool) {
	switch name {
	case "top", "":
		return Top, true
	case "closest":
		return Closest, true
	case "all":
		return All, true
	}
	return Top, false
}
