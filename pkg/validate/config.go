package validate

import "strings"

// DefaultMaxRegexPatternLength caps regex_match pattern literals.
const DefaultMaxRegexPatternLength = 200

// Config tunes the validator. The zero value plus DefaultConfig defaults
// runs every check at its built-in severity.
type Config struct {
	// Disabled lists diagnostic codes to suppress entirely.
	Disabled []string
	// Severity overrides the built-in severity per diagnostic code.
	Severity map[string]Severity
	// MaxRegexPatternLength caps regex_match pattern literals in
	// characters. Zero means DefaultMaxRegexPatternLength.
	MaxRegexPatternLength int
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{MaxRegexPatternLength: DefaultMaxRegexPatternLength}
}

func (c Config) isDisabled(code string) bool {
	for _, d := range c.Disabled {
		if strings.EqualFold(d, code) {
			return true
		}
	}
	return false
}

func (c Config) severityFor(code string, def Severity) Severity {
	if sev, ok := c.Severity[code]; ok {
		return sev
	}
	return def
}

func (c Config) maxRegexLength() int {
	if c.MaxRegexPatternLength > 0 {
		return c.MaxRegexPatternLength
	}
	return DefaultMaxRegexPatternLength
}
