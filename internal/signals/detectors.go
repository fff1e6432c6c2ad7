package signals

import (
	"fmt"
	"regexp"
	"strings"
)

// Detector is a named text signal. Implementations must be deterministic,
// side-effect free, and defined for empty input. Locale-specific pattern
// sets are swapped by constructing the feature assembler with different
// detectors; nothing downstream depends on the concrete patterns.
type Detector interface {
	Name() string
	Score(text string) float64
}

// PatternDetector scores 1 when its compiled regex matches and 0 otherwise.
type PatternDetector struct {
	re   *regexp.Regexp
	name string
}

// NewPatternDetector compiles a regex into a binary presence detector.
func NewPatternDetector(name, pattern string) (*PatternDetector, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %s: %w", name, err)
	}
	return &PatternDetector{name: name, re: re}, nil
}

// Name returns the detector's name.
func (d *PatternDetector) Name() string { return d.name }

// Score returns 1 if the pattern occurs anywhere in text, else 0.
func (d *PatternDetector) Score(text string) float64 {
	if d.re.MatchString(text) {
		return 1
	}
	return 0
}

// KeywordCounter counts how many of its keywords occur in the text,
// case-insensitively. Each keyword contributes at most once; overlapping
// keywords each count.
type KeywordCounter struct {
	name     string
	keywords []string
}

// NewKeywordCounter builds a counter over a fixed keyword list. Keywords are
// matched as lowercase substrings.
func NewKeywordCounter(name string, keywords []string) *KeywordCounter {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &KeywordCounter{name: name, keywords: lowered}
}

// Name returns the counter's name.
func (k *KeywordCounter) Name() string { return k.name }

// Score returns the number of keywords present in text.
func (k *KeywordCounter) Score(text string) float64 {
	t := strings.ToLower(text)
	var hits int
	for _, kw := range k.keywords {
		if strings.Contains(t, kw) {
			hits++
		}
	}
	return float64(hits)
}
