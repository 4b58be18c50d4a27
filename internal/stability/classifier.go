package stability

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Distinctive-class thresholds. A distinctive class is one worth using in a
// contains(@class, ...) predicate.
const minDistinctiveLength = 5

var (
	uuidPattern        = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	numericPattern     = regexp.MustCompile(`^\d+$`)
	thousandsPattern   = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d+)?$`)
	alphanumPattern    = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	alphaPattern       = regexp.MustCompile(`^[A-Za-z]+$`)
	letterDigitPattern = regexp.MustCompile(`^[A-Za-z]\d+$`)
)

// Classifier applies a rule table to ids, classes, attribute values, and
// label text. It is immutable after construction and safe for concurrent use.
type Classifier struct {
	rules         *Rules
	unstableID    []*regexp.Regexp
	unstableClass []*regexp.Regexp
}

// NewClassifier compiles the given rule table. A nil table selects the
// built-in defaults.
func NewClassifier(rules *Rules) (*Classifier, error) {
	if rules == nil {
		rules = DefaultRules()
	}

	unstableID, err := compilePatterns(rules.UnstableIDPatterns)
	if err != nil {
		return nil, fmt.Errorf("id patterns: %w", err)
	}
	unstableClass, err := compilePatterns(rules.UnstableClassPatterns)
	if err != nil {
		return nil, fmt.Errorf("class patterns: %w", err)
	}

	return &Classifier{
		rules:         rules,
		unstableID:    unstableID,
		unstableClass: unstableClass,
	}, nil
}

// Default returns a classifier over the built-in rule table.
func Default() *Classifier {
	c, err := NewClassifier(nil)
	if err != nil {
		// The built-in patterns are compile-checked by tests.
		panic(fmt.Sprintf("stability: default rules failed to compile: %v", err))
	}
	return c
}

// Version returns the rule table revision in use.
func (c *Classifier) Version() string {
	return c.rules.Version
}

// IsStableID reports whether an element id is safe to hardcode. Ids shaped
// like framework-generated identifiers are rejected; anything else passes.
func (c *Classifier) IsStableID(id string) bool {
	if id == "" {
		return false
	}
	for _, p := range c.unstableID {
		if p.MatchString(id) {
			return false
		}
	}
	return true
}

// IsStableClass reports whether a class token survives reloads. CSS-module
// and utility-generated shapes are rejected, and long purely alphabetic
// tokens must read like a word rather than a hash.
func (c *Classifier) IsStableClass(token string) bool {
	if token == "" {
		return false
	}
	for _, p := range c.unstableClass {
		if p.MatchString(token) {
			return false
		}
	}
	if alphaPattern.MatchString(token) && len(token) >= c.rules.MinAlphaLength {
		return vowelRatio(token) >= c.rules.MinVowelRatio
	}
	return true
}

// IsDistinctiveClass reports whether a class token is specific enough to
// anchor a locator: long enough, word-like or hyphenated, and not a short
// letter-digit utility shape like "p1".
func (c *Classifier) IsDistinctiveClass(token string) bool {
	if len(token) < minDistinctiveLength {
		return false
	}
	if letterDigitPattern.MatchString(token) {
		return false
	}
	if strings.Contains(token, "-") {
		return true
	}
	runes := []rune(token)
	return unicode.IsLower(runes[0]) && unicode.IsLetter(runes[0]) &&
		unicode.IsLower(runes[1]) && unicode.IsLetter(runes[1])
}

// IsDataSpecificValue reports whether an attribute value is per-record data
// that must never be embedded verbatim: purely numeric values, UUIDs, and
// long alphanumeric blobs.
func (c *Classifier) IsDataSpecificValue(attr, value string) bool {
	if value == "" {
		return false
	}
	if numericPattern.MatchString(value) {
		return true
	}
	if uuidPattern.MatchString(value) {
		return true
	}
	return alphanumPattern.MatchString(value) && len(value) > c.rules.MaxDataValueLength
}

// LooksLikeUserData reports whether text reads as record data rather than a
// fixed label: numbers, thousands-separated numbers, or long free text.
func (c *Classifier) LooksLikeUserData(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if numericPattern.MatchString(text) || thousandsPattern.MatchString(text) {
		return true
	}
	return len(text) > c.rules.MaxUserTextLength
}

// compilePatterns compiles a pattern list, failing on the first bad pattern.
func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// vowelRatio returns the fraction of vowels in a token.
func vowelRatio(token string) float64 {
	if token == "" {
		return 0
	}
	vowels := 0
	for _, r := range strings.ToLower(token) {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			vowels++
		}
	}
	return float64(vowels) / float64(len(token))
}
