// Package stability classifies ids, class tokens, attribute values, and
// text as safe or unsafe to embed literally in a locator expression.
// Framework fingerprints drift with frontend fashion, so they live in a
// versioned rule table that can be replaced without touching the search
// algorithm.
package stability

import (
	"fmt"

	"github.com/spf13/viper"
)

// Threshold defaults for the built-in rule table.
const (
	defaultMinAlphaLength     = 6
	defaultMinVowelRatio      = 0.3
	defaultMaxDataValueLength = 30
	defaultMaxUserTextLength  = 50
)

// Rules is a versioned table of instability fingerprints and thresholds.
// Patterns are anchored regular expressions; a value matching any pattern in
// its list is classified as generated.
type Rules struct {
	// Version identifies the rule table revision.
	Version string `yaml:"version" mapstructure:"version"`
	// UnstableIDPatterns match build- or render-generated element ids.
	UnstableIDPatterns []string `yaml:"unstable_id_patterns" mapstructure:"unstable_id_patterns"`
	// UnstableClassPatterns match CSS-module and utility-generated class tokens.
	UnstableClassPatterns []string `yaml:"unstable_class_patterns" mapstructure:"unstable_class_patterns"`
	// MinAlphaLength is the length from which purely alphabetic class tokens
	// must also pass the vowel-ratio check.
	MinAlphaLength int `yaml:"min_alpha_length" mapstructure:"min_alpha_length"`
	// MinVowelRatio is the minimum vowel ratio for long alphabetic tokens.
	// Hashed tokens read as low-vowel noise; real words do not.
	MinVowelRatio float64 `yaml:"min_vowel_ratio" mapstructure:"min_vowel_ratio"`
	// MaxDataValueLength is the length above which alphanumeric attribute
	// values are treated as per-record data.
	MaxDataValueLength int `yaml:"max_data_value_length" mapstructure:"max_data_value_length"`
	// MaxUserTextLength is the length above which text reads as user data.
	MaxUserTextLength int `yaml:"max_user_text_length" mapstructure:"max_user_text_length"`
}

// DefaultRules returns the built-in rule table.
func DefaultRules() *Rules {
	return &Rules{
		Version: "2024-06",
		UnstableIDPatterns: []string{
			`^\d+$`,                         // pure numeric sequence
			`^ember\d+$`,                    // Ember
			`^react-[A-Za-z]+-\d+$`,         // React (react-select-3-input)
			`^ng-[A-Za-z0-9-]+$`,            // Angular
			`^vue-[A-Za-z0-9-]+$`,           // Vue
			`^jsx-\d+$`,                     // styled-jsx
			`^[A-Za-z]+-\d{3,}$`,            // word followed by a long counter
			`^[A-Za-z]*\d{3,}[A-Za-z0-9]*$`, // alphanumeric id with a long digit run
			`^[0-9a-fA-F]{8,}$`,             // long hex-like run
			`^(uid|gen|auto)-`,              // generic generated prefixes
		},
		UnstableClassPatterns: []string{
			`^css-`,             // emotion / MUI
			`^jsx-`,             // styled-jsx
			`^sc-`,              // styled-components
			`^makeStyles-`,      // JSS makeStyles
			`^jss\d+`,           // JSS
			`_[A-Za-z0-9]{5,}$`, // CSS-module hash suffix
			`^[A-Za-z]{1,2}\d+$`, // one or two letters plus a counter
			`^\d`,               // leading digit
		},
		MinAlphaLength:     defaultMinAlphaLength,
		MinVowelRatio:      defaultMinVowelRatio,
		MaxDataValueLength: defaultMaxDataValueLength,
		MaxUserTextLength:  defaultMaxUserTextLength,
	}
}

// LoadRules reads a rule table from a YAML file. Missing thresholds fall
// back to the built-in defaults.
func LoadRules(path string) (*Rules, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	rules := DefaultRules()
	if err := v.Unmarshal(rules); err != nil {
		return nil, fmt.Errorf("unmarshal rules file: %w", err)
	}
	if rules.MinAlphaLength <= 0 {
		rules.MinAlphaLength = defaultMinAlphaLength
	}
	if rules.MinVowelRatio <= 0 {
		rules.MinVowelRatio = defaultMinVowelRatio
	}
	if rules.MaxDataValueLength <= 0 {
		rules.MaxDataValueLength = defaultMaxDataValueLength
	}
	if rules.MaxUserTextLength <= 0 {
		rules.MaxUserTextLength = defaultMaxUserTextLength
	}
	return rules, nil
}
