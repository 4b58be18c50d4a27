package stability_test

import (
	"testing"

	"github.com/jonesrussell/golocator/internal/stability"
)

func TestIsStableID(t *testing.T) {
	t.Parallel()

	c := stability.Default()

	tests := []struct {
		id     string
		stable bool
	}{
		{"main-nav", true},
		{"sidebar", true},
		{"checkout-form", true},
		{"user-menu", true},
		{"section2", true},
		{"", false},
		{"12345", false},
		{"ember472", false},
		{"react-select-3-input", false},
		{"ng-binding-42", false},
		{"vue-component-7", false},
		{"jsx-392817", false},
		{"item-4821", false},
		{"list1234XX", false},
		{"row00042", false},
		{"deadbeef01", false},
		{"uid-abc", false},
		{"gen-row", false},
		{"auto-field", false},
	}

	for _, tt := range tests {
		if got := c.IsStableID(tt.id); got != tt.stable {
			t.Errorf("IsStableID(%q) = %v, want %v", tt.id, got, tt.stable)
		}
	}
}

func TestIsStableClass(t *testing.T) {
	t.Parallel()

	c := stability.Default()

	tests := []struct {
		token  string
		stable bool
	}{
		{"price-total", true},
		{"navbar", true},
		{"active", true},
		{"btn", true},
		{"", false},
		{"css-1q2w3e", false},
		{"jsx-abc", false},
		{"sc-bdVaJa", false},
		{"makeStyles-root-12", false},
		{"jss214", false},
		{"button_x8Fj2k", false},
		{"p1", false},
		{"mt4", false},
		{"2col", false},
		// Long alphabetic hash fails the vowel-ratio check.
		{"xkcdqwrtz", false},
		// Real words pass it.
		{"container", true},
		{"headline", true},
	}

	for _, tt := range tests {
		if got := c.IsStableClass(tt.token); got != tt.stable {
			t.Errorf("IsStableClass(%q) = %v, want %v", tt.token, got, tt.stable)
		}
	}
}

func TestIsDistinctiveClass(t *testing.T) {
	t.Parallel()

	c := stability.Default()

	tests := []struct {
		token       string
		distinctive bool
	}{
		{"price-total", true},
		{"navbar", true},
		{"checkout", true},
		{"btn", false},   // too short
		{"p1", false},    // letter-digit shape
		{"p1234", false}, // letter-digit shape, long enough
		{"Header", false},
	}

	for _, tt := range tests {
		if got := c.IsDistinctiveClass(tt.token); got != tt.distinctive {
			t.Errorf("IsDistinctiveClass(%q) = %v, want %v", tt.token, got, tt.distinctive)
		}
	}
}

func TestIsDataSpecificValue(t *testing.T) {
	t.Parallel()

	c := stability.Default()

	tests := []struct {
		value    string
		specific bool
	}{
		{"8239472938", true},
		{"3f2504e0-4f89-11d3-9a0c-0305e82c3301", true},
		{"a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5", true},
		{"item-target", false},
		{"submit", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := c.IsDataSpecificValue("data-testid", tt.value); got != tt.specific {
			t.Errorf("IsDataSpecificValue(%q) = %v, want %v", tt.value, got, tt.specific)
		}
	}
}

func TestLooksLikeUserData(t *testing.T) {
	t.Parallel()

	c := stability.Default()

	tests := []struct {
		text     string
		userData bool
	}{
		{"42", true},
		{"1,234,567", true},
		{"1,234.56", true},
		{"this is a very long free-text value that clearly exceeds the label length limit", true},
		{"Price", false},
		{"Order status", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := c.LooksLikeUserData(tt.text); got != tt.userData {
			t.Errorf("LooksLikeUserData(%q) = %v, want %v", tt.text, got, tt.userData)
		}
	}
}

func TestNewClassifier_BadPattern(t *testing.T) {
	t.Parallel()

	rules := stability.DefaultRules()
	rules.UnstableIDPatterns = append(rules.UnstableIDPatterns, "([")
	if _, err := stability.NewClassifier(rules); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestDefaultRulesCompile(t *testing.T) {
	t.Parallel()

	if _, err := stability.NewClassifier(stability.DefaultRules()); err != nil {
		t.Fatalf("default rules must compile: %v", err)
	}
}
