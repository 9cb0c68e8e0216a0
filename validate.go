package texpack

import (
	"strings"
	"unicode"
)

// ValidationResult classifies a material name against the naming grammar.
// Validation never fails; invalid names simply carry a reason and a
// compliant replacement.
type ValidationResult struct {
	// Valid reports whether the name satisfies the grammar.
	Valid bool

	// Reason explains the first violation when the name is invalid.
	Reason string

	// Suggested is a compliant replacement when the name is invalid.
	Suggested string
}

// ValidateName checks a material name: after stripping at most one
// recognized suffix, the remaining base must be non-empty, start with a
// letter, and contain only letters and digits. Pure and total.
func ValidateName(name string) ValidationResult {
	base, _ := splitSuffix(name)
	if reason := baseNameViolation(base); reason != "" {
		return ValidationResult{
			Reason:    reason,
			Suggested: SuggestName(name),
		}
	}
	return ValidationResult{Valid: true}
}

// SuggestName derives a compliant material name: the recognized suffix is
// preserved, disallowed characters are stripped from the base, a base left
// empty becomes "Material", and a base starting with a digit gains a "Mat"
// prefix.
func SuggestName(name string) string {
	base, suffix := splitSuffix(name)

	var b strings.Builder
	for _, r := range base {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	clean := b.String()

	switch {
	case clean == "":
		clean = "Material"
	case unicode.IsDigit([]rune(clean)[0]):
		clean = "Mat" + clean
	}
	return clean + suffix
}

// splitSuffix strips at most one recognized suffix from a name, testing in
// the classifier's match-priority order.
func splitSuffix(name string) (base, suffix string) {
	for _, rule := range classifyOrder {
		if strings.HasSuffix(name, rule.suffix) {
			return strings.TrimSuffix(name, rule.suffix), rule.suffix
		}
	}
	return name, ""
}

// baseNameViolation returns the first grammar violation of a suffix-less
// base name, or the empty string when it is compliant.
func baseNameViolation(base string) string {
	if base == "" {
		return "base name before the suffix is empty"
	}
	runes := []rune(base)
	if !unicode.IsLetter(runes[0]) {
		return "name must start with a letter"
	}
	for _, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "base name may contain only letters and digits"
		}
	}
	return ""
}
