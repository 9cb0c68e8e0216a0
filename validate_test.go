package texpack

import (
	"strings"
	"testing"
)

// TestValidateName_Valid verifies compliant names across the suffix set and
// non-ASCII letters.
func TestValidateName_Valid(t *testing.T) {
	names := []string{
		"Rock",
		"x",
		"RockSurface42",
		"RockSurface_VXM",
		"A1_Masked",
		"Wall_MaskedVXM",
		"Glass_Transparent",
		"Pillar_VXC",
		"Fog_Blend",
		"Sign_Unlit",
		"Cursor_UIO",
		"Anvil_Metal",
		"Śnieżka",
	}
	for _, name := range names {
		res := ValidateName(name)
		if !res.Valid {
			t.Errorf("ValidateName(%q) invalid: %s (suggested %q)", name, res.Reason, res.Suggested)
		}
		if res.Reason != "" || res.Suggested != "" {
			t.Errorf("ValidateName(%q) valid result carries reason %q / suggestion %q",
				name, res.Reason, res.Suggested)
		}
	}
}

// TestValidateName_Invalid verifies violations are reported with a usable
// replacement name.
func TestValidateName_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		reason    string
		suggested string
	}{
		{"wonder __dd", "letters and digits", "wonderdd"},
		{"Rock Stone", "letters and digits", "RockStone"},
		{"Rock-2_Masked", "letters and digits", "Rock2_Masked"},
		{"snake_case", "letters and digits", "snakecase"},
		{"Rock_Masked_VXM", "letters and digits", "RockMasked_VXM"},
		{"1Rock", "start with a letter", "Mat1Rock"},
		{"9", "start with a letter", "Mat9"},
		{"", "empty", "Material"},
		{"_VXM", "empty", "Material_VXM"},
		{"!!!", "start with a letter", "Material"},
	}
	for _, tt := range tests {
		res := ValidateName(tt.name)
		if res.Valid {
			t.Errorf("ValidateName(%q) = valid, want invalid", tt.name)
			continue
		}
		if !strings.Contains(res.Reason, tt.reason) {
			t.Errorf("ValidateName(%q) reason = %q, want mention of %q", tt.name, res.Reason, tt.reason)
		}
		if res.Suggested != tt.suggested {
			t.Errorf("ValidateName(%q) suggested = %q, want %q", tt.name, res.Suggested, tt.suggested)
		}
	}
}

// TestSuggestName_RoundTrip verifies every suggested replacement validates
// cleanly, including for thoroughly broken inputs.
func TestSuggestName_RoundTrip(t *testing.T) {
	inputs := []string{
		"wonder __dd",
		"__",
		"123",
		"   ",
		"_Masked",
		"Ω!!",
		"a__b_VXC",
		"9-lives_Transparent",
		"",
		"_",
		"..._MaskedVXM",
	}
	for _, name := range inputs {
		suggested := SuggestName(name)
		res := ValidateName(suggested)
		if !res.Valid {
			t.Errorf("SuggestName(%q) = %q, which fails validation: %s",
				name, suggested, res.Reason)
		}
	}
}

// TestSuggestName_PreservesSuffix verifies the recognized suffix survives
// the cleanup.
func TestSuggestName_PreservesSuffix(t *testing.T) {
	tests := []struct{ name, want string }{
		{"bad name_VXM", "badname_VXM"},
		{"2x4_Masked", "Mat2x4_Masked"},
		{"_Transparent", "Material_Transparent"},
		{"ok_Metal", "ok_Metal"},
	}
	for _, tt := range tests {
		if got := SuggestName(tt.name); got != tt.want {
			t.Errorf("SuggestName(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

// TestValidateName_SingleSuffixStrip verifies at most one suffix is
// stripped before the base is checked.
func TestValidateName_SingleSuffixStrip(t *testing.T) {
	// Only the trailing _VXM is a suffix; the earlier _Masked makes the
	// base invalid.
	res := ValidateName("Rock_Masked_VXM")
	if res.Valid {
		t.Fatal("Rock_Masked_VXM validated, want invalid (underscore in base)")
	}

	// A doubled identical suffix leaves one in the base.
	res = ValidateName("Rock_VXM_VXM")
	if res.Valid {
		t.Fatal("Rock_VXM_VXM validated, want invalid")
	}
	if res.Suggested != "RockVXM_VXM" {
		t.Errorf("suggested = %q, want RockVXM_VXM", res.Suggested)
	}
}
