package password

import (
	"reflect"
	"strings"
	"testing"
	"testing/quick"
)

func TestEvaluateEmpty(t *testing.T) {
	got := Evaluate("")
	for _, c := range got.Checks {
		if c.Met {
			t.Fatalf("check %s should not be met for empty password", c.ID)
		}
	}
	if got.Strength != 0 || got.Score != 0 {
		t.Fatalf("expected strength 0 score 0, got %d %d", got.Strength, got.Score)
	}
	if got.Label != "Very weak" || got.Color != ColorDestructive {
		t.Fatalf("unexpected label/color %q/%q", got.Label, got.Color)
	}
}

func TestEvaluateBanding(t *testing.T) {
	cases := []struct {
		name     string
		password string
		met      []string
		strength int
		score    int
		label    string
		color    Color
	}{
		{
			name:     "all checks",
			password: "Abcdefg1!",
			met:      []string{CheckLength, CheckUppercase, CheckLowercase, CheckNumber, CheckSpecial},
			strength: 4, score: 100, label: "Strong", color: ColorSuccess,
		},
		{
			name:     "lowercase with length",
			password: "abcdefgh",
			met:      []string{CheckLength, CheckLowercase},
			strength: 1, score: 25, label: "Weak", color: ColorDestructive,
		},
		{
			name:     "single lowercase",
			password: "a",
			met:      []string{CheckLowercase},
			strength: 0, score: 0, label: "Very weak", color: ColorDestructive,
		},
		{
			name:     "three met",
			password: "Abcdefgh",
			met:      []string{CheckLength, CheckUppercase, CheckLowercase},
			strength: 2, score: 50, label: "Fair", color: ColorWarning,
		},
		{
			name:     "four met without special",
			password: "Abcdefg1",
			met:      []string{CheckLength, CheckUppercase, CheckLowercase, CheckNumber},
			strength: 3, score: 75, label: "Good", color: ColorInfo,
		},
		{
			name:     "two met short",
			password: "ab1",
			met:      []string{CheckLowercase, CheckNumber},
			strength: 1, score: 25, label: "Weak", color: ColorDestructive,
		},
		{
			name:     "special only",
			password: `"`,
			met:      []string{CheckSpecial},
			strength: 0, score: 0, label: "Very weak", color: ColorDestructive,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.password)
			if got.Strength != tc.strength || got.Score != tc.score {
				t.Fatalf("expected strength %d score %d, got %d %d", tc.strength, tc.score, got.Strength, got.Score)
			}
			if got.Label != tc.label || got.Color != tc.color {
				t.Fatalf("expected %q/%q, got %q/%q", tc.label, tc.color, got.Label, got.Color)
			}
			var met []string
			for _, c := range got.Checks {
				if c.Met {
					met = append(met, c.ID)
				}
			}
			if !reflect.DeepEqual(met, tc.met) {
				t.Fatalf("expected met checks %v, got %v", tc.met, met)
			}
		})
	}
}

// "abcdefgh" has both length and lowercase; the plateau case with exactly one
// met check needs a long string without letters, digits or specials.
func TestEvaluateSingleCheckPlateau(t *testing.T) {
	got := Evaluate("        ")
	if got.Strength != 0 || got.Label != "Very weak" {
		t.Fatalf("expected very weak, got %d %q", got.Strength, got.Label)
	}
	if !got.Checks[0].Met {
		t.Fatalf("expected length check to be met")
	}
}

func TestEvaluateLengthCountsCharacters(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{password: "ééééééé", ok: false},
		{password: "éééééééé", ok: true},
		{password: "日本語のパスワード", ok: true},
		{password: "\xff\xfe\xfd\xfc\xfb\xfa\xf9\xf8", ok: true},
		{password: "1234567", ok: false},
	}
	for _, tc := range cases {
		if got := Evaluate(tc.password).Checks[0].Met; got != tc.ok {
			t.Fatalf("password %q expected length %t got %t", tc.password, tc.ok, got)
		}
	}
}

func TestEvaluateCharacterClassesAreASCII(t *testing.T) {
	got := Evaluate("ÄÖÜäöüß٣")
	for _, c := range got.Checks[1:] {
		if c.Met {
			t.Fatalf("check %s should not match non-ASCII input", c.ID)
		}
	}
}

func TestEvaluateSpecialCharacterSet(t *testing.T) {
	for _, r := range SpecialChars {
		if !Evaluate(string(r)).Checks[4].Met {
			t.Fatalf("expected %q to satisfy special check", r)
		}
	}
	for _, r := range "_-+=[];'/\\`~ " {
		if Evaluate(string(r)).Checks[4].Met {
			t.Fatalf("expected %q not to satisfy special check", r)
		}
	}
}

func TestEvaluateProperties(t *testing.T) {
	ids := CheckIDs()
	property := func(s string) bool {
		got := Evaluate(s)
		if len(got.Checks) != len(ids) {
			return false
		}
		met := 0
		for i, c := range got.Checks {
			if c.ID != ids[i] {
				return false
			}
			if c.Met {
				met++
			}
		}
		if got.Strength != min(4, met*4/5) {
			return false
		}
		if got.Score != got.Strength*25 {
			return false
		}
		if got.Score%25 != 0 || got.Score < 0 || got.Score > 100 {
			return false
		}
		if IsStrongEnough(s) != (met == len(ids)) {
			return false
		}
		return reflect.DeepEqual(got, Evaluate(s))
	}
	if err := quick.Check(property, &quick.Config{MaxCount: 2000}); err != nil {
		t.Fatal(err)
	}
}

func TestIsStrongEnough(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{password: "Abcdefg1!", ok: true},
		{password: "Abcdefg1", ok: false},
		{password: "Ab1!", ok: false},
		{password: "", ok: false},
	}
	for _, tc := range cases {
		if got := IsStrongEnough(tc.password); got != tc.ok {
			t.Fatalf("password %q expected %t got %t", tc.password, tc.ok, got)
		}
	}
}

func TestMeetsMinimumRequirements(t *testing.T) {
	cases := []struct {
		password string
		ok       bool
	}{
		{password: "Abcdefg1", ok: true},
		{password: "Abcdefg1!", ok: true},
		{password: "abcdefg1", ok: false},
		{password: "ABCDEFG1", ok: false},
		{password: "Abcdefgh", ok: false},
		{password: "Abcde1", ok: false},
		{password: "", ok: false},
	}
	for _, tc := range cases {
		if got := MeetsMinimumRequirements(tc.password); got != tc.ok {
			t.Fatalf("password %q expected %t got %t", tc.password, tc.ok, got)
		}
	}
}

func TestMeetsMinimumMatchesChecks(t *testing.T) {
	for _, s := range []string{"", "Abcdefg1", "Abcdefg1!", "abcdefgh", "Ab1", strings.Repeat("Z9z", 4)} {
		res := Evaluate(s)
		want := res.Checks[0].Met && res.Checks[1].Met && res.Checks[2].Met && res.Checks[3].Met
		if got := MeetsMinimumRequirements(s); got != want {
			t.Fatalf("password %q expected %t got %t", s, want, got)
		}
	}
}

func TestMissing(t *testing.T) {
	got := Evaluate("abcdefgh").Missing()
	want := []string{CheckUppercase, CheckNumber, CheckSpecial}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if missing := Evaluate("Abcdefg1!").Missing(); len(missing) != 0 {
		t.Fatalf("expected nothing missing, got %v", missing)
	}
}

func TestEvaluateReturnsFreshChecks(t *testing.T) {
	first := Evaluate("Abcdefg1!")
	first.Checks[0].Met = false
	first.Checks[0].Label = "mutated"
	second := Evaluate("Abcdefg1!")
	if !second.Checks[0].Met || second.Checks[0].Label != "At least 8 characters" {
		t.Fatalf("expected fresh checks, got %+v", second.Checks[0])
	}
}
