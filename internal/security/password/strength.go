package password

import (
	"strings"
	"unicode/utf8"
)

const (
	MinLength = 8

	// SpecialChars lists every character accepted by the special check.
	SpecialChars = `!@#$%^&*(),.?":{}|<>`

	maxStrength = 4
)

const (
	CheckLength    = "length"
	CheckUppercase = "uppercase"
	CheckLowercase = "lowercase"
	CheckNumber    = "number"
	CheckSpecial   = "special"
)

type Color string

const (
	ColorDestructive Color = "destructive"
	ColorWarning     Color = "warning"
	ColorInfo        Color = "info"
	ColorSuccess     Color = "success"
)

// Check is a single named requirement and whether the candidate satisfied it.
type Check struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Met   bool   `json:"met" yaml:"met"`
}

// StrengthResult is the assessment returned by Evaluate. Every field other than
// Checks is derived from Strength.
type StrengthResult struct {
	Strength int     `json:"strength" yaml:"strength"`
	Score    int     `json:"score" yaml:"score"`
	Label    string  `json:"label" yaml:"label"`
	Color    Color   `json:"color" yaml:"color"`
	Checks   []Check `json:"checks" yaml:"checks"`
}

type requirement struct {
	id    string
	label string
	test  func(string) bool
}

// Order matters: results always list checks in this sequence.
var requirements = [...]requirement{
	{id: CheckLength, label: "At least 8 characters", test: hasMinLength},
	{id: CheckUppercase, label: "One uppercase letter", test: hasUppercase},
	{id: CheckLowercase, label: "One lowercase letter", test: hasLowercase},
	{id: CheckNumber, label: "One number", test: hasDigit},
	{id: CheckSpecial, label: "One special character", test: hasSpecial},
}

var strengthLabels = [maxStrength + 1]string{"Very weak", "Weak", "Fair", "Good", "Strong"}

var strengthColors = [maxStrength + 1]Color{
	ColorDestructive,
	ColorDestructive,
	ColorWarning,
	ColorInfo,
	ColorSuccess,
}

// Evaluate scores password against the five checks. It accepts any string,
// including empty and invalid UTF-8 input.
//
// Strength is floor(met/5*4), so one and zero met checks both land on level 0.
func Evaluate(password string) StrengthResult {
	checks := make([]Check, len(requirements))
	met := 0
	for i, req := range requirements {
		ok := req.test(password)
		if ok {
			met++
		}
		checks[i] = Check{ID: req.id, Label: req.label, Met: ok}
	}

	strength := min(maxStrength, met*maxStrength/len(requirements))
	return StrengthResult{
		Strength: strength,
		Score:    strength * 100 / maxStrength,
		Label:    strengthLabels[strength],
		Color:    strengthColors[strength],
		Checks:   checks,
	}
}

// IsStrongEnough reports whether every check passes.
func IsStrongEnough(password string) bool {
	for _, req := range requirements {
		if !req.test(password) {
			return false
		}
	}
	return true
}

// MeetsMinimumRequirements is the looser gate used for account creation:
// length, upper, lower and digit are required, a special character is not.
func MeetsMinimumRequirements(password string) bool {
	return hasMinLength(password) &&
		hasUppercase(password) &&
		hasLowercase(password) &&
		hasDigit(password)
}

// Missing returns the ids of the checks that failed, in check order.
func (r StrengthResult) Missing() []string {
	out := make([]string, 0, len(r.Checks))
	for _, c := range r.Checks {
		if !c.Met {
			out = append(out, c.ID)
		}
	}
	return out
}

// CheckIDs returns the ids of all checks in evaluation order.
func CheckIDs() []string {
	ids := make([]string, len(requirements))
	for i, req := range requirements {
		ids[i] = req.id
	}
	return ids
}

// CheckLabels returns the canonical English label for each check id.
func CheckLabels() map[string]string {
	out := make(map[string]string, len(requirements))
	for _, req := range requirements {
		out[req.id] = req.label
	}
	return out
}

// MinimumCheckIDs lists the checks required by MeetsMinimumRequirements.
func MinimumCheckIDs() []string {
	return []string{CheckLength, CheckUppercase, CheckLowercase, CheckNumber}
}

func hasMinLength(s string) bool {
	return utf8.RuneCountInString(s) >= MinLength
}

func hasUppercase(s string) bool {
	return containsByte(s, func(b byte) bool { return b >= 'A' && b <= 'Z' })
}

func hasLowercase(s string) bool {
	return containsByte(s, func(b byte) bool { return b >= 'a' && b <= 'z' })
}

func hasDigit(s string) bool {
	return containsByte(s, func(b byte) bool { return b >= '0' && b <= '9' })
}

func hasSpecial(s string) bool {
	return strings.ContainsAny(s, SpecialChars)
}

// containsByte scans raw bytes; every class tested is ASCII, so multi-byte
// sequences can never produce a false match.
func containsByte(s string, match func(byte) bool) bool {
	for i := 0; i < len(s); i++ {
		if match(s[i]) {
			return true
		}
	}
	return false
}
