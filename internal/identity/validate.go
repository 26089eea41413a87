package identity

import (
	"regexp"
	"strings"
	"unicode"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeEmail trims and lowercases an address for lookup.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Strength grades a candidate password.
type Strength int

const (
	StrengthInvalid Strength = iota
	StrengthWeak
	StrengthMedium
	StrengthStrong
	StrengthVeryStrong
)

func (s Strength) String() string {
	switch s {
	case StrengthWeak:
		return "Weak"
	case StrengthMedium:
		return "Medium"
	case StrengthStrong:
		return "Strong"
	case StrengthVeryStrong:
		return "Very Strong"
	default:
		return "Invalid"
	}
}

// PasswordRules records which composition rules a password satisfies.
type PasswordRules struct {
	MinLength   bool
	Uppercase   bool
	Lowercase   bool
	Number      bool
	SpecialChar bool
	NoSpaces    bool
}

// CheckPassword evaluates pw against the composition rules.
func CheckPassword(pw string) PasswordRules {
	r := PasswordRules{MinLength: len([]rune(pw)) >= 8, NoSpaces: true}
	for _, c := range pw {
		switch {
		case unicode.IsSpace(c):
			r.NoSpaces = false
		case unicode.IsUpper(c):
			r.Uppercase = true
		case unicode.IsLower(c):
			r.Lowercase = true
		case unicode.IsDigit(c):
			r.Number = true
		case strings.ContainsRune(`!@#$%^&*()_+-=[]{};':"\|,.<>/?`, c):
			r.SpecialChar = true
		}
	}
	return r
}

// Strength grades the rules: any whitespace is invalid, then by count of
// satisfied rules.
func (r PasswordRules) Strength() Strength {
	if !r.NoSpaces {
		return StrengthInvalid
	}
	n := 0
	for _, ok := range []bool{r.MinLength, r.Uppercase, r.Lowercase, r.Number, r.SpecialChar, r.NoSpaces} {
		if ok {
			n++
		}
	}
	switch {
	case n < 4:
		return StrengthWeak
	case n == 4:
		return StrengthMedium
	case n == 5:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}

// Missing lists the required rules that are not met. Special characters
// improve strength but are not required.
func (r PasswordRules) Missing() []string {
	var out []string
	if !r.MinLength {
		out = append(out, "at least 8 characters")
	}
	if !r.Uppercase {
		out = append(out, "one uppercase letter")
	}
	if !r.Lowercase {
		out = append(out, "one lowercase letter")
	}
	if !r.Number {
		out = append(out, "one number")
	}
	if !r.NoSpaces {
		out = append(out, "no spaces")
	}
	return out
}

// ValidDisplayName requires at least two non-space characters.
func ValidDisplayName(s string) bool {
	return len([]rune(strings.TrimSpace(s))) >= 2
}
