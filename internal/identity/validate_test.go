package identity

import (
	"errors"
	"testing"
)

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		pw   string
		want Strength
	}{
		{"abc", StrengthWeak},
		{"has space1A", StrengthInvalid},
		{"abcdefgh1", StrengthMedium},
		{"Abcdefgh1", StrengthStrong},
		{"Abcdefgh1!", StrengthVeryStrong},
	}
	for _, tt := range tests {
		if got := CheckPassword(tt.pw).Strength(); got != tt.want {
			t.Errorf("Strength(%q) = %s, want %s", tt.pw, got, tt.want)
		}
	}
}

func TestPasswordMissing(t *testing.T) {
	got := CheckPassword("abc").Missing()
	want := []string{"at least 8 characters", "one uppercase letter", "one number"}
	if len(got) != len(want) {
		t.Fatalf("Missing = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Missing[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if m := CheckPassword("Secur3Pass").Missing(); len(m) != 0 {
		t.Errorf("Missing = %v, want none", m)
	}
}

func TestValidEmail(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"ada@example.com", true},
		{"a@b.co", true},
		{"ada@example", false},
		{"ada example@x.com", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := ValidEmail(tt.in); got != tt.want {
			t.Errorf("ValidEmail(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{authErr(CodeUserNotFound, ""), "No account found with this email address. Please check your email or create a new account."},
		{authErr(CodeWeakPassword, "one number"), "Password must contain one number."},
		{authErr("auth/something-new", ""), unexpectedMessage},
		{errors.New("disk full"), unexpectedMessage},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.want {
			t.Errorf("Message(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
