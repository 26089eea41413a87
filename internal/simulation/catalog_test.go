package simulation

import (
	"errors"
	"strings"
	"testing"
)

func TestBuiltinCatalog(t *testing.T) {
	c := Builtin()
	if c.Len() != 4 {
		t.Fatalf("Len = %d, want 4", c.Len())
	}

	wantSteps := map[string]int{
		PhishingEmail:     4,
		WiFiSecurity:      5,
		SocialEngineering: 6,
		PasswordSecurity:  5,
	}
	for id, n := range wantSteps {
		d, ok := c.Get(id)
		if !ok {
			t.Errorf("missing simulation %q", id)
			continue
		}
		if len(d.Steps) != n {
			t.Errorf("%s: %d steps, want %d", id, len(d.Steps), n)
		}
	}

	all := c.All()
	if all[0].ID != PhishingEmail {
		t.Errorf("first simulation = %q, want %q", all[0].ID, PhishingEmail)
	}
}

func TestParseCatalog_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing simulations", `{}`},
		{"empty simulations", `{"simulations": []}`},
		{"bad id", `{"simulations": [{"id": "Bad ID", "title": "t", "steps": [{"title": "s", "question": "q", "options": ["a", "b"], "correctIndex": 0}]}]}`},
		{"one option", `{"simulations": [{"id": "x", "title": "t", "steps": [{"title": "s", "question": "q", "options": ["a"], "correctIndex": 0}]}]}`},
		{"no steps", `{"simulations": [{"id": "x", "title": "t", "steps": []}]}`},
		{"negative index", `{"simulations": [{"id": "x", "title": "t", "steps": [{"title": "s", "question": "q", "options": ["a", "b"], "correctIndex": -1}]}]}`},
		{"bad difficulty", `{"simulations": [{"id": "x", "title": "t", "difficulty": "Easy", "steps": [{"title": "s", "question": "q", "options": ["a", "b"], "correctIndex": 0}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.raw))
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestParseCatalog_StructuralViolations(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantMsg string
	}{
		{
			"index past options",
			`{"simulations": [{"id": "x", "title": "t", "steps": [{"title": "s", "question": "q", "options": ["a", "b"], "correctIndex": 2}]}]}`,
			"out of range",
		},
		{
			"duplicate id",
			`{"simulations": [
				{"id": "x", "title": "t", "steps": [{"title": "s", "question": "q", "options": ["a", "b"], "correctIndex": 0}]},
				{"id": "x", "title": "u", "steps": [{"title": "s", "question": "q", "options": ["a", "b"], "correctIndex": 1}]}
			]}`,
			"duplicate",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.raw))
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want it to mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadCatalog_Reader(t *testing.T) {
	raw := `{"simulations": [{"id": "custom-drill", "title": "Custom", "difficulty": "Advanced",
		"steps": [{"title": "s", "question": "q", "options": ["a", "b", "c"], "correctIndex": 2}]}]}`
	c, err := LoadCatalog(strings.NewReader(raw))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	d, ok := c.Get("custom-drill")
	if !ok {
		t.Fatal("custom-drill not found")
	}
	if d.Difficulty != DifficultyAdvanced || d.Steps[0].CorrectIndex != 2 {
		t.Errorf("decoded definition = %+v", d)
	}
	if _, ok := c.Get("phishing-email"); ok {
		t.Error("custom catalog should not contain builtin simulations")
	}
}

func TestResultPercent(t *testing.T) {
	tests := []struct {
		score, total, want int
	}{
		{4, 4, 100},
		{3, 4, 75},
		{1, 3, 33},
		{2, 3, 67},
		{0, 5, 0},
		{1, 0, 0},
	}
	for _, tt := range tests {
		r := Result{Score: tt.score, TotalQuestions: tt.total}
		if got := r.Percent(); got != tt.want {
			t.Errorf("Percent(%d/%d) = %d, want %d", tt.score, tt.total, got, tt.want)
		}
	}
}
