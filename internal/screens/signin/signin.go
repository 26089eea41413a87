package signin

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cyberguard/internal/identity"
	"github.com/abhisek/cyberguard/internal/router"
	"github.com/abhisek/cyberguard/internal/screen"
	"github.com/abhisek/cyberguard/internal/tracker"
	"github.com/abhisek/cyberguard/internal/ui/components"
	"github.com/abhisek/cyberguard/internal/ui/layout"
	"github.com/abhisek/cyberguard/internal/ui/theme"
)

// Mode selects between signing in and creating an account.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

const (
	fieldEmail = iota
	fieldPassword
	fieldName
)

type authDoneMsg struct {
	User *identity.User
	Err  error
}

// SignInScreen collects credentials and signs the learner in.
type SignInScreen struct {
	provider identity.Provider
	tracker  *tracker.Tracker
	next     func() screen.Screen

	mode    Mode
	inputs  []components.TextInput
	focus   int
	loading bool
	errMsg  string
}

var _ screen.Screen = (*SignInScreen)(nil)
var _ screen.KeyHintProvider = (*SignInScreen)(nil)

// New creates a sign-in screen. On success it replaces itself with next(),
// or pops back when next is nil.
func New(provider identity.Provider, tr *tracker.Tracker, next func() screen.Screen) *SignInScreen {
	return &SignInScreen{
		provider: provider,
		tracker:  tr,
		next:     next,
		inputs: []components.TextInput{
			components.NewTextInput("Email", "you@example.com", 254),
			components.NewTextInput("Password", "••••••••", 128).Masked(),
			components.NewTextInput("Full name", "Ada Lovelace", 64),
		},
	}
}

func (s *SignInScreen) Init() tea.Cmd {
	return s.inputs[fieldEmail].Focus()
}

func (s *SignInScreen) Title() string {
	if s.mode == ModeSignup {
		return "Create Account"
	}
	return "Sign In"
}

func (s *SignInScreen) KeyHints() []layout.KeyHint {
	toggle := "Create account"
	if s.mode == ModeSignup {
		toggle = "Have an account"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+N", Description: toggle},
		{Key: "Ctrl+G", Description: "Google"},
		{Key: "Esc", Description: "Back"},
	}
}

// Mode returns the current form mode.
func (s *SignInScreen) Mode() Mode {
	return s.mode
}

func (s *SignInScreen) fieldCount() int {
	if s.mode == ModeSignup {
		return 3
	}
	return 2
}

func (s *SignInScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		s.loading = false
		if msg.Err != nil {
			s.errMsg = identity.Message(msg.Err)
			return s, nil
		}
		if s.next != nil {
			next := s.next()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
		return s, func() tea.Msg { return router.PopScreenMsg{} }

	case tea.KeyMsg:
		if s.loading {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % s.fieldCount())
		case "shift+tab", "up":
			return s, s.setFocus((s.focus - 1 + s.fieldCount()) % s.fieldCount())
		case "ctrl+n":
			if s.mode == ModeLogin {
				s.mode = ModeSignup
			} else {
				s.mode = ModeLogin
			}
			s.errMsg = ""
			return s, s.setFocus(fieldEmail)
		case "ctrl+g":
			s.loading = true
			s.errMsg = ""
			return s, s.googleCmd()
		case "enter":
			if !s.validate() {
				return s, nil
			}
			s.loading = true
			s.errMsg = ""
			return s, s.submitCmd()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *SignInScreen) setFocus(i int) tea.Cmd {
	for j := range s.inputs {
		s.inputs[j].Blur()
	}
	s.focus = i
	return s.inputs[i].Focus()
}

// validate runs the client-side field checks and reports whether the form
// can be submitted.
func (s *SignInScreen) validate() bool {
	ok := true
	email := strings.TrimSpace(s.inputs[fieldEmail].Value())
	switch {
	case email == "":
		s.inputs[fieldEmail].SetError("Email is required")
		ok = false
	case !identity.ValidEmail(email):
		s.inputs[fieldEmail].SetError("Please enter a valid email address")
		ok = false
	}

	pw := s.inputs[fieldPassword].Value()
	if pw == "" {
		s.inputs[fieldPassword].SetError("Password is required")
		ok = false
	} else if s.mode == ModeSignup {
		if missing := identity.CheckPassword(pw).Missing(); len(missing) > 0 {
			s.inputs[fieldPassword].SetError("Password must contain " + strings.Join(missing, ", "))
			ok = false
		}
	}

	if s.mode == ModeSignup {
		name := s.inputs[fieldName].Value()
		if strings.TrimSpace(name) == "" {
			s.inputs[fieldName].SetError("Full name is required")
			ok = false
		} else if !identity.ValidDisplayName(name) {
			s.inputs[fieldName].SetError("Name must be at least 2 characters long")
			ok = false
		}
	}
	return ok
}

func (s *SignInScreen) submitCmd() tea.Cmd {
	mode := s.mode
	email := s.inputs[fieldEmail].Value()
	password := s.inputs[fieldPassword].Value()
	name := s.inputs[fieldName].Value()
	return func() tea.Msg {
		ctx := context.Background()
		var (
			u   *identity.User
			err error
		)
		if mode == ModeSignup {
			u, err = s.provider.Signup(ctx, email, password, name)
		} else {
			u, err = s.provider.Login(ctx, email, password)
		}
		if err != nil {
			return authDoneMsg{Err: err}
		}
		return authDoneMsg{User: u, Err: s.tracker.SignIn(ctx, u)}
	}
}

func (s *SignInScreen) googleCmd() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		u, err := s.provider.LoginWithGoogle(ctx)
		if err != nil {
			return authDoneMsg{Err: err}
		}
		return authDoneMsg{User: u, Err: s.tracker.SignIn(ctx, u)}
	}
}

func (s *SignInScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if cw > 50 {
		cw = 50
	}

	var sections []string

	heading := "Welcome back"
	sub := "Sign in to continue your training"
	if s.mode == ModeSignup {
		heading = "Join CyberGuard"
		sub = "Create an account to track your progress"
	}
	sections = append(sections,
		lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(heading),
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(sub),
		"",
	)

	for i := 0; i < s.fieldCount(); i++ {
		sections = append(sections, s.inputs[i].View(), "")
	}

	if s.mode == ModeSignup && s.inputs[fieldPassword].Value() != "" {
		strength := identity.CheckPassword(s.inputs[fieldPassword].Value()).Strength()
		sections = append(sections, renderStrength(strength), "")
	}

	switch {
	case s.loading:
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("Please wait..."))
	case s.errMsg != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Width(cw).Render("⚠ "+s.errMsg))
	}

	content := components.Card(strings.Join(sections, "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderStrength(st identity.Strength) string {
	fg := theme.Error
	switch st {
	case identity.StrengthMedium:
		fg = theme.Highlight
	case identity.StrengthStrong, identity.StrengthVeryStrong:
		fg = theme.Success
	}
	bar := strings.Repeat("■", int(st)) + strings.Repeat("□", int(identity.StrengthVeryStrong)-int(st))
	return lipgloss.NewStyle().Foreground(fg).Render(fmt.Sprintf("Strength: %s %s", bar, st))
}
