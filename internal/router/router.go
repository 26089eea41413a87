// Package router keeps the stack of TUI screens and turns navigation
// messages into stack operations.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cyberguard/internal/screen"
)

// Navigation messages. Screens return these from commands instead of holding
// a reference to the router.
type (
	PushScreenMsg    struct{ Screen screen.Screen }
	ReplaceScreenMsg struct{ Screen screen.Screen }
	PopScreenMsg     struct{}
	PopToRootMsg     struct{}
)

// Router is a stack of screens; the bottom screen is never popped.
type Router struct {
	stack []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) top() int {
	return len(r.stack) - 1
}

// Push puts s on top and runs its Init.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes and removes the top screen, then resumes the one beneath it.
// The root stays.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	r.drop()
	return r.resume()
}

// PopToRoot closes every screen above the root and resumes the root.
func (r *Router) PopToRoot() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	for len(r.stack) > 1 {
		r.drop()
	}
	return r.resume()
}

// Replace closes the top screen and puts s in its place.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	if len(r.stack) == 0 {
		return r.Push(s)
	}
	if c, ok := r.stack[r.top()].(screen.Closer); ok {
		c.Close()
	}
	r.stack[r.top()] = s
	return s.Init()
}

func (r *Router) drop() {
	if c, ok := r.stack[r.top()].(screen.Closer); ok {
		c.Close()
	}
	r.stack[r.top()] = nil
	r.stack = r.stack[:r.top()]
}

func (r *Router) resume() tea.Cmd {
	if rs, ok := r.stack[r.top()].(screen.Resumer); ok {
		return rs.Resume()
	}
	return nil
}

// Active returns the top screen, or nil on an empty stack.
func (r *Router) Active() screen.Screen {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[r.top()]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	}

	if len(r.stack) == 0 {
		return nil
	}
	next, cmd := r.stack[r.top()].Update(msg)
	r.stack[r.top()] = next
	return cmd
}

// View renders the active screen into the content area.
func (r *Router) View(width, height int) string {
	if active := r.Active(); active != nil {
		return active.View(width, height)
	}
	return ""
}
