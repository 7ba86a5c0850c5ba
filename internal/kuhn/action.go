package kuhn

import (
	"fmt"
	"strings"
)

// Action is a betting decision.
type Action int

const (
	Check Action = iota
	Bet
	Call
	Fold
)

func (a Action) String() string {
	switch a {
	case Check:
		return "Check"
	case Bet:
		return "Bet"
	case Call:
		return "Call"
	case Fold:
		return "Fold"
	default:
		return "Unknown"
	}
}

// ParseAction converts an action name back into an Action.
func ParseAction(s string) (Action, error) {
	switch s {
	case "Check":
		return Check, nil
	case "Bet":
		return Bet, nil
	case "Call":
		return Call, nil
	case "Fold":
		return Fold, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// HistorySeparator joins action names in the textual form of a History.
const HistorySeparator = "-"

// History is the ordered sequence of actions taken so far in a hand. The zero
// value is the empty history.
type History struct {
	actions []Action
}

// NewHistory builds a history from the given actions.
func NewHistory(actions ...Action) History {
	return History{actions: append([]Action(nil), actions...)}
}

// ParseHistory parses the textual form produced by History.String.
func ParseHistory(s string) (History, error) {
	if s == "" {
		return History{}, nil
	}
	parts := strings.Split(s, HistorySeparator)
	actions := make([]Action, 0, len(parts))
	for _, part := range parts {
		a, err := ParseAction(part)
		if err != nil {
			return History{}, fmt.Errorf("parse history %q: %w", s, err)
		}
		actions = append(actions, a)
	}
	return History{actions: actions}, nil
}

// Append returns a new history with a added. The receiver is left untouched
// and the result never shares its backing array.
func (h History) Append(a Action) History {
	next := make([]Action, len(h.actions)+1)
	copy(next, h.actions)
	next[len(h.actions)] = a
	return History{actions: next}
}

// Len returns the number of actions taken.
func (h History) Len() int {
	return len(h.actions)
}

// Last returns the most recent action, if any.
func (h History) Last() (Action, bool) {
	if len(h.actions) == 0 {
		return 0, false
	}
	return h.actions[len(h.actions)-1], true
}

// Equal reports whether both histories hold the same actions in the same order.
func (h History) Equal(other History) bool {
	return h.is(other.actions...)
}

func (h History) is(seq ...Action) bool {
	if len(h.actions) != len(seq) {
		return false
	}
	for i, a := range seq {
		if h.actions[i] != a {
			return false
		}
	}
	return true
}

func (h History) String() string {
	if len(h.actions) == 0 {
		return ""
	}
	names := make([]string, len(h.actions))
	for i, a := range h.actions {
		names[i] = a.String()
	}
	return strings.Join(names, HistorySeparator)
}
