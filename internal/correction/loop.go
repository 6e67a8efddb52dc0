// Package correction implements the confirm-or-correct loop that follows a
// prediction. The loop is event driven: answers and selections are fed in as
// they arrive and nothing here blocks.
package correction

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/biblio/internal/model"
)

// State is a step of the loop.
type State int

// Loop states.
const (
	StatePredicted State = iota
	StateAwaitingConfirmation
	StateConfirmed
	StateAwaitingCorrection
	StateResolved
)

func (s State) String() string {
	switch s {
	case StatePredicted:
		return "predicted"
	case StateAwaitingConfirmation:
		return "awaiting_confirmation"
	case StateConfirmed:
		return "confirmed"
	case StateAwaitingCorrection:
		return "awaiting_correction"
	case StateResolved:
		return "resolved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Confirmation is the user's answer to "is this category right?".
type Confirmation int

// Confirmation values.
const (
	ConfirmationPending Confirmation = iota
	ConfirmationYes
	ConfirmationNo
)

// Errors returned by loop events.
var (
	ErrInvalidAnswer  = errors.New("answer must be yes or no")
	ErrEmptySelection = errors.New("no category selected")
	ErrResolved       = errors.New("correction already resolved")
	ErrWrongState     = errors.New("event not allowed in current state")
)

var (
	affirmative = map[string]bool{"oui": true, "o": true, "yes": true, "y": true}
	negative    = map[string]bool{"non": true, "n": true, "no": true}
)

// Loop tracks one prediction until the user confirms or corrects it.
type Loop struct {
	predicted    model.Category
	displayed    model.Category
	corrected    model.Category
	path         []State
	state        State
	confirmation Confirmation
	reprompts    int
}

// New starts a loop for a freshly predicted category.
func New(predicted model.Category) *Loop {
	return &Loop{
		predicted: predicted,
		displayed: predicted,
		state:     StatePredicted,
		path:      []State{StatePredicted},
	}
}

func (l *Loop) transition(to State) {
	l.state = to
	l.path = append(l.path, to)
}

// ParseAnswer classifies raw user input as yes, no, or neither.
func ParseAnswer(input string) (Confirmation, bool) {
	answer := strings.ToLower(strings.TrimSpace(input))
	switch {
	case affirmative[answer]:
		return ConfirmationYes, true
	case negative[answer]:
		return ConfirmationNo, true
	default:
		return ConfirmationPending, false
	}
}

// Prompt moves from Predicted to AwaitingConfirmation.
func (l *Loop) Prompt() error {
	if l.state == StateResolved {
		return ErrResolved
	}
	if l.state != StatePredicted {
		return fmt.Errorf("%w: prompt in %s", ErrWrongState, l.state)
	}
	l.transition(StateAwaitingConfirmation)
	return nil
}

// Answer applies the user's yes/no answer. Input is validated before any
// transition: an unrecognised answer leaves the state unchanged, counts a
// re-prompt and returns ErrInvalidAnswer.
func (l *Loop) Answer(input string) (State, error) {
	if l.state == StateResolved {
		return l.state, ErrResolved
	}
	if l.state != StateAwaitingConfirmation {
		return l.state, fmt.Errorf("%w: answer in %s", ErrWrongState, l.state)
	}

	confirmation, ok := ParseAnswer(input)
	if !ok {
		l.reprompts++
		return l.state, ErrInvalidAnswer
	}

	l.confirmation = confirmation
	if confirmation == ConfirmationYes {
		l.transition(StateConfirmed)
		l.transition(StateResolved)
		return l.state, nil
	}

	l.transition(StateAwaitingCorrection)
	return l.state, nil
}

// Submit applies a category chosen in the selector. An empty selection is
// rejected without a transition.
func (l *Loop) Submit(selection string) (model.Category, error) {
	if l.state == StateResolved {
		return l.displayed, ErrResolved
	}
	if l.state != StateAwaitingCorrection {
		return l.displayed, fmt.Errorf("%w: submit in %s", ErrWrongState, l.state)
	}

	category := model.NormalizeCategory(selection)
	if category == "" {
		return l.displayed, ErrEmptySelection
	}

	l.corrected = category
	l.displayed = category
	l.transition(StateResolved)
	return l.displayed, nil
}

// State returns the current state.
func (l *Loop) State() State { return l.state }

// Predicted returns the category the service predicted.
func (l *Loop) Predicted() model.Category { return l.predicted }

// Displayed returns the category currently shown to the user.
func (l *Loop) Displayed() model.Category { return l.displayed }

// Corrected returns the user's category, if one was submitted.
func (l *Loop) Corrected() (model.Category, bool) {
	return l.corrected, l.corrected != ""
}

// Confirmation returns the recorded answer.
func (l *Loop) Confirmation() Confirmation { return l.confirmation }

// Path lists the states visited so far, in order.
func (l *Loop) Path() []State {
	out := make([]State, len(l.path))
	copy(out, l.path)
	return out
}

// Reprompts counts rejected answers.
func (l *Loop) Reprompts() int { return l.reprompts }

// Resolved reports whether the loop reached its terminal state.
func (l *Loop) Resolved() bool { return l.state == StateResolved }

// Snapshot is a copy of a loop's observable state.
type Snapshot struct {
	Predicted    model.Category
	Displayed    model.Category
	Corrected    model.Category
	State        State
	Confirmation Confirmation
	Reprompts    int
}

// Snapshot copies the loop's state.
func (l *Loop) Snapshot() Snapshot {
	return Snapshot{
		Predicted:    l.predicted,
		Displayed:    l.displayed,
		Corrected:    l.corrected,
		State:        l.state,
		Confirmation: l.confirmation,
		Reprompts:    l.reprompts,
	}
}
