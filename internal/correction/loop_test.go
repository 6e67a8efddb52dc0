package correction

import (
	"testing"

	"github.com/Veraticus/biblio/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptedLoop(t *testing.T, predicted model.Category) *Loop {
	t.Helper()
	l := New(predicted)
	require.NoError(t, l.Prompt())
	require.Equal(t, StateAwaitingConfirmation, l.State())
	return l
}

func TestLoop_AffirmativeResolvesUnchanged(t *testing.T) {
	l := promptedLoop(t, model.CategoryRomance)

	state, err := l.Answer("Oui")
	require.NoError(t, err)

	assert.Equal(t, StateResolved, state)
	assert.Equal(t, model.CategoryRomance, l.Displayed())
	assert.Equal(t, ConfirmationYes, l.Confirmation())
	_, corrected := l.Corrected()
	assert.False(t, corrected)
	assert.Equal(t, []State{StatePredicted, StateAwaitingConfirmation, StateConfirmed, StateResolved}, l.Path())
}

func TestLoop_NegativeThenCorrection(t *testing.T) {
	l := promptedLoop(t, model.CategoryRomance)

	state, err := l.Answer("non")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingCorrection, state)
	assert.Equal(t, ConfirmationNo, l.Confirmation())

	displayed, err := l.Submit("Histoire")
	require.NoError(t, err)

	assert.Equal(t, model.CategoryHistoire, displayed)
	assert.Equal(t, model.CategoryHistoire, l.Displayed())
	assert.Equal(t, model.CategoryRomance, l.Predicted())
	assert.True(t, l.Resolved())
	corrected, ok := l.Corrected()
	assert.True(t, ok)
	assert.Equal(t, model.CategoryHistoire, corrected)
	assert.Equal(t, []State{StatePredicted, StateAwaitingConfirmation, StateAwaitingCorrection, StateResolved}, l.Path())
}

func TestLoop_EmptySelectionKeepsAwaitingCorrection(t *testing.T) {
	l := promptedLoop(t, model.CategoryRomance)
	_, err := l.Answer("n")
	require.NoError(t, err)

	for _, selection := range []string{"", "   ", "\t"} {
		displayed, err := l.Submit(selection)
		require.ErrorIs(t, err, ErrEmptySelection)
		assert.Equal(t, model.CategoryRomance, displayed)
		assert.Equal(t, StateAwaitingCorrection, l.State())
	}

	_, err = l.Submit("Fantasy")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryFantasy, l.Displayed())
}

func TestLoop_InvalidAnswersRepromptWithoutTransition(t *testing.T) {
	l := promptedLoop(t, model.CategoryThriller)

	for i, input := range []string{"", "peut-être", "ouii", "1"} {
		state, err := l.Answer(input)
		require.ErrorIs(t, err, ErrInvalidAnswer)
		assert.Equal(t, StateAwaitingConfirmation, state)
		assert.Equal(t, i+1, l.Reprompts())
	}

	state, err := l.Answer("  O ")
	require.NoError(t, err)
	assert.Equal(t, StateResolved, state)
	assert.Equal(t, 4, l.Reprompts())
}

func TestLoop_ManyInvalidAnswersDoNotGrowStack(t *testing.T) {
	l := promptedLoop(t, model.CategoryThriller)

	for i := 0; i < 100000; i++ {
		_, err := l.Answer("?")
		require.ErrorIs(t, err, ErrInvalidAnswer)
	}
	assert.Equal(t, 100000, l.Reprompts())
	assert.Equal(t, StateAwaitingConfirmation, l.State())
}

func TestLoop_ResolvedIsTerminal(t *testing.T) {
	l := promptedLoop(t, model.CategoryFantasy)
	_, err := l.Answer("yes")
	require.NoError(t, err)

	assert.ErrorIs(t, l.Prompt(), ErrResolved)

	_, err = l.Answer("no")
	assert.ErrorIs(t, err, ErrResolved)

	displayed, err := l.Submit("Histoire")
	assert.ErrorIs(t, err, ErrResolved)
	assert.Equal(t, model.CategoryFantasy, displayed)
	assert.Equal(t, StateResolved, l.State())
}

func TestLoop_EventsOutOfOrder(t *testing.T) {
	l := New(model.CategoryFantasy)

	_, err := l.Answer("oui")
	assert.ErrorIs(t, err, ErrWrongState)
	assert.Equal(t, StatePredicted, l.State())

	_, err = l.Submit("Histoire")
	assert.ErrorIs(t, err, ErrWrongState)

	require.NoError(t, l.Prompt())
	assert.ErrorIs(t, l.Prompt(), ErrWrongState)

	_, err = l.Submit("Histoire")
	assert.ErrorIs(t, err, ErrWrongState)
	assert.Equal(t, StateAwaitingConfirmation, l.State())
}

func TestParseAnswer(t *testing.T) {
	tests := []struct {
		input string
		want  Confirmation
		ok    bool
	}{
		{input: "oui", want: ConfirmationYes, ok: true},
		{input: "OUI", want: ConfirmationYes, ok: true},
		{input: "o", want: ConfirmationYes, ok: true},
		{input: "Yes", want: ConfirmationYes, ok: true},
		{input: "y", want: ConfirmationYes, ok: true},
		{input: "non", want: ConfirmationNo, ok: true},
		{input: " N ", want: ConfirmationNo, ok: true},
		{input: "no", want: ConfirmationNo, ok: true},
		{input: "", want: ConfirmationPending, ok: false},
		{input: "nope", want: ConfirmationPending, ok: false},
	}

	for _, tt := range tests {
		got, ok := ParseAnswer(tt.input)
		assert.Equal(t, tt.want, got, tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
	}
}

func TestLoop_Snapshot(t *testing.T) {
	l := promptedLoop(t, model.CategoryRomance)
	_, _ = l.Answer("maybe")

	snap := l.Snapshot()
	assert.Equal(t, Snapshot{
		Predicted: model.CategoryRomance,
		Displayed: model.CategoryRomance,
		State:     StateAwaitingConfirmation,
		Reprompts: 1,
	}, snap)
	assert.Equal(t, "awaiting_confirmation", snap.State.String())
}
