package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialogStates(signals []Signal) []bool {
	var out []bool
	for _, s := range signals {
		if d, ok := s.(DialogSignal); ok {
			out = append(out, d.Value())
		}
	}
	return out
}

func TestAutocompleteToggles(t *testing.T) {
	var calls []bool
	a := NewAutocomplete(func(open bool) { calls = append(calls, open) })

	a.Trigger()
	assert.True(t, a.Armed())
	a.Trigger()
	assert.False(t, a.Armed())
	a.Trigger()

	assert.Equal(t, []bool{true, false, true}, calls)
}

func TestAutocompleteReset(t *testing.T) {
	var calls []bool
	a := NewAutocomplete(func(open bool) { calls = append(calls, open) })

	a.Trigger()
	a.Reset()
	assert.False(t, a.Armed())
	a.Trigger()

	assert.Equal(t, []bool{true, true}, calls)
}

func TestOpenBracketTogglesDialog(t *testing.T) {
	e := newTestEditor(t, 0, "")
	focusAt(t, e, 0, 0)
	drainSignals(e)

	typeRune(e, '[')
	assert.True(t, e.GetState().DialogOpen)
	typeRune(e, '[')
	assert.False(t, e.GetState().DialogOpen)

	assert.Equal(t, []bool{true, false}, dialogStates(drainSignals(e)))
	assert.Equal(t, "[[", e.Field().Text())
}

func TestAutocompleteSurvivesFocusChange(t *testing.T) {
	e := newTestEditor(t, 0, "one", "two")
	focusAt(t, e, 0, 3)

	typeRune(e, '[')
	require.True(t, e.AutocompleteArmed())

	require.NoError(t, e.Focus(lineID(t, e, 1)))
	e.Blur()
	assert.True(t, e.AutocompleteArmed())

	require.NoError(t, e.Focus(lineID(t, e, 1)))
	drainSignals(e)
	typeRune(e, '[')
	assert.Equal(t, []bool{false}, dialogStates(drainSignals(e)))
}

func TestLinkQueryAndCompletion(t *testing.T) {
	e := newTestEditor(t, 0, "")
	focusAt(t, e, 0, 0)
	for _, r := range "see [[Ho" {
		typeRune(e, r)
	}

	query, ok := e.LinkQuery()
	require.True(t, ok)
	assert.Equal(t, "Ho", query)

	require.NoError(t, e.CompleteLink("Home"))
	assert.Equal(t, "see [[Home]]", e.Field().Text())
	assert.Equal(t, 12, e.Field().Caret())

	_, ok = e.LinkQuery()
	assert.False(t, ok)

	var target *Error
	assert.ErrorAs(t, e.CompleteLink("Other"), &target)
	assert.Equal(t, ErrNoLinkInProgressId, target.ID())
}
