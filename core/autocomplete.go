package core

// Autocomplete decides whether an opening bracket opens or closes the link
// dialog. Its state is independent of which line has focus.
type Autocomplete struct {
	armed  bool
	toggle func(open bool)
}

func NewAutocomplete(toggle func(open bool)) *Autocomplete {
	return &Autocomplete{toggle: toggle}
}

// Trigger handles an opening bracket: Idle opens the dialog and arms,
// Armed closes it and disarms.
func (a *Autocomplete) Trigger() {
	if a.armed {
		a.toggle(false)
		a.armed = false
		return
	}
	a.toggle(true)
	a.armed = true
}

// Reset disarms without touching the dialog. The dialog calls it when it is
// closed by other means.
func (a *Autocomplete) Reset() {
	a.armed = false
}

func (a *Autocomplete) Armed() bool {
	return a.armed
}
