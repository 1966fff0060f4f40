package core

import (
	"fmt"
)

// --- KeyCode, KeyModifiers, Key ---

// KeyCode represents non-character keys
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd

	// Editing keys
	KeyDelete
)

// KeyModifiers represents modifier keys held during a keystroke
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent represents a keyboard input event
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

// KeyClass is the routing category of a key press on an editing line.
type KeyClass int

const (
	ClassOther KeyClass = iota
	ClassEnter
	ClassOpenBracket
	ClassArrow
)

// Direction of an arrow key.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Classify sorts a key press into the categories the input router
// dispatches on. The direction is only meaningful for ClassArrow.
func Classify(k KeyEvent) (KeyClass, Direction) {
	if k.Modifiers&(ModCtrl|ModAlt) != 0 {
		return ClassOther, 0
	}

	switch k.Key {
	case KeyEnter:
		return ClassEnter, 0
	case KeyUp:
		return ClassArrow, DirUp
	case KeyDown:
		return ClassArrow, DirDown
	case KeyLeft:
		return ClassArrow, DirLeft
	case KeyRight:
		return ClassArrow, DirRight
	}

	if k.Rune == '[' {
		return ClassOpenBracket, 0
	}

	return ClassOther, 0
}
