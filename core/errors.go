package core

import (
	"errors"
)

var (
	ErrNoActiveLine     = errors.New("no line is being edited")
	ErrUnknownLine      = errors.New("unknown line")
	ErrNoClipboard      = errors.New("clipboard not available")
	ErrNothingToPaste   = errors.New("clipboard is empty")
	ErrNoLinkInProgress = errors.New("no link being typed")
)

type ErrorId int

const (
	ErrNoActiveLineId ErrorId = iota
	ErrUnknownLineId
	ErrCopyFailedId
	ErrPasteFailedId
	ErrFailedToSaveId
	ErrFailedToLoadId
	ErrNoLinkInProgressId
)

type Error struct {
	id  ErrorId
	err error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func (e *Error) ID() ErrorId {
	return e.id
}

func (e *editor) DispatchError(id ErrorId, err error) {
	select {
	case e.updateSignal <- ErrorSignal{id, err}:
	default:
		e.log.Warn().Err(err).Msg("signal channel is full, dropping error signal")
	}
}
