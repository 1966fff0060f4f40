package core

var (
	EmptyMessage    = ""
	CopiedMessage   = "line copied"
	PastedMessage   = "pasted"
	PageSaved       = "page saved"
	LinkInserted    = "link inserted"
	NothingSelected = "nothing to copy"
)

func (e *editor) DispatchMessage(args ...string) {
	id := args[0]
	value := id
	if len(args) > 1 {
		value = args[1]
	}
	select {
	case e.updateSignal <- MessageSignal{id, value}:
	default:
		e.log.Warn().Str("message", value).Msg("signal channel is full, dropping message")
	}
}
