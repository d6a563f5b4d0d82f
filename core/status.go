package core

// Status is the game status tag carried by incremental state records.
type Status string

// Status values used by the platform. The zero value is treated as unknown
// and non-terminal.
const (
	StatusCreated       Status = "created"
	StatusStarted       Status = "started"
	StatusAborted       Status = "aborted"
	StatusMate          Status = "mate"
	StatusResign        Status = "resign"
	StatusStalemate     Status = "stalemate"
	StatusTimeout       Status = "timeout"
	StatusDraw          Status = "draw"
	StatusOutOfTime     Status = "outoftime"
	StatusCheat         Status = "cheat"
	StatusNoStart       Status = "nostart"
	StatusUnknownFinish Status = "unknownFinish"
	StatusVariantEnd    Status = "variantEnd"
)

// terminalStatuses mirrors the platform's game end status list. Any of these
// observed on a state record ends the session.
var terminalStatuses = map[Status]struct{}{
	StatusAborted:       {},
	StatusMate:          {},
	StatusResign:        {},
	StatusStalemate:     {},
	StatusTimeout:       {},
	StatusDraw:          {},
	StatusOutOfTime:     {},
	StatusCheat:         {},
	StatusNoStart:       {},
	StatusUnknownFinish: {},
	StatusVariantEnd:    {},
}

// Terminal reports whether the status indicates the game has ended.
func (s Status) Terminal() bool {
	_, ok := terminalStatuses[s]
	return ok
}

// Color identifies the side a session plays.
type Color string

const (
	ColorWhite Color = "white"
	ColorBlack Color = "black"
)
