package boarddto

// Inbound event types. The input collaborator resolves clicks to board
// coordinates before emitting these.
const (
	EventSelect   = "select"
	EventChoose   = "choose"
	EventDeselect = "deselect"
)

// Square is a wire coordinate, both components in [0,7].
type Square struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Event is one inbound gesture frame.
type Event struct {
	Type   string  `json:"type"`
	Square *Square `json:"square,omitempty"`
}

// Outbound notification types.
const (
	NotifyShowMarker    = "show_marker"
	NotifyHideMarker    = "hide_marker"
	NotifyRelocatePiece = "relocate_piece"
	NotifyRemovePiece   = "remove_piece"
	NotifyMoveCommitted = "move_committed"
	NotifyDestinations  = "destinations"
	NotifyError         = "error"
)

// Notification is one outbound frame. Exactly the fields implied by Type
// are populated.
type Notification struct {
	Type    string       `json:"type"`
	Square  *Square      `json:"square,omitempty"`
	Squares []Square     `json:"squares,omitempty"`
	PieceID string       `json:"piece_id,omitempty"`
	Move    *Move        `json:"move,omitempty"`
	Err     *DomainError `json:"error,omitempty"`
}

// Move summarises a committed board mutation.
type Move struct {
	Number   int     `json:"number"`
	Kind     string  `json:"kind"`
	Team     string  `json:"team"`
	From     Square  `json:"from"`
	To       Square  `json:"to"`
	Captured *Capture `json:"captured,omitempty"`
}

// Capture identifies the piece removed by a capturing move.
type Capture struct {
	PieceID string `json:"piece_id"`
	Kind    string `json:"kind"`
	Team    string `json:"team"`
}
