package game

type IntentKind int

const (
	IntentMoveLeft IntentKind = iota
	IntentMoveRight
	IntentSoftDrop
	IntentSetColumn
)

// Intent is a player request, already decoupled from the input device.
type Intent struct {
	Kind   IntentKind
	Column int
}

func MoveLeft() Intent  { return Intent{Kind: IntentMoveLeft} }
func MoveRight() Intent { return Intent{Kind: IntentMoveRight} }
func SoftDrop() Intent  { return Intent{Kind: IntentSoftDrop} }

// SetColumn moves the piece straight to column x, as pointer input does.
func SetColumn(x int) Intent {
	return Intent{Kind: IntentSetColumn, Column: x}
}

// Pointer turns the hovered column into SetColumn intents. Its target stays
// pending until the piece reaches it, so a refused move is retried on later
// frames and a newly spawned piece follows the cursor. Keyboard movement
// releases it until the cursor moves to another column.
type Pointer struct {
	hover  int
	seen   bool
	active bool
}

// Hover records the column under the cursor.
func (p *Pointer) Hover(col int) {
	if p.seen && col == p.hover {
		return
	}
	p.hover, p.seen, p.active = col, true, true
}

func (p *Pointer) Release() { p.active = false }

// Intent returns the move that brings the piece in v under the cursor.
func (p *Pointer) Intent(v View) (Intent, bool) {
	if !p.active || !v.HasPiece || v.Piece.X == p.hover {
		return Intent{}, false
	}
	return SetColumn(p.hover), true
}
