package battleship

const (
	BoardSize            = 10
	BoardValidLowerBound = 0
	BoardValidUpperBound = BoardSize - 1
)

type Coordinates struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func NewCoordinates(row, column int) Coordinates {
	return Coordinates{Row: row, Column: column}
}

// Bounds are not enforced on placement or fire. This is only
// used to decide what gets painted on the rendered grid.
func (c Coordinates) IsOnBoard() bool {
	return c.Row >= BoardValidLowerBound && c.Row <= BoardValidUpperBound &&
		c.Column >= BoardValidLowerBound && c.Column <= BoardValidUpperBound
}

// Placement is the inclusive span a ship occupies. Start and End
// must share a row or a column to produce a straight ship.
type Placement struct {
	Start Coordinates `json:"start"`
	End   Coordinates `json:"end"`
}

func NewPlacement(startRow, startColumn, endRow, endColumn int) Placement {
	return Placement{
		Start: NewCoordinates(startRow, startColumn),
		End:   NewCoordinates(endRow, endColumn),
	}
}

// spanLength counts the coordinates in [from, to]. Anything longer than
// MaxShipDecks is reported as MaxShipDecks+1 so huge or overflowing
// spans never need to be materialised.
func spanLength(from, to int) int {
	if to < from {
		return 0
	}

	// to >= from, so the unsigned difference is exact.
	if uint64(to)-uint64(from) >= MaxShipDecks {
		return MaxShipDecks + 1
	}
	return to - from + 1
}

// Decks is the number of cells NewShip would create for the placement,
// capped at MaxShipDecks+1.
func (p Placement) Decks() int {
	decks := spanLength(p.Start.Row, p.End.Row) * spanLength(p.Start.Column, p.End.Column)
	if decks > MaxShipDecks {
		return MaxShipDecks + 1
	}
	return decks
}
