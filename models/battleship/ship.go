package battleship

const (
	MinShipDecks = 1
	MaxShipDecks = 4
)

type Ship struct {
	cells     []*Cell
	destroyed bool
}

// NewShip creates one cell for every coordinate between start and end,
// both inclusive. The span is not checked for shape; a start that lies
// after end on either axis produces a ship without cells.
func NewShip(start, end Coordinates) *Ship {
	ship := &Ship{cells: make([]*Cell, 0, Placement{Start: start, End: end}.Decks())}
	for row := start.Row; row <= end.Row; row++ {
		for column := start.Column; column <= end.Column; column++ {
			ship.cells = append(ship.cells, newCell(row, column))
		}
	}
	return ship
}

func (sh *Ship) Cells() []*Cell {
	return sh.cells
}

func (sh *Ship) Size() int {
	return len(sh.cells)
}

func (sh *Ship) IsDestroyed() bool {
	return sh.destroyed
}

// FindCell reports false if the ship does not occupy the coordinate.
func (sh *Ship) FindCell(row, column int) (*Cell, bool) {
	for _, cell := range sh.cells {
		if cell.row == row && cell.column == column {
			return cell, true
		}
	}
	return nil, false
}

// RegisterHit marks the deck at row and column as hit and returns
// whether the ship is destroyed afterwards. ok is false when the
// coordinate does not belong to this ship, in which case nothing changes.
func (sh *Ship) RegisterHit(row, column int) (destroyed bool, ok bool) {
	cell, ok := sh.FindCell(row, column)
	if !ok {
		return false, false
	}

	cell.hit()
	sh.destroyed = sh.allCellsHit()
	return sh.destroyed, true
}

func (sh *Ship) allCellsHit() bool {
	for _, cell := range sh.cells {
		if cell.alive {
			return false
		}
	}
	return true
}
