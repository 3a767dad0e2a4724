package battleship

import "strings"

const (
	SymbolEmpty      = "~"
	SymbolAliveDeck  = "□"
	SymbolHitDeck    = "*"
	SymbolSunkenDeck = "x"

	renderCellSeparator = "  "
	renderRowSeparator  = "\n"
)

func (b *Board) grid() [][]string {
	grid := make([][]string, BoardSize)
	for i := range grid {
		grid[i] = make([]string, BoardSize)
		for j := range grid[i] {
			grid[i][j] = SymbolEmpty
		}
	}

	// On overlap the ship placed later wins.
	for _, ship := range b.ships {
		for _, cell := range ship.cells {
			if !cell.Coordinates().IsOnBoard() {
				continue
			}
			grid[cell.row][cell.column] = deckSymbol(ship, cell)
		}
	}
	return grid
}

func deckSymbol(ship *Ship, cell *Cell) string {
	switch {
	case cell.alive:
		return SymbolAliveDeck
	case ship.destroyed:
		return SymbolSunkenDeck
	default:
		return SymbolHitDeck
	}
}

// Render draws the board as BoardSize lines of BoardSize symbols.
func (b *Board) Render() string {
	grid := b.grid()

	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = strings.Join(row, renderCellSeparator)
	}
	return strings.Join(rows, renderRowSeparator)
}

func (b *Board) String() string {
	return b.Render()
}
