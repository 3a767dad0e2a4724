package battleship

// Cell is a single deck of a ship. Only alive changes, and only once.
type Cell struct {
	row    int
	column int
	alive  bool
}

func newCell(row, column int) *Cell {
	return &Cell{row: row, column: column, alive: true}
}

func (c *Cell) Row() int {
	return c.row
}

func (c *Cell) Column() int {
	return c.column
}

func (c *Cell) Coordinates() Coordinates {
	return NewCoordinates(c.row, c.column)
}

func (c *Cell) IsAlive() bool {
	return c.alive
}

func (c *Cell) hit() {
	c.alive = false
}
