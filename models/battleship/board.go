package battleship

// Board holds a validated fleet of ships. The fleet never changes after
// NewBoard returns; only the cells inside the ships do.
//
// Board is not safe for concurrent use.
type Board struct {
	ships []*Ship
}

// NewBoard builds a ship for every placement and validates the fleet.
// Nothing is returned unless the whole fleet is valid.
func NewBoard(placements []Placement) (*Board, error) {
	if err := validatePlacements(placements); err != nil {
		return nil, err
	}

	ships := make([]*Ship, 0, len(placements))
	for _, placement := range placements {
		ships = append(ships, NewShip(placement.Start, placement.End))
	}

	if err := validateComposition(ships); err != nil {
		return nil, err
	}
	return &Board{ships: ships}, nil
}

// Ships returns the fleet in placement order.
func (b *Board) Ships() []*Ship {
	return b.ships
}

func (b *Board) DeckCount() int {
	total := 0
	for _, ship := range b.ships {
		total += ship.Size()
	}
	return total
}

// Fire resolves a shot at row and column. The first ship in fleet order
// that occupies the coordinate takes the hit. Firing at a deck that is
// already hit reports the ship state again.
func (b *Board) Fire(row, column int) FireOutcome {
	for _, ship := range b.ships {
		destroyed, ok := ship.RegisterHit(row, column)
		if !ok {
			continue
		}

		if destroyed {
			return OutcomeSunk
		}
		return OutcomeHit
	}
	return OutcomeMiss
}

func (b *Board) ShipsRemaining() int {
	remaining := 0
	for _, ship := range b.ships {
		if !ship.IsDestroyed() {
			remaining++
		}
	}
	return remaining
}

func (b *Board) IsFleetDestroyed() bool {
	return b.ShipsRemaining() == 0
}
