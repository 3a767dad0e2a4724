package battleship

import "fmt"

const FleetShipCount = 10

// Number of ships required for every deck size.
var fleetComposition = []struct {
	decks   int
	ships   int
	errCode uint8
}{
	{decks: 1, ships: 4, errCode: FleetErrSingleDeckCount},
	{decks: 2, ships: 3, errCode: FleetErrDoubleDeckCount},
	{decks: 3, ships: 2, errCode: FleetErrThreeDeckCount},
	{decks: 4, ships: 1, errCode: FleetErrFourDeckCount},
}

// FleetHistogram maps a deck count to the number of ships that have it.
func FleetHistogram(ships []*Ship) map[int]int {
	histogram := make(map[int]int, MaxShipDecks)
	for _, ship := range ships {
		histogram[ship.Size()]++
	}
	return histogram
}

// validatePlacements checks the ship count and the deck count of every
// placement before any cell is created.
func validatePlacements(placements []Placement) error {
	if len(placements) != FleetShipCount {
		return NewFleetErr(FleetErrShipCount)
	}

	for i, placement := range placements {
		decks := placement.Decks()
		if decks < MinShipDecks || decks > MaxShipDecks {
			desc := fmt.Sprintf("%s (ship %d has %d)", fleetErrDescs[FleetErrDeckCount], i, decks)
			if decks > MaxShipDecks {
				desc = fmt.Sprintf("%s (ship %d has more than %d)", fleetErrDescs[FleetErrDeckCount], i, MaxShipDecks)
			}
			return NewFleetErr(FleetErrDeckCount).AddDesc(desc)
		}
	}
	return nil
}

// validateComposition runs on ships that already passed
// validatePlacements and stops at the first size class that is off.
//
// Ships are also not supposed to touch each other, diagonals included,
// but that rule is left to whoever places the fleet.
func validateComposition(ships []*Ship) error {
	histogram := FleetHistogram(ships)
	for _, rule := range fleetComposition {
		if histogram[rule.decks] != rule.ships {
			return NewFleetErr(rule.errCode)
		}
	}
	return nil
}
