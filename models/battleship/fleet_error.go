package battleship

import "fmt"

const (
	FleetErrShipCount uint8 = iota
	FleetErrDeckCount
	FleetErrSingleDeckCount
	FleetErrDoubleDeckCount
	FleetErrThreeDeckCount
	FleetErrFourDeckCount
)

var fleetErrDescs = map[uint8]string{
	FleetErrShipCount:       "there should be 10 ships on the board",
	FleetErrDeckCount:       "each ship should have 1 to 4 decks",
	FleetErrSingleDeckCount: "there should be 4 single-deck ships",
	FleetErrDoubleDeckCount: "there should be 3 double-deck ships",
	FleetErrThreeDeckCount:  "there should be 2 three-deck ships",
	FleetErrFourDeckCount:   "there should be 1 four-deck ship",
}

// FleetErr is returned by NewBoard when the placements do not form a
// valid fleet. Code tells which rule failed.
type FleetErr struct {
	code uint8
	desc string
}

func NewFleetErr(code uint8) FleetErr {
	return FleetErr{code: code, desc: fleetErrDescs[code]}
}

func (f FleetErr) AddDesc(desc string) FleetErr {
	f.desc = desc
	return f
}

func (f FleetErr) Error() string {
	return fmt.Sprintf("invalid fleet: %s", f.desc)
}

func (f FleetErr) Code() uint8 {
	return f.code
}

func (f FleetErr) Desc() string {
	return f.desc
}
