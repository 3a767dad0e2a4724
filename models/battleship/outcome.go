package battleship

import (
	"encoding/json"
	"fmt"
)

type FireOutcome uint8

const (
	OutcomeMiss FireOutcome = iota
	OutcomeHit
	OutcomeSunk
)

func (o FireOutcome) String() string {
	switch o {
	case OutcomeMiss:
		return "Miss!"
	case OutcomeHit:
		return "Hit!"
	case OutcomeSunk:
		return "Sunk!"
	default:
		return fmt.Sprintf("FireOutcome(%d)", uint8(o))
	}
}

func (o FireOutcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *FireOutcome) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	for _, outcome := range []FireOutcome{OutcomeMiss, OutcomeHit, OutcomeSunk} {
		if outcome.String() == s {
			*o = outcome
			return nil
		}
	}
	return fmt.Errorf("unknown fire outcome: %q", s)
}
