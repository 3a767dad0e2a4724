package api

import (
	"encoding/json"
	"strings"
	"testing"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
	mc "github.com/saeidalz13/battleship-board/models/connection"
)

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestHandleCreateBoardMalformedPayload(t *testing.T) {
	bbm := mb.NewBattleshipBoardManager()

	boardUuid, board, resp := NewRequest([]byte(`{"code": 1, "payload": {"ships": "nope"}}`)).HandleCreateBoard(bbm)
	if resp.Error == nil {
		t.Fatal("expected an error for malformed ships")
	}
	if resp.Error.Message != cerr.ConstErrCreateFailed {
		t.Fatalf("expected message: %s\tgot: %s", cerr.ConstErrCreateFailed, resp.Error.Message)
	}
	if !strings.HasPrefix(resp.Error.ErrorDetails, "the payload is nil or could not be parsed") {
		t.Fatalf("unexpected error details: %s", resp.Error.ErrorDetails)
	}
	if boardUuid != "" || board != nil {
		t.Fatal("no board should be returned")
	}
}

func TestHandleCreateBoardInvalidFleet(t *testing.T) {
	bbm := mb.NewBattleshipBoardManager()

	placements := testPlacements()
	placements[0] = mb.NewPlacement(0, 0, 0, 0)
	req := mc.Message[mc.ReqCreateBoard]{Code: mc.CodeCreateBoard, Payload: mc.ReqCreateBoard{Ships: placements}}

	_, _, resp := NewRequest(mustMarshal(t, req)).HandleCreateBoard(bbm)
	if resp.Error == nil {
		t.Fatal("expected an invalid fleet error")
	}
	if resp.Error.Message != cerr.ConstErrInvalidFleet {
		t.Fatalf("expected message: %s\tgot: %s", cerr.ConstErrInvalidFleet, resp.Error.Message)
	}
	if resp.Error.ErrorDetails != "there should be 4 single-deck ships" {
		t.Fatalf("unexpected error details: %s", resp.Error.ErrorDetails)
	}
}

func TestHandleCreateBoardRejectsHugeSpans(t *testing.T) {
	tests := []struct {
		name      string
		placement mb.Placement
	}{
		{name: "long row", placement: mb.NewPlacement(0, 0, 0, 1_000_000_000)},
		{name: "overflowing area", placement: mb.NewPlacement(0, 0, 1<<31, 1<<31)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			bbm := mb.NewBattleshipBoardManager()

			placements := testPlacements()
			placements[0] = test.placement
			req := mc.Message[mc.ReqCreateBoard]{Code: mc.CodeCreateBoard, Payload: mc.ReqCreateBoard{Ships: placements}}

			boardUuid, board, resp := NewRequest(mustMarshal(t, req)).HandleCreateBoard(bbm)
			if resp.Error == nil {
				t.Fatal("expected a deck count error")
			}
			if resp.Error.ErrorDetails != "each ship should have 1 to 4 decks (ship 0 has more than 4)" {
				t.Fatalf("unexpected error details: %s", resp.Error.ErrorDetails)
			}
			if boardUuid != "" || board != nil || bbm.Count() != 0 {
				t.Fatal("no board should be created")
			}
		})
	}
}

func TestHandleFireReportsNewlySunkShips(t *testing.T) {
	board, err := mb.NewBoard(testPlacements())
	if err != nil {
		t.Fatal(err)
	}

	fireAt := func(row, column int) []byte {
		return mustMarshal(t, mc.Message[mc.ReqFire]{Code: mc.CodeFire, Payload: mc.ReqFire{Row: row, Column: column}})
	}

	tests := []struct {
		name             string
		row, column      int
		expectedOutcome  mb.FireOutcome
		expectedSunkShip bool
	}{
		{name: "hit", row: 2, column: 0, expectedOutcome: mb.OutcomeHit},
		{name: "hit again", row: 2, column: 1, expectedOutcome: mb.OutcomeHit},
		{name: "sink", row: 2, column: 2, expectedOutcome: mb.OutcomeSunk, expectedSunkShip: true},
		{name: "sunken again", row: 2, column: 2, expectedOutcome: mb.OutcomeSunk},
		{name: "miss", row: 3, column: 3, expectedOutcome: mb.OutcomeMiss},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp, sunkShip := NewRequest(fireAt(test.row, test.column)).HandleFire("session", board)
			if resp.Error != nil {
				t.Fatalf("error: %s", resp.Error.ErrorDetails)
			}
			if resp.Payload.Outcome != test.expectedOutcome {
				t.Fatalf("expected outcome: %s\tgot: %s", test.expectedOutcome, resp.Payload.Outcome)
			}
			if sunkShip != test.expectedSunkShip {
				t.Fatalf("expected sunk ship: %t\tgot: %t", test.expectedSunkShip, sunkShip)
			}
		})
	}
}

func TestHandleRenderBoardWithoutBoard(t *testing.T) {
	resp := NewRequest().HandleRenderBoard("session", "", nil)
	if resp.Error == nil {
		t.Fatal("rendering without a board must fail")
	}
	if resp.Error.Message != cerr.ConstErrRenderFailed {
		t.Fatalf("expected message: %s\tgot: %s", cerr.ConstErrRenderFailed, resp.Error.Message)
	}
	if resp.Error.ErrorDetails != cerr.ErrBoardNotCreated("session").Error() {
		t.Fatalf("unexpected error details: %s", resp.Error.ErrorDetails)
	}
}

func TestHandleFireMalformedPayload(t *testing.T) {
	board, err := mb.NewBoard(testPlacements())
	if err != nil {
		t.Fatal(err)
	}

	resp, sunkShip := NewRequest([]byte(`{"code": 2, "payload": {"row": "a"}}`)).HandleFire("session", board)
	if resp.Error == nil || sunkShip {
		t.Fatal("expected an error for a malformed shot")
	}
	if resp.Error.Message != cerr.ConstErrFireFailed {
		t.Fatalf("expected message: %s\tgot: %s", cerr.ConstErrFireFailed, resp.Error.Message)
	}
	if !strings.HasPrefix(resp.Error.ErrorDetails, "the payload is nil or could not be parsed") {
		t.Fatalf("unexpected error details: %s", resp.Error.ErrorDetails)
	}
}
