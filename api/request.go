package api

import (
	"encoding/json"
	"errors"

	cerr "github.com/saeidalz13/battleship-board/internal/error"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
	mc "github.com/saeidalz13/battleship-board/models/connection"
)

// Request wraps one incoming frame. Handlers never return an error;
// failures are reported to the client inside the response message.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	var req Request
	if len(payload) != 0 {
		req.payload = payload[0]
	}
	return req
}

// Validates the fleet and registers the new board. The board is nil
// whenever the message carries an error.
func (r Request) HandleCreateBoard(boardManager mb.BoardManager) (string, *mb.Board, mc.Message[mc.RespCreateBoard]) {
	resp := mc.NewMessage[mc.RespCreateBoard](mc.CodeCreateBoard)

	var reqCreateBoard mc.Message[mc.ReqCreateBoard]
	if err := json.Unmarshal(r.payload, &reqCreateBoard); err != nil {
		resp.AddError(cerr.ErrInvalidPayload(err).Error(), cerr.ConstErrCreateFailed)
		return "", nil, resp
	}

	boardUuid, board, err := boardManager.CreateBoard(reqCreateBoard.Payload.Ships)
	if err != nil {
		var fleetErr mb.FleetErr
		if errors.As(err, &fleetErr) {
			resp.AddError(fleetErr.Desc(), cerr.ConstErrInvalidFleet)
		} else {
			resp.AddError(err.Error(), cerr.ConstErrCreateFailed)
		}
		return "", nil, resp
	}

	resp.AddPayload(mc.RespCreateBoard{BoardUuid: boardUuid, Board: board.Render()})
	return boardUuid, board, resp
}

// sunkShip is true only when this shot took a ship down; repeated
// shots at a sunken ship still report Sunk but do not count.
func (r Request) HandleFire(sessionId string, board *mb.Board) (resp mc.Message[mc.RespFire], sunkShip bool) {
	resp = mc.NewMessage[mc.RespFire](mc.CodeFire)

	if board == nil {
		resp.AddError(cerr.ErrBoardNotCreated(sessionId).Error(), cerr.ConstErrFireFailed)
		return resp, false
	}

	var reqFire mc.Message[mc.ReqFire]
	if err := json.Unmarshal(r.payload, &reqFire); err != nil {
		resp.AddError(cerr.ErrInvalidPayload(err).Error(), cerr.ConstErrFireFailed)
		return resp, false
	}

	row, column := reqFire.Payload.Row, reqFire.Payload.Column
	remainingBefore := board.ShipsRemaining()
	outcome := board.Fire(row, column)

	resp.AddPayload(mc.RespFire{
		Row:            row,
		Column:         column,
		Outcome:        outcome,
		ShipsRemaining: board.ShipsRemaining(),
		FleetDestroyed: board.IsFleetDestroyed(),
	})
	return resp, board.ShipsRemaining() < remainingBefore
}

func (r Request) HandleRenderBoard(sessionId, boardUuid string, board *mb.Board) mc.Message[mc.RespRenderBoard] {
	resp := mc.NewMessage[mc.RespRenderBoard](mc.CodeRenderBoard)

	if board == nil {
		resp.AddError(cerr.ErrBoardNotCreated(sessionId).Error(), cerr.ConstErrRenderFailed)
		return resp
	}

	resp.AddPayload(mc.RespRenderBoard{BoardUuid: boardUuid, Board: board.Render()})
	return resp
}
