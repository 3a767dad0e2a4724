package connection

import (
	mb "github.com/saeidalz13/battleship-board/models/battleship"
)

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespCreateBoard struct {
	BoardUuid string `json:"board_uuid"`
	Board     string `json:"board"`
}

type RespFire struct {
	Row            int            `json:"row"`
	Column         int            `json:"column"`
	Outcome        mb.FireOutcome `json:"outcome"`
	ShipsRemaining int            `json:"ships_remaining"`
	FleetDestroyed bool           `json:"fleet_destroyed"`
}

type RespRenderBoard struct {
	BoardUuid string `json:"board_uuid"`
	Board     string `json:"board"`
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
