package connection

import (
	mb "github.com/saeidalz13/battleship-board/models/battleship"
)

type ReqCreateBoard struct {
	Ships []mb.Placement `json:"ships"`
}

type ReqFire struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}
