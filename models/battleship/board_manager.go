package battleship

import (
	"sync"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/battleship-board/internal/error"
)

type BoardManager interface {
	CreateBoard(placements []Placement) (string, *Board, error)
	FetchBoard(boardUuid string) (*Board, error)
	TerminateBoard(boardUuid string)
	Count() int
}

// BattleshipBoardManager keeps every live board keyed by its uuid.
// The map is guarded; the boards themselves belong to a single session.
type BattleshipBoardManager struct {
	boards map[string]*Board
	mu     sync.RWMutex

	newBoardUuid func() string
}

var _ BoardManager = (*BattleshipBoardManager)(nil)

func NewBattleshipBoardManager() *BattleshipBoardManager {
	return &BattleshipBoardManager{
		boards:       make(map[string]*Board, 10),
		newBoardUuid: func() string { return uuid.NewString()[:8] },
	}
}

// Placements are validated before anything is stored.
func (bbm *BattleshipBoardManager) CreateBoard(placements []Placement) (string, *Board, error) {
	board, err := NewBoard(placements)
	if err != nil {
		return "", nil, err
	}

	bbm.mu.Lock()
	defer bbm.mu.Unlock()

	// short ids can repeat; a live board is never overwritten
	boardUuid := bbm.newBoardUuid()
	for _, taken := bbm.boards[boardUuid]; taken; _, taken = bbm.boards[boardUuid] {
		boardUuid = bbm.newBoardUuid()
	}
	bbm.boards[boardUuid] = board

	return boardUuid, board, nil
}

func (bbm *BattleshipBoardManager) FetchBoard(boardUuid string) (*Board, error) {
	bbm.mu.RLock()
	defer bbm.mu.RUnlock()

	board, prs := bbm.boards[boardUuid]
	if !prs {
		return nil, cerr.ErrBoardNotExists(boardUuid)
	}

	if board == nil {
		return nil, cerr.ErrBoardIsNil(boardUuid)
	}

	return board, nil
}

func (bbm *BattleshipBoardManager) TerminateBoard(boardUuid string) {
	bbm.mu.Lock()
	delete(bbm.boards, boardUuid)
	bbm.mu.Unlock()
}

func (bbm *BattleshipBoardManager) Count() int {
	bbm.mu.RLock()
	defer bbm.mu.RUnlock()

	return len(bbm.boards)
}
