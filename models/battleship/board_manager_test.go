package battleship

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardManagerLifecycle(t *testing.T) {
	bbm := NewBattleshipBoardManager()

	boardUuid, board, err := bbm.CreateBoard(validPlacements())
	require.NoError(t, err)
	require.NotEmpty(t, boardUuid)
	assert.Equal(t, 1, bbm.Count())

	fetched, err := bbm.FetchBoard(boardUuid)
	require.NoError(t, err)
	assert.Same(t, board, fetched)

	bbm.TerminateBoard(boardUuid)
	assert.Equal(t, 0, bbm.Count())

	_, err = bbm.FetchBoard(boardUuid)
	assert.Error(t, err)
}

func TestBoardManagerRejectsInvalidFleet(t *testing.T) {
	bbm := NewBattleshipBoardManager()

	boardUuid, board, err := bbm.CreateBoard(validPlacements()[:3])
	require.Error(t, err)
	assert.Empty(t, boardUuid)
	assert.Nil(t, board)
	assert.Equal(t, 0, bbm.Count())
}

func TestBoardManagerConcurrentCreate(t *testing.T) {
	const boards = 50
	bbm := NewBattleshipBoardManager()

	var wg sync.WaitGroup
	for i := 0; i < boards; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			boardUuid, _, err := bbm.CreateBoard(validPlacements())
			if assert.NoError(t, err) {
				_, err = bbm.FetchBoard(boardUuid)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, boards, bbm.Count())
}

func TestBoardManagerSkipsTakenIds(t *testing.T) {
	bbm := NewBattleshipBoardManager()

	ids := []string{"aaaaaaaa", "aaaaaaaa", "aaaaaaaa", "bbbbbbbb"}
	bbm.newBoardUuid = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	firstUuid, first, err := bbm.CreateBoard(validPlacements())
	require.NoError(t, err)
	secondUuid, second, err := bbm.CreateBoard(validPlacements())
	require.NoError(t, err)

	assert.Equal(t, "aaaaaaaa", firstUuid)
	assert.Equal(t, "bbbbbbbb", secondUuid)
	assert.Equal(t, 2, bbm.Count())

	// ending the second session must leave the first board alone
	bbm.TerminateBoard(secondUuid)
	fetched, err := bbm.FetchBoard(firstUuid)
	require.NoError(t, err)
	assert.Same(t, first, fetched)
	assert.NotSame(t, first, second)
}
