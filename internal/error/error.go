package error

import "fmt"

const (
	ConstErrFireFailed   = "fire operation failed"
	ConstErrCreateFailed = "board creation failed"
	ConstErrInvalidFleet = "invalid fleet"
	ConstErrRenderFailed = "render operation failed"
)

func ErrBoardNotExists(boardUuid string) error {
	return fmt.Errorf("board with this uuid does not exist, uuid: %s", boardUuid)
}

func ErrBoardIsNil(boardUuid string) error {
	return fmt.Errorf("board with this uuid is nil, uuid: %s", boardUuid)
}

func ErrBoardNotCreated(sessionId string) error {
	return fmt.Errorf("no board has been created for this session yet, session id: %s", sessionId)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s", sessionId)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session with this id is nil, id: %s", sessionId)
}

func ErrInvalidPayload(err error) error {
	return fmt.Errorf("the payload is nil or could not be parsed: %w", err)
}
