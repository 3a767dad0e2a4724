package connection

import (
	"net"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
)

const (
	maxWriteWsRetries uint8 = 2
	backOffFactor     uint8 = 2
)

type ConnectionHandler interface {
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}) error
	onConnErr(err error) uint8
}

// Session is one websocket client. A session plays on at most one board
// at a time and is driven by a single goroutine.
type Session struct {
	id        string
	conn      *websocket.Conn
	boardUuid string
	board     *mb.Board
	createdAt time.Time

	// unix nanoseconds of the last frame read from conn
	lastActivity atomic.Int64
}

var _ ConnectionHandler = (*Session)(nil)

func NewSession(id string, conn *websocket.Conn) *Session {
	now := time.Now()
	s := &Session{
		id:        id,
		conn:      conn,
		createdAt: now,
	}
	s.lastActivity.Store(now.UnixNano())
	return s
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) LastActivity() time.Time {
	return time.Unix(0, s.lastActivity.Load())
}

func (s *Session) touch(at time.Time) {
	s.lastActivity.Store(at.UnixNano())
}

func (s *Session) Board() (string, *mb.Board) {
	return s.boardUuid, s.board
}

func (s *Session) SetBoard(boardUuid string, board *mb.Board) {
	s.boardUuid = boardUuid
	s.board = board
}

func (s *Session) remoteAddr() string {
	if s.conn == nil {
		return ""
	}
	return s.conn.RemoteAddr().String()
}

func (s *Session) onConnErr(err error) uint8 {
	logger := log.With().Str("session_id", s.id).Str("remote_addr", s.remoteAddr()).Logger()

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		logger.Warn().Err(err).Msg("timeout error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		logger.Warn().Err(err).Msg("high server load/traffic error")
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
		logger.Info().Err(err).Msg("close error")
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		logger.Error().Err(err).Msg("critical error")
		return ConnLoopBreak
	}

	/*
		Binary frames, invalid UTF-8 and oversized payloads do not come
		from a well-behaved client. Breaking instead of retrying so the
		server is not kept busy with them.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		logger.Warn().Err(err).Msg("non-critical error")
		return ConnLoopBreak
	}

	logger.Error().Err(err).Msg("unexpected error")
	return ConnLoopBreak
}

// Writes to the connection of that session and retries with
// a linear back-off when the failure looks temporary.
func (s *Session) writeToConnWithRetry(msg interface{}) error {
	var retries uint8

writeLoop:
	for {
		err := s.conn.WriteJSON(msg)
		if err == nil {
			return nil
		}

		if s.onConnErr(err) == ConnLoopRetry && retries < maxWriteWsRetries {
			retries++
			log.Warn().Str("remote_addr", s.remoteAddr()).Uint8("retry", retries).Msg("writing to ws failed; retrying...")
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			continue writeLoop
		}

		return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
	}
}

// Decides whether a failed read is retried. Anything but
// ConnLoopContinue ends the session.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopRetry:
		if retries >= maxWriteWsRetries {
			return ConnLoopBreak
		}
		log.Warn().Str("remote_addr", s.remoteAddr()).Uint8("retry", retries).Msg("failed to read from ws conn; retrying...")
		time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
		return ConnLoopContinue

	default:
		log.Debug().Str("remote_addr", s.remoteAddr()).Err(err).Msg("break ws conn loop")
		return ConnLoopBreak
	}
}
