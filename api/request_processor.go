package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/saeidalz13/battleship-board/db/sqlc"
	mb "github.com/saeidalz13/battleship-board/models/battleship"
	mc "github.com/saeidalz13/battleship-board/models/connection"
	"github.com/sqlc-dev/pqtype"
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	// a full fleet placement is well below this
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	boardManager   mb.BoardManager
	dbManager      *sqlc.DbManager
	ipnet          net.IPNet
}

// dbManager may be nil, in which case no analytics are recorded.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	boardManager mb.BoardManager,
	dbManager *sqlc.DbManager,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		boardManager:   boardManager,
		dbManager:      dbManager,
		ipnet:          findServerIpNet(),
	}
}

// Picks the first IPv4 address of an interface that is up and not a
// loopback. Falls back to 127.0.0.1 so analytics still have a key.
func findServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warn().Err(err).Msg("failed to list network interfaces")
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipnet.IP.To4(); ip4 != nil && !ip4.IsLoopback() {
				return net.IPNet{IP: ip4, Mask: net.CIDRMask(32, 32)}
			}
		}
	}

	log.Warn().Msg("no external ipv4 address found; using loopback for analytics")
	return loopback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("could not upgrade connection")
		return
	}

	log.Info().Str("remote_addr", conn.RemoteAddr().String()).Msg("a new connection established")
	rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
}

func (rp RequestProcessor) serverInet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

// Best effort; the session never fails because of analytics.
func (rp RequestProcessor) recordAnalytics(counter string, increment func(*sqlc.AnalyticsManager, context.Context, pqtype.Inet) error) {
	if rp.dbManager == nil || rp.dbManager.Analytics == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	if err := increment(rp.dbManager.Analytics, ctx, rp.serverInet()); err != nil {
		log.Warn().Err(err).Str("counter", counter).Msg("failed to update analytics")
	}
}

// ServeAnalytics reports the counters this server has recorded so far.
func (rp RequestProcessor) ServeAnalytics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	if rp.dbManager == nil || rp.dbManager.Analytics == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(mc.NewRespErr("analytics are disabled", ""))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	snapshot, err := rp.dbManager.Analytics.Snapshot(ctx, rp.serverInet())
	if err != nil {
		log.Error().Err(err).Msg("failed to read analytics")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(mc.NewRespErr(err.Error(), "failed to read analytics"))
		return
	}

	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(snapshot)
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()
	logger := log.With().Str("session_id", sessionId).Logger()

	defer func() {
		if boardUuid, _ := session.Board(); boardUuid != "" {
			rp.boardManager.TerminateBoard(boardUuid)
		}
		if session.Conn() != nil {
			session.Conn().Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		logger.Info().Msg("session terminated")
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			logger.Debug().Err(err).Msg("frame without a signal code")
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {

		// A new fleet replaces the board the session was playing on.
		case mc.CodeCreateBoard:
			boardUuid, board, respMsg := NewRequest(payload).HandleCreateBoard(rp.boardManager)
			if respMsg.Error == nil {
				if oldBoardUuid, _ := session.Board(); oldBoardUuid != "" {
					rp.boardManager.TerminateBoard(oldBoardUuid)
				}
				session.SetBoard(boardUuid, board)
				logger.Info().Str("board_uuid", boardUuid).Msg("board created")
				rp.recordAnalytics("boards_created", (*sqlc.AnalyticsManager).IncrementBoardsCreatedCount)
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

		case mc.CodeFire:
			_, board := session.Board()
			respMsg, sunkShip := NewRequest(payload).HandleFire(sessionId, board)
			if respMsg.Error == nil {
				rp.recordAnalytics("shots_fired", (*sqlc.AnalyticsManager).IncrementShotsFiredCount)
			}
			if sunkShip {
				rp.recordAnalytics("ships_sunk", (*sqlc.AnalyticsManager).IncrementShipsSunkCount)
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

		case mc.CodeRenderBoard:
			boardUuid, board := session.Board()
			respMsg := NewRequest(payload).HandleRenderBoard(sessionId, boardUuid, board)

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg); err != nil {
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal); err != nil {
				break sessionLoop
			}
		}
	}
}
