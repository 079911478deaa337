package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/grid"
	"github.com/matzehuels/gridpath/pkg/solver"
)

// Stream message types.
const (
	msgStep   = "step"
	msgResult = "result"
	msgError  = "error"
)

const streamWriteWait = 10 * time.Second

var errInvalidFrame = errors.New(errors.ErrCodeInvalidFormat, "expected a text message")

type stepMessage struct {
	Type  string `json:"type"`
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	State string `json:"state"`
}

type resultMessage struct {
	Type string `json:"type"`
	*solver.Response
}

type errorMessage struct {
	Type string `json:"type"`
	errorBody
}

// handleStream upgrades to a WebSocket, reads a single solve request and
// replays the search as it runs: one step message per open, closed or path
// mark, then a result or error message. Once the request is read, anything
// else the client sends is discarded; a close frame or a dropped connection
// cancels the search, as does a failed write.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	var q solveQuery
	if err := s.decoder.Decode(&q, r.URL.Query()); err != nil {
		http.Error(w, "bad query", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Debug("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.opts.MaxBodyBytes)

	mt, message, err := conn.ReadMessage()
	if err != nil {
		if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			s.logger.Warn("websocket read", "err", err)
		}
		return
	}
	if mt != websocket.TextMessage {
		s.sendError(conn, errInvalidFrame)
		return
	}

	req, err := s.decodeRequest(bytes.NewReader(message))
	if err == nil {
		err = s.applyQuery(r, &req)
	}
	if err != nil {
		s.sendError(conn, err)
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go s.watchClose(conn, cancel)

	req.OnStep = func(p grid.Pos, st grid.State) error {
		conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		return conn.WriteJSON(stepMessage{Type: msgStep, Row: p.Row, Col: p.Col, State: st.String()})
	}

	resp, err := s.runner.Solve(ctx, req)
	if err != nil {
		s.sendError(conn, err)
		return
	}

	conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	if err := conn.WriteJSON(resultMessage{Type: msgResult, Response: resp}); err != nil {
		s.logger.Debug("websocket write", "err", err)
		return
	}
	s.close(conn)
}

// watchClose reads until the connection fails or the client closes it, then
// calls cancel. It returns when the handler closes conn.
func (s *Server) watchClose(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	for {
		if _, _, err := conn.NextReader(); err != nil {
			s.logger.Debug("stream reader done", "err", err)
			return
		}
	}
}

func (s *Server) sendError(conn *websocket.Conn, err error) {
	if statusFor(err) == http.StatusInternalServerError {
		s.logger.Error("stream failed", "err", err)
	}
	conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	if werr := conn.WriteJSON(errorMessage{Type: msgError, errorBody: bodyFor(err)}); werr != nil {
		s.logger.Debug("websocket write", "err", werr)
		return
	}
	s.close(conn)
}

func (s *Server) close(conn *websocket.Conn) {
	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(streamWriteWait))
}
