package server

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/matzehuels/gridpath/pkg/errors"
	"github.com/matzehuels/gridpath/pkg/observability"
)

// streamMessage is the union of every message the stream endpoint sends.
type streamMessage struct {
	Type    string      `json:"type"`
	Row     int         `json:"row"`
	Col     int         `json:"col"`
	State   string      `json:"state"`
	Status  string      `json:"status"`
	Length  int         `json:"length"`
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func dialStream(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(newTestServer(t, Options{}).Handler())
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/solve/stream" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readAll reads messages until the server closes the connection.
func readAll(t *testing.T, conn *websocket.Conn) []streamMessage {
	t.Helper()
	var out []streamMessage
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				t.Fatalf("read: %v", err)
			}
			return out
		}
		var m streamMessage
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		out = append(out, m)
	}
}

func TestStream(t *testing.T) {
	conn := dialStream(t, "")
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"grid":["S . .",". # .",". . E"]}`)); err != nil {
		t.Fatal(err)
	}

	msgs := readAll(t, conn)
	if len(msgs) < 2 {
		t.Fatalf("got %d messages, want steps and a result", len(msgs))
	}

	last := msgs[len(msgs)-1]
	if last.Type != msgResult || last.Status != "found" || last.Length != 4 {
		t.Errorf("last message = %+v, want found result of length 4", last)
	}

	states := map[string]int{}
	for _, m := range msgs[:len(msgs)-1] {
		if m.Type != msgStep {
			t.Fatalf("unexpected message before result: %+v", m)
		}
		states[m.State]++
	}
	if states["open"] == 0 || states["closed"] == 0 {
		t.Errorf("step states = %v, want open and closed steps", states)
	}
	// Three interior path cells between S and E.
	if states["path"] != 3 {
		t.Errorf("path steps = %d, want 3", states["path"])
	}
}

func TestStreamError(t *testing.T) {
	conn := dialStream(t, "")
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"grid":["S ? E"]}`)); err != nil {
		t.Fatal(err)
	}

	msgs := readAll(t, conn)
	if len(msgs) != 1 {
		t.Fatalf("got %d messages, want 1", len(msgs))
	}
	if msgs[0].Type != msgError || msgs[0].Code != errors.ErrCodeInvalidFormat {
		t.Errorf("message = %+v, want INVALID_FORMAT error", msgs[0])
	}
}

func TestStreamStepLimit(t *testing.T) {
	conn := dialStream(t, "?step_limit=1")
	if err := conn.WriteMessage(websocket.TextMessage, []byte(`{"grid":["S . . . E"]}`)); err != nil {
		t.Fatal(err)
	}

	msgs := readAll(t, conn)
	last := msgs[len(msgs)-1]
	if last.Type != msgError || last.Code != errors.ErrCodeAborted {
		t.Errorf("last message = %+v, want ABORTED error", last)
	}
}

func TestStreamRejectsBinary(t *testing.T) {
	conn := dialStream(t, "")
	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0x01}); err != nil {
		t.Fatal(err)
	}
	msgs := readAll(t, conn)
	if len(msgs) != 1 || msgs[0].Code != errors.ErrCodeInvalidFormat {
		t.Errorf("messages = %+v, want one INVALID_FORMAT error", msgs)
	}
}

// searchDone reports the error of each finished search.
type searchDone chan error

func (searchDone) OnSearchStart(context.Context, string, string, int, int) {}

func (d searchDone) OnSearchComplete(_ context.Context, _, _, _ string, _ int, _ time.Duration, err error) {
	d <- err
}

func TestStreamClientCloseStopsSearch(t *testing.T) {
	done := make(searchDone, 1)
	observability.SetSearchHooks(done)
	t.Cleanup(observability.Reset)

	const side = 600
	rows := make([]string, side)
	for i := range rows {
		rows[i] = strings.Repeat(".", side)
	}
	rows[0] = "S" + rows[0][1:]
	rows[side-1] = rows[side-1][:side-1] + "E"
	body, err := json.Marshal(map[string]any{"grid": rows})
	if err != nil {
		t.Fatal(err)
	}

	conn := dialStream(t, "?mode=dijkstra")
	if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
		t.Fatal(err)
	}
	if _, _, err := conn.ReadMessage(); err != nil {
		t.Fatalf("first step: %v", err)
	}
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
	conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
	conn.Close()

	select {
	case err := <-done:
		if !errors.Is(err, errors.ErrCodeAborted) {
			t.Errorf("search err = %v, want ABORTED", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("search kept running after the client closed")
	}
}
