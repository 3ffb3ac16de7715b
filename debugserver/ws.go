package debugserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rustyeddy/gwmodule/gateway"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     checkOrigin,
}

// checkOrigin accepts every origin: this server is a local debugging aid,
// never exposed past the operator's own machine.
func checkOrigin(r *http.Request) bool {
	return true
}

// websock pairs one upgraded connection with the channel it drains the
// gateway's event feed from.
type websock struct {
	conn   *websocket.Conn
	events <-chan gateway.Event
	cancel func()
}

func newWebsock(conn *websocket.Conn, gw *gateway.Gateway) *websock {
	events, cancel := gw.Subscribe(32)
	return &websock{conn: conn, events: events, cancel: cancel}
}

// run drains w.events to the client until the connection errors, the
// feed is cancelled, or a client message requests close. It also reads
// (and discards) inbound frames so control frames are processed and a
// client-initiated close is detected promptly. No read deadline is set.
func (w *websock) run() {
	defer w.cancel()
	defer w.conn.Close()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := w.conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case ev, ok := <-w.events:
			if !ok {
				return
			}
			w.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := w.conn.WriteJSON(ev); err != nil {
				return
			}
		case <-closed:
			return
		}
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade failed", "error", err)
		return
	}
	ws := newWebsock(conn, s.gw)
	go ws.run()
}
