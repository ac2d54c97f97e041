package handlers

import (
	"fmt"
	"iter"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/hintsweeper/internal/session"
)

type wsCommand string

const (
	wsNoop wsCommand = "g"
	wsOpen wsCommand = "r"
	wsHint wsCommand = "h"
	wsUndo wsCommand = "u"
)

var commandNargs = map[wsCommand]int{
	wsNoop: 0,
	wsOpen: 2,
	wsHint: 2,
	wsUndo: 0,
}

type command struct {
	name        wsCommand
	row, column int
}

func iterBySep(s string, sep string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var piece string
		for found {
			piece, s, found = strings.Cut(s, sep)
			if !yield(i, piece) {
				return
			}
			i += 1
		}
	}
}

func parseCommand(line string) (command, error) {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return command{name: wsNoop}, nil
	}

	name := wsCommand(parts[0])
	nargs, ok := commandNargs[name]
	if !ok {
		return command{}, fmt.Errorf("unknown command %q", parts[0])
	}
	if nargs != len(parts)-1 {
		return command{}, fmt.Errorf("command %q takes %d arguments", parts[0], nargs)
	}

	cmd := command{name: name}
	if nargs == 2 {
		var err error
		if cmd.row, err = strconv.Atoi(parts[1]); err != nil {
			return command{}, fmt.Errorf("row must be an int")
		}
		if cmd.column, err = strconv.Atoi(parts[2]); err != nil {
			return command{}, fmt.Errorf("column must be an int")
		}
	}
	return cmd, nil
}

func (c command) apply(s *session.Session) error {
	switch c.name {
	case wsOpen:
		return s.Open(c.row, c.column)
	case wsHint:
		return s.Hint(c.row, c.column)
	case wsUndo:
		return s.Undo()
	default:
		return nil
	}
}

type wsConn struct {
	conn    *websocket.Conn
	timeout time.Duration
	replies chan any
	log     *logrus.Entry
}

// writeLoop owns every write to the connection. It returns once the
// subscription is closed or a write fails.
func (c *wsConn) writeLoop(events <-chan session.CellView, done <-chan struct{}) {
	for {
		var msg any
		select {
		case v, ok := <-events:
			if !ok {
				c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
				c.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "board closed"))
				c.conn.Close()
				return
			}
			msg = v
		case reply := <-c.replies:
			msg = reply
		case <-done:
			return
		}
		c.conn.SetWriteDeadline(time.Now().Add(c.timeout))
		if err := c.conn.WriteJSON(msg); err != nil {
			c.log.WithError(err).Debug("unable to write to websocket")
			c.conn.Close()
			return
		}
	}
}

func (c *wsConn) reply(v any) {
	select {
	case c.replies <- v:
	default:
		c.log.Warn("dropping websocket reply")
	}
}

// Connect streams a CellView for every render of the board and accepts
// line-based commands: "g", "r <row> <col>", "h <row> <col>", "u".
func (h BoardHandler) Connect(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var (
		s   *session.Session
		sub *session.Subscriber
	)
	err := h.loop.Do(r.Context(), func() {
		var ok bool
		if s, ok = h.registry.Get(id); ok {
			sub = s.Subscribe(h.ws.Backlog)
		}
	})
	if err == nil && sub == nil {
		err = ErrNotFound
	}
	if err != nil {
		sendErrorOrLog(w, h.log, err)
		return
	}
	unsubscribe := func() {
		h.loop.Post(func() { s.Unsubscribe(sub) })
	}

	conn, err := h.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		h.log.WithError(err).Warn("unable to upgrade")
		unsubscribe()
		return
	}

	log := h.log.WithField("board", id)
	log.Debug("established WS connection")

	c := &wsConn{
		conn:    conn,
		timeout: h.ws.WriteTimeout,
		replies: make(chan any, 16),
		log:     log,
	}
	done := make(chan struct{})
	go c.writeLoop(sub.Events(), done)

	defer func() {
		close(done)
		unsubscribe()
		conn.Close()
	}()

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("abnormal ws break")
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		text := strings.TrimSpace(string(message))
		log.Debugf("\t> %s", text)
		for _, line := range iterBySep(text, "\n") {
			cmd, err := parseCommand(line)
			if err != nil {
				c.reply(wrapError(err))
				continue
			}
			var applyErr error
			err = h.loop.Do(r.Context(), func() {
				current, ok := h.registry.Get(id)
				if !ok {
					applyErr = ErrNotFound
					return
				}
				applyErr = cmd.apply(current)
			})
			if err != nil {
				return
			}
			if applyErr != nil {
				c.reply(wrapError(applyErr))
			}
		}
	}
}
