package handlers

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/hintsweeper/internal/config"
	"github.com/vancomm/hintsweeper/internal/loop"
	"github.com/vancomm/hintsweeper/internal/session"
)

type BoardHandler struct {
	log      *logrus.Entry
	loop     *loop.Loop
	registry *session.Registry
	jwt      *config.JWT
	ws       *config.WebSocket
}

func NewBoardHandler(
	log *logrus.Entry,
	l *loop.Loop,
	registry *session.Registry,
	j *config.JWT,
	ws *config.WebSocket,
) *BoardHandler {
	return &BoardHandler{
		log:      log,
		loop:     l,
		registry: registry,
		jwt:      j,
		ws:       ws,
	}
}

// onSession runs fn on the event loop against the session named by the
// {id} route variable and replies with its result as JSON.
func (h BoardHandler) onSession(
	w http.ResponseWriter, r *http.Request,
	fn func(s *session.Session) (any, error),
) {
	id := mux.Vars(r)["id"]
	var (
		res any
		err error
	)
	loopErr := h.loop.Do(r.Context(), func() {
		s, ok := h.registry.Get(id)
		if !ok {
			err = ErrNotFound
			return
		}
		res, err = fn(s)
	})
	if loopErr != nil {
		err = loopErr
	}
	if err != nil {
		sendErrorOrLog(w, h.log, err)
		return
	}
	sendJSONOrLog(w, h.log, http.StatusOK, res)
}

func (h BoardHandler) Status(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("\"ok\""))
}

func (h BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseCreateBoardDTO(r.URL.Query())
	if err != nil {
		sendJSONOrLog(w, h.log, http.StatusBadRequest, wrapError(err))
		return
	}

	var view *session.BoardView
	loopErr := h.loop.Do(r.Context(), func() {
		var s *session.Session
		s, err = h.registry.Create(dto.Size, dto.Mines, dto.Hint())
		if err == nil {
			view = s.View()
		}
	})
	if loopErr != nil {
		err = loopErr
	}
	if err != nil {
		sendErrorOrLog(w, h.log, err)
		return
	}

	token, err := h.jwt.Issue(view.ID)
	if err != nil {
		sendErrorOrLog(w, h.log, err)
		return
	}

	sendJSONOrLog(w, h.log, http.StatusCreated, CreatedBoardDTO{
		Board: view,
		Token: token,
	})
}

func (h BoardHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	h.onSession(w, r, func(s *session.Session) (any, error) {
		return s.View(), nil
	})
}

// Table replies with the board's table markup. Rendering also pushes every
// cell to the board's subscribers.
func (h BoardHandler) Table(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var (
		buf bytes.Buffer
		err error
	)
	loopErr := h.loop.Do(r.Context(), func() {
		s, ok := h.registry.Get(id)
		if !ok {
			err = ErrNotFound
			return
		}
		err = s.Board().Render(&buf)
	})
	if loopErr != nil {
		err = loopErr
	}
	if err != nil {
		sendErrorOrLog(w, h.log, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		h.log.WithError(err).Warn("unable to send board markup")
	}
}

func (h BoardHandler) withPosition(
	w http.ResponseWriter, r *http.Request,
	fn func(s *session.Session, pos PositionDTO) (any, error),
) {
	pos, err := ParsePositionDTO(r.URL.Query())
	if err != nil {
		sendJSONOrLog(w, h.log, http.StatusBadRequest, wrapError(err))
		return
	}
	h.onSession(w, r, func(s *session.Session) (any, error) {
		return fn(s, pos)
	})
}

func (h BoardHandler) Open(w http.ResponseWriter, r *http.Request) {
	h.withPosition(w, r, func(s *session.Session, pos PositionDTO) (any, error) {
		if err := s.Open(pos.Row, pos.Column); err != nil {
			return nil, err
		}
		return s.View(), nil
	})
}

func (h BoardHandler) Hint(w http.ResponseWriter, r *http.Request) {
	h.withPosition(w, r, func(s *session.Session, pos PositionDTO) (any, error) {
		if err := s.Hint(pos.Row, pos.Column); err != nil {
			return nil, err
		}
		return s.View(), nil
	})
}

func (h BoardHandler) Preview(w http.ResponseWriter, r *http.Request) {
	h.withPosition(w, r, func(s *session.Session, pos PositionDTO) (any, error) {
		return s.Preview(pos.Row, pos.Column)
	})
}

func (h BoardHandler) Undo(w http.ResponseWriter, r *http.Request) {
	h.onSession(w, r, func(s *session.Session) (any, error) {
		if err := s.Undo(); err != nil {
			return nil, err
		}
		return s.View(), nil
	})
}

func (h BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.onSession(w, r, func(s *session.Session) (any, error) {
		h.registry.Remove(s.ID)
		return map[string]string{"message": "board removed"}, nil
	})
}
