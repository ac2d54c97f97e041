package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/hintsweeper/internal/board"
	"github.com/vancomm/hintsweeper/internal/loop"
	"github.com/vancomm/hintsweeper/internal/session"
)

var ErrNotFound = errors.New("board not found")

func SendJSON(w http.ResponseWriter, status int, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log *logrus.Entry, status int, v any) {
	_, err := SendJSON(w, status, v)
	if err != nil {
		log.WithFields(logrus.Fields{
			"response": v,
			"error":    err,
		}).Error("unable to send response")
	}
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, board.ErrInvalidArgument),
		errors.Is(err, session.ErrOutOfBounds):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrNothingToUndo):
		return http.StatusConflict
	case errors.Is(err, session.ErrTooManySessions),
		errors.Is(err, loop.ErrStopped):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func sendErrorOrLog(w http.ResponseWriter, log *logrus.Entry, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		sendJSONOrLog(w, log, status, wrapError(errors.New("internal error")))
		return
	}
	sendJSONOrLog(w, log, status, wrapError(err))
}
