package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/hintsweeper/internal/config"
)

type CtxKey int

const (
	CtxBoardClaims CtxKey = iota
)

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return strings.TrimSpace(token)
		}
	}
	// browsers cannot set headers on a websocket handshake
	return r.URL.Query().Get("token")
}

// Auth lets a request through only if it carries a token issued for the
// board named by the {id} route variable.
func Auth(log *logrus.Entry, j *config.JWT) Middleware {
	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			claims, err := j.Parse(token)
			if err != nil {
				log.WithError(err).Debug("rejected token")
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			if claims.BoardID != mux.Vars(r)["id"] {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), CtxBoardClaims, claims)
			h.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
