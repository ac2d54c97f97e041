package app

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vancomm/hintsweeper/internal/handlers"
	"github.com/vancomm/hintsweeper/internal/middleware"
)

func (a *App) loadRoutes() {
	h := handlers.NewBoardHandler(
		a.log.WithField("component", "handlers"), a.loop, a.registry, a.jwt, a.ws,
	)
	auth := middleware.Auth(a.log.WithField("component", "auth"), a.jwt)

	a.router.HandleFunc("/status", h.Status).Methods("GET")

	boards := a.router.PathPrefix("/board").Subrouter()
	boards.HandleFunc("", h.Create).Methods("POST")
	boards.HandleFunc("/{id}", h.Fetch).Methods("GET")
	boards.HandleFunc("/{id}/table", h.Table).Methods("GET")
	boards.Handle("/{id}", auth(http.HandlerFunc(h.Delete))).Methods("DELETE")

	owned := boards.PathPrefix("/{id}").Subrouter()
	owned.Use(mux.MiddlewareFunc(auth))
	owned.HandleFunc("/open", h.Open).Methods("POST")
	owned.HandleFunc("/hint", h.Hint).Methods("POST")
	owned.HandleFunc("/undo", h.Undo).Methods("POST")
	owned.HandleFunc("/preview", h.Preview).Methods("GET")
	owned.HandleFunc("/connect", h.Connect).Methods("GET")
}
