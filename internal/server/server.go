// Package server exposes the read API over HTTP: raw article listings,
// grouped sections, the daily digest, and manual sync triggers.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	cferrs "github.com/mwhitley/campusfeed/internal/errors"
)

// Server is the HTTP portion serving the read API.
type Server struct {
	http.Server
}

// NewServer builds the server shell around a router. Handlers get attached
// by the API.
func NewServer(port int) (*Server, *mux.Router) {
	r := mux.NewRouter()

	handler := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(r)

	return &Server{
		Server: http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			Handler:      accessLogWrapper{inner: handler},
		},
	}, r
}

func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("error encoding json response: %s", err)
	}

	return nil
}

// Implements [http.Handler] to wrap each call with an access log.
type accessLogWrapper struct {
	inner http.Handler
}

func (alw accessLogWrapper) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	writer := &respCodeWriter{ResponseWriter: w, code: http.StatusOK}
	alw.inner.ServeHTTP(writer, r)

	slog.Info("request completed",
		"method", r.Method,
		"url", r.URL.String(),
		"duration", time.Since(start),
		"status_code", writer.code,
	)
}

type respCodeWriter struct {
	http.ResponseWriter
	code int
}

func (w *respCodeWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// HandlerFuncE is a modified type of [http.HandlerFunc] that returns an error.
type HandlerFuncE func(w http.ResponseWriter, r *http.Request) error

func (f HandlerFuncE) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := f(w, r)
	if err == nil {
		return
	}

	// Either it's already a structured error, or coerce it to one
	sErr := &cferrs.Error{}
	if !errors.As(err, &sErr) {
		sErr = cferrs.E(http.StatusInternalServerError, err)
	}

	WriteJSON(w, sErr.Status, sErr)
}
