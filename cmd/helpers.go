package main

import (
	"encoding/json"
	"net/http"
	"runtime/debug"
)

func (app *application) writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func (app *application) serverError(w http.ResponseWriter, err error) {
	app.logger.Errorw("internal error", "error", err, "stack", string(debug.Stack()))
	app.writeMessage(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

func (app *application) unauthorized(w http.ResponseWriter, msg string) {
	app.writeMessage(w, http.StatusUnauthorized, msg)
}

func (app *application) healthz(w http.ResponseWriter, r *http.Request) {
	if err := app.db.PingContext(r.Context()); err != nil {
		app.logger.Errorf("health check: %v", err)
		app.writeMessage(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	app.writeMessage(w, http.StatusOK, "ok")
}
