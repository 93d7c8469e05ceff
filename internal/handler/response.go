package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-program/internal/program"
	"github.com/iliyamo/conference-program/internal/repository"
)

// envelope is the JSON shape every endpoint responds with.  Success
// responses carry data; failures carry a message plus, optionally, the
// underlying error string.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ok writes a success envelope with the given status and payload.
func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

// fail writes a failure envelope.  err may be nil when the message is
// self-explanatory.
func fail(c echo.Context, status int, message string, err error) error {
	e := envelope{Success: false, Message: message}
	if err != nil {
		e.Error = err.Error()
	}
	return c.JSON(status, e)
}

// failFor maps a service error onto the envelope taxonomy: not-found
// sentinels become 404, validation errors 400, stale version tokens
// and double-booked submissions 409, everything else 500.
func failFor(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrConferenceNotFound),
		errors.Is(err, repository.ErrSessionNotFound),
		errors.Is(err, repository.ErrSubmissionNotFound):
		return fail(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, repository.ErrVersionConflict):
		return fail(c, http.StatusConflict, "session was modified concurrently, reload and retry", err)
	case errors.Is(err, repository.ErrSubmissionScheduled):
		return fail(c, http.StatusConflict, "submission is already scheduled in another session", err)
	}
	var ve *program.ValidationError
	if errors.As(err, &ve) {
		return fail(c, http.StatusBadRequest, ve.Msg, nil)
	}
	return fail(c, http.StatusInternalServerError, "internal error", err)
}
