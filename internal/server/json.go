package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/playperu/polis/internal/multiplayer"
	"github.com/playperu/polis/internal/polis"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// requestError rejects a malformed or incomplete request body.
type requestError struct{ msg string }

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{msg: fmt.Sprintf(format, args...)}
}

// errorStatus maps domain and store errors to an HTTP status. Unknown errors
// are internal and their message is not exposed.
func errorStatus(err error) (int, string) {
	var (
		bad   *requestError
		short *polis.InsufficientError
	)
	switch {
	case errors.As(err, &bad):
		return http.StatusBadRequest, bad.msg
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "game not found"
	case errors.Is(err, multiplayer.ErrNotFound),
		errors.Is(err, multiplayer.ErrPlayerNotFound):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &short),
		errors.Is(err, polis.ErrAtWar),
		errors.Is(err, polis.ErrTreatyExists),
		errors.Is(err, multiplayer.ErrNotYourTurn),
		errors.Is(err, multiplayer.ErrNoActionsLeft),
		errors.Is(err, multiplayer.ErrNoCurrentPlayer),
		errors.Is(err, ErrUsernameTaken):
		return http.StatusConflict, err.Error()
	case errors.Is(err, polis.ErrUnknownStructure),
		errors.Is(err, polis.ErrUnknownUnit),
		errors.Is(err, polis.ErrInvalidTaxRate),
		errors.Is(err, polis.ErrUnknownCity),
		errors.Is(err, polis.ErrUnknownGovernment):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return http.StatusBadRequest, "password must be at most 72 bytes"
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

func writeErr(w http.ResponseWriter, err error) {
	status, msg := errorStatus(err)
	writeError(w, status, msg)
}
