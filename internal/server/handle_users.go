package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

const (
	minPasswordLen = 6
	// bcrypt only hashes the first 72 bytes and rejects anything longer.
	maxPasswordLen = 72
)

func (req *CredentialsRequest) normalize() {
	req.Username = strings.TrimSpace(req.Username)
}

func handleRegister(users *UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.normalize()
		if req.Username == "" || len(req.Password) < minPasswordLen {
			writeError(w, http.StatusBadRequest, "username and a password of at least 6 characters are required")
			return
		}
		if len(req.Password) > maxPasswordLen {
			writeError(w, http.StatusBadRequest, "password must be at most 72 bytes")
			return
		}

		u, err := users.Create(r.Context(), req.Username, req.Password)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, u)
	}
}

// handleLogin checks credentials and returns the account. It issues no
// session; callers pass the user id on later requests.
func handleLogin(users *UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CredentialsRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		req.normalize()
		if req.Username == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		u, err := users.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}

func handleGetUser(users *UserStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "user id must be an integer")
			return
		}
		u, err := users.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				writeError(w, http.StatusNotFound, "user not found")
				return
			}
			writeErr(w, err)
			return
		}
		writeJSON(w, http.StatusOK, u)
	}
}
