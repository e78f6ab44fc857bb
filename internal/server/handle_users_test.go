package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	h := testRouter(t)

	w := do(t, h, http.MethodPost, "/api/users", CredentialsRequest{Username: " leonidas ", Password: "thermopylae"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "thermopylae") || strings.Contains(w.Body.String(), "$2a$") {
		t.Errorf("response leaked the password: %s", w.Body.String())
	}
	u := decodeBody[User](t, w)
	if u.Username != "leonidas" {
		t.Errorf("expected trimmed username, got %q", u.Username)
	}

	if w := do(t, h, http.MethodPost, "/api/users", CredentialsRequest{Username: "leonidas", Password: "another1"}); w.Code != http.StatusConflict {
		t.Errorf("duplicate: expected 409, got %d", w.Code)
	}
	if w := do(t, h, http.MethodPost, "/api/users", CredentialsRequest{Username: "x", Password: "short"}); w.Code != http.StatusBadRequest {
		t.Errorf("short password: expected 400, got %d", w.Code)
	}

	if w := do(t, h, http.MethodPost, "/api/users/login", CredentialsRequest{Username: "leonidas", Password: "thermopylae"}); w.Code != http.StatusOK {
		t.Errorf("login: expected 200, got %d", w.Code)
	}
	if w := do(t, h, http.MethodPost, "/api/users/login", CredentialsRequest{Username: "leonidas", Password: "persians"}); w.Code != http.StatusUnauthorized {
		t.Errorf("bad login: expected 401, got %d", w.Code)
	}

	if w := do(t, h, http.MethodGet, "/api/users/"+strconv.FormatInt(u.ID, 10), nil); w.Code != http.StatusOK {
		t.Errorf("get: expected 200, got %d", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/api/users/9999", nil); w.Code != http.StatusNotFound {
		t.Errorf("get missing: expected 404, got %d", w.Code)
	}
	if w := do(t, h, http.MethodGet, "/api/users/abc", nil); w.Code != http.StatusBadRequest {
		t.Errorf("get bad id: expected 400, got %d", w.Code)
	}
}

func TestRegisterRejectsOversizedInput(t *testing.T) {
	h := testRouter(t)

	tests := []struct {
		name string
		body CredentialsRequest
	}{
		{"password past bcrypt limit", CredentialsRequest{Username: "solon", Password: strings.Repeat("a", 73)}},
		{"body past request limit", CredentialsRequest{Username: strings.Repeat("u", maxBodyBytes), Password: "secret1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, "/api/users", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}

	if w := do(t, h, http.MethodPost, "/api/users", CredentialsRequest{Username: "solon", Password: strings.Repeat("a", 72)}); w.Code != http.StatusCreated {
		t.Errorf("72-byte password: expected 201, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUserStoreCreatePasswordTooLong(t *testing.T) {
	_, users := setupStores(t)
	_, err := users.Create(context.Background(), "draco", strings.Repeat("a", 73))
	if status, _ := errorStatus(err); status != http.StatusBadRequest {
		t.Errorf("expected 400 for %v, got %d", err, status)
	}
}
