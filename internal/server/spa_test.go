package server

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHandleSPA(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>polis</html>"), 0o644)
	os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('agora')"), 0o644)
	h := handleSPA(dir)

	tests := []struct {
		path   string
		status int
		want   string
	}{
		{"/app.js", http.StatusOK, "agora"},
		{"/games/123", http.StatusOK, "polis"},
		{"/api/missing", http.StatusNotFound, "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}
