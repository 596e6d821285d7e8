package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHealthCheck(t *testing.T) {
	router := NewRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Errorf("GET /health body = %q", w.Body.String())
	}
}

func TestInfo(t *testing.T) {
	router := NewRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/info", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/info status = %d, want %d", w.Code, http.StatusOK)
	}
	for _, want := range []string{"pop_punk", "one_drop", "eighth", "paradiddle"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("info response missing %q", want)
		}
	}
}

func TestGenerateDownload(t *testing.T) {
	router := NewRouter()

	body := `{"tempo": 160, "style": "pop_punk", "bars": 4, "seed": 7}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/v1/generate status = %d, body = %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Type"); got != "audio/midi" {
		t.Errorf("Content-Type = %q, want audio/midi", got)
	}
	if !strings.HasPrefix(w.Body.String(), "MThd") {
		t.Error("response body is not a MIDI file")
	}
}

func TestGenerateRejectsBadParameters(t *testing.T) {
	router := NewRouter()

	tests := []struct {
		name string
		body string
	}{
		{"negative tempo", `{"tempo": -10}`},
		{"unknown style", `{"style": "zydeco"}`},
		{"unknown kick", `{"kick_pattern": "stomp"}`},
		{"density out of range", `{"density": 3.5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/generate", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestPreviewReturnsPattern(t *testing.T) {
	router := NewRouter()

	body := `{"bars": 2, "seed": 42}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/preview", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("POST /api/v1/preview status = %d, body = %s", w.Code, w.Body.String())
	}
	for _, want := range []string{"description", "bars", "complexity"} {
		if !strings.Contains(w.Body.String(), want) {
			t.Errorf("preview response missing %q", want)
		}
	}
}

func TestListRudimentsCategoryFilter(t *testing.T) {
	router := NewRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rudiments?category=rolls", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("category=rolls status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "single_stroke_roll") {
		t.Errorf("rolls response missing roll figure: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/rudiments?category=polkas", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown category status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRudimentDownload(t *testing.T) {
	router := NewRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rudiments/paradiddle", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("GET rudiment status = %d, body = %s", w.Code, w.Body.String())
	}
	if !strings.HasPrefix(w.Body.String(), "MThd") {
		t.Error("rudiment download is not a MIDI file")
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/rudiments/nope", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown rudiment status = %d, want %d", w.Code, http.StatusNotFound)
	}
}
