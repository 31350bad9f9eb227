package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/seiflotfy/huff/internal/handler"
	"github.com/seiflotfy/huff/internal/service"
	"github.com/seiflotfy/huff/logger"
)

func newEngine(t *testing.T, maxBody int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, err := service.NewCodecService(8, logger.Nop(), 0)
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	Register(r, Dependencies{CodecHandler: handler.NewCodecHandler(svc, maxBody)})
	return r
}

func post(r *gin.Engine, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := newEngine(t, 1<<20)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("unexpected body %s", w.Body.String())
	}
}

func TestCompressDecompressOverHTTP(t *testing.T) {
	r := newEngine(t, 1<<20)
	data := []byte(strings.Repeat("over the wire ", 200))

	cw := post(r, "/api/v1/compress", data)
	if cw.Code != http.StatusOK {
		t.Fatalf("compress: expected 200, got %d: %s", cw.Code, cw.Body.String())
	}
	if cw.Header().Get("X-Huff-Header-Bits") == "" || cw.Header().Get("X-Huff-Body-Bits") == "" {
		t.Error("missing size headers")
	}
	if cw.Body.Len() >= len(data) {
		t.Errorf("expected compression, %d -> %d", len(data), cw.Body.Len())
	}

	dw := post(r, "/api/v1/decompress", cw.Body.Bytes())
	if dw.Code != http.StatusOK {
		t.Fatalf("decompress: expected 200, got %d: %s", dw.Code, dw.Body.String())
	}
	if !bytes.Equal(dw.Body.Bytes(), data) {
		t.Error("round trip mismatch")
	}
}

func TestDecompressReportsErrorKind(t *testing.T) {
	r := newEngine(t, 1<<20)

	tests := []struct {
		name string
		body []byte
		kind string
	}{
		{"bad magic", []byte("plain text body"), "bad_magic"},
		{"corrupt header", []byte{0xfa, 0xce, 0x82, 0x01, 0x00}, "corrupt_header"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(r, "/api/v1/decompress", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", w.Code)
			}
			var resp struct {
				Error string `json:"error"`
				Kind  string `json:"kind"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Kind != tt.kind {
				t.Errorf("expected kind %q, got %q (%s)", tt.kind, resp.Kind, resp.Error)
			}
		})
	}
}

func TestBodyLimit(t *testing.T) {
	r := newEngine(t, 16)
	w := post(r, "/api/v1/compress", bytes.Repeat([]byte{'x'}, 17))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestCodes(t *testing.T) {
	r := newEngine(t, 1<<20)
	w := post(r, "/api/v1/codes", []byte("aaab"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Codes []service.CodeEntry `json:"codes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	got := map[string]string{}
	for _, e := range resp.Codes {
		got[e.Label] = e.Code
	}
	want := map[string]string{"'a'": "1", "'b'": "00", "EOF": "01"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("code %s: expected %q, got %q", k, v, got[k])
		}
	}
}
