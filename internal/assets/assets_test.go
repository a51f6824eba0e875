// ABOUTME: Tests for embedded frontend serving and cache header policy

package assets

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func TestContainsHash(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"assets/index.D4k9mX2p.js", true},
		{"assets/index.Bq7nR5tW.css", true},
		{"assets/vendor.abcdef0123456789.js", true},
		{"index.html", false},
		{"favicon.ico", false},
		{".gitkeep", false},
	}
	for _, tt := range tests {
		if got := containsHash(tt.path); got != tt.want {
			t.Errorf("containsHash(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMimeFromExt(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".js", "application/javascript"},
		{".mjs", "application/javascript"},
		{".css", "text/css; charset=utf-8"},
		{".woff2", "font/woff2"},
		{".svg", "image/svg+xml"},
		{".map", "application/json"},
		{".qqqqqq", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := mimeFromExt(tt.ext); got != tt.want {
			t.Errorf("mimeFromExt(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func testTree() http.Handler {
	return handlerFor(fstest.MapFS{
		"index.html":                {Data: []byte("<html><div id=\"root\"></div></html>")},
		"assets/index.D4k9mX2p.js":  {Data: []byte("console.log(1)")},
		"assets/index.Bq7nR5tW.css": {Data: []byte("body{}")},
	})
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_HashedAssetImmutable(t *testing.T) {
	rec := get(t, testTree(), "/assets/index.D4k9mX2p.js")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, "immutable") {
		t.Errorf("Cache-Control = %q, want immutable", cc)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/javascript" {
		t.Errorf("Content-Type = %q, want application/javascript", ct)
	}
}

func TestHandler_IndexNoCache(t *testing.T) {
	rec := get(t, testTree(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Cache-Control = %q, want no-cache", cc)
	}
}

func TestHandler_SPAFallback(t *testing.T) {
	rec := get(t, testTree(), "/projects/some-deep-link")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 via index.html fallback", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "root") {
		t.Errorf("body = %q, want index.html content", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
}

func TestHandler_EmbeddedBuildPresent(t *testing.T) {
	rec := get(t, Handler(), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 from the embedded build", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<div id=\"root\">") {
		t.Error("embedded index.html missing SPA mount point")
	}
}
