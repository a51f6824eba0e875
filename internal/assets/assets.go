// ABOUTME: Serves the embedded frontend build with cache headers
// ABOUTME: Falls back to index.html for client-side routed paths

// Package assets serves the Vite-built frontend embedded via go:embed.
// Hashed build outputs get immutable cache headers; everything else,
// index.html included, is served no-cache so deploys take effect
// immediately.
package assets

import (
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"regexp"
	"strings"
)

//go:embed all:dist
var distFS embed.FS

// hashPattern detects Vite's content hashes in filenames
// (e.g. "index.CU4W1PlC.js"). Vite emits base64url hashes, so accept
// [a-zA-Z0-9_-] with Vite's default 8-char minimum length.
var hashPattern = regexp.MustCompile(`\.[a-zA-Z0-9_-]{8,}\.`)

func init() {
	// Register MIME types that may not be in the default database.
	_ = mime.AddExtensionType(".woff2", "font/woff2")
	_ = mime.AddExtensionType(".map", "application/json")
}

// containsHash reports whether the given path contains a Vite content hash.
func containsHash(p string) bool {
	return hashPattern.MatchString(p)
}

// mimeFromExt returns the MIME type for a file extension, falling back to
// the standard library database and finally application/octet-stream.
func mimeFromExt(ext string) string {
	switch ext {
	case ".js", ".mjs":
		return "application/javascript"
	case ".css":
		return "text/css; charset=utf-8"
	case ".woff2":
		return "font/woff2"
	case ".svg":
		return "image/svg+xml"
	case ".map":
		return "application/json"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}

// Handler returns an http.Handler serving the embedded frontend. Paths that
// exist in the build are served directly; any other GET path falls back to
// index.html so the client-side router can take over.
func Handler() http.Handler {
	sub, err := fs.Sub(distFS, "dist")
	if err != nil {
		panic("assets: failed to create sub filesystem: " + err.Error())
	}
	return handlerFor(sub)
}

// handlerFor builds the serving handler over an arbitrary fs, split out so
// tests can supply their own trees.
func handlerFor(sub fs.FS) http.Handler {
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if p == "" {
			p = "index.html"
		}

		if _, err := fs.Stat(sub, p); err != nil {
			// Unknown path: hand index.html to the SPA router rather
			// than surfacing a 404 for deep links.
			serveIndex(w, r, sub)
			return
		}

		if ext := strings.ToLower(path.Ext(p)); ext != "" {
			w.Header().Set("Content-Type", mimeFromExt(ext))
		}
		if containsHash(p) {
			w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		} else {
			w.Header().Set("Cache-Control", "no-cache")
		}

		fileServer.ServeHTTP(w, r)
	})
}

func serveIndex(w http.ResponseWriter, r *http.Request, sub fs.FS) {
	data, err := fs.ReadFile(sub, "index.html")
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(data)
}
