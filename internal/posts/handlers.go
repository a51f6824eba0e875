// ABOUTME: HTTP handlers for the portfolio posts API
// ABOUTME: Public reads, gate-protected mutations, optional markdown rendering

package posts

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yuin/goldmark"

	"github.com/foliolabs/folio-gateway/internal/auth"
	"github.com/foliolabs/folio-gateway/internal/store"
	"github.com/foliolabs/folio-gateway/internal/token"
)

// Handler serves the /api/posts endpoints. Reads are public; mutations run
// behind the edge gate, which attaches the session to the request context.
type Handler struct {
	store  store.PostStore
	codec  *token.Codec
	md     goldmark.Markdown
	logger *slog.Logger
}

// NewHandler creates the posts API handler. The codec is used to re-derive
// the subject from the auth cookie when no session rides the context, so the
// handler stays correct even when deployed without the gate in front.
func NewHandler(postStore store.PostStore, codec *token.Codec) *Handler {
	return &Handler{
		store:  postStore,
		codec:  codec,
		md:     goldmark.New(),
		logger: slog.Default().With("component", "posts"),
	}
}

// RegisterRoutes registers the posts endpoints on the given mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/posts", h.handleGet)
	mux.HandleFunc("POST /api/posts", h.handleCreate)
	mux.HandleFunc("PUT /api/posts", h.handleUpdate)
	mux.HandleFunc("DELETE /api/posts", h.handleDelete)
}

// postPayload is the JSON shape for posts on the wire.
type postPayload struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	DescriptionHTML string   `json:"description_html,omitempty"`
	Tags            []string `json:"tags"`
	Images          []string `json:"images"`
	Category        string   `json:"category,omitempty"`
	CreatedBy       string   `json:"created_by,omitempty"`
	UpdatedBy       string   `json:"updated_by,omitempty"`
	CreatedAt       int64    `json:"created_at,omitempty"`
	UpdatedAt       int64    `json:"updated_at,omitempty"`
}

func (h *Handler) toPayload(p *store.Post, renderHTML bool) postPayload {
	out := postPayload{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Tags:        p.Tags,
		Images:      p.Images,
		Category:    p.Category,
		CreatedBy:   p.CreatedBy,
		UpdatedBy:   p.UpdatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Images == nil {
		out.Images = []string{}
	}
	if renderHTML && p.Description != "" {
		var buf bytes.Buffer
		if err := h.md.Convert([]byte(p.Description), &buf); err != nil {
			h.logger.Warn("rendering post description", "post_id", p.ID, "error", err)
		} else {
			out.DescriptionHTML = buf.String()
		}
	}
	return out
}

// handleGet serves list and single-post reads. ?id= selects one post;
// ?render=html adds server-rendered markdown descriptions.
func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	renderHTML := r.URL.Query().Get("render") == "html"

	if idParam := r.URL.Query().Get("id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid id"})
			return
		}
		post, err := h.store.GetPost(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			h.serverError(w, "getting post", err)
			return
		}
		writeJSON(w, http.StatusOK, h.toPayload(post, renderHTML))
		return
	}

	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		h.serverError(w, "listing posts", err)
		return
	}

	list := make([]postPayload, 0, len(posts))
	for _, p := range posts {
		list = append(list, h.toPayload(p, renderHTML))
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	username, ok := h.subject(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Unauthorized"})
		return
	}

	var req postPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing title"})
		return
	}

	post := &store.Post{
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Images:      req.Images,
		Category:    req.Category,
		CreatedBy:   username,
		CreatedAt:   normalizeEpoch(req.CreatedAt),
	}

	id, err := h.store.CreatePost(r.Context(), post)
	if err != nil {
		h.serverError(w, "creating post", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "insertedId": id})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	username, ok := h.subject(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Unauthorized"})
		return
	}

	var req postPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid body"})
		return
	}
	if req.ID == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing id"})
		return
	}

	post := &store.Post{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
		Tags:        req.Tags,
		Images:      req.Images,
		Category:    req.Category,
		UpdatedBy:   username,
		CreatedAt:   normalizeEpoch(req.CreatedAt),
		UpdatedAt:   time.Now().Unix(),
	}

	if err := h.store.UpdatePost(r.Context(), post); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.serverError(w, "updating post", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.subject(r); !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Unauthorized"})
		return
	}

	idParam := r.URL.Query().Get("id")
	if idParam == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing id"})
		return
	}
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid id"})
		return
	}

	if err := h.store.DeletePost(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.serverError(w, "deleting post", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// subject resolves the authenticated username: from the gate's session
// context when present, otherwise by decoding the auth cookie directly.
func (h *Handler) subject(r *http.Request) (string, bool) {
	if s := auth.FromContext(r.Context()); s != nil {
		return s.Username, true
	}
	tok := auth.TokenFromRequest(r)
	if tok == "" {
		return "", false
	}
	claims, err := h.codec.Decode(tok)
	if err != nil {
		return "", false
	}
	return claims.Subject, true
}

// normalizeEpoch coerces a client-supplied timestamp to epoch seconds.
// Values that look like milliseconds are divided down.
func normalizeEpoch(v int64) int64 {
	if v > 1e12 {
		return v / 1000
	}
	return v
}

func (h *Handler) serverError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "An error occurred"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
