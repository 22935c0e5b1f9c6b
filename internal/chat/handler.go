package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/culinarylabs/recipe-chat/internal/observability/metrics"
	"github.com/culinarylabs/recipe-chat/pkg/logging"
)

// Responder produces the next conversation state for a history.
type Responder interface {
	Forward(ctx context.Context, history []ChatMessage) ([]ChatMessage, error)
}

// HTMLRenderer renders a markdown reply to sanitized HTML.
type HTMLRenderer interface {
	Render(src string) (string, error)
}

// Handler wires HTTP requests to the conversation forwarder. The caller owns
// the history: it arrives in full with every request and the updated history
// is returned in full; nothing is stored server-side.
type Handler struct {
	forwarder Responder
	renderer  HTMLRenderer
	metrics   *metrics.ChatMetrics
	logger    *logging.Logger
}

// NewHandler creates a chat handler. renderer and m may be nil.
func NewHandler(forwarder Responder, renderer HTMLRenderer, m *metrics.ChatMetrics, logger *logging.Logger) *Handler {
	if forwarder == nil {
		panic("chat: forwarder cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		forwarder: forwarder,
		renderer:  renderer,
		metrics:   m,
		logger:    logger,
	}
}

type chatRequest struct {
	Messages   []ChatMessage `json:"messages"`
	RenderHTML bool          `json:"render_html,omitempty"`
}

type chatResponse struct {
	Messages  []ChatMessage `json:"messages"`
	Reply     string        `json:"reply"`
	ReplyHTML string        `json:"reply_html,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Chat handles POST /chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode chat request", "error", err)
		h.observe("bad_request", start)
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	for i, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			h.observe("bad_request", start)
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("unsupported role %q at index %d", msg.Role, i))
			return
		}
	}

	updated, err := h.forwarder.Forward(r.Context(), req.Messages)
	if err != nil {
		h.logger.Error("failed to forward conversation", "error", err, "history_length", len(req.Messages))
		h.observe("error", start)
		var perr *ProviderError
		if errors.As(err, &perr) {
			h.writeError(w, http.StatusBadGateway, "completion provider failed")
			return
		}
		h.writeError(w, http.StatusInternalServerError, "failed to process conversation")
		return
	}
	h.observe("ok", start)

	reply := updated[len(updated)-1].Content
	resp := chatResponse{
		Messages: updated,
		Reply:    reply,
	}
	if req.RenderHTML && h.renderer != nil {
		html, rerr := h.renderer.Render(reply)
		if rerr != nil {
			h.logger.Warn("failed to render reply html", "error", rerr)
		} else {
			resp.ReplyHTML = html
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) observe(status string, start time.Time) {
	h.metrics.ObserveRequest(status, time.Since(start).Seconds())
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}
