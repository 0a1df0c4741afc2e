package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/clarityworks/clarity/internal/waitlist"
)

type WaitlistHandler struct {
	client waitlist.Client
	logger *slog.Logger
}

func NewWaitlistHandler(c waitlist.Client, logger *slog.Logger) *WaitlistHandler {
	return &WaitlistHandler{client: c, logger: logger}
}

type SignupRequest struct {
	Email string `json:"email"`
}

// Signup handles POST /api/v1/waitlist, forwarding the email to the remote
// signup service.
func (h *WaitlistHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "valid email required"})
		return
	}

	if h.client == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "waitlist not configured"})
		return
	}

	if err := h.client.Signup(r.Context(), email); err != nil {
		h.logger.Error("waitlist signup failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": "signup failed, try again later"})
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "ok"})
}
