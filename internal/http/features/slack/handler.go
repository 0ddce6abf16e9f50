// Package slack adapts Slack slash-command requests to the shared bot.
package slack

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shiftlog/shiftlog/internal/httputil"
	"github.com/shiftlog/shiftlog/pkg/bot"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// Handler handles Slack slash-command webhooks.
type Handler struct {
	logger        *slog.Logger
	bot           *bot.Bot
	signingSecret string
	now           func() time.Time
}

// NewHandler creates a new Slack handler.
func NewHandler(logger *slog.Logger, b *bot.Bot, signingSecret string) *Handler {
	return &Handler{
		logger:        logger,
		bot:           b,
		signingSecret: signingSecret,
		now:           time.Now,
	}
}

// slashResponse is the inline reply to a slash command.
type slashResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// Command handles a slash-command request.
// POST /webhooks/slack/command
//
// The reply rides on the HTTP response; the command always acknowledges at
// the transport level even when the business operation fails.
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if !VerifySignature(h.signingSecret, r.Header, body, h.now()) {
		h.logger.Warn("slack signature verification failed", "remote", r.RemoteAddr)
		httputil.Error(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid form body")
		return
	}

	platformUserID := form.Get("user_id")
	// Slash commands split the command token from its text; recombine so
	// "/checkin office" parses like any other message.
	text := strings.TrimSpace(form.Get("command") + " " + form.Get("text"))

	reply := h.bot.HandleMessage(r.Context(), domain.PlatformSlack, platformUserID, text)
	if reply == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	httputil.JSON(w, http.StatusOK, slashResponse{
		ResponseType: "ephemeral",
		Text:         reply,
	})
}
