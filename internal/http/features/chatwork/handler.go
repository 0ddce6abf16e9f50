// Package chatwork adapts Chatwork message webhooks to the shared bot.
package chatwork

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/shiftlog/shiftlog/internal/httputil"
	"github.com/shiftlog/shiftlog/pkg/bot"
	"github.com/shiftlog/shiftlog/pkg/domain"
)

// MessagePoster sends a reply to a Chatwork room.
type MessagePoster interface {
	PostMessage(ctx context.Context, roomID int64, body string) error
}

// Handler handles Chatwork webhook events.
type Handler struct {
	logger       *slog.Logger
	bot          *bot.Bot
	webhookToken string
	client       MessagePoster
}

// NewHandler creates a new Chatwork handler.
func NewHandler(logger *slog.Logger, b *bot.Bot, webhookToken string, client MessagePoster) *Handler {
	return &Handler{
		logger:       logger,
		bot:          b,
		webhookToken: webhookToken,
		client:       client,
	}
}

// webhookRequest is the envelope Chatwork posts for message events.
type webhookRequest struct {
	EventType string       `json:"webhook_event_type"`
	Event     webhookEvent `json:"webhook_event"`
}

type webhookEvent struct {
	MessageID     string `json:"message_id"`
	RoomID        int64  `json:"room_id"`
	AccountID     int64  `json:"account_id"`
	FromAccountID int64  `json:"from_account_id"`
	Body          string `json:"body"`
}

// Chatwork message bodies carry markup tags like [To:123] in front of the
// text a user actually typed.
var leadingTagPattern = regexp.MustCompile(`^(\[[^\[\]]*\]\s*)+`)

// Webhook handles a Chatwork webhook delivery.
// POST /webhooks/chatwork
//
// The webhook is acknowledged with 200 regardless of the business outcome;
// replies are posted back to the room through the REST API.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		httputil.Error(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	if !VerifySignature(h.webhookToken, r.Header.Get(signatureHeader), body) {
		h.logger.Warn("chatwork signature verification failed", "remote", r.RemoteAddr)
		httputil.Error(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	var req webhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid webhook payload")
		return
	}

	switch req.EventType {
	case "message_created", "mention_to_me":
	default:
		// Other event types are acknowledged and ignored.
		w.WriteHeader(http.StatusOK)
		return
	}

	accountID := req.Event.AccountID
	if req.Event.FromAccountID != 0 {
		accountID = req.Event.FromAccountID
	}
	text := leadingTagPattern.ReplaceAllString(req.Event.Body, "")

	reply := h.bot.HandleMessage(r.Context(), domain.PlatformChatwork,
		strconv.FormatInt(accountID, 10), text)
	if reply != "" {
		if err := h.client.PostMessage(r.Context(), req.Event.RoomID, reply); err != nil {
			h.logger.Error("failed to post chatwork reply",
				"room_id", req.Event.RoomID, "error", err)
		}
	}

	w.WriteHeader(http.StatusOK)
}
