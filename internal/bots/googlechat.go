package bots

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/ziadkadry99/genaichat/internal/logger"
)

// maxEventBytes bounds the size of an accepted event body.
const maxEventBytes = 1 << 20

// ChatHandler serves the Google Chat app endpoint.
type ChatHandler struct {
	gateway *Gateway
}

// NewChatHandler creates a new Google Chat event handler.
func NewChatHandler(gateway *Gateway) *ChatHandler {
	return &ChatHandler{gateway: gateway}
}

// HandleEvent handles a Google Chat event (HTTP POST). It always answers 200
// with a reply envelope: Chat renders envelopes, not HTTP errors.
func (h *ChatHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var reply Reply
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxEventBytes))
	defer r.Body.Close()
	if err != nil {
		log.Error("Error processing event.", "error", err.Error())
		reply = FormatReply(ErrorText)
	} else if event, err := DecodeEvent(body); err != nil {
		log.Error("Error processing event.", "event", string(body), "error", err.Error())
		reply = FormatReply(ErrorText)
	} else {
		reply = h.gateway.Dispatch(ctx, event)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(reply); err != nil {
		log.Error("Writing reply failed.", "error", err.Error())
	}
}
