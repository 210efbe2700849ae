package bots

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/google/uuid"
	"github.com/samber/mo"

	"github.com/ziadkadry99/genaichat/internal/logger"
)

// EventHandler turns a chat event into a reply or a failure.
type EventHandler interface {
	HandleEvent(ctx context.Context, event ChatEvent) mo.Result[Reply]
}

// Gateway is the boundary between the transport and the event handler: every
// event gets exactly one well-formed reply, whatever the handler does.
type Gateway struct {
	handler EventHandler
}

// NewGateway creates a new Gateway with the given event handler.
func NewGateway(handler EventHandler) *Gateway {
	return &Gateway{handler: handler}
}

// Dispatch routes an event through the handler. Failures and panics are
// logged with the event and turned into the generic error reply.
func (g *Gateway) Dispatch(ctx context.Context, event ChatEvent) (reply Reply) {
	log := logger.FromContext(ctx).With("event_id", uuid.NewString())
	ctx = logger.WithContext(ctx, log)

	log.Info("Chat event received.", "event", event)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Error processing event.",
				"event", event,
				"error", fmt.Sprint(r),
				"stack", string(debug.Stack()),
			)
			reply = FormatReply(ErrorText)
		}
	}()

	reply, err := g.handler.HandleEvent(ctx, event).Get()
	if err != nil {
		log.Error("Error processing event.",
			"event", event,
			"error", err.Error(),
			"stack", string(debug.Stack()),
		)
		return FormatReply(ErrorText)
	}
	return reply
}
