package bots

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
)

// App command types sent by Google Chat.
const (
	QuickCommand = "QUICK_COMMAND"
	SlashCommand = "SLASH_COMMAND"
)

// ChatEvent is the body Google Chat posts to the app endpoint. Every
// sub-structure is optional; absent parts decode to zero values.
type ChatEvent struct {
	Chat ChatPayload `json:"chat"`

	// Raw is the original request body, kept for logging.
	Raw json.RawMessage `json:"-"`
}

// ChatPayload holds the interaction-specific payloads of an event.
type ChatPayload struct {
	// AddedToSpacePayload is only checked for presence; a JSON null counts.
	AddedToSpacePayload json.RawMessage    `json:"addedToSpacePayload,omitempty"`
	AppCommandPayload   *AppCommandPayload `json:"appCommandPayload,omitempty"`
	MessagePayload      *MessagePayload    `json:"messagePayload,omitempty"`
}

// AppCommandPayload is sent when the user invokes a quick or slash command.
type AppCommandPayload struct {
	AppCommandMetadata AppCommandMetadata `json:"appCommandMetadata"`
	Message            *Message           `json:"message,omitempty"`
}

// AppCommandMetadata identifies the invoked command.
type AppCommandMetadata struct {
	AppCommandID   CommandID `json:"appCommandId,omitempty"`
	AppCommandType string    `json:"appCommandType,omitempty"`
}

// MessagePayload is sent for plain messages to the app.
type MessagePayload struct {
	Message *Message `json:"message,omitempty"`
}

// Message is the user message of an event.
type Message struct {
	ArgumentText string `json:"argumentText,omitempty"`
	Text         string `json:"text,omitempty"`
}

// CommandID is an app command identifier. Google Chat sends it as a JSON
// number, but strings are accepted too. Fractional numbers are truncated and
// a numeric zero counts as absent. Any other JSON value is kept verbatim and
// will fail normalization.
type CommandID string

func (c *CommandID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*c = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding appCommandId: %w", err)
		}
		*c = CommandID(s)
	default:
		*c = numericCommandID(string(data))
	}
	return nil
}

// numericCommandID truncates a JSON number to an integer ID. Zero means no
// command. Non-numbers are kept verbatim.
func numericCommandID(raw string) CommandID {
	if n, ok := new(big.Int).SetString(raw, 10); ok {
		if n.Sign() == 0 {
			return ""
		}
		return CommandID(n.String())
	}
	f, ok := new(big.Float).SetPrec(256).SetString(raw)
	if !ok {
		return CommandID(raw)
	}
	if f.Sign() == 0 {
		return ""
	}
	n, _ := f.Int(nil)
	return CommandID(n.String())
}

// DecodeEvent parses a Google Chat event body.
func DecodeEvent(data []byte) (ChatEvent, error) {
	var event ChatEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return ChatEvent{}, fmt.Errorf("decoding chat event: %w", err)
	}
	event.Raw = json.RawMessage(data)
	return event, nil
}

// AddedToSpace reports whether the event announces the app joining a space.
func (p ChatPayload) AddedToSpace() bool {
	return len(p.AddedToSpacePayload) > 0
}

// commandMetadata returns the app command metadata, zero when absent.
func (p ChatPayload) commandMetadata() AppCommandMetadata {
	if p.AppCommandPayload == nil {
		return AppCommandMetadata{}
	}
	return p.AppCommandPayload.AppCommandMetadata
}

// message prefers the app command message over the plain message payload.
// An app command message without any text does not count.
func (p ChatPayload) message() Message {
	if p.AppCommandPayload != nil && !emptyMessage(p.AppCommandPayload.Message) {
		return *p.AppCommandPayload.Message
	}
	if p.MessagePayload != nil && p.MessagePayload.Message != nil {
		return *p.MessagePayload.Message
	}
	return Message{}
}

func emptyMessage(m *Message) bool {
	return m == nil || (m.ArgumentText == "" && m.Text == "")
}

// UserInput is the trimmed argument text, or the trimmed message text when
// there are no arguments.
func (m Message) UserInput() string {
	text := m.ArgumentText
	if text == "" {
		text = m.Text
	}
	return strings.TrimSpace(text)
}

type chatEventFields ChatEvent

// LogValue logs the original body when available.
func (e ChatEvent) LogValue() slog.Value {
	if len(e.Raw) > 0 && json.Valid(e.Raw) {
		return slog.AnyValue(e.Raw)
	}
	return slog.AnyValue(chatEventFields(e))
}
