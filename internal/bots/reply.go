package bots

// Fixed reply texts.
const (
	EmptyMessageText = "I didn't receive any message. Please try again."
	ErrorText        = "An error occurred while processing your request. Please check the logs."
)

// Reply is the response envelope Google Chat expects from an app. The zero
// Reply marshals to {} and tells Chat to take no action.
type Reply struct {
	HostAppDataAction *HostAppDataAction `json:"hostAppDataAction,omitempty"`
}

type HostAppDataAction struct {
	ChatDataAction ChatDataAction `json:"chatDataAction"`
}

type ChatDataAction struct {
	CreateMessageAction CreateMessageAction `json:"createMessageAction"`
}

type CreateMessageAction struct {
	Message ReplyMessage `json:"message"`
}

type ReplyMessage struct {
	Text string `json:"text"`
}

// FormatReply wraps text in a create-message reply. Any text, including the
// empty string, is accepted as is.
func FormatReply(text string) Reply {
	return Reply{
		HostAppDataAction: &HostAppDataAction{
			ChatDataAction: ChatDataAction{
				CreateMessageAction: CreateMessageAction{
					Message: ReplyMessage{Text: text},
				},
			},
		},
	}
}

// IsEmpty reports whether r is the no-action reply.
func (r Reply) IsEmpty() bool {
	return r.HostAppDataAction == nil
}

// Text returns the message text of r, or "" for the no-action reply.
func (r Reply) Text() string {
	if r.HostAppDataAction == nil {
		return ""
	}
	return r.HostAppDataAction.ChatDataAction.CreateMessageAction.Message.Text
}
