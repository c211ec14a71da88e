// Package harmony defines the conversation envelope exchanged between the
// agent runtime and tools: who a message is from, where it routes, and its
// ordered text content parts.
package harmony

// Role classifies a conversation participant.
type Role string

const (
	RoleSystem    Role = "system"
	RoleDeveloper Role = "developer"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Author identifies the sender of a message. Name is set for tool authors
// (e.g. "python") and empty otherwise.
type Author struct {
	Role Role   `json:"role"`
	Name string `json:"name,omitempty"`
}

// TextContent is one text part of a message body.
type TextContent struct {
	Text string `json:"text"`
}

// Message is a single conversation envelope. Channel and Recipient are
// optional routing tags; tool responses echo the request's channel so they
// route back correctly in multi-channel conversations.
type Message struct {
	Author    Author        `json:"author"`
	Content   []TextContent `json:"content"`
	Channel   string        `json:"channel,omitempty"`
	Recipient string        `json:"recipient,omitempty"`
}

// NewMessage builds a single-part text message from the given author.
func NewMessage(author Author, text string) Message {
	return Message{
		Author:  author,
		Content: []TextContent{{Text: text}},
	}
}

// WithChannel returns a copy of the message tagged with the given routing
// channel.
func (m Message) WithChannel(channel string) Message {
	m.Channel = channel
	return m
}

// WithRecipient returns a copy of the message addressed to the given
// recipient.
func (m Message) WithRecipient(recipient string) Message {
	m.Recipient = recipient
	return m
}

// Text returns the text of the first content part, or "" when the message
// has no content parts.
func (m Message) Text() string {
	if len(m.Content) == 0 {
		return ""
	}
	return m.Content[0].Text
}
