// Copyright (c) Microsoft. All rights reserved.

package agentframework

import "strings"

// Role identifies the author of a [Message].
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// FinishReason indicates why the model stopped generating.
type FinishReason string

const (
	FinishReasonStop          FinishReason = "stop"
	FinishReasonLength        FinishReason = "length"
	FinishReasonContentFilter FinishReason = "content_filter"
)

// Message represents a single chat message exchanged with a model or agent.
type Message struct {
	Role      Role     `json:"role"`
	Contents  Contents `json:"contents,omitempty"`
	MessageID string   `json:"messageId,omitempty"`

	// Raw holds the original provider-specific representation, if any.
	Raw any `json:"-"`
}

// Text returns the text of all [TextContent] items in this message, joined
// by newlines. Empty parts are skipped.
func (m *Message) Text() string {
	var b strings.Builder
	for _, c := range m.Contents {
		tc, ok := c.(*TextContent)
		if !ok || tc.Text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(tc.Text)
	}
	return b.String()
}

// FirstText returns the first [TextContent] item and true, or "" and false
// if the message carries no text.
func (m *Message) FirstText() (string, bool) {
	for _, c := range m.Contents {
		if tc, ok := c.(*TextContent); ok {
			return tc.Text, true
		}
	}
	return "", false
}

// NewUserMessage creates a user-role [Message] from a text string.
func NewUserMessage(text string) Message {
	return Message{
		Role:     RoleUser,
		Contents: Contents{&TextContent{Text: text}},
	}
}

// NewAssistantMessage creates an assistant-role [Message] from a text string.
func NewAssistantMessage(text string) Message {
	return Message{
		Role:     RoleAssistant,
		Contents: Contents{&TextContent{Text: text}},
	}
}

// NewSystemMessage creates a system-role [Message] from a text string.
func NewSystemMessage(text string) Message {
	return Message{
		Role:     RoleSystem,
		Contents: Contents{&TextContent{Text: text}},
	}
}
