// Copyright (c) Microsoft. All rights reserved.

package agentframework

// Conversation is an append-only, ordered message history owned by a single
// chat loop. The whole history is resent on every turn; nothing is truncated.
type Conversation struct {
	messages []Message
}

// NewConversation creates a conversation seeded with the given messages,
// typically a single system message.
func NewConversation(seed ...Message) *Conversation {
	c := &Conversation{}
	c.messages = append(c.messages, seed...)
	return c
}

// Append adds messages to the end of the history.
func (c *Conversation) Append(msgs ...Message) {
	c.messages = append(c.messages, msgs...)
}

// Messages returns a copy of the history in order.
func (c *Conversation) Messages() []Message {
	cp := make([]Message, len(c.messages))
	copy(cp, c.messages)
	return cp
}

// Len returns the number of messages in the history.
func (c *Conversation) Len() int { return len(c.messages) }

// Count returns the number of messages authored by role.
func (c *Conversation) Count(role Role) int {
	n := 0
	for _, m := range c.messages {
		if m.Role == role {
			n++
		}
	}
	return n
}
