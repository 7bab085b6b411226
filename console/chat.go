// Copyright (c) Microsoft. All rights reserved.

package console

import (
	"context"
	"fmt"
	"io"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

// SystemPrompt seeds every chat conversation.
const SystemPrompt = "You are a helpful AI assistant that answers questions."

// DefaultTemperature is the sampling temperature of chat turns.
const DefaultTemperature = 0.8

// ChatLoop runs a multi-turn chat against a [af.ChatClient]. The full
// history is sent on every turn.
type ChatLoop struct {
	client      af.ChatClient
	prompter    *Prompter
	out         io.Writer
	temperature float64
	history     *af.Conversation
}

// NewChatLoop returns a loop whose history holds only the system prompt.
func NewChatLoop(client af.ChatClient, prompter *Prompter, out io.Writer) *ChatLoop {
	return &ChatLoop{
		client:      client,
		prompter:    prompter,
		out:         out,
		temperature: DefaultTemperature,
		history:     af.NewConversation(af.NewSystemMessage(SystemPrompt)),
	}
}

// Run reads prompts until the user quits. A failed completion ends the loop
// and is returned.
func (l *ChatLoop) Run(ctx context.Context) error {
	for {
		input, ok, err := l.prompter.Next()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := l.turn(ctx, input); err != nil {
			return err
		}
	}
}

func (l *ChatLoop) turn(ctx context.Context, input string) error {
	l.history.Append(af.NewUserMessage(input))

	resp, err := l.client.Response(ctx, l.history.Messages(), &af.ChatOptions{
		Temperature: af.Ptr(l.temperature),
	})
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}

	text := resp.Text()
	fmt.Fprintf(l.out, "\nAssistant: %s\n\n", text)
	l.history.Append(af.NewAssistantMessage(text))
	return nil
}

// History returns a copy of the conversation so far.
func (l *ChatLoop) History() []af.Message {
	return l.history.Messages()
}
