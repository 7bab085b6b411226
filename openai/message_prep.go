// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"strings"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

// chatRequest is the Chat Completions API request body.
type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float64      `json:"temperature,omitempty"`
	TopP        *float64      `json:"top_p,omitempty"`
	MaxTokens   *int          `json:"max_tokens,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
	User        string        `json:"user,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// buildRequest converts framework types into a Chat Completions request.
// Azure deployments ignore the model field, so an empty model is omitted.
func buildRequest(messages []af.Message, opts *af.ChatOptions, defaultModel string) *chatRequest {
	req := &chatRequest{
		Model: defaultModel,
	}
	if opts != nil {
		if opts.ModelID != "" {
			req.Model = opts.ModelID
		}
		req.Temperature = opts.Temperature
		req.TopP = opts.TopP
		req.MaxTokens = opts.MaxTokens
		req.Stop = opts.Stop
		req.User = opts.User
	}

	req.Messages = convertMessages(messages)
	return req
}

// convertMessages translates framework Messages into chat messages. Only
// text content is sent; image references have no chat representation.
func convertMessages(messages []af.Message) []chatMessage {
	result := make([]chatMessage, 0, len(messages))
	for _, msg := range messages {
		var parts []string
		for _, c := range msg.Contents {
			if tc, ok := c.(*af.TextContent); ok {
				parts = append(parts, tc.Text)
			}
		}
		result = append(result, chatMessage{
			Role:    string(msg.Role),
			Content: strings.Join(parts, "\n"),
		})
	}
	return result
}
