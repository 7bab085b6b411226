// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"encoding/json"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

// chatCompletionResponse is the Chat Completions API response.
type chatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []choice `json:"choices"`
	Usage   *usage   `json:"usage,omitempty"`
}

type choice struct {
	Index        int         `json:"index"`
	Message      respMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

type respMessage struct {
	Role string `json:"role"`
	// Content is either a string, null, or an array of typed parts.
	Content json.RawMessage `json:"content"`
}

type contentPart struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// parseChatResponse converts the response into framework types. Absent or
// malformed content yields a message without contents rather than an error.
func parseChatResponse(raw *chatCompletionResponse) *af.ChatResponse {
	resp := &af.ChatResponse{
		ResponseID: raw.ID,
		ModelID:    raw.Model,
	}

	if raw.Usage != nil {
		resp.Usage = af.UsageDetails{
			InputTokens:  raw.Usage.PromptTokens,
			OutputTokens: raw.Usage.CompletionTokens,
			TotalTokens:  raw.Usage.TotalTokens,
		}
	}

	if len(raw.Choices) > 0 {
		c := raw.Choices[0]
		resp.FinishReason = mapFinishReason(c.FinishReason)

		role := af.Role(c.Message.Role)
		if role == "" {
			role = af.RoleAssistant
		}
		resp.Messages = []af.Message{{
			Role:     role,
			Contents: parseContent(c.Message.Content),
		}}
	}

	return resp
}

// parseContent decodes the polymorphic content field into text parts.
func parseContent(data json.RawMessage) af.Contents {
	if len(data) == 0 {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			return nil
		}
		return af.Contents{&af.TextContent{Text: s}}
	}

	var parts []contentPart
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil
	}
	var contents af.Contents
	for _, p := range parts {
		if p.Type == "text" && p.Text != "" {
			contents = append(contents, &af.TextContent{Text: p.Text})
		}
	}
	return contents
}

// unmarshalChatResponse parses the JSON response body.
func unmarshalChatResponse(data []byte) (*chatCompletionResponse, error) {
	var resp chatCompletionResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func mapFinishReason(s string) af.FinishReason {
	switch s {
	case "stop":
		return af.FinishReasonStop
	case "length":
		return af.FinishReasonLength
	case "content_filter":
		return af.FinishReasonContentFilter
	default:
		return af.FinishReason(s)
	}
}
