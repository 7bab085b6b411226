// Copyright (c) Microsoft. All rights reserved.

package agentframework

import "context"

// ChatClient is the interface for interacting with a chat completions backend.
// Provider packages (e.g., openai) implement this interface.
type ChatClient interface {
	// Response sends the full message history to the model and returns a
	// complete response.
	Response(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error)
}
