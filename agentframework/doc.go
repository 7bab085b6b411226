// Copyright (c) Microsoft. All rights reserved.

// Package agentframework provides the core types shared by the Foundry lab
// samples: chat messages and their content parts, an append-only
// [Conversation], the [ChatClient] abstraction used by the chat sample, and
// the sentinel errors every other package wraps.
//
// # Chat
//
// A [ChatClient] (e.g., from the openai package) completes a message history:
//
//	conv := agentframework.NewConversation(
//	    agentframework.NewSystemMessage("You are a helpful AI assistant."),
//	)
//	conv.Append(agentframework.NewUserMessage("Hello!"))
//
//	resp, err := client.Response(ctx, conv.Messages(), &agentframework.ChatOptions{
//	    Temperature: agentframework.Ptr(0.8),
//	})
//
// # Content
//
// [Content] is a sealed tagged variant. Messages returned by the chat and
// agent services carry either [TextContent] or [ImageFileContent]; use a type
// switch to render them.
//
// # Errors
//
// All packages wrap the sentinels declared here, so callers can classify any
// failure with errors.Is:
//
//	if errors.Is(err, agentframework.ErrAuth) {
//	    // credentials rejected
//	}
package agentframework
