// Copyright (c) Microsoft. All rights reserved.

package agentframework

import (
	"context"
	"log/slog"
	"time"
)

// LoggingMiddleware returns a [ChatMiddleware] that logs completion calls using slog.
func LoggingMiddleware(logger *slog.Logger) ChatMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next ChatHandler) ChatHandler {
		return func(ctx context.Context, messages []Message, opts *ChatOptions) (*ChatResponse, error) {
			start := time.Now()
			logger.DebugContext(ctx, "chat completion started",
				"message_count", len(messages),
			)

			resp, err := next(ctx, messages, opts)

			duration := time.Since(start)
			if err != nil {
				logger.ErrorContext(ctx, "chat completion failed",
					"duration", duration,
					"error", err,
				)
				return nil, err
			}

			logger.DebugContext(ctx, "chat completion finished",
				"duration", duration,
				"finish_reason", resp.FinishReason,
				"input_tokens", resp.Usage.InputTokens,
				"output_tokens", resp.Usage.OutputTokens,
			)
			return resp, nil
		}
	}
}
