// Copyright (c) Microsoft. All rights reserved.

package agentframework

// ChatOptions configures a single chat completion request.
// Pointer fields use nil to represent "unset" (use provider default).
type ChatOptions struct {
	ModelID     string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
	Stop        []string
	User        string
}

// Ptr returns a pointer to v. It is a convenience for the optional
// pointer fields of [ChatOptions].
func Ptr[T any](v T) *T { return &v }
