// Copyright (c) Microsoft. All rights reserved.

package agents

import (
	"context"
	"slices"
)

// ApprovalPolicy decides whether a pending MCP tool call may proceed.
type ApprovalPolicy interface {
	Approve(ctx context.Context, call RequiredToolCall) bool
}

// ApprovalFunc adapts a function to [ApprovalPolicy].
type ApprovalFunc func(ctx context.Context, call RequiredToolCall) bool

func (f ApprovalFunc) Approve(ctx context.Context, call RequiredToolCall) bool {
	return f(ctx, call)
}

// ApproveAll approves every tool call unconditionally.
var ApproveAll ApprovalPolicy = ApprovalFunc(func(context.Context, RequiredToolCall) bool { return true })

// AllowServers approves calls routed to one of the given MCP server labels
// and rejects everything else.
func AllowServers(labels ...string) ApprovalPolicy {
	return ApprovalFunc(func(_ context.Context, call RequiredToolCall) bool {
		return slices.Contains(labels, call.ServerLabel)
	})
}

// evaluate builds the approval batch for the MCP calls in calls. Non-MCP
// calls are skipped.
func evaluate(ctx context.Context, policy ApprovalPolicy, calls []RequiredToolCall, notify func(RequiredToolCall, bool)) []ToolApproval {
	var approvals []ToolApproval
	for _, call := range calls {
		if !call.IsMCP() {
			continue
		}
		ok := policy.Approve(ctx, call)
		if notify != nil {
			notify(call, ok)
		}
		approvals = append(approvals, ToolApproval{ToolCallID: call.ID, Approve: ok})
	}
	return approvals
}
