// Copyright (c) Microsoft. All rights reserved.

package agents_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	af "github.com/microsoft/agent-labs/go/agentframework"
	"github.com/microsoft/agent-labs/go/agents"
)

// scriptedRuns is a RunService that replays a fixed status sequence. The
// last status repeats once the script is exhausted.
type scriptedRuns struct {
	mu          sync.Mutex
	statuses    []agents.RunStatus
	action      *agents.RequiredAction
	lastError   *agents.RunError
	gets        int
	submissions [][]agents.ToolApproval
	cancels     int
	cancelErr   error
}

func (s *scriptedRuns) GetRun(ctx context.Context, threadID, runID string) (*agents.Run, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := min(s.gets, len(s.statuses)-1)
	s.gets++
	if s.cancels > 0 {
		return &agents.Run{ID: runID, ThreadID: threadID, Status: agents.RunStatusCancelled}, nil
	}
	run := &agents.Run{ID: runID, ThreadID: threadID, Status: s.statuses[i]}
	switch run.Status {
	case agents.RunStatusRequiresAction:
		run.RequiredAction = s.action
	case agents.RunStatusFailed:
		run.LastError = s.lastError
	}
	return run, nil
}

func (s *scriptedRuns) SubmitToolApprovals(_ context.Context, threadID, runID string, approvals []agents.ToolApproval) (*agents.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append(s.submissions, approvals)
	return &agents.Run{ID: runID, ThreadID: threadID, Status: agents.RunStatusQueued}, nil
}

func (s *scriptedRuns) CancelRun(_ context.Context, threadID, runID string) (*agents.Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelErr != nil {
		return nil, s.cancelErr
	}
	s.cancels++
	return &agents.Run{ID: runID, ThreadID: threadID, Status: agents.RunStatusCancelling}, nil
}

func approvalAction(calls ...agents.RequiredToolCall) *agents.RequiredAction {
	return &agents.RequiredAction{
		Type:               "submit_tool_approval",
		SubmitToolApproval: &agents.ToolCallBatch{ToolCalls: calls},
	}
}

func queuedRun() *agents.Run {
	return &agents.Run{ID: "run_1", ThreadID: "thread_1", Status: agents.RunStatusQueued}
}

func fastPoller(runs agents.RunService, opts ...agents.PollOption) *agents.Poller {
	base := []agents.PollOption{
		agents.WithPollInterval(time.Millisecond),
		agents.WithMaxPollInterval(2 * time.Millisecond),
	}
	return agents.NewPoller(runs, append(base, opts...)...)
}

func TestRunStatus_Pending(t *testing.T) {
	pending := []agents.RunStatus{
		agents.RunStatusQueued, agents.RunStatusInProgress,
		agents.RunStatusRequiresAction, agents.RunStatusCancelling,
	}
	for _, s := range pending {
		if !s.Pending() || s.Terminal() {
			t.Errorf("%s should be pending", s)
		}
	}
	terminal := []agents.RunStatus{
		agents.RunStatusCompleted, agents.RunStatusFailed,
		agents.RunStatusCancelled, agents.RunStatusExpired,
	}
	for _, s := range terminal {
		if s.Pending() || !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
}

func TestPoll_CompletesWithoutApprovals(t *testing.T) {
	runs := &scriptedRuns{statuses: []agents.RunStatus{
		agents.RunStatusInProgress, agents.RunStatusCompleted,
	}}

	run, err := fastPoller(runs).Poll(context.Background(), queuedRun())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if run.Status != agents.RunStatusCompleted {
		t.Errorf("status = %q, want completed", run.Status)
	}
	if len(runs.submissions) != 0 {
		t.Errorf("submissions = %d, want 0", len(runs.submissions))
	}
	if runs.gets != 2 {
		t.Errorf("gets = %d, want 2", runs.gets)
	}
}

func TestPoll_TerminalRunIsNotQueried(t *testing.T) {
	runs := &scriptedRuns{statuses: []agents.RunStatus{agents.RunStatusCompleted}}
	done := &agents.Run{ID: "run_1", ThreadID: "thread_1", Status: agents.RunStatusCompleted}

	if _, err := fastPoller(runs).Poll(context.Background(), done); err != nil {
		t.Fatal(err)
	}
	if runs.gets != 0 {
		t.Errorf("gets = %d, want 0", runs.gets)
	}
}

func TestPoll_SubmitsOneApprovalBatch(t *testing.T) {
	runs := &scriptedRuns{
		statuses: []agents.RunStatus{
			agents.RunStatusRequiresAction, agents.RunStatusInProgress, agents.RunStatusCompleted,
		},
		action: approvalAction(
			agents.RequiredToolCall{ID: "call_1", Type: "mcp", Name: "microsoft_docs_search", ServerLabel: "mslearn"},
			agents.RequiredToolCall{ID: "call_2", Type: "mcp", Name: "microsoft_docs_fetch", ServerLabel: "mslearn"},
		),
	}

	var notified []string
	hook := agents.WithApprovalHook(func(call agents.RequiredToolCall, approved bool) {
		if !approved {
			t.Errorf("call %s rejected", call.ID)
		}
		notified = append(notified, call.Name)
	})

	run, err := fastPoller(runs, hook).Poll(context.Background(), queuedRun())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if run.Status != agents.RunStatusCompleted {
		t.Errorf("status = %q, want completed", run.Status)
	}
	if len(runs.submissions) != 1 {
		t.Fatalf("submissions = %d, want exactly 1", len(runs.submissions))
	}
	batch := runs.submissions[0]
	if len(batch) != 2 || batch[0].ToolCallID != "call_1" || batch[1].ToolCallID != "call_2" {
		t.Errorf("batch = %+v", batch)
	}
	if len(notified) != 2 || notified[0] != "microsoft_docs_search" {
		t.Errorf("notified = %v", notified)
	}
}

func TestPoll_ApprovalPolicy(t *testing.T) {
	runs := &scriptedRuns{
		statuses: []agents.RunStatus{agents.RunStatusRequiresAction, agents.RunStatusCompleted},
		action: approvalAction(
			agents.RequiredToolCall{ID: "call_1", Type: "mcp", ServerLabel: "mslearn"},
			agents.RequiredToolCall{ID: "call_2", Type: "mcp", ServerLabel: "elsewhere"},
			agents.RequiredToolCall{ID: "call_3", Type: "function", Name: "local"},
		),
	}

	_, err := fastPoller(runs, agents.WithApprovalPolicy(agents.AllowServers("mslearn"))).
		Poll(context.Background(), queuedRun())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(runs.submissions) != 1 {
		t.Fatalf("submissions = %d, want 1", len(runs.submissions))
	}
	batch := runs.submissions[0]
	if len(batch) != 2 {
		t.Fatalf("batch = %+v, want the two MCP calls", batch)
	}
	if !batch[0].Approve || batch[1].Approve {
		t.Errorf("approvals = %+v, want [true false]", batch)
	}
}

func TestPoll_FailedRunIsReturned(t *testing.T) {
	runs := &scriptedRuns{
		statuses:  []agents.RunStatus{agents.RunStatusFailed},
		lastError: &agents.RunError{Code: "rate_limit_exceeded", Message: "Rate limit is exceeded."},
	}

	run, err := fastPoller(runs).Poll(context.Background(), queuedRun())
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if run.Status != agents.RunStatusFailed {
		t.Errorf("status = %q", run.Status)
	}
	if got := run.LastErrorMessage(); got != "Rate limit is exceeded." {
		t.Errorf("LastErrorMessage = %q", got)
	}
}

func TestPoll_Timeout(t *testing.T) {
	runs := &scriptedRuns{statuses: []agents.RunStatus{agents.RunStatusInProgress}}

	_, err := fastPoller(runs, agents.WithRunTimeout(20*time.Millisecond)).
		Poll(context.Background(), queuedRun())
	if !errors.Is(err, af.ErrPollTimeout) {
		t.Fatalf("err = %v, want ErrPollTimeout", err)
	}
	if !errors.Is(err, af.ErrRun) {
		t.Error("ErrPollTimeout should wrap ErrRun")
	}
	if runs.cancels != 1 {
		t.Errorf("cancels = %d, want the timed-out run cancelled once", runs.cancels)
	}
}

func TestPoll_TimeoutCancelFailureKeepsTimeoutError(t *testing.T) {
	runs := &scriptedRuns{
		statuses:  []agents.RunStatus{agents.RunStatusInProgress},
		cancelErr: af.ErrService,
	}

	_, err := fastPoller(runs, agents.WithRunTimeout(20*time.Millisecond)).
		Poll(context.Background(), queuedRun())
	if !errors.Is(err, af.ErrPollTimeout) {
		t.Fatalf("err = %v, want ErrPollTimeout", err)
	}
}

func TestPoll_ContextCancelled(t *testing.T) {
	runs := &scriptedRuns{statuses: []agents.RunStatus{agents.RunStatusInProgress}}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := fastPoller(runs).Poll(ctx, queuedRun())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if errors.Is(err, af.ErrPollTimeout) {
		t.Error("cancellation must not be reported as a poll timeout")
	}
	if runs.cancels != 0 {
		t.Errorf("cancels = %d, want 0 when the caller cancels", runs.cancels)
	}
}

func TestPoll_UnsupportedAction(t *testing.T) {
	tests := []struct {
		name   string
		action *agents.RequiredAction
	}{
		{"none", nil},
		{"tool outputs", &agents.RequiredAction{
			Type:              "submit_tool_outputs",
			SubmitToolOutputs: &agents.ToolCallBatch{ToolCalls: []agents.RequiredToolCall{{ID: "call_1", Type: "function"}}},
		}},
		{"no mcp calls", approvalAction(agents.RequiredToolCall{ID: "call_1", Type: "function"})},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runs := &scriptedRuns{
				statuses: []agents.RunStatus{agents.RunStatusRequiresAction},
				action:   tc.action,
			}
			_, err := fastPoller(runs).Poll(context.Background(), queuedRun())
			if !errors.Is(err, af.ErrRequiredAction) {
				t.Fatalf("err = %v, want ErrRequiredAction", err)
			}
			if len(runs.submissions) != 0 {
				t.Errorf("submissions = %d, want 0", len(runs.submissions))
			}
			if runs.cancels != 1 {
				t.Errorf("cancels = %d, want 1", runs.cancels)
			}
		})
	}
}

func TestPoll_NilRun(t *testing.T) {
	if _, err := fastPoller(&scriptedRuns{}).Poll(context.Background(), nil); !errors.Is(err, af.ErrRun) {
		t.Fatalf("err = %v, want ErrRun", err)
	}
}
