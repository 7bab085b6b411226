// Copyright (c) Microsoft. All rights reserved.

package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

// RunService is the subset of run operations a [Poller] needs.
type RunService interface {
	GetRun(ctx context.Context, threadID, runID string) (*Run, error)
	SubmitToolApprovals(ctx context.Context, threadID, runID string, approvals []ToolApproval) (*Run, error)
	CancelRun(ctx context.Context, threadID, runID string) (*Run, error)
}

const (
	DefaultPollInterval    = 500 * time.Millisecond
	DefaultMaxPollInterval = 5 * time.Second
	DefaultRunTimeout      = 10 * time.Minute
	DefaultCancelTimeout   = 30 * time.Second
	defaultMultiplier      = 1.5
)

// Poller waits for runs to leave their pending statuses, resolving tool
// approval requests along the way.
type Poller struct {
	runs        RunService
	interval    time.Duration
	maxInterval time.Duration
	multiplier  float64
	timeout     time.Duration
	cancelWait  time.Duration
	policy      ApprovalPolicy
	onApproval  func(call RequiredToolCall, approved bool)
	logger      *slog.Logger
}

// PollOption configures a [Poller].
type PollOption func(*Poller)

// WithPollInterval sets the first wait between status queries.
func WithPollInterval(d time.Duration) PollOption {
	return func(p *Poller) { p.interval = d }
}

// WithMaxPollInterval caps the wait between status queries.
func WithMaxPollInterval(d time.Duration) PollOption {
	return func(p *Poller) { p.maxInterval = d }
}

// WithBackoffMultiplier sets the growth factor of the wait. A multiplier of
// 1 polls at a fixed interval.
func WithBackoffMultiplier(m float64) PollOption {
	return func(p *Poller) { p.multiplier = m }
}

// WithRunTimeout bounds the total time spent waiting for one run. Zero
// disables the bound; the context still applies.
func WithRunTimeout(d time.Duration) PollOption {
	return func(p *Poller) { p.timeout = d }
}

// WithCancelTimeout bounds how long the poller waits for a run it gave up on
// to finish cancelling.
func WithCancelTimeout(d time.Duration) PollOption {
	return func(p *Poller) { p.cancelWait = d }
}

// WithApprovalPolicy sets the policy applied to MCP tool calls.
func WithApprovalPolicy(policy ApprovalPolicy) PollOption {
	return func(p *Poller) { p.policy = policy }
}

// WithApprovalHook registers a callback invoked for every evaluated call.
func WithApprovalHook(fn func(call RequiredToolCall, approved bool)) PollOption {
	return func(p *Poller) { p.onApproval = fn }
}

// WithPollLogger sets the poller's logger.
func WithPollLogger(logger *slog.Logger) PollOption {
	return func(p *Poller) { p.logger = logger }
}

// NewPoller creates a [Poller] over runs. By default every MCP tool call is
// approved.
func NewPoller(runs RunService, opts ...PollOption) *Poller {
	p := &Poller{
		runs:        runs,
		interval:    DefaultPollInterval,
		maxInterval: DefaultMaxPollInterval,
		multiplier:  defaultMultiplier,
		timeout:     DefaultRunTimeout,
		cancelWait:  DefaultCancelTimeout,
		policy:      ApproveAll,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.maxInterval < p.interval {
		p.maxInterval = p.interval
	}
	if p.multiplier < 1 {
		p.multiplier = 1
	}
	return p
}

// Poll blocks until run reaches a terminal status and returns its final
// state. A failed run is not an error; inspect [Run.Status]. Errors are
// returned for service failures, unsupported required actions,
// [agentframework.ErrPollTimeout] and context cancellation. On a timeout or
// an unsupported action the run is cancelled first, so the thread accepts
// new messages again.
func (p *Poller) Poll(ctx context.Context, run *Run) (*Run, error) {
	if run == nil {
		return nil, fmt.Errorf("%w: nil run", af.ErrRun)
	}
	parent := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	b := p.newBackOff()
	threadID, runID := run.ThreadID, run.ID
	for run.Status.Pending() {
		if err := wait(ctx, b.NextBackOff()); err != nil {
			return run, p.fail(parent, threadID, runID, run, err)
		}

		next, err := p.runs.GetRun(ctx, threadID, runID)
		if err != nil {
			return run, p.fail(parent, threadID, runID, run, err)
		}
		run = next
		p.logger.DebugContext(ctx, "run status", "run_id", runID, "status", run.Status)

		if run.Status != RunStatusRequiresAction {
			continue
		}
		next, err = p.resolve(ctx, run)
		if err != nil {
			return run, p.fail(parent, threadID, runID, run, err)
		}
		run = next
		b.Reset()
	}
	return run, nil
}

// resolve answers the run's required action with a single approval batch.
func (p *Poller) resolve(ctx context.Context, run *Run) (*Run, error) {
	action := run.RequiredAction
	if action == nil || action.Type != requiredActionToolApproval || action.SubmitToolApproval == nil {
		kind := "<none>"
		if action != nil {
			kind = action.Type
		}
		return nil, fmt.Errorf("%w: run %s requires unsupported action %s", af.ErrRequiredAction, run.ID, kind)
	}

	approvals := evaluate(ctx, p.policy, action.SubmitToolApproval.ToolCalls, p.onApproval)
	if len(approvals) == 0 {
		return nil, fmt.Errorf("%w: run %s requires approval but has no MCP tool calls", af.ErrRequiredAction, run.ID)
	}

	p.logger.DebugContext(ctx, "submitting tool approvals", "run_id", run.ID, "count", len(approvals))
	next, err := p.runs.SubmitToolApprovals(ctx, run.ThreadID, run.ID, approvals)
	if err != nil {
		return nil, err
	}
	if next.ThreadID == "" {
		next.ThreadID = run.ThreadID
	}
	return next, nil
}

// fail classifies err and cancels the run when the poller is abandoning it.
func (p *Poller) fail(parent context.Context, threadID, runID string, run *Run, err error) error {
	err = p.waitError(parent, run, err)
	if errors.Is(err, af.ErrPollTimeout) || errors.Is(err, af.ErrRequiredAction) {
		p.cancel(parent, threadID, runID)
	}
	return err
}

// cancel stops an abandoned run and waits, within the cancel timeout, for it
// to leave its pending statuses. Failures are logged only.
func (p *Poller) cancel(parent context.Context, threadID, runID string) {
	ctx := context.WithoutCancel(parent)
	if p.cancelWait > 0 {
		var stop context.CancelFunc
		ctx, stop = context.WithTimeout(ctx, p.cancelWait)
		defer stop()
	}

	run, err := p.runs.CancelRun(ctx, threadID, runID)
	if err != nil {
		p.logger.WarnContext(ctx, "cancel run failed", "run_id", runID, "error", err)
		return
	}
	b := p.newBackOff()
	for run.Status.Pending() {
		if err = wait(ctx, b.NextBackOff()); err == nil {
			run, err = p.runs.GetRun(ctx, threadID, runID)
		}
		if err != nil {
			p.logger.WarnContext(ctx, "run did not finish cancelling", "run_id", runID, "error", err)
			return
		}
	}
	p.logger.DebugContext(ctx, "run cancelled", "run_id", runID, "status", run.Status)
}

func (p *Poller) newBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.interval
	b.MaxInterval = p.maxInterval
	b.Multiplier = p.multiplier
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

// waitError converts a deadline hit by the poll budget into ErrPollTimeout,
// leaving cancellations of the caller's context untouched.
func (p *Poller) waitError(parent context.Context, run *Run, err error) error {
	if errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
		return fmt.Errorf("%w: run %s still %s after %s", af.ErrPollTimeout, run.ID, run.Status, p.timeout)
	}
	return err
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
