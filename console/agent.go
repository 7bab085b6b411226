// Copyright (c) Microsoft. All rights reserved.

package console

import (
	"context"
	"errors"
	"fmt"
	"io"

	af "github.com/microsoft/agent-labs/go/agentframework"
	"github.com/microsoft/agent-labs/go/agents"
)

// ThreadService is the subset of the agents client an [AgentLoop] uses.
type ThreadService interface {
	CreateMessage(ctx context.Context, threadID string, role af.Role, content string) (*agents.ThreadMessage, error)
	CreateRun(ctx context.Context, threadID string, req agents.CreateRunRequest) (*agents.Run, error)
	LatestAssistantText(ctx context.Context, threadID string) (string, bool, error)
}

// RunWaiter blocks until a run is terminal.
type RunWaiter interface {
	Poll(ctx context.Context, run *agents.Run) (*agents.Run, error)
}

// AgentLoop sends each prompt to an agent thread, waits for the run and
// prints the agent's latest reply.
type AgentLoop struct {
	Service  ThreadService
	Runs     RunWaiter
	Prompter *Prompter
	Out      io.Writer

	ThreadID string
	AgentID  string

	// ToolResources, when set, is attached to every run.
	ToolResources *agents.ToolResources

	// OnRunFinished is called with every run that reached a terminal status.
	OnRunFinished func(ctx context.Context, run *agents.Run) error
}

// Run reads prompts until the user quits. Failed, stuck or unsupported runs
// are reported and the loop continues; service errors end it.
func (l *AgentLoop) Run(ctx context.Context) error {
	for {
		input, ok, err := l.Prompter.Next()
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

func (l *AgentLoop) turn(ctx context.Context, input string) error {
	if _, err := l.Service.CreateMessage(ctx, l.ThreadID, af.RoleUser, input); err != nil {
		return err
	}
	run, err := l.Service.CreateRun(ctx, l.ThreadID, agents.CreateRunRequest{
		AgentID:       l.AgentID,
		ToolResources: l.ToolResources,
	})
	if err != nil {
		return err
	}

	run, err = l.Runs.Poll(ctx, run)
	if err != nil {
		if errors.Is(err, af.ErrRun) && ctx.Err() == nil {
			fmt.Fprintf(l.Out, "Run failed: %v\n", err)
			return nil
		}
		return err
	}

	if l.OnRunFinished != nil {
		if err := l.OnRunFinished(ctx, run); err != nil {
			return err
		}
	}
	if run.Status == agents.RunStatusFailed {
		fmt.Fprintf(l.Out, "Run failed: %s\n", run.LastErrorMessage())
		return nil
	}

	text, ok, err := l.Service.LatestAssistantText(ctx, l.ThreadID)
	if err != nil {
		return err
	}
	if ok {
		fmt.Fprintf(l.Out, "Last Message: %s\n", text)
	}
	return nil
}
