// Copyright (c) Microsoft. All rights reserved.

package agents

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

// CreateAgent creates an agent with the given model, instructions and tools.
func (c *Client) CreateAgent(ctx context.Context, req CreateAgentRequest) (*Agent, error) {
	if req.Model == "" {
		return nil, fmt.Errorf("%w: agent model is required", af.ErrInvalidRequest)
	}
	var agent Agent
	if err := c.send(ctx, http.MethodPost, "/assistants", req, &agent); err != nil {
		return nil, fmt.Errorf("create agent: %w", err)
	}
	return &agent, nil
}

// DeleteAgent deletes an agent.
func (c *Client) DeleteAgent(ctx context.Context, agentID string) error {
	return c.delete(ctx, "/assistants/"+url.PathEscape(agentID), "agent")
}

// CreateThread creates an empty thread.
func (c *Client) CreateThread(ctx context.Context) (*Thread, error) {
	var thread Thread
	if err := c.send(ctx, http.MethodPost, "/threads", struct{}{}, &thread); err != nil {
		return nil, fmt.Errorf("create thread: %w", err)
	}
	return &thread, nil
}

// DeleteThread deletes a thread and its messages.
func (c *Client) DeleteThread(ctx context.Context, threadID string) error {
	return c.delete(ctx, "/threads/"+url.PathEscape(threadID), "thread")
}

// CreateMessage appends a text message to a thread.
func (c *Client) CreateMessage(ctx context.Context, threadID string, role af.Role, content string) (*ThreadMessage, error) {
	var msg ThreadMessage
	body := createMessageRequest{Role: role, Content: content}
	if err := c.send(ctx, http.MethodPost, threadPath(threadID)+"/messages", body, &msg); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &msg, nil
}

// ListMessages returns every message of a thread in the given order,
// following pagination until the service reports no more results.
func (c *Client) ListMessages(ctx context.Context, threadID string, order ListOrder) ([]ThreadMessage, error) {
	var all []ThreadMessage
	after := ""
	for {
		req, err := c.newRequest(ctx)
		if err != nil {
			return nil, err
		}
		req.SetQueryParam("order", string(order))
		if after != "" {
			req.SetQueryParam("after", after)
		}

		var page listResponse[ThreadMessage]
		if err := c.execute(ctx, req, http.MethodGet, threadPath(threadID)+"/messages", &page); err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		all = append(all, page.Data...)
		if !page.HasMore || page.LastID == "" || page.LastID == after {
			return all, nil
		}
		after = page.LastID
	}
}

// CreateRun starts a run of the agent against the thread's pending input.
func (c *Client) CreateRun(ctx context.Context, threadID string, req CreateRunRequest) (*Run, error) {
	var run Run
	if err := c.send(ctx, http.MethodPost, threadPath(threadID)+"/runs", req, &run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	return &run, nil
}

// GetRun fetches the current state of a run.
func (c *Client) GetRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var run Run
	if err := c.send(ctx, http.MethodGet, runPath(threadID, runID), nil, &run); err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return &run, nil
}

// SubmitToolApprovals answers the pending tool approval batch of a run.
func (c *Client) SubmitToolApprovals(ctx context.Context, threadID, runID string, approvals []ToolApproval) (*Run, error) {
	var run Run
	body := submitToolApprovalsRequest{ToolApprovals: approvals}
	if err := c.send(ctx, http.MethodPost, runPath(threadID, runID)+"/submit_tool_outputs", body, &run); err != nil {
		return nil, fmt.Errorf("submit tool approvals: %w", err)
	}
	return &run, nil
}

// CancelRun asks the service to stop a run. The returned run is usually
// still cancelling.
func (c *Client) CancelRun(ctx context.Context, threadID, runID string) (*Run, error) {
	var run Run
	if err := c.send(ctx, http.MethodPost, runPath(threadID, runID)+"/cancel", nil, &run); err != nil {
		return nil, fmt.Errorf("cancel run: %w", err)
	}
	return &run, nil
}

// ListRunSteps returns the steps executed by a run in ascending order.
func (c *Client) ListRunSteps(ctx context.Context, threadID, runID string) ([]RunStep, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	req.SetQueryParam("order", string(OrderAscending))

	var page listResponse[RunStep]
	if err := c.execute(ctx, req, http.MethodGet, runPath(threadID, runID)+"/steps", &page); err != nil {
		return nil, fmt.Errorf("list run steps: %w", err)
	}
	return page.Data, nil
}

// UploadFile uploads a local file for use by agent tools.
func (c *Client) UploadFile(ctx context.Context, path string, purpose FilePurpose) (*File, error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return nil, err
	}
	req.SetFile("file", path).
		SetFormData(map[string]string{"purpose": string(purpose)})

	var file File
	if err := c.execute(ctx, req, http.MethodPost, "/files", &file); err != nil {
		return nil, fmt.Errorf("upload file %s: %w", filepath.Base(path), err)
	}
	return &file, nil
}

// DeleteFile deletes an uploaded file.
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.delete(ctx, "/files/"+url.PathEscape(fileID), "file")
}

func (c *Client) delete(ctx context.Context, path, kind string) error {
	var status deletionStatus
	if err := c.send(ctx, http.MethodDelete, path, nil, &status); err != nil {
		return fmt.Errorf("delete %s: %w", kind, err)
	}
	if !status.Deleted {
		return fmt.Errorf("delete %s %s: %w: service reported deleted=false", kind, status.ID, af.ErrInvalidResponse)
	}
	return nil
}

func threadPath(threadID string) string {
	return "/threads/" + url.PathEscape(threadID)
}

func runPath(threadID, runID string) string {
	return threadPath(threadID) + "/runs/" + url.PathEscape(runID)
}

// LatestAssistantText returns the first text content of the most recent
// assistant message on the thread. ok is false when the thread has no
// assistant message with text.
func (c *Client) LatestAssistantText(ctx context.Context, threadID string) (text string, ok bool, err error) {
	req, err := c.newRequest(ctx)
	if err != nil {
		return "", false, err
	}
	req.SetQueryParam("order", string(OrderDescending))

	var page listResponse[ThreadMessage]
	if err := c.execute(ctx, req, http.MethodGet, threadPath(threadID)+"/messages", &page); err != nil {
		return "", false, fmt.Errorf("list messages: %w", err)
	}
	for _, m := range page.Data {
		if m.Role != af.RoleAssistant {
			continue
		}
		msg := m.Message()
		text, ok = msg.FirstText()
		return text, ok, nil
	}
	return "", false, nil
}
