// Copyright (c) Microsoft. All rights reserved.

package agents

import (
	"encoding/json"
	"time"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

// RunStatus is the lifecycle status of a [Run].
type RunStatus string

const (
	RunStatusQueued         RunStatus = "queued"
	RunStatusInProgress     RunStatus = "in_progress"
	RunStatusRequiresAction RunStatus = "requires_action"
	RunStatusCancelling     RunStatus = "cancelling"
	RunStatusCancelled      RunStatus = "cancelled"
	RunStatusFailed         RunStatus = "failed"
	RunStatusCompleted      RunStatus = "completed"
	RunStatusExpired        RunStatus = "expired"
	RunStatusIncomplete     RunStatus = "incomplete"
)

// Pending reports whether the service is still working on the run, or waits
// for the client to act on it.
func (s RunStatus) Pending() bool {
	switch s {
	case RunStatusQueued, RunStatusInProgress, RunStatusRequiresAction, RunStatusCancelling:
		return true
	}
	return false
}

// Terminal reports whether the run reached a final status.
func (s RunStatus) Terminal() bool { return !s.Pending() }

// ListOrder sorts list results by creation time.
type ListOrder string

const (
	OrderAscending  ListOrder = "asc"
	OrderDescending ListOrder = "desc"
)

// FilePurpose tags an uploaded file with its intended use.
type FilePurpose string

const FilePurposeAgents FilePurpose = "assistants"

// ToolDefinition declares a tool available to an agent.
type ToolDefinition struct {
	Type         string   `json:"type"`
	ServerLabel  string   `json:"server_label,omitempty"`
	ServerURL    string   `json:"server_url,omitempty"`
	AllowedTools []string `json:"allowed_tools,omitempty"`
}

// CodeInterpreterTool returns the hosted code interpreter tool definition.
func CodeInterpreterTool() ToolDefinition {
	return ToolDefinition{Type: "code_interpreter"}
}

// MCPTool returns a remote MCP server tool definition. Calls to it are
// executed by the service, never locally.
func MCPTool(serverLabel, serverURL string, allowedTools ...string) ToolDefinition {
	return ToolDefinition{
		Type:         "mcp",
		ServerLabel:  serverLabel,
		ServerURL:    serverURL,
		AllowedTools: allowedTools,
	}
}

// ToolResources carries per-agent or per-run resources for declared tools.
type ToolResources struct {
	CodeInterpreter *CodeInterpreterResource `json:"code_interpreter,omitempty"`
	MCP             []MCPToolResource        `json:"mcp,omitempty"`
}

// CodeInterpreterResource lists files made available to the code interpreter.
type CodeInterpreterResource struct {
	FileIDs []string `json:"file_ids,omitempty"`
}

// RequireApproval selects when MCP tool calls need client approval.
type RequireApproval string

const RequireApprovalAlways RequireApproval = "always"

// MCPToolResource configures an MCP server for a single run.
type MCPToolResource struct {
	ServerLabel     string            `json:"server_label"`
	Headers         map[string]string `json:"headers,omitempty"`
	RequireApproval RequireApproval   `json:"require_approval,omitempty"`
}

// Agent is a remote, named configuration of a model, instructions and tools.
type Agent struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Model        string           `json:"model"`
	Instructions string           `json:"instructions"`
	Tools        []ToolDefinition `json:"tools"`
}

// CreateAgentRequest is the body of an agent creation call.
type CreateAgentRequest struct {
	Model         string           `json:"model"`
	Name          string           `json:"name,omitempty"`
	Instructions  string           `json:"instructions,omitempty"`
	Tools         []ToolDefinition `json:"tools,omitempty"`
	ToolResources *ToolResources   `json:"tool_resources,omitempty"`
}

// Thread is a remote container for one conversation's message history.
type Thread struct {
	ID        string    `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
}

// ThreadMessage is one message stored on a thread.
type ThreadMessage struct {
	ID        string      `json:"id"`
	ThreadID  string      `json:"thread_id"`
	Role      af.Role     `json:"role"`
	Content   af.Contents `json:"-"`
	CreatedAt Timestamp   `json:"created_at"`
	RunID     string      `json:"run_id,omitempty"`
}

// Message converts the thread message into a framework message.
func (m *ThreadMessage) Message() af.Message {
	return af.Message{Role: m.Role, Contents: m.Content, MessageID: m.ID, Raw: m}
}

type messageContentPart struct {
	Type string `json:"type"`
	Text *struct {
		Value string `json:"value"`
	} `json:"text,omitempty"`
	ImageFile *struct {
		FileID string `json:"file_id"`
	} `json:"image_file,omitempty"`
}

// UnmarshalJSON decodes the polymorphic content array into the framework's
// tagged content variant. Unknown parts are dropped.
func (m *ThreadMessage) UnmarshalJSON(data []byte) error {
	type alias ThreadMessage
	var wire struct {
		alias
		Content []messageContentPart `json:"content"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	*m = ThreadMessage(wire.alias)
	for _, p := range wire.Content {
		switch {
		case p.Type == "text" && p.Text != nil:
			m.Content = append(m.Content, &af.TextContent{Text: p.Text.Value})
		case p.Type == "image_file" && p.ImageFile != nil:
			m.Content = append(m.Content, &af.ImageFileContent{FileID: p.ImageFile.FileID})
		}
	}
	return nil
}

type createMessageRequest struct {
	Role    af.Role `json:"role"`
	Content string  `json:"content"`
}

// Run is one execution of an agent against a thread.
type Run struct {
	ID             string          `json:"id"`
	ThreadID       string          `json:"thread_id"`
	AgentID        string          `json:"assistant_id"`
	Status         RunStatus       `json:"status"`
	RequiredAction *RequiredAction `json:"required_action,omitempty"`
	LastError      *RunError       `json:"last_error,omitempty"`
	CreatedAt      Timestamp       `json:"created_at"`
}

// LastErrorMessage returns the run's last error text, or "" if none.
func (r *Run) LastErrorMessage() string {
	if r == nil || r.LastError == nil {
		return ""
	}
	if r.LastError.Message == "" {
		return r.LastError.Code
	}
	return r.LastError.Message
}

// RunError describes why a run failed.
type RunError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *RunError) String() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// RequiredAction is present while a run is in [RunStatusRequiresAction].
type RequiredAction struct {
	Type               string         `json:"type"`
	SubmitToolApproval *ToolCallBatch `json:"submit_tool_approval,omitempty"`
	SubmitToolOutputs  *ToolCallBatch `json:"submit_tool_outputs,omitempty"`
}

const requiredActionToolApproval = "submit_tool_approval"

// ToolCallBatch holds the tool calls awaiting the client.
type ToolCallBatch struct {
	ToolCalls []RequiredToolCall `json:"tool_calls"`
}

// RequiredToolCall is a pending tool call requested by the agent.
type RequiredToolCall struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Arguments   string `json:"arguments"`
	ServerLabel string `json:"server_label,omitempty"`
}

// IsMCP reports whether the call targets a remote MCP server.
func (c RequiredToolCall) IsMCP() bool { return c.Type == "mcp" }

// ToolApproval is the client's decision on one pending tool call.
type ToolApproval struct {
	ToolCallID string            `json:"tool_call_id"`
	Approve    bool              `json:"approve"`
	Headers    map[string]string `json:"headers,omitempty"`
}

type submitToolApprovalsRequest struct {
	ToolApprovals []ToolApproval `json:"tool_approvals"`
}

// CreateRunRequest is the body of a run creation call.
type CreateRunRequest struct {
	AgentID       string         `json:"assistant_id"`
	Instructions  string         `json:"instructions,omitempty"`
	ToolResources *ToolResources `json:"tool_resources,omitempty"`
}

// RunStep is one step (message creation or tool calls) executed by a run.
type RunStep struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Status      string         `json:"status"`
	StepDetails RunStepDetails `json:"step_details"`
}

// RunStepDetails lists the tool calls of a tool_calls step.
type RunStepDetails struct {
	Type      string            `json:"type"`
	ToolCalls []RunStepToolCall `json:"tool_calls,omitempty"`
}

// RunStepToolCall is a tool call recorded on a run step.
type RunStepToolCall struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name,omitempty"`
	Arguments   string `json:"arguments,omitempty"`
	Output      string `json:"output,omitempty"`
	ServerLabel string `json:"server_label,omitempty"`
}

// File is an uploaded file.
type File struct {
	ID       string      `json:"id"`
	Filename string      `json:"filename"`
	Bytes    int64       `json:"bytes"`
	Purpose  FilePurpose `json:"purpose"`
}

type deletionStatus struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

type listResponse[T any] struct {
	Data    []T    `json:"data"`
	FirstID string `json:"first_id"`
	LastID  string `json:"last_id"`
	HasMore bool   `json:"has_more"`
}

// Timestamp is a Unix-seconds time as used on the wire.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var secs *int64
	if err := json.Unmarshal(data, &secs); err != nil {
		return err
	}
	if secs == nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = time.Unix(*secs, 0)
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Unix())
}
