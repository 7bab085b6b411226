// Copyright (c) Microsoft. All rights reserved.

package console

import (
	"fmt"
	"io"
	"strings"

	af "github.com/microsoft/agent-labs/go/agentframework"
	"github.com/microsoft/agent-labs/go/agents"
)

const timestampLayout = "2006-01-02 15:04:05"

// PrintConversation writes a thread's messages, one content part per line,
// each message prefixed with its creation time and role.
func PrintConversation(w io.Writer, messages []agents.ThreadMessage) {
	fmt.Fprintln(w, "\nConversation Log:")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	for _, m := range messages {
		fmt.Fprintf(w, "%s - %10s: ", m.CreatedAt.Local().Format(timestampLayout), m.Role)
		if len(m.Content) == 0 {
			fmt.Fprintln(w)
			continue
		}
		for _, c := range m.Content {
			switch c := c.(type) {
			case *af.TextContent:
				fmt.Fprint(w, c.Text)
			case *af.ImageFileContent:
				fmt.Fprintf(w, "<image from ID: %s>", c.FileID)
			}
			fmt.Fprintln(w)
		}
	}
}

// PrintRunSteps writes a run's final status followed by its steps and any
// tool calls they made.
func PrintRunSteps(w io.Writer, run *agents.Run, steps []agents.RunStep) {
	fmt.Fprintf(w, "Run completed with status: %s\n", run.Status)
	for _, step := range steps {
		fmt.Fprintf(w, "Step %s status: %s\n", step.ID, step.Status)
		if calls := step.StepDetails.ToolCalls; len(calls) > 0 {
			fmt.Fprintln(w, "  MCP Tool calls:")
			for _, call := range calls {
				fmt.Fprintf(w, "    Tool Call ID: %s\n", call.ID)
				fmt.Fprintf(w, "    Type: %s\n", call.Type)
				if call.Name != "" {
					fmt.Fprintf(w, "    Name: %s\n", call.Name)
				}
			}
		}
		fmt.Fprintln(w)
	}
}
