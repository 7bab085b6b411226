// Copyright (c) Microsoft. All rights reserved.

// Command mcpagent chats with an agent that calls a remote MCP server. Every
// MCP tool call is approved by the client before the service runs it.
//
// Configure it with environment variables, a .env file or appsettings.json:
//
//	PROJECT_ENDPOINT=https://<resource>.services.ai.azure.com/api/projects/<project>
//	MODEL_DEPLOYMENT_NAME=gpt-4o
//	MCP_SERVER_URL=https://learn.microsoft.com/api/mcp   # optional
//	MCP_SERVER_LABEL=mslearn                             # optional
//
// Then, after `az login`:
//
//	go run .
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	af "github.com/microsoft/agent-labs/go/agentframework"
	"github.com/microsoft/agent-labs/go/agents"
	"github.com/microsoft/agent-labs/go/console"
	"github.com/microsoft/agent-labs/go/settings"
)

const instructions = "You have access to an MCP server called `microsoft.docs.mcp` - this tool allows you to " +
	"search through Microsoft's latest official documentation. Use the available MCP tools to answer " +
	"questions and perform tasks."

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Println(err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	resolver, err := settings.NewResolver()
	if err != nil {
		return err
	}
	cfg, err := settings.Load(resolver)
	if err != nil {
		return err
	}
	logger := console.NewLogger(os.Stderr, cfg.Debug)

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return fmt.Errorf("%w: create azure credential: %w", af.ErrAuth, err)
	}
	client, err := agents.New(cfg.ProjectEndpoint, cred, agents.WithLogger(logger))
	if err != nil {
		return err
	}

	agent, err := client.CreateAgent(ctx, agents.CreateAgentRequest{
		Model:        cfg.ModelDeployment,
		Name:         "my-mcp-agent",
		Instructions: instructions,
		Tools:        []agents.ToolDefinition{agents.MCPTool(cfg.MCPServerLabel, cfg.MCPServerURL)},
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created agent, ID: %s\n", agent.ID)
	fmt.Printf("MCP Server: %s at %s\n", cfg.MCPServerLabel, cfg.MCPServerURL)
	res := agents.Resources{AgentID: agent.ID}

	thread, err := client.CreateThread(ctx)
	if err != nil {
		cleanup(client, logger, res)
		return err
	}
	fmt.Printf("Created thread, ID: %s\n", thread.ID)
	res.ThreadID = thread.ID

	poller := agents.NewPoller(client,
		agents.WithPollInterval(cfg.PollInterval),
		agents.WithRunTimeout(cfg.RunTimeout),
		agents.WithApprovalPolicy(agents.AllowServers(cfg.MCPServerLabel)),
		agents.WithApprovalHook(func(call agents.RequiredToolCall, approved bool) {
			if approved {
				fmt.Printf("Approving MCP tool call: %s\n", call.Name)
			} else {
				fmt.Printf("Rejecting MCP tool call: %s (server %s)\n", call.Name, call.ServerLabel)
			}
		}),
		agents.WithPollLogger(logger),
	)

	loop := &console.AgentLoop{
		Service:  client,
		Runs:     poller,
		Prompter: console.NewPrompter(os.Stdin, os.Stdout, console.AgentPrompt),
		Out:      os.Stdout,
		ThreadID: thread.ID,
		AgentID:  agent.ID,
		ToolResources: &agents.ToolResources{MCP: []agents.MCPToolResource{{
			ServerLabel:     cfg.MCPServerLabel,
			RequireApproval: agents.RequireApprovalAlways,
		}}},
		OnRunFinished: func(ctx context.Context, run *agents.Run) error {
			steps, err := client.ListRunSteps(ctx, run.ThreadID, run.ID)
			if err != nil {
				return err
			}
			console.PrintRunSteps(os.Stdout, run, steps)
			return nil
		},
	}
	if err := loop.Run(ctx); err != nil {
		cleanup(client, logger, res)
		return err
	}

	messages, err := client.ListMessages(ctx, thread.ID, agents.OrderAscending)
	if err != nil {
		logger.Warn("list conversation", "error", err)
	} else {
		console.PrintConversation(os.Stdout, messages)
	}

	cleanup(client, logger, res)
	return nil
}

// cleanup deletes the sample's remote resources on a fresh context so an
// interrupted session still tears down.
func cleanup(client *agents.Client, logger *slog.Logger, res agents.Resources) {
	if err := client.Teardown(context.Background(), res); err != nil {
		logger.Error("cleanup incomplete", "error", err)
		return
	}
	fmt.Println("Deleted agent")
}
