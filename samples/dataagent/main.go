// Copyright (c) Microsoft. All rights reserved.

// Command dataagent uploads a data file and chats with an agent that
// analyzes it using the hosted code interpreter.
//
// Configure it with environment variables, a .env file or appsettings.json:
//
//	PROJECT_ENDPOINT=https://<resource>.services.ai.azure.com/api/projects/<project>
//	MODEL_DEPLOYMENT_NAME=gpt-4o
//	DATA_FILE=data.txt            # optional
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

const instructions = "You are an AI agent that analyzes the data in the file that has been uploaded. " +
	"Use Python to calculate statistical metrics as necessary."

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

	data, err := os.ReadFile(cfg.DataFile)
	if err != nil {
		return fmt.Errorf("%w: read data file: %w", af.ErrConfig, err)
	}
	fmt.Printf("%s\n\n", data)

	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return fmt.Errorf("%w: create azure credential: %w", af.ErrAuth, err)
	}
	client, err := agents.New(cfg.ProjectEndpoint, cred, agents.WithLogger(logger))
	if err != nil {
		return err
	}

	file, err := client.UploadFile(ctx, cfg.DataFile, agents.FilePurposeAgents)
	if err != nil {
		return err
	}
	fmt.Printf("Uploaded %s\n", file.Filename)
	res := agents.Resources{FileIDs: []string{file.ID}}

	agent, err := client.CreateAgent(ctx, agents.CreateAgentRequest{
		Model:        cfg.ModelDeployment,
		Name:         "data-agent",
		Instructions: instructions,
		Tools:        []agents.ToolDefinition{agents.CodeInterpreterTool()},
		ToolResources: &agents.ToolResources{
			CodeInterpreter: &agents.CodeInterpreterResource{FileIDs: []string{file.ID}},
		},
	})
	if err != nil {
		cleanup(client, logger, res)
		return err
	}
	fmt.Printf("Using agent: %s\n", agent.Name)
	res.AgentID = agent.ID

	thread, err := client.CreateThread(ctx)
	if err != nil {
		cleanup(client, logger, res)
		return err
	}
	res.ThreadID = thread.ID

	loop := &console.AgentLoop{
		Service: client,
		Runs: agents.NewPoller(client,
			agents.WithPollInterval(cfg.PollInterval),
			agents.WithRunTimeout(cfg.RunTimeout),
			agents.WithPollLogger(logger),
		),
		Prompter: console.NewPrompter(os.Stdin, os.Stdout, console.AgentPrompt),
		Out:      os.Stdout,
		ThreadID: thread.ID,
		AgentID:  agent.ID,
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

// cleanup deletes the sample's remote resources. It runs on a fresh context
// so an interrupted session still tears down.
func cleanup(client *agents.Client, logger *slog.Logger, res agents.Resources) {
	if err := client.Teardown(context.Background(), res); err != nil {
		logger.Error("cleanup incomplete", "error", err)
		return
	}
	fmt.Println("Deleted agent")
}
