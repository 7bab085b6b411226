// Copyright (c) Microsoft. All rights reserved.

// Command chat runs a multi-turn chat against a model deployment of an Azure
// AI Foundry project.
//
// Configure it with environment variables or a .env file:
//
//	PROJECT_ENDPOINT=https://<resource>.services.ai.azure.com/api/projects/<project>
//	MODEL_DEPLOYMENT=gpt-4o
//
// Sign in with `az login` (or any source DefaultAzureCredential supports),
// then:
//
//	go run .
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"

	af "github.com/microsoft/agent-labs/go/agentframework"
	"github.com/microsoft/agent-labs/go/console"
	"github.com/microsoft/agent-labs/go/openai"
	"github.com/microsoft/agent-labs/go/settings"
)

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
	logger.Debug("settings loaded", "files", resolver.Files(), "deployment", cfg.ModelDeployment)

	baseURL, err := openai.AzureDeploymentURL(cfg.ProjectEndpoint, cfg.ModelDeployment)
	if err != nil {
		return err
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return fmt.Errorf("%w: create azure credential: %w", af.ErrAuth, err)
	}

	client := openai.New("",
		openai.WithBaseURL(baseURL),
		openai.WithAPIVersion(openai.DefaultAPIVersion),
		openai.WithAzureCredential(cred),
		openai.WithChatMiddleware(af.LoggingMiddleware(logger)),
	)

	prompter := console.NewPrompter(os.Stdin, os.Stdout, console.ChatPrompt)
	return console.NewChatLoop(client, prompter, os.Stdout).Run(ctx)
}
