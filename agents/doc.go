// Copyright (c) Microsoft. All rights reserved.

// Package agents is a client for the Azure AI Foundry persistent agents
// service: agents, threads, messages, runs, run steps and files.
//
// A conversation turn posts a user message to a thread, creates a run and
// waits for it with a [Poller]:
//
//	client, _ := agents.New(endpoint, cred)
//	agent, _ := client.CreateAgent(ctx, agents.CreateAgentRequest{
//	    Model:        "gpt-4o",
//	    Name:         "data-agent",
//	    Instructions: "Analyze the uploaded data.",
//	    Tools:        []agents.ToolDefinition{agents.CodeInterpreterTool()},
//	})
//	thread, _ := client.CreateThread(ctx)
//	_, _ = client.CreateMessage(ctx, thread.ID, agentframework.RoleUser, "Summarize it")
//	run, _ := client.CreateRun(ctx, thread.ID, agents.CreateRunRequest{AgentID: agent.ID})
//	run, err := agents.NewPoller(client).Poll(ctx, run)
//
// Runs that request tool approval (MCP tools with require_approval set) are
// resolved by the poller's [ApprovalPolicy]; [ApproveAll] approves every call.
package agents
