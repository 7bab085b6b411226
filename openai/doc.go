// Copyright (c) Microsoft. All rights reserved.

// Package openai provides an [agentframework.ChatClient] implementation for
// the Azure OpenAI Chat Completions API exposed by an Azure AI Foundry
// project.
//
// Create a client bound to a model deployment and authenticate with an
// Entra ID credential:
//
//	cred, _ := azidentity.NewDefaultAzureCredential(nil)
//	baseURL, _ := openai.AzureDeploymentURL(endpoint, "gpt-4o")
//	client := openai.New("",
//	    openai.WithBaseURL(baseURL),
//	    openai.WithAPIVersion(openai.DefaultAPIVersion),
//	    openai.WithAzureCredential(cred),
//	)
//
// # Configuration
//
// Use functional options to configure the client:
//
//   - [WithModel]: set the default model
//   - [WithBaseURL]: override the API endpoint
//   - [WithAPIVersion]: append the api-version query parameter Azure requires
//   - [WithAzureCredential]: authenticate with an azcore.TokenCredential
//   - [WithHTTPClient]: provide a custom http.Client
//   - [WithHeaders]: add custom headers to every request
//
// # Testing
//
// The client uses an unexported transport interface internally.
// For testing, provide a mock http.Client via [WithHTTPClient]
// with a custom RoundTripper.
package openai
