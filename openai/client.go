// Copyright (c) Microsoft. All rights reserved.

package openai

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

// DefaultAPIVersion is the Azure OpenAI data-plane version used by the labs.
const DefaultAPIVersion = "2024-10-21"

// Client implements [agentframework.ChatClient] using the Chat Completions
// API. Use [New] to create one.
type Client struct {
	tp      transport
	model   string
	handler af.ChatHandler
}

// Verify interface compliance at compile time.
var _ af.ChatClient = (*Client)(nil)

// New creates a [Client] with the given API key and options. Pass an empty
// key together with [WithAzureCredential] for Entra ID authentication.
func New(apiKey string, opts ...Option) *Client {
	cfg := &clientConfig{}
	for _, o := range opts {
		o(cfg)
	}
	c := &Client{
		tp:    newHTTPTransport(apiKey, cfg),
		model: cfg.model,
	}
	c.handler = af.ChainChatMiddleware(c.coreResponse, cfg.chatMiddleware...)
	return c
}

// AzureDeploymentURL derives the chat completions base URL of a model
// deployment from a Foundry project endpoint such as
// https://<resource>.services.ai.azure.com/api/projects/<project>.
func AzureDeploymentURL(projectEndpoint, deployment string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(projectEndpoint))
	if err != nil {
		return "", fmt.Errorf("%w: PROJECT_ENDPOINT: %v", af.ErrInvalidSetting, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: PROJECT_ENDPOINT %q is not an absolute URL", af.ErrInvalidSetting, projectEndpoint)
	}
	return u.Scheme + "://" + u.Host + "/openai/deployments/" + url.PathEscape(deployment), nil
}

// Response sends a chat completion request carrying the full message history
// and returns the complete response.
func (c *Client) Response(ctx context.Context, messages []af.Message, opts *af.ChatOptions) (*af.ChatResponse, error) {
	return c.handler(ctx, messages, opts)
}

// coreResponse is the base implementation called by the middleware chain.
func (c *Client) coreResponse(ctx context.Context, messages []af.Message, opts *af.ChatOptions) (*af.ChatResponse, error) {
	req := buildRequest(messages, opts, c.model)

	resp, err := c.tp.do(ctx, "POST", "/chat/completions", req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response body: %v", af.ErrService, err)
	}

	raw, err := unmarshalChatResponse(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse response: %v", af.ErrInvalidResponse, err)
	}

	result := parseChatResponse(raw)
	result.Raw = raw
	return result, nil
}
