// Copyright (c) Microsoft. All rights reserved.

package agents

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/go-resty/resty/v2"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

const (
	// DefaultAPIVersion is the persistent agents data-plane version.
	DefaultAPIVersion = "2025-05-01"

	// DefaultScope is the Entra ID scope for Azure AI Foundry projects.
	DefaultScope = "https://ai.azure.com/.default"

	defaultRequestTimeout = 60 * time.Second
)

// Client talks to the persistent agents endpoint of a Foundry project.
// All calls are synchronous and honor the context they are given.
type Client struct {
	rc       *resty.Client
	endpoint string
	cred     azcore.TokenCredential
	scopes   []string
	logger   *slog.Logger
}

// Verify interface compliance at compile time.
var _ RunService = (*Client)(nil)

// New creates a [Client] for the project endpoint, e.g.
// https://<resource>.services.ai.azure.com/api/projects/<project>.
// The credential supplies bearer tokens for every request.
func New(endpoint string, cred azcore.TokenCredential, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		apiVersion: DefaultAPIVersion,
		scopes:     []string{DefaultScope},
		timeout:    defaultRequestTimeout,
	}
	for _, o := range opts {
		o(cfg)
	}

	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: PROJECT_ENDPOINT %q is not an absolute URL", af.ErrInvalidSetting, endpoint)
	}
	if cred == nil {
		return nil, fmt.Errorf("%w: no credential provided", af.ErrAuth)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{}
	}
	rc := resty.NewWithClient(hc).
		SetBaseURL(endpoint).
		SetQueryParam("api-version", cfg.apiVersion).
		SetTimeout(cfg.timeout).
		SetHeader("Accept", "application/json")

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		rc:       rc,
		endpoint: endpoint,
		cred:     cred,
		scopes:   cfg.scopes,
		logger:   logger,
	}, nil
}

// Endpoint returns the normalized project endpoint.
func (c *Client) Endpoint() string { return c.endpoint }
