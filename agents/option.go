// Copyright (c) Microsoft. All rights reserved.

package agents

import (
	"log/slog"
	"net/http"
	"time"
)

// clientConfig holds resolved configuration for the agents client.
type clientConfig struct {
	apiVersion string
	httpClient *http.Client
	scopes     []string
	timeout    time.Duration
	logger     *slog.Logger
}

// Option configures a [Client].
type Option func(*clientConfig)

// WithAPIVersion overrides the service api-version query parameter.
func WithAPIVersion(version string) Option {
	return func(c *clientConfig) { c.apiVersion = version }
}

// WithHTTPClient provides a custom http.Client for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) { c.httpClient = client }
}

// WithScopes overrides the Entra ID scopes requested from the credential.
func WithScopes(scopes ...string) Option {
	return func(c *clientConfig) { c.scopes = scopes }
}

// WithRequestTimeout bounds every individual HTTP request.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *clientConfig) { c.timeout = d }
}

// WithLogger sets the logger used for request diagnostics and teardown
// failures. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}
