// Copyright (c) Microsoft. All rights reserved.

package settings

import (
	"fmt"
	"strconv"
	"time"

	af "github.com/microsoft/agent-labs/go/agentframework"
)

// Setting names.
const (
	KeyProjectEndpoint     = "PROJECT_ENDPOINT"
	KeyModelDeployment     = "MODEL_DEPLOYMENT"
	KeyModelDeploymentName = "MODEL_DEPLOYMENT_NAME"
	KeyPollInterval        = "AGENT_POLL_INTERVAL"
	KeyRunTimeout          = "AGENT_RUN_TIMEOUT"
	KeyMCPServerURL        = "MCP_SERVER_URL"
	KeyMCPServerLabel      = "MCP_SERVER_LABEL"
	KeyDataFile            = "DATA_FILE"
	KeyDebug               = "DEBUG"
)

// Defaults for optional settings.
const (
	DefaultPollInterval   = 500 * time.Millisecond
	DefaultRunTimeout     = 10 * time.Minute
	DefaultMCPServerURL   = "https://learn.microsoft.com/api/mcp"
	DefaultMCPServerLabel = "mslearn"
	DefaultDataFile       = "data.txt"
)

// Config holds the resolved settings of a lab program.
type Config struct {
	ProjectEndpoint string
	ModelDeployment string
	PollInterval    time.Duration
	RunTimeout      time.Duration
	MCPServerURL    string
	MCPServerLabel  string
	DataFile        string
	Debug           bool
}

// Load resolves a [Config]. PROJECT_ENDPOINT and one of MODEL_DEPLOYMENT or
// MODEL_DEPLOYMENT_NAME are required.
func Load(r *Resolver) (*Config, error) {
	endpoint, err := r.Require(KeyProjectEndpoint)
	if err != nil {
		return nil, err
	}
	deployment, err := r.Require(KeyModelDeployment, KeyModelDeploymentName)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ProjectEndpoint: endpoint,
		ModelDeployment: deployment,
		MCPServerURL:    r.valueOr(KeyMCPServerURL, DefaultMCPServerURL),
		MCPServerLabel:  r.valueOr(KeyMCPServerLabel, DefaultMCPServerLabel),
		DataFile:        r.valueOr(KeyDataFile, DefaultDataFile),
	}
	if cfg.PollInterval, err = r.duration(KeyPollInterval, DefaultPollInterval); err != nil {
		return nil, err
	}
	if cfg.RunTimeout, err = r.duration(KeyRunTimeout, DefaultRunTimeout); err != nil {
		return nil, err
	}
	if v, ok := r.Lookup(KeyDebug); ok {
		b, perr := strconv.ParseBool(v)
		cfg.Debug = perr != nil || b
	}
	return cfg, nil
}

func (r *Resolver) valueOr(key, def string) string {
	if v, ok := r.Lookup(key); ok {
		return v
	}
	return def
}

func (r *Resolver) duration(key string, def time.Duration) (time.Duration, error) {
	v, ok := r.Lookup(key)
	if !ok {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: %s=%q is not a positive duration", af.ErrInvalidSetting, key, v)
	}
	return d, nil
}
