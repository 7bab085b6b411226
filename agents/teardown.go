// Copyright (c) Microsoft. All rights reserved.

package agents

import (
	"context"
	"errors"
	"fmt"
)

// Resources lists the remote resources a sample owns for its lifetime.
type Resources struct {
	ThreadID string
	AgentID  string
	FileIDs  []string
}

// Teardown deletes the thread, then the agent, then any uploaded files.
// Every deletion is attempted; failures are logged and joined into the
// returned error.
func (c *Client) Teardown(ctx context.Context, res Resources) error {
	var errs []error
	record := func(err error) {
		if err == nil {
			return
		}
		c.logger.WarnContext(ctx, "teardown step failed", "error", err)
		errs = append(errs, err)
	}

	if res.ThreadID != "" {
		record(c.DeleteThread(ctx, res.ThreadID))
	}
	if res.AgentID != "" {
		record(c.DeleteAgent(ctx, res.AgentID))
	}
	for _, id := range res.FileIDs {
		record(c.DeleteFile(ctx, id))
	}

	if len(errs) > 0 {
		return fmt.Errorf("teardown: %w", errors.Join(errs...))
	}
	return nil
}
