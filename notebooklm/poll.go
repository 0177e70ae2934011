package notebooklm

import (
	"context"
	"fmt"
	"time"

	"github.com/crosszan/nlm/rpc"
	vo "github.com/crosszan/nlm/vo"
)

// DefaultPollInterval is how often WaitForCompletion checks a task when the
// caller passes no interval.
const DefaultPollInterval = 10 * time.Second

// WaitForCompletion polls a generation task until it reaches a terminal
// state (completed or failed). The deadline comes from ctx; hitting it
// returns rpc.ErrTimeout, distinct from protocol errors. Abandoning the
// loop does not cancel generation server-side; there is no cancel RPC.
func (c *Client) WaitForCompletion(ctx context.Context, notebookID, taskID string, interval time.Duration) (*vo.GenerationStatus, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		status, err := c.PollGeneration(ctx, notebookID, taskID)
		if err != nil {
			return nil, err
		}

		if status.IsTerminal() {
			if status.Status == "failed" && status.IsRateLimited() {
				return status, fmt.Errorf("%w: %s", rpc.ErrRateLimited, status.Error)
			}
			return status, nil
		}

		c.log.Debug("generation not ready", "task", taskID, "status", status.Status)

		select {
		case <-ctx.Done():
			return status, fmt.Errorf("%w: task %s still %s", rpc.ErrTimeout, taskID, status.Status)
		case <-ticker.C:
		}
	}
}
