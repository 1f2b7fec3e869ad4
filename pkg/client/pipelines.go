package client

import (
	"context"

	"github.com/Maroco0109/AgentForge-sub000/pkg/design"
)

// PipelineStatus is the backend's acknowledgement of a submitted design.
// Progress beyond this arrives over the conversation websocket.
type PipelineStatus struct {
	PipelineID string `json:"pipeline_id"`
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
}

// ExecuteDirect submits a design proposal for immediate execution,
// bypassing the conversational design phase.
func (c *Client) ExecuteDirect(ctx context.Context, d design.Design) (PipelineStatus, error) {
	var status PipelineStatus
	err := c.do(ctx, "POST", "/pipelines/execute-direct", d, &status)
	return status, err
}
