package client

import (
	"context"
	"fmt"
	"time"
)

// StatsSummary aggregates usage and cost across the account.
type StatsSummary struct {
	TotalCost         float64 `json:"total_cost"`
	TotalTokens       int64   `json:"total_tokens"`
	PipelineRuns      int     `json:"pipeline_runs"`
	SuccessRate       float64 `json:"success_rate"`
	ConversationCount int     `json:"conversation_count"`
}

// UsagePoint is one day of usage history.
type UsagePoint struct {
	Date   string  `json:"date"`
	Cost   float64 `json:"cost"`
	Tokens int64   `json:"tokens"`
}

// PipelineRun is one row of pipeline history.
type PipelineRun struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Status     string    `json:"status"`
	AgentCount int       `json:"agent_count"`
	Cost       float64   `json:"cost"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

// GetStatsSummary returns the dashboard summary.
func (c *Client) GetStatsSummary(ctx context.Context) (StatsSummary, error) {
	var summary StatsSummary
	err := c.get(ctx, "/stats/summary", &summary)
	return summary, err
}

// GetUsageHistory returns per-day usage for the trailing window.
func (c *Client) GetUsageHistory(ctx context.Context, days int) ([]UsagePoint, error) {
	var points []UsagePoint
	err := c.get(ctx, fmt.Sprintf("/stats/usage-history?days=%d", days), &points)
	return points, err
}

// GetPipelineHistory returns recent pipeline runs, newest first.
func (c *Client) GetPipelineHistory(ctx context.Context, limit int) ([]PipelineRun, error) {
	var runs []PipelineRun
	err := c.get(ctx, fmt.Sprintf("/stats/pipeline-history?limit=%d", limit), &runs)
	return runs, err
}
