package client

import (
	"context"

	"github.com/Maroco0109/AgentForge-sub000/pkg/templates"
)

// Compile-time check: Client serves the templates resource.
var _ templates.Service = (*Client)(nil)

// List returns the caller's own templates.
func (c *Client) List(ctx context.Context) ([]templates.Template, error) {
	var out []templates.Template
	err := c.get(ctx, "/templates", &out)
	return out, err
}

// ListShared returns public templates from other users.
func (c *Client) ListShared(ctx context.Context) ([]templates.Template, error) {
	var out []templates.Template
	err := c.get(ctx, "/templates/shared", &out)
	return out, err
}

// Get returns one template by id.
func (c *Client) Get(ctx context.Context, id string) (templates.Template, error) {
	var out templates.Template
	err := c.get(ctx, "/templates/"+id, &out)
	return out, err
}

// Create saves a new template.
func (c *Client) Create(ctx context.Context, t templates.Template) (templates.Template, error) {
	var out templates.Template
	err := c.do(ctx, "POST", "/templates", t, &out)
	return out, err
}

// Update overwrites an existing template.
func (c *Client) Update(ctx context.Context, t templates.Template) (templates.Template, error) {
	var out templates.Template
	err := c.do(ctx, "PUT", "/templates/"+t.ID, t, &out)
	return out, err
}

// Delete removes a template.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/templates/"+id, nil, nil)
}

// Fork copies a template into the caller's account. The original is
// never mutated; the fork records its origin in ForkOf.
func (c *Client) Fork(ctx context.Context, id string) (templates.Template, error) {
	var out templates.Template
	err := c.do(ctx, "POST", "/templates/"+id+"/fork", nil, &out)
	return out, err
}

// SetShared toggles a template's public flag.
func (c *Client) SetShared(ctx context.Context, id string, public bool) (templates.Template, error) {
	var out templates.Template
	body := map[string]bool{"is_public": public}
	err := c.do(ctx, "PATCH", "/templates/"+id, body, &out)
	return out, err
}
