// Package templates manages saved pipeline templates: the only durable
// entity in the editor. Templates are user-owned, optionally public, and
// forkable; a fork is a new template owned by the forking user, the
// original is never mutated.
package templates

import (
	"context"
	"time"

	"github.com/Maroco0109/AgentForge-sub000/pkg/design"
)

// Template is a saved graph/design pair.
type Template struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Design      design.Design `json:"design"`
	OwnerID     string        `json:"owner_id"`
	Public      bool          `json:"is_public"`
	ForkOf      string        `json:"fork_of,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Service is the template REST resource.
// The api client implements it; Cache wraps any implementation.
type Service interface {
	// List returns the caller's own templates.
	List(ctx context.Context) ([]Template, error)

	// ListShared returns public templates from other users.
	ListShared(ctx context.Context) ([]Template, error)

	// Get returns one template by id.
	Get(ctx context.Context, id string) (Template, error)

	// Create saves a new template and returns it with server-assigned fields.
	Create(ctx context.Context, t Template) (Template, error)

	// Update overwrites an existing template.
	Update(ctx context.Context, t Template) (Template, error)

	// Delete removes a template.
	Delete(ctx context.Context, id string) error

	// Fork copies a template into the caller's account.
	Fork(ctx context.Context, id string) (Template, error)

	// SetShared toggles a template's public flag.
	SetShared(ctx context.Context, id string, public bool) (Template, error)
}
