package client

import (
	"context"
	"time"
)

// Conversation is one chat thread with the orchestrator.
type Conversation struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListConversations returns the caller's conversations.
func (c *Client) ListConversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation
	err := c.get(ctx, "/conversations", &conversations)
	return conversations, err
}

// CreateConversation starts a new conversation.
func (c *Client) CreateConversation(ctx context.Context, title string) (Conversation, error) {
	var conversation Conversation
	body := map[string]string{"title": title}
	err := c.do(ctx, "POST", "/conversations", body, &conversation)
	return conversation, err
}
