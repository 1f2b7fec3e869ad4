package client

import (
	"context"
	"time"
)

// APIKey is a stored provider credential. The backend never returns the
// full key after creation, only a masked suffix.
type APIKey struct {
	Provider  string    `json:"provider"`
	MaskedKey string    `json:"masked_key"`
	CreatedAt time.Time `json:"created_at"`
}

// ListAPIKeys returns the providers with stored credentials.
func (c *Client) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	var keys []APIKey
	err := c.get(ctx, "/settings/api-keys", &keys)
	return keys, err
}

// PutAPIKey stores or replaces the credential for a provider.
func (c *Client) PutAPIKey(ctx context.Context, provider, key string) (APIKey, error) {
	var stored APIKey
	body := map[string]string{"provider": provider, "api_key": key}
	err := c.do(ctx, "PUT", "/settings/api-keys/"+provider, body, &stored)
	return stored, err
}

// DeleteAPIKey removes a provider's credential.
func (c *Client) DeleteAPIKey(ctx context.Context, provider string) error {
	return c.do(ctx, "DELETE", "/settings/api-keys/"+provider, nil, nil)
}
