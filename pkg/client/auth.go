package client

import (
	"context"
	"time"
)

// User is the backend's account record.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// credentials is the register/login request body.
type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries the bearer token issued on login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, email, password string) (User, error) {
	var user User
	err := c.do(ctx, "POST", "/auth/register", credentials{Email: email, Password: password}, &user)
	return user, err
}

// Login exchanges email+password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (TokenResponse, error) {
	var token TokenResponse
	err := c.do(ctx, "POST", "/auth/login", credentials{Email: email, Password: password}, &token)
	return token, err
}
