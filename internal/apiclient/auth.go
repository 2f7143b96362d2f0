package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// loginRequest is the login payload.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates with the server. The login envelope is special:
// the token travels at the top level next to the user info in data.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	env, err := c.do(ctx, http.MethodPost, "/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	resp := LoginResponse{Token: env.Token}
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &resp.User); err != nil {
			return nil, fmt.Errorf("decoding user info: %w", err)
		}
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("login response carried no token")
	}
	return &resp, nil
}

// Me returns the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*Usuario, error) {
	var user Usuario
	if err := c.Get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
