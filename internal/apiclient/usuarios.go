package apiclient

import (
	"context"
	"fmt"
	"net/url"
)

// ListUsuarios returns all user accounts.
func (c *Client) ListUsuarios(ctx context.Context) ([]Usuario, error) {
	var users []Usuario
	if err := c.Get(ctx, "/usuarios", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// BuscarUsuarios runs a server-side search across name, surname and email.
func (c *Client) BuscarUsuarios(ctx context.Context, term string) ([]Usuario, error) {
	var users []Usuario
	path := "/usuarios/buscar?busqueda=" + url.QueryEscape(term)
	if err := c.Get(ctx, path, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUsuario creates a user account.
func (c *Client) CreateUsuario(ctx context.Context, req UsuarioRequest) (*Usuario, error) {
	var user Usuario
	if err := c.Post(ctx, "/usuarios", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUsuario updates a user account by ID.
func (c *Client) UpdateUsuario(ctx context.Context, id int64, req UsuarioRequest) (*Usuario, error) {
	var user Usuario
	if err := c.Put(ctx, fmt.Sprintf("/usuarios/%d", id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUsuario removes a user account.
func (c *Client) DeleteUsuario(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/usuarios/%d", id))
}
