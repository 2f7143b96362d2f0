package apiclient

import (
	"context"
	"fmt"
	"net/url"
)

// ListPermisos returns the full permission catalog.
func (c *Client) ListPermisos(ctx context.Context) ([]Permiso, error) {
	var perms []Permiso
	if err := c.Get(ctx, "/permisos", &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

// BuscarPermisos runs a server-side search across name, slug and description.
func (c *Client) BuscarPermisos(ctx context.Context, term string) ([]Permiso, error) {
	var perms []Permiso
	path := "/permisos/buscar?busqueda=" + url.QueryEscape(term)
	if err := c.Get(ctx, path, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

// PermisosPorModulo returns the permissions belonging to one module.
func (c *Client) PermisosPorModulo(ctx context.Context, modulo string) ([]Permiso, error) {
	var perms []Permiso
	path := "/permisos/modulo/" + url.PathEscape(modulo)
	if err := c.Get(ctx, path, &perms); err != nil {
		return nil, err
	}
	return perms, nil
}

// CreatePermiso creates a permission.
func (c *Client) CreatePermiso(ctx context.Context, req PermisoRequest) (*Permiso, error) {
	var perm Permiso
	if err := c.Post(ctx, "/permisos", req, &perm); err != nil {
		return nil, err
	}
	return &perm, nil
}

// UpdatePermiso updates a permission by ID.
func (c *Client) UpdatePermiso(ctx context.Context, id int64, req PermisoRequest) (*Permiso, error) {
	var perm Permiso
	if err := c.Put(ctx, fmt.Sprintf("/permisos/%d", id), req, &perm); err != nil {
		return nil, err
	}
	return &perm, nil
}

// DeletePermiso removes a permission.
func (c *Client) DeletePermiso(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/permisos/%d", id))
}
