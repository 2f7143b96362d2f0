package apiclient

import (
	"context"
	"fmt"
	"net/url"
)

// ListRoles returns all roles with their assigned permissions.
func (c *Client) ListRoles(ctx context.Context) ([]Rol, error) {
	var roles []Rol
	if err := c.Get(ctx, "/roles", &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// BuscarRoles runs a server-side search across name, slug and description.
func (c *Client) BuscarRoles(ctx context.Context, term string) ([]Rol, error) {
	var roles []Rol
	path := "/roles/buscar?busqueda=" + url.QueryEscape(term)
	if err := c.Get(ctx, path, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// GetRol returns one role by ID, including its permission assignments.
func (c *Client) GetRol(ctx context.Context, id int64) (*Rol, error) {
	var rol Rol
	if err := c.Get(ctx, fmt.Sprintf("/roles/%d", id), &rol); err != nil {
		return nil, err
	}
	return &rol, nil
}

// CreateRol creates a role.
func (c *Client) CreateRol(ctx context.Context, req RolRequest) (*Rol, error) {
	var rol Rol
	if err := c.Post(ctx, "/roles", req, &rol); err != nil {
		return nil, err
	}
	return &rol, nil
}

// UpdateRol updates a role by ID.
func (c *Client) UpdateRol(ctx context.Context, id int64, req RolRequest) (*Rol, error) {
	var rol Rol
	if err := c.Put(ctx, fmt.Sprintf("/roles/%d", id), req, &rol); err != nil {
		return nil, err
	}
	return &rol, nil
}

// DeleteRol removes a role.
func (c *Client) DeleteRol(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/roles/%d", id))
}

// asignarPermisosRequest is the bulk-replace payload for role permissions.
type asignarPermisosRequest struct {
	Permisos []int64 `json:"permisos"`
}

// AsignarPermisos replaces the role's permission set with exactly the
// given IDs. The server replaces, never merges.
func (c *Client) AsignarPermisos(ctx context.Context, rolID int64, permisoIDs []int64) error {
	req := asignarPermisosRequest{Permisos: permisoIDs}
	if req.Permisos == nil {
		req.Permisos = []int64{}
	}
	return c.Post(ctx, fmt.Sprintf("/roles/%d/asignar-permisos", rolID), req, nil)
}
