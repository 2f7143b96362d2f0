package apiclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListCategorias returns every category, including soft-deleted inactive ones.
func (c *Client) ListCategorias(ctx context.Context) ([]Categoria, error) {
	var cats []Categoria
	if err := c.Get(ctx, "/categorias", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// ListCategoriasActivas returns only active categories.
func (c *Client) ListCategoriasActivas(ctx context.Context) ([]Categoria, error) {
	var cats []Categoria
	if err := c.Get(ctx, "/categorias/activas", &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// BuscarCategorias runs a server-side full-text search across name,
// description and slug columns.
func (c *Client) BuscarCategorias(ctx context.Context, term string) ([]Categoria, error) {
	var cats []Categoria
	path := "/categorias/buscar?busqueda=" + url.QueryEscape(term)
	if err := c.Get(ctx, path, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CategoriasPorGenero returns categories restricted to a gender.
func (c *Client) CategoriasPorGenero(ctx context.Context, genero string) ([]Categoria, error) {
	var cats []Categoria
	path := "/categorias/por-genero/" + url.PathEscape(genero)
	if err := c.Get(ctx, path, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// CategoriasPorRangoEdad returns categories whose age band overlaps the range.
func (c *Client) CategoriasPorRangoEdad(ctx context.Context, min, max int) ([]Categoria, error) {
	q := url.Values{}
	q.Set("edad_minima", strconv.Itoa(min))
	q.Set("edad_maxima", strconv.Itoa(max))

	var cats []Categoria
	if err := c.Get(ctx, "/categorias/por-rango-edad?"+q.Encode(), &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// GetCategoria returns one category by ID.
func (c *Client) GetCategoria(ctx context.Context, id int64) (*Categoria, error) {
	var cat Categoria
	if err := c.Get(ctx, fmt.Sprintf("/categorias/%d", id), &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// CreateCategoria creates a category. The server assigns the ID.
func (c *Client) CreateCategoria(ctx context.Context, req CategoriaRequest) (*Categoria, error) {
	var cat Categoria
	if err := c.Post(ctx, "/categorias", req, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// UpdateCategoria updates a category by ID.
func (c *Client) UpdateCategoria(ctx context.Context, id int64, req CategoriaRequest) (*Categoria, error) {
	var cat Categoria
	if err := c.Put(ctx, fmt.Sprintf("/categorias/%d", id), req, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// DeleteCategoria soft-deletes a category. A 400 means the category still
// has athletes assigned; the server message explains which constraint hit.
func (c *Client) DeleteCategoria(ctx context.Context, id int64) error {
	return c.Delete(ctx, fmt.Sprintf("/categorias/%d", id))
}

// RestoreCategoria undeletes a soft-deleted category.
func (c *Client) RestoreCategoria(ctx context.Context, id int64) error {
	return c.Post(ctx, fmt.Sprintf("/categorias/%d/restore", id), nil, nil)
}
