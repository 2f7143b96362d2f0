package filter

import (
	"context"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
)

// CategoriaCriteria describes a category listing request. Busqueda,
// Genero, SoloActivas and the age range are remote criteria; Estado and
// Texto are always evaluated locally. When several remote criteria are
// set, one endpoint is chosen (range, then search, then gender, then
// active-only) and the rest degrade to local predicates over its result.
type CategoriaCriteria struct {
	Busqueda    string
	Genero      string
	SoloActivas bool
	EdadMinima  *int
	EdadMaxima  *int
	Estado      string // "activa" or "inactiva"
	Texto       string
}

// HasRange reports whether both ends of the age range are set.
func (c CategoriaCriteria) HasRange() bool {
	return c.EdadMinima != nil && c.EdadMaxima != nil
}

// Load fetches categories through the best-matching endpoint and applies
// the remaining criteria locally. Local predicates run on range results
// too; the source behavior of returning range results unfiltered was a
// defect and is not reproduced.
func (c CategoriaCriteria) Load(ctx context.Context, api *apiclient.Client) ([]apiclient.Categoria, error) {
	var (
		cats []apiclient.Categoria
		err  error
	)

	remoteGenero := false
	remoteBusqueda := false
	switch {
	case c.HasRange():
		cats, err = api.CategoriasPorRangoEdad(ctx, *c.EdadMinima, *c.EdadMaxima)
	case c.Busqueda != "":
		cats, err = api.BuscarCategorias(ctx, c.Busqueda)
		remoteBusqueda = true
	case c.Genero != "":
		cats, err = api.CategoriasPorGenero(ctx, c.Genero)
		remoteGenero = true
	case c.SoloActivas:
		cats, err = api.ListCategoriasActivas(ctx)
	default:
		cats, err = api.ListCategorias(ctx)
	}
	if err != nil {
		return nil, err
	}

	var preds []Predicate[apiclient.Categoria]
	if c.Genero != "" && !remoteGenero {
		genero := c.Genero
		preds = append(preds, func(cat apiclient.Categoria) bool { return cat.Genero == genero })
	}
	if c.SoloActivas || c.Estado == "activa" {
		preds = append(preds, func(cat apiclient.Categoria) bool { return cat.Activo })
	}
	if c.Estado == "inactiva" {
		preds = append(preds, func(cat apiclient.Categoria) bool { return !cat.Activo })
	}
	if c.Busqueda != "" && !remoteBusqueda {
		term := c.Busqueda
		preds = append(preds, func(cat apiclient.Categoria) bool {
			return MatchesText(term, cat.Nombre, cat.Descripcion)
		})
	}
	if c.Texto != "" {
		term := c.Texto
		preds = append(preds, func(cat apiclient.Categoria) bool {
			return MatchesText(term, cat.Nombre, cat.Descripcion)
		})
	}
	return Apply(cats, preds...), nil
}

// PermisoCriteria describes a permission listing request. Busqueda and
// Modulo are remote; SoloActivos and Texto are local.
type PermisoCriteria struct {
	Busqueda    string
	Modulo      string
	SoloActivos bool
	Texto       string
}

// Load fetches permissions and applies the remaining criteria locally.
func (c PermisoCriteria) Load(ctx context.Context, api *apiclient.Client) ([]apiclient.Permiso, error) {
	var (
		perms []apiclient.Permiso
		err   error
	)

	remoteModulo := false
	switch {
	case c.Busqueda != "":
		perms, err = api.BuscarPermisos(ctx, c.Busqueda)
	case c.Modulo != "":
		perms, err = api.PermisosPorModulo(ctx, c.Modulo)
		remoteModulo = true
	default:
		perms, err = api.ListPermisos(ctx)
	}
	if err != nil {
		return nil, err
	}

	var preds []Predicate[apiclient.Permiso]
	if c.Modulo != "" && !remoteModulo {
		modulo := c.Modulo
		preds = append(preds, func(p apiclient.Permiso) bool { return p.Modulo == modulo })
	}
	if c.SoloActivos {
		preds = append(preds, func(p apiclient.Permiso) bool { return p.Activo })
	}
	if c.Texto != "" {
		term := c.Texto
		preds = append(preds, func(p apiclient.Permiso) bool {
			return MatchesText(term, p.Nombre, p.Slug, p.Descripcion)
		})
	}
	return Apply(perms, preds...), nil
}

// RolCriteria describes a role listing request.
type RolCriteria struct {
	Busqueda    string
	SoloActivos bool
	Texto       string
}

// Load fetches roles and applies the local criteria.
func (c RolCriteria) Load(ctx context.Context, api *apiclient.Client) ([]apiclient.Rol, error) {
	var (
		roles []apiclient.Rol
		err   error
	)
	if c.Busqueda != "" {
		roles, err = api.BuscarRoles(ctx, c.Busqueda)
	} else {
		roles, err = api.ListRoles(ctx)
	}
	if err != nil {
		return nil, err
	}

	var preds []Predicate[apiclient.Rol]
	if c.SoloActivos {
		preds = append(preds, func(r apiclient.Rol) bool { return r.Activo })
	}
	if c.Texto != "" {
		term := c.Texto
		preds = append(preds, func(r apiclient.Rol) bool {
			return MatchesText(term, r.Nombre, r.Slug, r.Descripcion)
		})
	}
	return Apply(roles, preds...), nil
}

// UsuarioCriteria describes a user listing request. Estado is a local
// status-flag equality filter.
type UsuarioCriteria struct {
	Busqueda string
	Estado   string
	Texto    string
}

// Load fetches users and applies the local criteria.
func (c UsuarioCriteria) Load(ctx context.Context, api *apiclient.Client) ([]apiclient.Usuario, error) {
	var (
		users []apiclient.Usuario
		err   error
	)
	if c.Busqueda != "" {
		users, err = api.BuscarUsuarios(ctx, c.Busqueda)
	} else {
		users, err = api.ListUsuarios(ctx)
	}
	if err != nil {
		return nil, err
	}

	var preds []Predicate[apiclient.Usuario]
	if c.Estado != "" {
		estado := c.Estado
		preds = append(preds, func(u apiclient.Usuario) bool { return u.Estado == estado })
	}
	if c.Texto != "" {
		term := c.Texto
		preds = append(preds, func(u apiclient.Usuario) bool {
			return MatchesText(term, u.Nombre, u.Apellido, u.Email)
		})
	}
	return Apply(users, preds...), nil
}
