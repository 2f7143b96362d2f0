// Package assign manages the role-to-permission assignment workflow: a
// selection set seeded from the role's current permissions, toggled
// locally, and saved as a bulk replace.
package assign

import (
	"context"
	"sort"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
)

// Selection is the in-progress permission selection for one role.
type Selection struct {
	rolID   int64
	catalog []apiclient.Permiso
	ids     map[int64]struct{}
}

// Open seeds a selection from the role's currently assigned permissions
// against the full permission catalog.
func Open(rol *apiclient.Rol, catalog []apiclient.Permiso) *Selection {
	s := &Selection{
		rolID:   rol.ID,
		catalog: catalog,
		ids:     make(map[int64]struct{}, len(rol.Permisos)),
	}
	for _, p := range rol.Permisos {
		s.ids[p.ID] = struct{}{}
	}
	return s
}

// Has reports whether a permission is currently selected.
func (s *Selection) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle flips a single permission's membership.
func (s *Selection) Toggle(id int64) {
	if s.Has(id) {
		delete(s.ids, id)
		return
	}
	s.ids[id] = struct{}{}
}

// ToggleAll clears the selection when every catalog entry is selected,
// and selects the whole catalog otherwise.
func (s *Selection) ToggleAll() {
	if len(s.ids) == len(s.catalog) {
		s.ids = make(map[int64]struct{})
		return
	}
	for _, p := range s.catalog {
		s.ids[p.ID] = struct{}{}
	}
}

// Count returns the current selection size.
func (s *Selection) Count() int {
	return len(s.ids)
}

// IDs returns the selected permission IDs in ascending order.
func (s *Selection) IDs() []int64 {
	ids := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Save sends the entire selection as a bulk replace. The server swaps
// the role's permission set; nothing is merged.
func (s *Selection) Save(ctx context.Context, api *apiclient.Client) error {
	return api.AsignarPermisos(ctx, s.rolID, s.IDs())
}

// Group is a display bucket of permissions sharing a module.
type Group struct {
	Modulo   string
	Permisos []apiclient.Permiso
}

// DefaultGroup is the bucket for permissions without a module.
const DefaultGroup = "General"

// Grouped returns the catalog partitioned by module for display, with
// module-less permissions under "General". Groups and their members are
// sorted by name; grouping never affects the selection itself.
func (s *Selection) Grouped() []Group {
	byModulo := map[string][]apiclient.Permiso{}
	for _, p := range s.catalog {
		modulo := p.Modulo
		if modulo == "" {
			modulo = DefaultGroup
		}
		byModulo[modulo] = append(byModulo[modulo], p)
	}

	names := make([]string, 0, len(byModulo))
	for name := range byModulo {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		perms := byModulo[name]
		sort.Slice(perms, func(i, j int) bool { return perms[i].Nombre < perms[j].Nombre })
		groups = append(groups, Group{Modulo: name, Permisos: perms})
	}
	return groups
}
