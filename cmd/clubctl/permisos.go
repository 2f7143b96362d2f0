package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
	"github.com/clubdeportivo/clubctl/internal/collection"
	"github.com/clubdeportivo/clubctl/internal/filter"
	"github.com/clubdeportivo/clubctl/internal/forms"
	"github.com/clubdeportivo/clubctl/internal/slug"
)

var permisosCmd = &cobra.Command{
	Use:     "permisos",
	Aliases: []string{"permiso", "permissions"},
	Short:   "Manage permissions",
	Long:    `List, create, update and delete the permissions that can be assigned to roles.`,
}

func init() {
	permisosCmd.AddCommand(permisosListCmd)
	permisosCmd.AddCommand(permisosCreateCmd)
	permisosCmd.AddCommand(permisosUpdateCmd)
	permisosCmd.AddCommand(permisosDeleteCmd)
}

func permisoStore(client *apiclient.Client) *collection.Store[apiclient.Permiso] {
	return collection.New(func(ctx context.Context) ([]apiclient.Permiso, error) {
		return client.ListPermisos(ctx)
	})
}

func validatePermiso(v *forms.Validator, req apiclient.PermisoRequest) {
	v.Required("nombre", req.Nombre)
	v.MaxLen("nombre", req.Nombre, forms.MaxNombreLen)
	v.MaxLen("slug", req.Slug, forms.MaxSlugLen)
	v.MaxLen("descripcion", req.Descripcion, forms.MaxDescripcionLen)
}

// findPermiso locates a permission in the catalog; the API has no
// single-record endpoint for permissions.
func findPermiso(ctx context.Context, client *apiclient.Client, id int64) (*apiclient.Permiso, error) {
	perms, err := client.ListPermisos(ctx)
	if err != nil {
		return nil, err
	}
	for i := range perms {
		if perms[i].ID == id {
			return &perms[i], nil
		}
	}
	return nil, fmt.Errorf("permission %d not found", id)
}

// ==================== List ====================

var (
	permListBuscar  string
	permListModulo  string
	permListActivos bool
	permListTexto   string
)

var permisosListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List permissions",
	Long: `List permissions grouped by module.

Examples:
  clubctl permisos list
  clubctl permisos list --modulo usuarios
  clubctl permisos list --buscar editar --activos`,
	Args: cobra.NoArgs,
	RunE: runPermisosList,
}

func init() {
	permisosListCmd.Flags().StringVar(&permListBuscar, "buscar", "", "Server-side full-text search")
	permisosListCmd.Flags().StringVar(&permListModulo, "modulo", "", "Filter by module")
	permisosListCmd.Flags().BoolVar(&permListActivos, "activos", false, "Only active permissions")
	permisosListCmd.Flags().StringVar(&permListTexto, "texto", "", "Local substring filter over name, slug and description")
}

func runPermisosList(cmd *cobra.Command, args []string) error {
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	criteria := filter.PermisoCriteria{
		Busqueda:    permListBuscar,
		Modulo:      permListModulo,
		SoloActivos: permListActivos,
		Texto:       permListTexto,
	}

	store := permisoStore(client)
	err = store.LoadWith(cmd.Context(), func(ctx context.Context) ([]apiclient.Permiso, error) {
		return criteria.Load(ctx, client)
	})
	if err != nil {
		return loadError(err, "list permissions")
	}

	perms := store.Items()
	if len(perms) == 0 {
		fmt.Fprintln(os.Stderr, "No permissions found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tSLUG\tMODULO\tACTIVO\tDESCRIPCION")
	for _, p := range perms {
		modulo := p.Modulo
		if modulo == "" {
			modulo = "General"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Nombre, p.Slug, modulo, yesNo(p.Activo), truncate(p.Descripcion, 40))
	}
	return w.Flush()
}

// ==================== Create ====================

var (
	permCreateNombre      string
	permCreateSlug        string
	permCreateDescripcion string
	permCreateModulo      string
	permCreateInactivo    bool
)

var permisosCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a permission",
	Long: `Create a permission. The slug is derived from the name when not given
explicitly.

Examples:
  clubctl permisos create --nombre "Ver reportes" --modulo reportes
  clubctl permisos create --nombre "Editar usuarios" --slug editar-usuarios --modulo usuarios`,
	Args: cobra.NoArgs,
	RunE: runPermisosCreate,
}

func init() {
	permisosCreateCmd.Flags().StringVar(&permCreateNombre, "nombre", "", "Permission name (required)")
	permisosCreateCmd.Flags().StringVar(&permCreateSlug, "slug", "", "Slug (derived from the name when omitted)")
	permisosCreateCmd.Flags().StringVar(&permCreateDescripcion, "descripcion", "", "Free-text description")
	permisosCreateCmd.Flags().StringVar(&permCreateModulo, "modulo", "", "Module the permission belongs to")
	permisosCreateCmd.Flags().BoolVar(&permCreateInactivo, "inactivo", false, "Create the permission inactive")

	_ = permisosCreateCmd.MarkFlagRequired("nombre")
}

func runPermisosCreate(cmd *cobra.Command, args []string) error {
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	permSlug := permCreateSlug
	if permSlug == "" {
		permSlug = slug.Make(permCreateNombre)
	}

	req := apiclient.PermisoRequest{
		Nombre:      permCreateNombre,
		Slug:        permSlug,
		Descripcion: permCreateDescripcion,
		Modulo:      permCreateModulo,
		Activo:      !permCreateInactivo,
	}

	store := permisoStore(client)
	form := forms.NewForm()
	form.Open()

	var created *apiclient.Permiso
	err = form.Submit(cmd.Context(),
		func(v *forms.Validator) { validatePermiso(v, req) },
		func(ctx context.Context) error {
			return store.Mutate(ctx, func(ctx context.Context) error {
				perm, err := client.CreatePermiso(ctx, req)
				if err != nil {
					return err
				}
				created = perm
				return nil
			})
		})
	if err != nil {
		return actionError(err, "create permission")
	}

	notifier.Successf("Permission %q created (ID %d, slug %s)", created.Nombre, created.ID, created.Slug)
	return nil
}

// ==================== Update ====================

var (
	permUpdateNombre      string
	permUpdateSlug        string
	permUpdateDescripcion string
	permUpdateModulo      string
	permUpdateActivo      bool
)

var permisosUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a permission",
	Long: `Update a permission. Fields not given keep their current value. The
slug is kept as-is unless --nombre changes without an explicit --slug,
in which case it is re-derived from the new name.`,
	Args: cobra.ExactArgs(1),
	RunE: runPermisosUpdate,
}

func init() {
	permisosUpdateCmd.Flags().StringVar(&permUpdateNombre, "nombre", "", "Permission name")
	permisosUpdateCmd.Flags().StringVar(&permUpdateSlug, "slug", "", "Slug")
	permisosUpdateCmd.Flags().StringVar(&permUpdateDescripcion, "descripcion", "", "Free-text description")
	permisosUpdateCmd.Flags().StringVar(&permUpdateModulo, "modulo", "", "Module the permission belongs to")
	permisosUpdateCmd.Flags().BoolVar(&permUpdateActivo, "activo", false, "Active flag")
}

func runPermisosUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	existing, err := findPermiso(cmd.Context(), client, id)
	if err != nil {
		return actionError(err, "fetch permission")
	}

	req := apiclient.PermisoRequest{
		Nombre:      existing.Nombre,
		Slug:        existing.Slug,
		Descripcion: existing.Descripcion,
		Modulo:      existing.Modulo,
		Activo:      existing.Activo,
	}
	if cmd.Flags().Changed("nombre") {
		req.Nombre = permUpdateNombre
		if !cmd.Flags().Changed("slug") {
			req.Slug = slug.Make(permUpdateNombre)
		}
	}
	if cmd.Flags().Changed("slug") {
		req.Slug = permUpdateSlug
	}
	if cmd.Flags().Changed("descripcion") {
		req.Descripcion = permUpdateDescripcion
	}
	if cmd.Flags().Changed("modulo") {
		req.Modulo = permUpdateModulo
	}
	if cmd.Flags().Changed("activo") {
		req.Activo = permUpdateActivo
	}

	store := permisoStore(client)
	form := forms.NewForm()
	form.OpenEdit(id)

	err = form.Submit(cmd.Context(),
		func(v *forms.Validator) { validatePermiso(v, req) },
		func(ctx context.Context) error {
			return store.Mutate(ctx, func(ctx context.Context) error {
				_, err := client.UpdatePermiso(ctx, id, req)
				return err
			})
		})
	if err != nil {
		return actionError(err, "update permission")
	}

	notifier.Successf("Permission %d updated", id)
	return nil
}

// ==================== Delete ====================

var permisosDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a permission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, err := getAuthenticatedClient()
		if err != nil {
			return err
		}

		store := permisoStore(client)
		err = store.Mutate(cmd.Context(), func(ctx context.Context) error {
			return client.DeletePermiso(ctx, id)
		})
		if err != nil {
			return actionError(err, "delete permission")
		}

		notifier.Successf("Permission %d deleted", id)
		return nil
	},
}
