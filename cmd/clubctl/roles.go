package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
	"github.com/clubdeportivo/clubctl/internal/assign"
	"github.com/clubdeportivo/clubctl/internal/collection"
	"github.com/clubdeportivo/clubctl/internal/filter"
	"github.com/clubdeportivo/clubctl/internal/forms"
	"github.com/clubdeportivo/clubctl/internal/slug"
)

var rolesCmd = &cobra.Command{
	Use:     "roles",
	Aliases: []string{"rol", "role"},
	Short:   "Manage roles",
	Long:    `List, create, update and delete roles, and manage their permission assignments.`,
}

func init() {
	rolesCmd.AddCommand(rolesListCmd)
	rolesCmd.AddCommand(rolesCreateCmd)
	rolesCmd.AddCommand(rolesUpdateCmd)
	rolesCmd.AddCommand(rolesDeleteCmd)
	rolesCmd.AddCommand(rolesPermisosCmd)
	rolesCmd.AddCommand(rolesAsignarCmd)
}

func rolStore(client *apiclient.Client) *collection.Store[apiclient.Rol] {
	return collection.New(func(ctx context.Context) ([]apiclient.Rol, error) {
		return client.ListRoles(ctx)
	})
}

func validateRol(v *forms.Validator, req apiclient.RolRequest) {
	v.Required("nombre", req.Nombre)
	v.MaxLen("nombre", req.Nombre, forms.MaxNombreLen)
	v.MaxLen("slug", req.Slug, forms.MaxSlugLen)
	v.MaxLen("descripcion", req.Descripcion, forms.MaxDescripcionLen)
}

// ==================== List ====================

var (
	rolListBuscar  string
	rolListActivos bool
	rolListTexto   string
)

var rolesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List roles",
	Args:    cobra.NoArgs,
	RunE:    runRolesList,
}

func init() {
	rolesListCmd.Flags().StringVar(&rolListBuscar, "buscar", "", "Server-side full-text search")
	rolesListCmd.Flags().BoolVar(&rolListActivos, "activos", false, "Only active roles")
	rolesListCmd.Flags().StringVar(&rolListTexto, "texto", "", "Local substring filter over name, slug and description")
}

func runRolesList(cmd *cobra.Command, args []string) error {
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	criteria := filter.RolCriteria{
		Busqueda:    rolListBuscar,
		SoloActivos: rolListActivos,
		Texto:       rolListTexto,
	}

	store := rolStore(client)
	err = store.LoadWith(cmd.Context(), func(ctx context.Context) ([]apiclient.Rol, error) {
		return criteria.Load(ctx, client)
	})
	if err != nil {
		return loadError(err, "list roles")
	}

	roles := store.Items()
	if len(roles) == 0 {
		fmt.Fprintln(os.Stderr, "No roles found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tSLUG\tACTIVO\tPERMISOS\tDESCRIPCION")
	for _, r := range roles {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\n",
			r.ID, r.Nombre, r.Slug, yesNo(r.Activo), len(r.Permisos), truncate(r.Descripcion, 40))
	}
	return w.Flush()
}

// ==================== Create ====================

var (
	rolCreateNombre      string
	rolCreateSlug        string
	rolCreateDescripcion string
	rolCreateInactivo    bool
)

var rolesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a role",
	Long: `Create a role. The slug is derived from the name when not given
explicitly. Permissions are assigned afterwards with 'clubctl roles asignar'.

Examples:
  clubctl roles create --nombre "Entrenador"
  clubctl roles create --nombre "Administrador" --descripcion "Acceso total"`,
	Args: cobra.NoArgs,
	RunE: runRolesCreate,
}

func init() {
	rolesCreateCmd.Flags().StringVar(&rolCreateNombre, "nombre", "", "Role name (required)")
	rolesCreateCmd.Flags().StringVar(&rolCreateSlug, "slug", "", "Slug (derived from the name when omitted)")
	rolesCreateCmd.Flags().StringVar(&rolCreateDescripcion, "descripcion", "", "Free-text description")
	rolesCreateCmd.Flags().BoolVar(&rolCreateInactivo, "inactivo", false, "Create the role inactive")

	_ = rolesCreateCmd.MarkFlagRequired("nombre")
}

func runRolesCreate(cmd *cobra.Command, args []string) error {
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	rolSlug := rolCreateSlug
	if rolSlug == "" {
		rolSlug = slug.Make(rolCreateNombre)
	}

	req := apiclient.RolRequest{
		Nombre:      rolCreateNombre,
		Slug:        rolSlug,
		Descripcion: rolCreateDescripcion,
		Activo:      !rolCreateInactivo,
	}

	store := rolStore(client)
	form := forms.NewForm()
	form.Open()

	var created *apiclient.Rol
	err = form.Submit(cmd.Context(),
		func(v *forms.Validator) { validateRol(v, req) },
		func(ctx context.Context) error {
			return store.Mutate(ctx, func(ctx context.Context) error {
				rol, err := client.CreateRol(ctx, req)
				if err != nil {
					return err
				}
				created = rol
				return nil
			})
		})
	if err != nil {
		return actionError(err, "create role")
	}

	notifier.Successf("Role %q created (ID %d, slug %s)", created.Nombre, created.ID, created.Slug)
	return nil
}

// ==================== Update ====================

var (
	rolUpdateNombre      string
	rolUpdateSlug        string
	rolUpdateDescripcion string
	rolUpdateActivo      bool
)

var rolesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a role",
	Long: `Update a role. Fields not given keep their current value. The slug is
re-derived when --nombre changes without an explicit --slug.`,
	Args: cobra.ExactArgs(1),
	RunE: runRolesUpdate,
}

func init() {
	rolesUpdateCmd.Flags().StringVar(&rolUpdateNombre, "nombre", "", "Role name")
	rolesUpdateCmd.Flags().StringVar(&rolUpdateSlug, "slug", "", "Slug")
	rolesUpdateCmd.Flags().StringVar(&rolUpdateDescripcion, "descripcion", "", "Free-text description")
	rolesUpdateCmd.Flags().BoolVar(&rolUpdateActivo, "activo", false, "Active flag")
}

func runRolesUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	existing, err := client.GetRol(cmd.Context(), id)
	if err != nil {
		return actionError(err, "fetch role")
	}

	req := apiclient.RolRequest{
		Nombre:      existing.Nombre,
		Slug:        existing.Slug,
		Descripcion: existing.Descripcion,
		Activo:      existing.Activo,
	}
	if cmd.Flags().Changed("nombre") {
		req.Nombre = rolUpdateNombre
		if !cmd.Flags().Changed("slug") {
			req.Slug = slug.Make(rolUpdateNombre)
		}
	}
	if cmd.Flags().Changed("slug") {
		req.Slug = rolUpdateSlug
	}
	if cmd.Flags().Changed("descripcion") {
		req.Descripcion = rolUpdateDescripcion
	}
	if cmd.Flags().Changed("activo") {
		req.Activo = rolUpdateActivo
	}

	store := rolStore(client)
	form := forms.NewForm()
	form.OpenEdit(id)

	err = form.Submit(cmd.Context(),
		func(v *forms.Validator) { validateRol(v, req) },
		func(ctx context.Context) error {
			return store.Mutate(ctx, func(ctx context.Context) error {
				_, err := client.UpdateRol(ctx, id, req)
				return err
			})
		})
	if err != nil {
		return actionError(err, "update role")
	}

	notifier.Successf("Role %d updated", id)
	return nil
}

// ==================== Delete ====================

var rolesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a role",
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

		store := rolStore(client)
		err = store.Mutate(cmd.Context(), func(ctx context.Context) error {
			return client.DeleteRol(ctx, id)
		})
		if err != nil {
			return actionError(err, "delete role")
		}

		notifier.Successf("Role %d deleted", id)
		return nil
	},
}

// ==================== Permission assignment ====================

// openSelection loads the role and the full permission catalog and
// seeds the selection from the role's current assignments.
func openSelection(ctx context.Context, client *apiclient.Client, rolID int64) (*assign.Selection, *apiclient.Rol, error) {
	rol, err := client.GetRol(ctx, rolID)
	if err != nil {
		return nil, nil, err
	}
	catalog, err := client.ListPermisos(ctx)
	if err != nil {
		return nil, nil, err
	}
	return assign.Open(rol, catalog), rol, nil
}

var rolesPermisosCmd = &cobra.Command{
	Use:   "permisos <id>",
	Short: "Show a role's permission assignments",
	Long: `Show the full permission catalog grouped by module, marking the
permissions currently assigned to the role.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		client, err := getAuthenticatedClient()
		if err != nil {
			return err
		}

		sel, rol, err := openSelection(cmd.Context(), client, id)
		if err != nil {
			return actionError(err, "fetch role permissions")
		}

		fmt.Printf("Role %q (ID %d): %d permission(s) assigned\n", rol.Nombre, rol.ID, sel.Count())
		for _, group := range sel.Grouped() {
			fmt.Printf("\n%s\n", group.Modulo)
			for _, p := range group.Permisos {
				mark := " "
				if sel.Has(p.ID) {
					mark = "x"
				}
				fmt.Printf("  [%s] %d  %s (%s)\n", mark, p.ID, p.Nombre, p.Slug)
			}
		}
		return nil
	},
}

var (
	asignarToggle []int64
	asignarTodos  bool
)

var rolesAsignarCmd = &cobra.Command{
	Use:   "asignar <id>",
	Short: "Change a role's permission assignments",
	Long: `Toggle permissions on a role and save the result. The selection starts
from the role's current assignments; each --toggle flips one permission
and --todos flips the whole catalog (clears when everything is selected,
selects everything otherwise). Saving replaces the role's entire
permission set on the server.

Examples:
  clubctl roles asignar 3 --toggle 7 --toggle 12
  clubctl roles asignar 3 --todos`,
	Args: cobra.ExactArgs(1),
	RunE: runRolesAsignar,
}

func init() {
	rolesAsignarCmd.Flags().Int64SliceVar(&asignarToggle, "toggle", nil, "Permission ID to toggle (repeatable)")
	rolesAsignarCmd.Flags().BoolVar(&asignarTodos, "todos", false, "Toggle the whole catalog")
}

func runRolesAsignar(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if len(asignarToggle) == 0 && !asignarTodos {
		return fmt.Errorf("nothing to change: pass --toggle or --todos")
	}
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	sel, rol, err := openSelection(cmd.Context(), client, id)
	if err != nil {
		return actionError(err, "fetch role permissions")
	}

	if asignarTodos {
		sel.ToggleAll()
	}
	for _, permID := range asignarToggle {
		sel.Toggle(permID)
	}

	if err := sel.Save(cmd.Context(), client); err != nil {
		return actionError(err, "assign permissions")
	}

	notifier.Successf("Role %q now has %d permission(s)", rol.Nombre, sel.Count())
	return nil
}
