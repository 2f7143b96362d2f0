package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
	"github.com/clubdeportivo/clubctl/internal/collection"
	"github.com/clubdeportivo/clubctl/internal/filter"
	"github.com/clubdeportivo/clubctl/internal/forms"
)

var usuariosCmd = &cobra.Command{
	Use:     "usuarios",
	Aliases: []string{"usuario", "users"},
	Short:   "Manage user accounts",
	Long:    `List, create, update and delete the user accounts of the club.`,
}

func init() {
	usuariosCmd.AddCommand(usuariosListCmd)
	usuariosCmd.AddCommand(usuariosCreateCmd)
	usuariosCmd.AddCommand(usuariosUpdateCmd)
	usuariosCmd.AddCommand(usuariosDeleteCmd)
}

var estadosValidos = []string{apiclient.EstadoActivo, apiclient.EstadoInactivo, apiclient.EstadoSuspendido}

func usuarioStore(client *apiclient.Client) *collection.Store[apiclient.Usuario] {
	return collection.New(func(ctx context.Context) ([]apiclient.Usuario, error) {
		return client.ListUsuarios(ctx)
	})
}

func validateUsuario(v *forms.Validator, req apiclient.UsuarioRequest) {
	v.Required("nombre", req.Nombre)
	v.MaxLen("nombre", req.Nombre, forms.MaxNombreLen)
	v.MaxLen("apellido", req.Apellido, forms.MaxNombreLen)
	v.Required("email", req.Email)
	v.OneOf("estado", req.Estado, estadosValidos...)
}

// findUsuario locates a user in the account list; the API has no
// single-record endpoint for users.
func findUsuario(ctx context.Context, client *apiclient.Client, id int64) (*apiclient.Usuario, error) {
	users, err := client.ListUsuarios(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, fmt.Errorf("user %d not found", id)
}

func rolNames(roles []apiclient.Rol) string {
	if len(roles) == 0 {
		return "-"
	}
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = r.Nombre
	}
	return strings.Join(names, ", ")
}

// ==================== List ====================

var (
	userListBuscar string
	userListEstado string
	userListTexto  string
)

var usuariosListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List user accounts",
	Long: `List user accounts.

Examples:
  clubctl usuarios list
  clubctl usuarios list --estado suspendido
  clubctl usuarios list --buscar garcia`,
	Args: cobra.NoArgs,
	RunE: runUsuariosList,
}

func init() {
	usuariosListCmd.Flags().StringVar(&userListBuscar, "buscar", "", "Server-side full-text search")
	usuariosListCmd.Flags().StringVar(&userListEstado, "estado", "", "Filter by account status (activo, inactivo, suspendido)")
	usuariosListCmd.Flags().StringVar(&userListTexto, "texto", "", "Local substring filter over name and email")
}

func runUsuariosList(cmd *cobra.Command, args []string) error {
	if userListEstado != "" && !validEstado(userListEstado) {
		return fmt.Errorf("invalid --estado %q (use activo, inactivo or suspendido)", userListEstado)
	}

	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	criteria := filter.UsuarioCriteria{
		Busqueda: userListBuscar,
		Estado:   userListEstado,
		Texto:    userListTexto,
	}

	store := usuarioStore(client)
	err = store.LoadWith(cmd.Context(), func(ctx context.Context) ([]apiclient.Usuario, error) {
		return criteria.Load(ctx, client)
	})
	if err != nil {
		return loadError(err, "list users")
	}

	users := store.Items()
	if len(users) == 0 {
		fmt.Fprintln(os.Stderr, "No users found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tESTADO\tROLES")
	for _, u := range users {
		nombre := strings.TrimSpace(u.Nombre + " " + u.Apellido)
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, nombre, u.Email, u.Estado, rolNames(u.Roles))
	}
	return w.Flush()
}

func validEstado(estado string) bool {
	for _, e := range estadosValidos {
		if estado == e {
			return true
		}
	}
	return false
}

// ==================== Create ====================

var (
	userCreateNombre   string
	userCreateApellido string
	userCreateEmail    string
	userCreatePassword string
	userCreateEstado   string
)

var usuariosCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user account",
	Long: `Create a user account. The account starts active unless --estado says
otherwise.

Examples:
  clubctl usuarios create --nombre Ana --apellido García --email ana@club.example --password s3cret`,
	Args: cobra.NoArgs,
	RunE: runUsuariosCreate,
}

func init() {
	usuariosCreateCmd.Flags().StringVar(&userCreateNombre, "nombre", "", "First name (required)")
	usuariosCreateCmd.Flags().StringVar(&userCreateApellido, "apellido", "", "Last name")
	usuariosCreateCmd.Flags().StringVar(&userCreateEmail, "email", "", "Email address (required)")
	usuariosCreateCmd.Flags().StringVar(&userCreatePassword, "password", "", "Initial password (required)")
	usuariosCreateCmd.Flags().StringVar(&userCreateEstado, "estado", apiclient.EstadoActivo, "Account status (activo, inactivo, suspendido)")

	_ = usuariosCreateCmd.MarkFlagRequired("nombre")
	_ = usuariosCreateCmd.MarkFlagRequired("email")
	_ = usuariosCreateCmd.MarkFlagRequired("password")
}

func runUsuariosCreate(cmd *cobra.Command, args []string) error {
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	req := apiclient.UsuarioRequest{
		Nombre:   userCreateNombre,
		Apellido: userCreateApellido,
		Email:    userCreateEmail,
		Password: userCreatePassword,
		Estado:   userCreateEstado,
	}

	store := usuarioStore(client)
	form := forms.NewForm()
	form.Open()

	var created *apiclient.Usuario
	err = form.Submit(cmd.Context(),
		func(v *forms.Validator) {
			validateUsuario(v, req)
			v.Required("password", req.Password)
		},
		func(ctx context.Context) error {
			return store.Mutate(ctx, func(ctx context.Context) error {
				user, err := client.CreateUsuario(ctx, req)
				if err != nil {
					return err
				}
				created = user
				return nil
			})
		})
	if err != nil {
		return actionError(err, "create user")
	}

	notifier.Successf("User %s created (ID %d)", created.Email, created.ID)
	return nil
}

// ==================== Update ====================

var (
	userUpdateNombre   string
	userUpdateApellido string
	userUpdateEmail    string
	userUpdatePassword string
	userUpdateEstado   string
)

var usuariosUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user account",
	Long: `Update a user account. Fields not given keep their current value; the
password only changes when --password is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runUsuariosUpdate,
}

func init() {
	usuariosUpdateCmd.Flags().StringVar(&userUpdateNombre, "nombre", "", "First name")
	usuariosUpdateCmd.Flags().StringVar(&userUpdateApellido, "apellido", "", "Last name")
	usuariosUpdateCmd.Flags().StringVar(&userUpdateEmail, "email", "", "Email address")
	usuariosUpdateCmd.Flags().StringVar(&userUpdatePassword, "password", "", "New password")
	usuariosUpdateCmd.Flags().StringVar(&userUpdateEstado, "estado", "", "Account status (activo, inactivo, suspendido)")
}

func runUsuariosUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	existing, err := findUsuario(cmd.Context(), client, id)
	if err != nil {
		return actionError(err, "fetch user")
	}

	req := apiclient.UsuarioRequest{
		Nombre:   existing.Nombre,
		Apellido: existing.Apellido,
		Email:    existing.Email,
		Estado:   existing.Estado,
	}
	if cmd.Flags().Changed("nombre") {
		req.Nombre = userUpdateNombre
	}
	if cmd.Flags().Changed("apellido") {
		req.Apellido = userUpdateApellido
	}
	if cmd.Flags().Changed("email") {
		req.Email = userUpdateEmail
	}
	if cmd.Flags().Changed("password") {
		req.Password = userUpdatePassword
	}
	if cmd.Flags().Changed("estado") {
		req.Estado = userUpdateEstado
	}

	store := usuarioStore(client)
	form := forms.NewForm()
	form.OpenEdit(id)

	err = form.Submit(cmd.Context(),
		func(v *forms.Validator) { validateUsuario(v, req) },
		func(ctx context.Context) error {
			return store.Mutate(ctx, func(ctx context.Context) error {
				_, err := client.UpdateUsuario(ctx, id, req)
				return err
			})
		})
	if err != nil {
		return actionError(err, "update user")
	}

	notifier.Successf("User %d updated", id)
	return nil
}

// ==================== Delete ====================

var usuariosDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user account",
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

		store := usuarioStore(client)
		err = store.Mutate(cmd.Context(), func(ctx context.Context) error {
			return client.DeleteUsuario(ctx, id)
		})
		if err != nil {
			return actionError(err, "delete user")
		}

		notifier.Successf("User %d deleted", id)
		return nil
	},
}
