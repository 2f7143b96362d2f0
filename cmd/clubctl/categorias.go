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
)

var categoriasCmd = &cobra.Command{
	Use:     "categorias",
	Aliases: []string{"categoria", "categories"},
	Short:   "Manage athlete categories",
	Long:    `List, create, update, delete and restore the age/gender categories athletes are grouped into.`,
}

func init() {
	categoriasCmd.AddCommand(categoriasListCmd)
	categoriasCmd.AddCommand(categoriasCreateCmd)
	categoriasCmd.AddCommand(categoriasUpdateCmd)
	categoriasCmd.AddCommand(categoriasDeleteCmd)
	categoriasCmd.AddCommand(categoriasRestoreCmd)
}

// categoriaStore builds the collection store whose unfiltered view is
// the full category list.
func categoriaStore(client *apiclient.Client) *collection.Store[apiclient.Categoria] {
	return collection.New(func(ctx context.Context) ([]apiclient.Categoria, error) {
		return client.ListCategorias(ctx)
	})
}

// validateCategoria duplicates the server rules the form checks before
// any request goes out.
func validateCategoria(v *forms.Validator, req apiclient.CategoriaRequest) {
	v.Required("nombre", req.Nombre)
	v.MaxLen("nombre", req.Nombre, forms.MaxNombreLen)
	v.MaxLen("descripcion", req.Descripcion, forms.MaxDescripcionLen)
	v.Required("genero", req.Genero)
	v.OneOf("genero", req.Genero, apiclient.GeneroMasculino, apiclient.GeneroFemenino, apiclient.GeneroMixto)
	v.AgeRange("edad_minima", "edad_maxima", req.EdadMinima, req.EdadMaxima)
}

// ==================== List ====================

var (
	catListBuscar  string
	catListGenero  string
	catListActivas bool
	catListEdadMin int
	catListEdadMax int
	catListEstado  string
	catListTexto   string
)

var categoriasListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List categories",
	Long: `List categories, optionally narrowed by server-side search, gender,
age range or active partition, and by local status/text filters.

Examples:
  clubctl categorias list
  clubctl categorias list --buscar sub
  clubctl categorias list --genero femenino --estado activa
  clubctl categorias list --edad-minima 10 --edad-maxima 15`,
	Args: cobra.NoArgs,
	RunE: runCategoriasList,
}

func init() {
	categoriasListCmd.Flags().StringVar(&catListBuscar, "buscar", "", "Server-side full-text search")
	categoriasListCmd.Flags().StringVar(&catListGenero, "genero", "", "Filter by gender (masculino|femenino|mixto)")
	categoriasListCmd.Flags().BoolVar(&catListActivas, "activas", false, "Only active categories")
	categoriasListCmd.Flags().IntVar(&catListEdadMin, "edad-minima", 0, "Lower bound of the age range filter")
	categoriasListCmd.Flags().IntVar(&catListEdadMax, "edad-maxima", 0, "Upper bound of the age range filter")
	categoriasListCmd.Flags().StringVar(&catListEstado, "estado", "", "Local status filter (activa|inactiva)")
	categoriasListCmd.Flags().StringVar(&catListTexto, "texto", "", "Local substring filter over name and description")
}

func runCategoriasList(cmd *cobra.Command, args []string) error {
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	minSet := cmd.Flags().Changed("edad-minima")
	maxSet := cmd.Flags().Changed("edad-maxima")
	if minSet != maxSet {
		return fmt.Errorf("--edad-minima and --edad-maxima must be used together")
	}
	if catListEstado != "" && catListEstado != "activa" && catListEstado != "inactiva" {
		return fmt.Errorf("--estado must be \"activa\" or \"inactiva\"")
	}

	criteria := filter.CategoriaCriteria{
		Busqueda:    catListBuscar,
		Genero:      catListGenero,
		SoloActivas: catListActivas,
		Estado:      catListEstado,
		Texto:       catListTexto,
	}
	if minSet {
		criteria.EdadMinima = &catListEdadMin
		criteria.EdadMaxima = &catListEdadMax
	}

	store := categoriaStore(client)
	err = store.LoadWith(cmd.Context(), func(ctx context.Context) ([]apiclient.Categoria, error) {
		return criteria.Load(ctx, client)
	})
	if err != nil {
		return loadError(err, "list categories")
	}

	cats := store.Items()
	if len(cats) == 0 {
		fmt.Fprintln(os.Stderr, "No categories found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tEDAD\tGENERO\tACTIVA\tATLETAS\tDESCRIPCION")
	for _, c := range cats {
		fmt.Fprintf(w, "%d\t%s\t%d-%d\t%s\t%s\t%d\t%s\n",
			c.ID, c.Nombre, c.EdadMinima, c.EdadMaxima, c.Genero,
			yesNo(c.Activo), c.TotalAtletas, truncate(c.Descripcion, 40))
	}
	return w.Flush()
}

// ==================== Create ====================

var (
	catCreateNombre      string
	catCreateDescripcion string
	catCreateEdadMin     int
	catCreateEdadMax     int
	catCreateGenero      string
	catCreateInactiva    bool
)

var categoriasCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	Example: `  clubctl categorias create --nombre "Sub-15" --edad-minima 13 --edad-maxima 15 --genero mixto`,
	Args: cobra.NoArgs,
	RunE: runCategoriasCreate,
}

func init() {
	categoriasCreateCmd.Flags().StringVar(&catCreateNombre, "nombre", "", "Category name (required)")
	categoriasCreateCmd.Flags().StringVar(&catCreateDescripcion, "descripcion", "", "Free-text description")
	categoriasCreateCmd.Flags().IntVar(&catCreateEdadMin, "edad-minima", 0, "Minimum age (required)")
	categoriasCreateCmd.Flags().IntVar(&catCreateEdadMax, "edad-maxima", 0, "Maximum age (required)")
	categoriasCreateCmd.Flags().StringVar(&catCreateGenero, "genero", apiclient.GeneroMixto, "Gender (masculino|femenino|mixto)")
	categoriasCreateCmd.Flags().BoolVar(&catCreateInactiva, "inactiva", false, "Create the category inactive")

	_ = categoriasCreateCmd.MarkFlagRequired("nombre")
	_ = categoriasCreateCmd.MarkFlagRequired("edad-minima")
	_ = categoriasCreateCmd.MarkFlagRequired("edad-maxima")
}

func runCategoriasCreate(cmd *cobra.Command, args []string) error {
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	req := apiclient.CategoriaRequest{
		Nombre:      catCreateNombre,
		Descripcion: catCreateDescripcion,
		EdadMinima:  catCreateEdadMin,
		EdadMaxima:  catCreateEdadMax,
		Genero:      catCreateGenero,
		Activo:      !catCreateInactiva,
	}

	store := categoriaStore(client)
	form := forms.NewForm()
	form.Open()

	var created *apiclient.Categoria
	err = form.Submit(cmd.Context(),
		func(v *forms.Validator) { validateCategoria(v, req) },
		func(ctx context.Context) error {
			return store.Mutate(ctx, func(ctx context.Context) error {
				cat, err := client.CreateCategoria(ctx, req)
				if err != nil {
					return err
				}
				created = cat
				return nil
			})
		})
	if err != nil {
		return actionError(err, "create category")
	}

	notifier.Successf("Category %q created (ID %d); server now has %d categories",
		created.Nombre, created.ID, len(store.Items()))
	return nil
}

// ==================== Update ====================

var (
	catUpdateNombre      string
	catUpdateDescripcion string
	catUpdateEdadMin     int
	catUpdateEdadMax     int
	catUpdateGenero      string
	catUpdateActiva      bool
)

var categoriasUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a category",
	Long: `Update a category. Fields not given keep their current value, so the
form is effectively prefilled from the selected record.`,
	Args: cobra.ExactArgs(1),
	RunE: runCategoriasUpdate,
}

func init() {
	categoriasUpdateCmd.Flags().StringVar(&catUpdateNombre, "nombre", "", "Category name")
	categoriasUpdateCmd.Flags().StringVar(&catUpdateDescripcion, "descripcion", "", "Free-text description")
	categoriasUpdateCmd.Flags().IntVar(&catUpdateEdadMin, "edad-minima", 0, "Minimum age")
	categoriasUpdateCmd.Flags().IntVar(&catUpdateEdadMax, "edad-maxima", 0, "Maximum age")
	categoriasUpdateCmd.Flags().StringVar(&catUpdateGenero, "genero", "", "Gender (masculino|femenino|mixto)")
	categoriasUpdateCmd.Flags().BoolVar(&catUpdateActiva, "activa", false, "Active flag")
}

func runCategoriasUpdate(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	client, err := getAuthenticatedClient()
	if err != nil {
		return err
	}

	existing, err := client.GetCategoria(cmd.Context(), id)
	if err != nil {
		return actionError(err, "fetch category")
	}

	// Prefill from the record, then overlay the flags that were set.
	req := apiclient.CategoriaRequest{
		Nombre:      existing.Nombre,
		Descripcion: existing.Descripcion,
		EdadMinima:  existing.EdadMinima,
		EdadMaxima:  existing.EdadMaxima,
		Genero:      existing.Genero,
		Activo:      existing.Activo,
	}
	if cmd.Flags().Changed("nombre") {
		req.Nombre = catUpdateNombre
	}
	if cmd.Flags().Changed("descripcion") {
		req.Descripcion = catUpdateDescripcion
	}
	if cmd.Flags().Changed("edad-minima") {
		req.EdadMinima = catUpdateEdadMin
	}
	if cmd.Flags().Changed("edad-maxima") {
		req.EdadMaxima = catUpdateEdadMax
	}
	if cmd.Flags().Changed("genero") {
		req.Genero = catUpdateGenero
	}
	if cmd.Flags().Changed("activa") {
		req.Activo = catUpdateActiva
	}

	store := categoriaStore(client)
	form := forms.NewForm()
	form.OpenEdit(id)

	err = form.Submit(cmd.Context(),
		func(v *forms.Validator) { validateCategoria(v, req) },
		func(ctx context.Context) error {
			return store.Mutate(ctx, func(ctx context.Context) error {
				_, err := client.UpdateCategoria(ctx, id, req)
				return err
			})
		})
	if err != nil {
		return actionError(err, "update category")
	}

	notifier.Successf("Category %d updated", id)
	return nil
}

// ==================== Delete / Restore ====================

var categoriasDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Long: `Soft-delete a category. The server refuses with its own message when
athletes are still assigned; deleted categories can be restored.`,
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

		store := categoriaStore(client)
		err = store.Mutate(cmd.Context(), func(ctx context.Context) error {
			return client.DeleteCategoria(ctx, id)
		})
		if err != nil {
			return actionError(err, "delete category")
		}

		notifier.Successf("Category %d deleted", id)
		return nil
	},
}

var categoriasRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a deleted category",
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

		store := categoriaStore(client)
		err = store.Mutate(cmd.Context(), func(ctx context.Context) error {
			return client.RestoreCategoria(ctx, id)
		})
		if err != nil {
			return actionError(err, "restore category")
		}

		notifier.Successf("Category %d restored", id)
		return nil
	},
}
