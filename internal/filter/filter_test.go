package filter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
)

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6}

	even := func(n int) bool { return n%2 == 0 }
	big := func(n int) bool { return n > 3 }

	if got := Apply(items); len(got) != 6 {
		t.Errorf("no predicates should keep all items, got %v", got)
	}
	if got := Apply(items, even, big); len(got) != 2 || got[0] != 4 || got[1] != 6 {
		t.Errorf("Apply(even, big) = %v", got)
	}
}

func TestMatchesText(t *testing.T) {
	tests := []struct {
		term   string
		fields []string
		want   bool
	}{
		{"", []string{"anything"}, true},
		{"sub", []string{"Sub-15", "varones"}, true},
		{"VARONES", []string{"Sub-15", "varones menores"}, true},
		{"juvenil", []string{"Sub-15", "varones"}, false},
		{"tec", []string{"", "árbitro-tecnico"}, true},
	}
	for _, tt := range tests {
		if got := MatchesText(tt.term, tt.fields...); got != tt.want {
			t.Errorf("MatchesText(%q, %v) = %v, want %v", tt.term, tt.fields, got, tt.want)
		}
	}
}

// fakeAPI serves category fixtures and records which endpoint was hit.
func fakeAPI(t *testing.T, cats []apiclient.Categoria) (*apiclient.Client, *string) {
	t.Helper()
	var lastPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": cats})
	}))
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL), &lastPath
}

func TestCategoriaCriteriaPicksRemoteEndpoint(t *testing.T) {
	min, max := 10, 15

	tests := []struct {
		name     string
		criteria CategoriaCriteria
		wantPath string
	}{
		{"no criteria", CategoriaCriteria{}, "/categorias"},
		{"active only", CategoriaCriteria{SoloActivas: true}, "/categorias/activas"},
		{"gender", CategoriaCriteria{Genero: "femenino"}, "/categorias/por-genero/femenino"},
		{"search", CategoriaCriteria{Busqueda: "sub"}, "/categorias/buscar"},
		{"range wins over gender", CategoriaCriteria{Genero: "mixto", EdadMinima: &min, EdadMaxima: &max}, "/categorias/por-rango-edad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, lastPath := fakeAPI(t, nil)
			if _, err := tt.criteria.Load(context.Background(), api); err != nil {
				t.Fatal(err)
			}
			if *lastPath != tt.wantPath {
				t.Errorf("endpoint = %q, want %q", *lastPath, tt.wantPath)
			}
		})
	}
}

func TestCategoriaRangeResultStillGetsLocalFilters(t *testing.T) {
	min, max := 10, 18
	api, _ := fakeAPI(t, []apiclient.Categoria{
		{ID: 1, Nombre: "Sub-15 varones", Genero: "masculino", Activo: true},
		{ID: 2, Nombre: "Sub-15 damas", Genero: "femenino", Activo: true},
		{ID: 3, Nombre: "Sub-18 damas", Genero: "femenino", Activo: false},
	})

	criteria := CategoriaCriteria{
		EdadMinima: &min,
		EdadMaxima: &max,
		Genero:     "femenino",
		Estado:     "activa",
	}
	got, err := criteria.Load(context.Background(), api)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("range + local equality filters should leave only ID 2, got %+v", got)
	}
}

func TestCategoriaLocalTextFilter(t *testing.T) {
	api, lastPath := fakeAPI(t, []apiclient.Categoria{
		{ID: 1, Nombre: "Sub-15", Descripcion: "varones menores"},
		{ID: 2, Nombre: "Juvenil", Descripcion: "damas"},
	})

	got, err := CategoriaCriteria{Texto: "varones"}.Load(context.Background(), api)
	if err != nil {
		t.Fatal(err)
	}
	if *lastPath != "/categorias" {
		t.Errorf("local text filter must not pick a remote endpoint, hit %q", *lastPath)
	}
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestPermisoCriteriaModuloDegradesToLocal(t *testing.T) {
	var lastPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []apiclient.Permiso{
			{ID: 1, Nombre: "Ver usuarios", Modulo: "usuarios", Activo: true},
			{ID: 2, Nombre: "Ver roles", Modulo: "roles", Activo: true},
		}})
	}))
	defer srv.Close()
	api := apiclient.New(srv.URL)

	// Search wins the remote slot, module is applied locally on top.
	got, err := PermisoCriteria{Busqueda: "ver", Modulo: "roles"}.Load(context.Background(), api)
	if err != nil {
		t.Fatal(err)
	}
	if lastPath != "/permisos/buscar" {
		t.Errorf("endpoint = %q, want /permisos/buscar", lastPath)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("got %+v", got)
	}

	// Module alone uses its dedicated endpoint.
	if _, err := (PermisoCriteria{Modulo: "roles"}).Load(context.Background(), api); err != nil {
		t.Fatal(err)
	}
	if lastPath != "/permisos/modulo/roles" {
		t.Errorf("endpoint = %q, want /permisos/modulo/roles", lastPath)
	}
}

func TestUsuarioCriteriaEstadoFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []apiclient.Usuario{
			{ID: 1, Nombre: "Ana", Email: "ana@club.test", Estado: "activo"},
			{ID: 2, Nombre: "Luis", Email: "luis@club.test", Estado: "suspendido"},
		}})
	}))
	defer srv.Close()

	got, err := UsuarioCriteria{Estado: "suspendido"}.Load(context.Background(), apiclient.New(srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Nombre != "Luis" {
		t.Errorf("got %+v", got)
	}
}
