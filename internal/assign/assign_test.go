package assign

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/clubdeportivo/clubctl/internal/apiclient"
)

func catalog() []apiclient.Permiso {
	return []apiclient.Permiso{
		{ID: 1, Nombre: "Ver usuarios", Modulo: "usuarios"},
		{ID: 2, Nombre: "Editar usuarios", Modulo: "usuarios"},
		{ID: 3, Nombre: "Ver roles", Modulo: "roles"},
		{ID: 4, Nombre: "Panel de inicio"},
	}
}

func TestOpenSeedsFromAssignedPermissions(t *testing.T) {
	rol := &apiclient.Rol{ID: 7, Nombre: "Entrenador", Permisos: []apiclient.Permiso{{ID: 1}, {ID: 3}}}
	s := Open(rol, catalog())

	if !s.Has(1) || !s.Has(3) || s.Has(2) {
		t.Errorf("seeded selection wrong: %v", s.IDs())
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d", s.Count())
	}
}

func TestToggle(t *testing.T) {
	s := Open(&apiclient.Rol{ID: 1}, catalog())

	s.Toggle(2)
	if !s.Has(2) {
		t.Error("Toggle should select")
	}
	s.Toggle(2)
	if s.Has(2) {
		t.Error("Toggle should deselect")
	}
}

func TestToggleAll(t *testing.T) {
	s := Open(&apiclient.Rol{ID: 1, Permisos: []apiclient.Permiso{{ID: 1}}}, catalog())

	// Partial selection: toggle-all selects everything.
	s.ToggleAll()
	if s.Count() != len(catalog()) {
		t.Fatalf("Count() = %d, want %d", s.Count(), len(catalog()))
	}

	// Full selection: toggle-all clears.
	s.ToggleAll()
	if s.Count() != 0 {
		t.Fatalf("Count() = %d, want 0", s.Count())
	}

	// Empty selection: toggle-all selects everything again.
	s.ToggleAll()
	if s.Count() != len(catalog()) {
		t.Fatalf("Count() = %d, want %d", s.Count(), len(catalog()))
	}
}

func TestIDsSorted(t *testing.T) {
	s := Open(&apiclient.Rol{ID: 1, Permisos: []apiclient.Permiso{{ID: 4}, {ID: 1}, {ID: 3}}}, catalog())
	if got := s.IDs(); !reflect.DeepEqual(got, []int64{1, 3, 4}) {
		t.Errorf("IDs() = %v", got)
	}
}

func TestGrouped(t *testing.T) {
	s := Open(&apiclient.Rol{ID: 1}, catalog())
	groups := s.Grouped()

	if len(groups) != 3 {
		t.Fatalf("groups = %+v", groups)
	}
	// Sorted by module name: General, roles, usuarios.
	if groups[0].Modulo != DefaultGroup || len(groups[0].Permisos) != 1 || groups[0].Permisos[0].ID != 4 {
		t.Errorf("General group = %+v", groups[0])
	}
	if groups[1].Modulo != "roles" || groups[2].Modulo != "usuarios" {
		t.Errorf("group order = %q, %q", groups[1].Modulo, groups[2].Modulo)
	}
	// Members sorted by name within a module.
	if groups[2].Permisos[0].Nombre != "Editar usuarios" {
		t.Errorf("usuarios group order = %+v", groups[2].Permisos)
	}
}

func TestSaveSendsBulkReplace(t *testing.T) {
	var gotPath string
	var gotBody struct {
		Permisos []int64 `json:"permisos"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatal(err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
	}))
	defer srv.Close()

	s := Open(&apiclient.Rol{ID: 7, Permisos: []apiclient.Permiso{{ID: 3}, {ID: 1}}}, catalog())
	if err := s.Save(context.Background(), apiclient.New(srv.URL)); err != nil {
		t.Fatal(err)
	}
	if gotPath != "/roles/7/asignar-permisos" {
		t.Errorf("path = %q", gotPath)
	}
	if !reflect.DeepEqual(gotBody.Permisos, []int64{1, 3}) {
		t.Errorf("permisos = %v", gotBody.Permisos)
	}
}
