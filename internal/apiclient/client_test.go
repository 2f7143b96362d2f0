package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func writeEnvelope(t *testing.T, w http.ResponseWriter, status int, env map[string]interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		t.Fatalf("encoding envelope: %v", err)
	}
}

func TestGetDecodesEnvelopeData(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data": []map[string]interface{}{
				{"id": 1, "nombre": "Sub-15", "edad_minima": 13, "edad_maxima": 15, "genero": "mixto", "activo": true},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, WithToken("tok-123"))
	cats, err := client.ListCategorias(context.Background())
	if err != nil {
		t.Fatalf("ListCategorias: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer tok-123")
	}
	if len(cats) != 1 || cats[0].Nombre != "Sub-15" || cats[0].EdadMinima != 13 {
		t.Errorf("unexpected categories: %+v", cats)
	}
}

func TestNoTokenMeansNoAuthHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("unexpected Authorization header %q", r.Header.Get("Authorization"))
		}
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{"success": true})
	}))
	defer srv.Close()

	if err := New(srv.URL).Get(context.Background(), "/categorias", nil); err != nil {
		t.Fatalf("Get: %v", err)
	}
}

func TestValidationErrorCarriesFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnprocessableEntity, map[string]interface{}{
			"success": false,
			"message": "Datos inválidos",
			"errors": map[string][]string{
				"nombre": {"El nombre es obligatorio"},
			},
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).CreateCategoria(context.Background(), CategoriaRequest{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsValidation(err) {
		t.Errorf("IsValidation = false, want true: %v", err)
	}
	apiErr, _ := asAPIError(err)
	if got := apiErr.Fields["nombre"]; len(got) != 1 || got[0] != "El nombre es obligatorio" {
		t.Errorf("Fields[nombre] = %v", got)
	}
	if !strings.Contains(err.Error(), "nombre") || !strings.Contains(err.Error(), "obligatorio") {
		t.Errorf("error text %q should name the field and message", err.Error())
	}
}

func TestConflictOnDeleteKeepsServerMessage(t *testing.T) {
	const serverMsg = "No se puede eliminar: la categoría tiene 12 atletas asignados"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": serverMsg,
		})
	}))
	defer srv.Close()

	err := New(srv.URL).DeleteCategoria(context.Background(), 7)
	if !IsConflict(err) {
		t.Fatalf("IsConflict = false: %v", err)
	}
	if err.Error() != serverMsg {
		t.Errorf("error = %q, want server message verbatim", err.Error())
	}
}

func TestUnauthorizedInvokesCallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"message": "Token expirado",
		})
	}))
	defer srv.Close()

	called := false
	client := New(srv.URL, WithToken("stale"), WithOnUnauthorized(func() { called = true }))
	_, err := client.ListRoles(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("IsUnauthorized = false: %v", err)
	}
	if !called {
		t.Error("OnUnauthorized callback was not invoked")
	}
}

func TestForbiddenIsNotUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusForbidden, map[string]interface{}{"success": false})
	}))
	defer srv.Close()

	called := false
	client := New(srv.URL, WithOnUnauthorized(func() { called = true }))
	_, err := client.ListUsuarios(context.Background())
	if !IsForbidden(err) {
		t.Fatalf("IsForbidden = false: %v", err)
	}
	if called {
		t.Error("OnUnauthorized must not fire on 403")
	}
}

func TestSuccessFalseWithOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{
			"success": false,
			"message": "algo salió mal",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListPermisos(context.Background())
	if err == nil {
		t.Fatal("expected error for success=false envelope")
	}
	if !strings.Contains(err.Error(), "algo salió mal") {
		t.Errorf("error = %q, want server message", err.Error())
	}
}

func TestLoginParsesTokenAndUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding login request: %v", err)
		}
		if req.Email != "admin@club.test" {
			t.Errorf("email = %q", req.Email)
		}
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{
			"success": true,
			"token":   "jwt-abc",
			"data":    map[string]interface{}{"id": 3, "nombre": "Ana", "email": "admin@club.test", "estado": "activo"},
		})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Login(context.Background(), "admin@club.test", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token != "jwt-abc" || resp.User.Nombre != "Ana" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestLoginWithoutTokenFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{"success": true})
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Login(context.Background(), "a@b.c", "x"); err == nil {
		t.Fatal("expected error when token is missing")
	}
}

func TestSearchTermIsQueryEscaped(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("busqueda")
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{"success": true, "data": []Permiso{}})
	}))
	defer srv.Close()

	if _, err := New(srv.URL).BuscarPermisos(context.Background(), "gestión & más"); err != nil {
		t.Fatalf("BuscarPermisos: %v", err)
	}
	if gotQuery != "gestión & más" {
		t.Errorf("busqueda = %q after round trip", gotQuery)
	}
}

func TestUpdateSendsClearedOptionalFields(t *testing.T) {
	var bodies []map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		bodies = append(bodies, body)
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"id": 7},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)

	// Clearing a description on edit must still put the key on the wire;
	// a missing key would read as "unchanged" server-side.
	_, err := client.UpdateCategoria(context.Background(), 7, CategoriaRequest{
		Nombre: "Sub-15", EdadMinima: 13, EdadMaxima: 15, Genero: "mixto",
	})
	if err != nil {
		t.Fatalf("UpdateCategoria: %v", err)
	}
	_, err = client.UpdatePermiso(context.Background(), 7, PermisoRequest{
		Nombre: "Ver panel", Slug: "ver-panel",
	})
	if err != nil {
		t.Fatalf("UpdatePermiso: %v", err)
	}
	_, err = client.UpdateUsuario(context.Background(), 7, UsuarioRequest{
		Nombre: "Ana", Email: "ana@club.test", Estado: "activo",
	})
	if err != nil {
		t.Fatalf("UpdateUsuario: %v", err)
	}

	wantKeys := []struct {
		name string
		keys []string
	}{
		{"categoria", []string{"descripcion"}},
		{"permiso", []string{"descripcion", "modulo"}},
		{"usuario", []string{"apellido"}},
	}
	for i, want := range wantKeys {
		for _, key := range want.keys {
			raw, ok := bodies[i][key]
			if !ok {
				t.Errorf("%s update body is missing %q: %v", want.name, key, bodies[i])
				continue
			}
			if string(raw) != `""` {
				t.Errorf("%s update %s = %s, want \"\"", want.name, key, raw)
			}
		}
	}

	// An unset password stays off the wire; updates must not blank it.
	if _, ok := bodies[2]["password"]; ok {
		t.Errorf("usuario update body must omit an unset password: %v", bodies[2])
	}
}

func TestAsignarPermisosSendsBulkReplace(t *testing.T) {
	var body asignarPermisosRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/roles/4/asignar-permisos" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decoding body: %v", err)
		}
		writeEnvelope(t, w, http.StatusOK, map[string]interface{}{"success": true})
	}))
	defer srv.Close()

	if err := New(srv.URL).AsignarPermisos(context.Background(), 4, []int64{1, 2, 5}); err != nil {
		t.Fatalf("AsignarPermisos: %v", err)
	}
	if len(body.Permisos) != 3 || body.Permisos[2] != 5 {
		t.Errorf("permisos payload = %v", body.Permisos)
	}

	// An empty selection must still send an explicit empty array.
	if err := New(srv.URL).AsignarPermisos(context.Background(), 4, nil); err != nil {
		t.Fatalf("AsignarPermisos(nil): %v", err)
	}
	if body.Permisos == nil || len(body.Permisos) != 0 {
		t.Errorf("empty selection payload = %v, want []", body.Permisos)
	}
}
