package slug

import "testing"

func TestMake(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accents and spaces", "Árbitro Técnico", "arbitro-tecnico"},
		{"enye", "Niños Pequeños", "ninos-pequenos"},
		{"punctuation runs", "Sub-15 (varones)", "sub-15-varones"},
		{"leading and trailing junk", "  ¡Categoría!  ", "categoria"},
		{"already a slug", "arbitro-tecnico", "arbitro-tecnico"},
		{"digits", "Sub 18", "sub-18"},
		{"empty", "", ""},
		{"only symbols", "¡¿!?", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Make(tt.in); got != tt.want {
				t.Errorf("Make(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	inputs := []string{"Árbitro Técnico", "Niños Pequeños", "Gestión de Usuarios", "sub-15"}
	for _, in := range inputs {
		once := Make(in)
		if twice := Make(once); twice != once {
			t.Errorf("Make not idempotent for %q: %q -> %q", in, once, twice)
		}
	}
}
