package apiclient

// Categoria represents an age/gender division athletes are grouped into.
type Categoria struct {
	ID           int64  `json:"id"`
	Nombre       string `json:"nombre"`
	Descripcion  string `json:"descripcion,omitempty"`
	EdadMinima   int    `json:"edad_minima"`
	EdadMaxima   int    `json:"edad_maxima"`
	Genero       string `json:"genero"`
	Activo       bool   `json:"activo"`
	TotalAtletas int    `json:"total_atletas,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
	UpdatedAt    string `json:"updated_at,omitempty"`
}

// CategoriaRequest is the payload for creating or updating a category.
// Optional strings are sent even when empty so an update can clear them.
type CategoriaRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	EdadMinima  int    `json:"edad_minima"`
	EdadMaxima  int    `json:"edad_maxima"`
	Genero      string `json:"genero"`
	Activo      bool   `json:"activo"`
}

// Permiso represents a single grantable permission. Modulo groups
// permissions for display; an empty value lands in the "General" bucket.
type Permiso struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Slug        string `json:"slug"`
	Descripcion string `json:"descripcion,omitempty"`
	Modulo      string `json:"modulo,omitempty"`
	Activo      bool   `json:"activo"`
}

// PermisoRequest is the payload for creating or updating a permission.
// Optional strings are sent even when empty so an update can clear them.
type PermisoRequest struct {
	Nombre      string `json:"nombre"`
	Slug        string `json:"slug"`
	Descripcion string `json:"descripcion"`
	Modulo      string `json:"modulo"`
	Activo      bool   `json:"activo"`
}

// Rol represents a role and the permissions currently assigned to it.
type Rol struct {
	ID          int64     `json:"id"`
	Nombre      string    `json:"nombre"`
	Slug        string    `json:"slug"`
	Descripcion string    `json:"descripcion,omitempty"`
	Activo      bool      `json:"activo"`
	Permisos    []Permiso `json:"permisos,omitempty"`
}

// RolRequest is the payload for creating or updating a role.
// Optional strings are sent even when empty so an update can clear them.
type RolRequest struct {
	Nombre      string `json:"nombre"`
	Slug        string `json:"slug"`
	Descripcion string `json:"descripcion"`
	Activo      bool   `json:"activo"`
}

// Usuario represents a system user account.
type Usuario struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido,omitempty"`
	Email    string `json:"email"`
	Estado   string `json:"estado"`
	Roles    []Rol  `json:"roles,omitempty"`
}

// UsuarioRequest is the payload for creating or updating a user. The
// password is only sent when set; every other field is always sent so
// an update can clear the last name.
type UsuarioRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Estado   string `json:"estado"`
}

// Estados a user account can be in.
const (
	EstadoActivo     = "activo"
	EstadoInactivo   = "inactivo"
	EstadoSuspendido = "suspendido"
)

// Géneros a category can be restricted to.
const (
	GeneroMasculino = "masculino"
	GeneroFemenino  = "femenino"
	GeneroMixto     = "mixto"
)

// LoginResponse carries the bearer token and the authenticated user.
type LoginResponse struct {
	Token string
	User  Usuario
}
