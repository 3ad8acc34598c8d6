package apperrors

import "net/http"

// Factories for errors that wrap repository causes.

// ErrNotFound converts a repository miss into a 404.
func ErrNotFound(err error, message string) *AppError {
	return Wrap(err, CodeNotFound, "resource", message, http.StatusNotFound)
}

// ErrAlreadyExists converts a uniqueness violation into a 409.
func ErrAlreadyExists(err error, message string) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", message, http.StatusConflict)
}

// Predefined static errors.

// ErrInvalidCredentials is the single message for every login failure; it
// never distinguishes an unknown email from a wrong password.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Credenciales inválidas",
	http.StatusUnauthorized,
)

// ErrNoAutenticado is returned when no valid session accompanies a request.
var ErrNoAutenticado = New(
	CodeUnauthorized,
	"auth",
	"No autenticado",
	http.StatusUnauthorized,
)

// ErrAccesoDenegado is the generic 403. The message deliberately carries no
// hint of which policy rule refused the request.
var ErrAccesoDenegado = New(
	CodeForbidden,
	"auth",
	"Acceso denegado",
	http.StatusForbidden,
)

// ErrEmailAlreadyExists signals a duplicate registration email.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Ya existe un usuario con ese email",
	http.StatusConflict,
)

// ErrInvalidUserRole rejects an operation not defined for the actor's role.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Rol inválido para esta operación",
	http.StatusBadRequest,
)
