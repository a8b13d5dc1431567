package models

import (
	"time"
)

// Tipos de cliente soportados
const (
	TipoClienteNormal    = "Normal"
	TipoClienteVIP       = "VIP"
	TipoClienteMayorista = "Mayorista"
)

// Cliente representa un cliente del sistema
type Cliente struct {
	ID                  int       `json:"id" db:"id"`
	NombreUsuario       *string   `json:"nombre_usuario" db:"nombre_usuario"`
	NombreCompleto      string    `json:"nombre_completo" db:"nombre_completo"`
	Email               *string   `json:"email" db:"email"`
	Telefono            *string   `json:"telefono" db:"telefono"`
	Celular             *string   `json:"celular" db:"celular"`
	DocumentoIdentidad  *string   `json:"documento_identidad" db:"documento_identidad"`
	Direccion           *string   `json:"direccion" db:"direccion"`
	Ciudad              *string   `json:"ciudad" db:"ciudad"`
	Departamento        *string   `json:"departamento" db:"departamento"`
	TipoCliente         string    `json:"tipo_cliente" db:"tipo_cliente"`
	Activo              bool      `json:"activo" db:"activo"`
	LimiteCredito       float64   `json:"limite_credito" db:"limite_credito"`
	DiasCredito         int       `json:"dias_credito" db:"dias_credito"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
}

// Usuario representa un usuario del sistema (para autenticación)
type Usuario struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Nombre       string    `json:"nombre" db:"nombre"`
	Activo       bool      `json:"activo" db:"activo"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
