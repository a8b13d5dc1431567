package models

// ===== REQUEST DTOs =====

// ArticuloRequest DTO para crear/actualizar un artículo
type ArticuloRequest struct {
	Codigo         string  `json:"codigo"`
	Nombre         string  `json:"nombre" validate:"required"`
	CantidadStock  int     `json:"cantidad_stock" validate:"gte=0"`
	CantidadMinima int     `json:"cantidad_minima" validate:"gte=0"`
	PrecioCosto    float64 `json:"precio_costo" validate:"gte=0"`
	PrecioUnitario float64 `json:"precio_unitario" validate:"gte=0"`
	Categoria      string  `json:"categoria"`
	Descripcion    string  `json:"descripcion"`
	FotoURL        string  `json:"foto_url"`
	Enlace         string  `json:"enlace"`
}

// ClienteRequest DTO para crear/actualizar un cliente
type ClienteRequest struct {
	NombreUsuario      string  `json:"nombre_usuario"`
	NombreCompleto     string  `json:"nombre_completo" validate:"required"`
	Email              string  `json:"email" validate:"omitempty,email"`
	Telefono           string  `json:"telefono"`
	Celular            string  `json:"celular"`
	DocumentoIdentidad string  `json:"documento_identidad"`
	Direccion          string  `json:"direccion"`
	Ciudad             string  `json:"ciudad"`
	Departamento       string  `json:"departamento"`
	TipoCliente        string  `json:"tipo_cliente" validate:"omitempty,oneof=Normal VIP Mayorista"`
	Activo             *bool   `json:"activo"`
	LimiteCredito      float64 `json:"limite_credito" validate:"gte=0"`
	DiasCredito        int     `json:"dias_credito" validate:"gte=0"`
}

// DetalleVentaRequest línea de venta dentro de CrearVentaRequest
type DetalleVentaRequest struct {
	ArticuloID     int     `json:"articulo_id" validate:"required,gt=0"`
	Cantidad       int     `json:"cantidad" validate:"required,gt=0"`
	PrecioUnitario float64 `json:"precio_unitario" validate:"gte=0"`
	Subtotal       float64 `json:"subtotal" validate:"gte=0"`
}

// CrearVentaRequest DTO para crear una venta con sus detalles
type CrearVentaRequest struct {
	ClienteID     int                   `json:"cliente_id" validate:"required,gt=0"`
	Observaciones string                `json:"observaciones"`
	Detalles      []DetalleVentaRequest `json:"detalles" validate:"required,min=1,dive"`
}

// CobroRequest DTO para registrar un cobro contra una venta
type CobroRequest struct {
	Liquidacion   string  `json:"liquidacion" validate:"required"`
	Banco         string  `json:"banco"`
	MontoPagado   float64 `json:"monto_pagado" validate:"gte=0"`
	Envio         string  `json:"envio"`
	PagoDelivery  float64 `json:"pago_delivery" validate:"gte=0"`
	Observaciones string  `json:"observaciones"`
}

// LoginRequest credenciales de inicio de sesión
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ===== RESPONSE DTOs =====

// LoginResponse respuesta a un login exitoso
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Usuario struct {
		ID       int    `json:"id"`
		Username string `json:"username"`
		Nombre   string `json:"nombre"`
		Email    string `json:"email"`
	} `json:"usuario"`
}

// CrearVentaResponse respuesta a la creación de una venta
type CrearVentaResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	VentaID int     `json:"venta_id"`
	Total   float64 `json:"total"`
	Estado  string  `json:"estado"`
}

// CobroResponse respuesta al registro de un cobro
type CobroResponse struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	CobroID     int     `json:"cobro_id"`
	EstadoVenta string  `json:"estado_venta"`
	TotalVenta  float64 `json:"total_venta"`
	Cobrado     float64 `json:"cobrado"`
	Pendiente   float64 `json:"pendiente"`
}
