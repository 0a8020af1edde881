package validation

// CreateSessionRequest is the payload for POST /api/getnet-create-session.
type CreateSessionRequest struct {
	Amount      int64  `json:"amount" validate:"required,gt=0"`         // CLP, whole pesos
	Reference   string `json:"reference" validate:"required,max=32"`    // gateway limit
	Description string `json:"description" validate:"required,max=250"` // gateway limit
}

// ProductLine is one product in the checkout form.
type ProductLine struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name" validate:"required"`
	Qty   int    `json:"qty" validate:"min=1"`
	Price int64  `json:"price" validate:"min=0"`
}

// SendEmailRequest is the flat checkout form posted to /api/send-email.
type SendEmailRequest struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	RUT      string `json:"rut"`
	Telefono string `json:"telefono"`
	Correo   string `json:"correo" validate:"required,email"`

	TipoDocumento    string `json:"tipoDocumento"`
	Empresa          string `json:"empresa"`
	RUTEmpresa       string `json:"rutEmpresa"`
	RazonSocial      string `json:"razonSocial"`
	DireccionEmpresa string `json:"direccionEmpresa"`

	DireccionDespacho string `json:"direccionDespacho"`
	Comuna            string `json:"comuna"`
	Ciudad            string `json:"ciudad"`
	Region            string `json:"region"`
	Comentarios       string `json:"comentarios"`

	Productos   []ProductLine `json:"productos" validate:"dive"`
	Subtotal    int64         `json:"subtotal" validate:"min=0"`
	Envio       int64         `json:"envio" validate:"min=0"`
	Total       int64         `json:"total" validate:"min=0"`
	IVAProducto int64         `json:"ivaProducto" validate:"min=0"`
}
