package mailer

import "strings"

// Buyer is the person placing the order.
type Buyer struct {
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	RUT      string `json:"rut"`
	Telefono string `json:"telefono"`
	Correo   string `json:"correo"`
}

// FullName joins first and last name, skipping whichever is empty.
func (b Buyer) FullName() string {
	return strings.TrimSpace(b.Nombre + " " + b.Apellido)
}

// Invoice holds the company data required for a factura.
type Invoice struct {
	Empresa     string `json:"empresa"`
	RUTEmpresa  string `json:"rutEmpresa"`
	RazonSocial string `json:"razonSocial"`
	Direccion   string `json:"direccion"`
}

type Shipping struct {
	DireccionCalle string `json:"direccionCalle"`
	Comuna         string `json:"comuna"`
	Ciudad         string `json:"ciudad"`
	Region         string `json:"region"`
	InfoAdicional  string `json:"infoAdicional"`
	Comentarios    string `json:"comentarios"`
}

// Line is one ordered product. Price is the unit price in CLP.
type Line struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Qty   int    `json:"qty"`
	Price int64  `json:"price"`
}

func (l Line) Total() int64 { return l.Price * int64(l.Qty) }

// Order is everything the notification e-mails show about a purchase.
// Amounts are whole pesos.
type Order struct {
	Reference     string   `json:"reference"`
	TipoDocumento string   `json:"tipoDocumento"`
	Comprador     Buyer    `json:"comprador"`
	Factura       Invoice  `json:"factura"`
	Despacho      Shipping `json:"despacho"`
	Items         []Line   `json:"items"`
	Subtotal      int64    `json:"subtotal"`
	Shipping      int64    `json:"shipping"`
	IVA           int64    `json:"iva"`
	Amount        int64    `json:"amount"`
}

// WantsInvoice reports whether the buyer asked for a factura. The storefront
// has sent both "factura" and "Factura" over time.
func (o Order) WantsInvoice() bool {
	return strings.EqualFold(strings.TrimSpace(o.TipoDocumento), "factura")
}
