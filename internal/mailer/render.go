package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/entrealasyraices/storefront/internal/money"
)

var funcs = template.FuncMap{
	"clp": money.Format,
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}

var staffTmpl = template.Must(template.New("staff").Funcs(funcs).Parse(`
<h2>Nuevo pedido en Entre Alas y Raíces</h2>
<p><strong>N° de pedido:</strong> {{orDash .Reference}}</p>
<p><strong>Tipo documento:</strong> {{orDash .TipoDocumento}}</p>

<h3>Datos del comprador</h3>
<ul>
  <li>Nombre: {{.Comprador.FullName}}</li>
  <li>RUT: {{.Comprador.RUT}}</li>
  <li>Teléfono: {{.Comprador.Telefono}}</li>
  <li>Correo: {{.Comprador.Correo}}</li>
</ul>
{{if .WantsInvoice}}
<h3>Datos de factura</h3>
<ul>
  <li>Empresa: {{.Factura.Empresa}}</li>
  <li>RUT empresa: {{.Factura.RUTEmpresa}}</li>
  <li>Razón social: {{.Factura.RazonSocial}}</li>
  <li>Dirección: {{.Factura.Direccion}}</li>
</ul>
{{end}}
<h3>Datos de despacho</h3>
<ul>
  <li>Dirección: {{.Despacho.DireccionCalle}}</li>
  <li>Comuna: {{.Despacho.Comuna}}</li>
  <li>Ciudad: {{.Despacho.Ciudad}}</li>
  <li>Región: {{.Despacho.Region}}</li>
  <li>Info adicional: {{.Despacho.InfoAdicional}}</li>
  <li>Comentarios: {{if .Despacho.Comentarios}}{{.Despacho.Comentarios}}{{else}}Sin comentarios{{end}}</li>
</ul>

<h3>Productos</h3>
<ul>
{{range .Items}}  <li><strong>{{.Name}}</strong> (x{{.Qty}}) – {{clp .Price}} c/u (subtotal {{clp .Total}})</li>
{{else}}  <li>(sin ítems)</li>
{{end}}</ul>

<h3>Montos</h3>
<ul>
  <li>Subtotal: {{clp .Subtotal}}</li>
  <li>Envío: {{clp .Shipping}}</li>
  <li>IVA (19% productos): {{clp .IVA}}</li>
  <li><strong>Total:</strong> {{clp .Amount}}</li>
</ul>
`))

var customerTmpl = template.Must(template.New("customer").Funcs(funcs).Parse(`
<h2>¡Gracias por tu compra, {{.Comprador.Nombre}}!</h2>
<p>Estamos preparando tu pedido. Pronto recibirás nuevas noticias cuando esté listo para despacho.</p>
{{if .Reference}}<p><strong>N° de pedido:</strong> {{.Reference}}</p>{{end}}
<p><strong>Resumen:</strong></p>
<ul>
{{range .Items}}  <li>{{.Name}} x{{.Qty}} – {{clp .Price}} c/u (subtotal {{clp .Total}})</li>
{{else}}  <li>Pedido registrado.</li>
{{end}}</ul>

<p><strong>Total pagado:</strong> {{clp .Amount}}</p>
<p><strong>Incluye IVA (19% sobre productos):</strong> {{clp .IVA}}</p>

<p>Si tienes dudas, puedes escribirnos a:<br>
contacto@entrealasyraices.cl</p>

<p>Gracias por confiar en <strong>Entre Alas y Raíces</strong></p>
`))

// RenderStaffHTML renders the internal notification for a new order.
func RenderStaffHTML(o Order) (string, error) {
	return execute(staffTmpl, o)
}

// RenderCustomerHTML renders the purchase confirmation sent to the buyer.
func RenderCustomerHTML(o Order) (string, error) {
	return execute(customerTmpl, o)
}

func execute(t *template.Template, o Order) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, o); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// StaffSubject labels the internal notification with the order reference,
// falling back to the buyer's name.
func StaffSubject(o Order) string {
	switch {
	case o.Reference != "":
		return "Nuevo pedido - " + o.Reference
	case o.Comprador.FullName() != "":
		return "Nuevo pedido - " + o.Comprador.FullName()
	default:
		return "Nuevo pedido - sin referencia"
	}
}

const CustomerSubject = "Hemos recibido tu compra – Entre Alas y Raíces"
