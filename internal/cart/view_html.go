package cart

import (
	"bytes"
	"html/template"
)

var rowsTemplate = template.Must(template.New("rows").Parse(`{{range .}}<tr>
  <td><strong>{{.Name}}</strong><br><small>{{.Desc}}</small></td>
  <td>{{.UnitPrice}}</td>
  <td><input type="number" min="1" value="{{.Qty}}" style="width:80px" data-cart-qty="{{.ID}}"></td>
  <td>{{.LineTotal}}</td>
  <td><button class="btn btn-outline" data-cart-remove="{{.ID}}">Eliminar</button></td>
</tr>
{{end}}`))

// HTMLView renders the cart table body (#cart-table-body) and total
// (#cart-total) as HTML. Quantity inputs and remove buttons carry data
// attributes; the page binds its handlers to those.
type HTMLView struct {
	body  string
	total string
	err   error
}

func (v *HTMLView) ReplaceRows(rows []Row) {
	var buf bytes.Buffer
	if err := rowsTemplate.Execute(&buf, rows); err != nil {
		v.err = err
		return
	}
	v.err = nil
	v.body = buf.String()
}

func (v *HTMLView) SetTotal(text string) {
	v.total = text
}

// Body is the last rendered table body.
func (v *HTMLView) Body() string { return v.body }

// Total is the last rendered total label.
func (v *HTMLView) Total() string { return v.total }

// Err reports a template failure from the last ReplaceRows.
func (v *HTMLView) Err() error { return v.err }
