package cart

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// TextView lays the cart out as an aligned terminal table.
type TextView struct {
	rows  []Row
	total string
}

func (v *TextView) ReplaceRows(rows []Row) {
	v.rows = append(v.rows[:0], rows...)
}

func (v *TextView) SetTotal(text string) {
	v.total = text
}

// WriteTo prints the current table.
func (v *TextView) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)

	if len(v.rows) == 0 {
		fmt.Fprintln(tw, "El carrito está vacío.")
	} else {
		fmt.Fprintln(tw, "ID\tProducto\tPrecio\tCantidad\tSubtotal")
		for _, r := range v.rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", r.ID, r.Name, r.UnitPrice, r.Qty, r.LineTotal)
		}
	}
	fmt.Fprintf(tw, "\t\t\tTotal\t%s\n", v.total)

	err := tw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
