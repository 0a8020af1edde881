// Package money formats Chilean peso amounts the way the storefront shows
// them: "$" followed by the es-CL grouped integer, e.g. $44.990.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var chile = language.MustParse("es-CL")

// Format renders an amount in pesos (CLP has no minor unit).
func Format(amount int64) string {
	p := message.NewPrinter(chile)
	if amount < 0 {
		return p.Sprintf("-$%d", -amount)
	}
	return p.Sprintf("$%d", amount)
}
