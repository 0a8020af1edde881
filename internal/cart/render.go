package cart

import "github.com/entrealasyraices/storefront/internal/money"

// Row is one rendered cart line, with amounts already formatted.
type Row struct {
	ID        string
	Name      string
	Desc      string
	UnitPrice string
	Qty       int
	LineTotal string
}

// View is the cart table of a page: a body that is rewritten as a whole and a
// total label.
type View interface {
	ReplaceRows(rows []Row)
	SetTotal(text string)
}

// Renderer projects the Store into a View. A nil View means the page has no
// cart table and Render does nothing.
type Renderer struct {
	store *Store
	view  View
	badge func(count int)
}

func NewRenderer(store *Store, view View, badge func(count int)) *Renderer {
	return &Renderer{store: store, view: view, badge: badge}
}

// Render rebuilds the rows and total from the current store contents.
func (r *Renderer) Render() {
	if r.view == nil {
		return
	}
	items := r.store.Get()
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			ID:        it.ID,
			Name:      it.Name,
			Desc:      it.Desc,
			UnitPrice: money.Format(it.Price),
			Qty:       it.Qty,
			LineTotal: money.Format(it.LineTotal()),
		})
	}
	r.view.ReplaceRows(rows)
	r.view.SetTotal(money.Format(total(items)))
}

// LinesChanged implements Notifier.
func (r *Renderer) LinesChanged() {
	r.Render()
}

// BadgeChanged implements Notifier.
func (r *Renderer) BadgeChanged(count int) {
	if r.badge != nil {
		r.badge(count)
	}
}
