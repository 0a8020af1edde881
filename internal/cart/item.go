package cart

// Item is one cart line. Price is in pesos; Qty is always >= 1 once stored.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Qty   int    `json:"qty"`
	Desc  string `json:"desc,omitempty"`
}

// LineTotal is Price x Qty.
func (i Item) LineTotal() int64 {
	return i.Price * int64(i.Qty)
}

// Products is the catalog the storefront pages add from.
var Products = map[string]Item{
	"raices-fuertes":       {ID: "raices-fuertes", Name: "Raíces Fuertes, Alas Conscientes", Price: 44990},
	"pistas-crianza":       {ID: "pistas-crianza", Name: "Pistas de Crianza", Price: 34990},
	"entre-lineas":         {ID: "entre-lineas", Name: "Entre Líneas", Price: 17990},
	"ciclos-compartidos":   {ID: "ciclos-compartidos", Name: "Ciclos Compartidos", Price: 17990},
	"mi-carita-dice":       {ID: "mi-carita-dice", Name: "Mi Carita Dice", Price: 16990},
	"almas-en-colores":     {ID: "almas-en-colores", Name: "Almas en Colores", Price: 21990},
	"palabras-que-habitan": {ID: "palabras-que-habitan", Name: "Palabras que Habitan", Price: 31990},
	"soy-presente":         {ID: "soy-presente", Name: "Soy Presente", Price: 34990},
	"ecos-que-sanan":       {ID: "ecos-que-sanan", Name: "Ecos que Sanan", Price: 29990},
}
