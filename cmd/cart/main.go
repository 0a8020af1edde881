package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/entrealasyraices/storefront/internal/cart"
	"github.com/entrealasyraices/storefront/internal/checkout"
	"github.com/entrealasyraices/storefront/internal/getnet"
	"github.com/entrealasyraices/storefront/internal/money"
)

const usage = `usage: cart [-store file] <command> [args]

commands:
  products               list the catalog
  add <id> [qty]         add a catalog product
  remove <id>            remove a line
  qty <id> <n>           set a line's quantity (minimum 1)
  show [-shipping n]     print the cart and its totals
  checkout -api <url> [-shipping n]
                         open a payment session and print its URL
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, http.DefaultClient))
}

type app struct {
	store    *cart.Store
	view     *cart.TextView
	renderer *cart.Renderer
	out      io.Writer
	client   *http.Client
}

func run(args []string, stdout, stderr io.Writer, client *http.Client) int {
	fs := flag.NewFlagSet("cart", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	storePath := fs.String("store", "cart.json", "file holding the cart")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	a := &app{
		store:  cart.NewStore(cart.NewFileStorage(*storePath)),
		view:   &cart.TextView{},
		out:    stdout,
		client: client,
	}
	a.renderer = cart.NewRenderer(a.store, a.view, nil)
	a.store.SetNotifier(a.renderer)

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	var err error
	switch cmd {
	case "products":
		err = a.products()
	case "add":
		err = a.add(rest)
	case "remove":
		err = a.remove(rest)
	case "qty":
		err = a.qty(rest)
	case "show":
		err = a.show(rest, stderr)
	case "checkout":
		err = a.checkout(rest, stderr)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "cart:", err)
		return 1
	}
	return 0
}

func (a *app) products() error {
	for _, id := range catalogIDs() {
		p := cart.Products[id]
		fmt.Fprintf(a.out, "%-22s %-36s %s\n", id, p.Name, money.Format(p.Price))
	}
	return nil
}

func (a *app) add(args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New("add needs <id> [qty]")
	}
	qty := 1
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		qty = n
	}
	if err := a.store.AddProduct(args[0], qty); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%d productos en el carrito\n", a.store.Count())
	return nil
}

func (a *app) remove(args []string) error {
	if len(args) != 1 {
		return errors.New("remove needs <id>")
	}
	if err := a.store.Remove(args[0]); err != nil {
		return err
	}
	return a.print()
}

func (a *app) qty(args []string) error {
	if len(args) != 2 {
		return errors.New("qty needs <id> <n>")
	}
	n, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	if err := a.store.SetQty(args[0], n); err != nil {
		return err
	}
	return a.print()
}

func (a *app) show(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	shipping := fs.Int64("shipping", 0, "shipping fee in pesos")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.print(); err != nil {
		return err
	}
	items := a.store.Get()
	if len(items) == 0 {
		return nil
	}
	printTotals(a.out, checkout.Compute(items, *shipping))
	return nil
}

func (a *app) print() error {
	a.renderer.Render()
	_, err := a.view.WriteTo(a.out)
	return err
}

func printTotals(w io.Writer, t checkout.Totals) {
	fmt.Fprintf(w, "\nSubtotal: %s\n", money.Format(t.Subtotal))
	fmt.Fprintf(w, "Envío:    %s\n", money.Format(t.Shipping))
	fmt.Fprintf(w, "IVA (19%% incluido en productos): %s\n", money.Format(t.IVA))
	fmt.Fprintf(w, "Total:    %s\n", money.Format(t.Total))
}

type sessionAnswer struct {
	OK         bool             `json:"ok"`
	RequestID  getnet.RequestID `json:"requestId"`
	ProcessURL string           `json:"processUrl"`
	Error      string           `json:"error"`
	Details    json.RawMessage  `json:"details"`
}

func (a *app) checkout(args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("checkout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	api := fs.String("api", "http://localhost:8080", "storefront API base URL")
	shipping := fs.Int64("shipping", 0, "shipping fee in pesos")
	if err := fs.Parse(args); err != nil {
		return err
	}

	items := a.store.Get()
	if len(items) == 0 {
		return errors.New("el carrito está vacío")
	}
	totals := checkout.Compute(items, *shipping)
	reference := NewReference()

	body, err := json.Marshal(map[string]any{
		"amount":      totals.Total,
		"reference":   reference,
		"description": fmt.Sprintf("Compra Entre Alas y Raíces (%d productos)", a.store.Count()),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimSuffix(*api, "/")+"/api/getnet-create-session", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer resp.Body.Close()

	var ans sessionAnswer
	if err := json.NewDecoder(resp.Body).Decode(&ans); err != nil {
		return fmt.Errorf("create session: unreadable answer (http %d): %w", resp.StatusCode, err)
	}
	if !ans.OK || ans.ProcessURL == "" {
		return fmt.Errorf("create session: http %d %s %s", resp.StatusCode, ans.Error, string(ans.Details))
	}

	printTotals(a.out, totals)
	fmt.Fprintf(a.out, "\nPedido %s\nPagar en: %s\n", reference, ans.ProcessURL)
	return nil
}

// NewReference returns an order reference such as "EAR-1A2B3C4D".
func NewReference() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "EAR-" + strings.ToUpper(id[:8])
}

func catalogIDs() []string {
	ids := make([]string, 0, len(cart.Products))
	for id := range cart.Products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
