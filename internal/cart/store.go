package cart

import (
	"encoding/json"
	"errors"
	"fmt"
)

// StorageKey is where the cart lives in storage.
const StorageKey = "ear_cart_v1"

var ErrUnknownProduct = errors.New("product not in catalog")

// Notifier is the UI side of the cart. BadgeChanged follows every mutation;
// LinesChanged is sent when existing lines were edited or removed, which is
// when a visible cart table has to be redrawn.
type Notifier interface {
	BadgeChanged(count int)
	LinesChanged()
}

// Store is the cart kept in a Storage under one key. Every mutation is a
// read-modify-write of the whole list; there is no locking across processes.
type Store struct {
	storage  Storage
	key      string
	notifier Notifier
}

type Option func(*Store)

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithNotifier attaches the UI adapter.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{storage: storage, key: StorageKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetNotifier replaces the UI adapter. Renderers need the store before they
// exist, so wiring usually happens in two steps.
func (s *Store) SetNotifier(n Notifier) {
	s.notifier = n
}

// Get returns the stored items. A missing or unreadable value yields an empty
// cart, never an error.
func (s *Store) Get() []Item {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil || !ok || raw == "" {
		return []Item{}
	}
	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil || items == nil {
		return []Item{}
	}
	for i := range items {
		if items[i].Qty < 1 {
			items[i].Qty = 1
		}
	}
	return items
}

// Save replaces the stored cart with items.
func (s *Store) Save(items []Item) error {
	if items == nil {
		items = []Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	if err := s.storage.SetItem(s.key, string(data)); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Add merges item into the cart by ID. A zero or negative Qty counts as 1.
func (s *Store) Add(item Item) error {
	qty := item.Qty
	if qty < 1 {
		qty = 1
	}

	items := s.Get()
	merged := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		item.Qty = qty
		items = append(items, item)
	}

	if err := s.Save(items); err != nil {
		return err
	}
	s.badge(items)
	return nil
}

// AddProduct adds qty units of a catalog product.
func (s *Store) AddProduct(id string, qty int) error {
	p, ok := Products[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProduct, id)
	}
	p.Qty = qty
	return s.Add(p)
}

// Remove drops the line with the given ID. Unknown IDs leave the cart as is.
func (s *Store) Remove(id string) error {
	items := s.Get()
	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if err := s.Save(kept); err != nil {
		return err
	}
	s.changed(kept)
	return nil
}

// SetQty sets a line's quantity, clamped to at least 1.
func (s *Store) SetQty(id string, qty int) error {
	if qty < 1 {
		qty = 1
	}
	items := s.Get()
	for i := range items {
		if items[i].ID == id {
			items[i].Qty = qty
		}
	}
	if err := s.Save(items); err != nil {
		return err
	}
	s.changed(items)
	return nil
}

// Total is the sum of price x qty. Shipping and tax are not cart concerns.
func (s *Store) Total() int64 {
	return total(s.Get())
}

// Count is the number of units in the cart, the value the badge shows.
func (s *Store) Count() int {
	return count(s.Get())
}

func (s *Store) badge(items []Item) {
	if s.notifier != nil {
		s.notifier.BadgeChanged(count(items))
	}
}

func (s *Store) changed(items []Item) {
	if s.notifier != nil {
		s.notifier.LinesChanged()
		s.notifier.BadgeChanged(count(items))
	}
}

func total(items []Item) int64 {
	var sum int64
	for _, it := range items {
		sum += it.LineTotal()
	}
	return sum
}

func count(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Qty
	}
	return n
}
