package cart

import (
	"sort"
	"sync"

	"github.com/greengarden/greenery/model"
)

type line struct {
	name      string
	unitPrice float64
	quantity  int
}

// Aggregator accumulates cart line items for one session. Quantities are
// keyed by item identity; the unit price is captured on first add and never
// re-read from the catalog. The total is always derived from the entry set,
// there is no running counter to drift. State lives only as long as the
// session; nothing is persisted.
type Aggregator struct {
	mu    sync.Mutex
	lines map[model.CartItemKey]*line
}

func NewAggregator() *Aggregator {
	return &Aggregator{lines: make(map[model.CartItemKey]*line)}
}

// Add increments the quantity for the item, inserting it with quantity 1 and
// the given unit price if absent.
func (a *Aggregator) Add(key model.CartItemKey, name string, unitPrice float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if l, ok := a.lines[key]; ok {
		l.quantity++
		return
	}
	a.lines[key] = &line{name: name, unitPrice: unitPrice, quantity: 1}
}

// Decrement reduces the quantity by one and drops the entry when it reaches
// zero. Decrementing an absent item is a no-op.
func (a *Aggregator) Decrement(key model.CartItemKey) {
	a.mu.Lock()
	defer a.mu.Unlock()

	l, ok := a.lines[key]
	if !ok {
		return
	}
	l.quantity--
	if l.quantity <= 0 {
		delete(a.lines, key)
	}
}

// Remove deletes the entry regardless of quantity; no-op when absent.
func (a *Aggregator) Remove(key model.CartItemKey) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.lines, key)
}

func (a *Aggregator) Total() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalLocked()
}

func (a *Aggregator) totalLocked() float64 {
	var total float64
	for _, l := range a.lines {
		total += float64(l.quantity) * l.unitPrice
	}
	return total
}

// View returns the current lines and derived total in a stable order.
func (a *Aggregator) View() model.CartResponse {
	a.mu.Lock()
	defer a.mu.Unlock()

	items := make([]model.CartLine, 0, len(a.lines))
	for key, l := range a.lines {
		items = append(items, model.CartLine{
			Category:  key.Category,
			ItemID:    key.ID,
			Name:      l.name,
			UnitPrice: l.unitPrice,
			Quantity:  l.quantity,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Category != items[j].Category {
			return items[i].Category < items[j].Category
		}
		return items[i].ItemID < items[j].ItemID
	})

	return model.CartResponse{Items: items, Total: a.totalLocked()}
}

func (a *Aggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lines = make(map[model.CartItemKey]*line)
}

// Manager hands out one Aggregator per session key. Carts are created on
// first use and dropped explicitly; they do not survive the process.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*Aggregator
}

func NewManager() *Manager {
	return &Manager{carts: make(map[string]*Aggregator)}
}

func (m *Manager) Get(sessionKey string) *Aggregator {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.carts[sessionKey]; ok {
		return c
	}
	c := NewAggregator()
	m.carts[sessionKey] = c
	return c
}

func (m *Manager) Drop(sessionKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionKey)
}
