package router

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Destination is an opaque navigable identifier.
type Destination string

// PageAddress returns the conventional address of a destination's page.
func PageAddress(d Destination) string {
	return fmt.Sprintf("/pages/%s/%s.html", d, d)
}

// Routes maps destinations to content addresses.
type Routes struct {
	mu        sync.RWMutex
	addresses map[Destination]string
}

// NewRoutes creates an empty route table.
func NewRoutes() *Routes {
	return &Routes{
		addresses: make(map[Destination]string),
	}
}

// Register maps a destination to an explicit address.
func (r *Routes) Register(d Destination, address string) *Routes {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addresses[d] = address
	return r
}

// Replace swaps the whole table, as done on configuration reload.
func (r *Routes) Replace(addresses map[Destination]string) {
	next := make(map[Destination]string, len(addresses))
	maps.Copy(next, addresses)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.addresses = next
}

// Resolve returns the content address for d.
func (r *Routes) Resolve(d Destination) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if address, ok := r.addresses[d]; ok {
		return address
	}
	return PageAddress(d)
}

// Registered reports whether d has an explicit address.
func (r *Routes) Registered(d Destination) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.addresses[d]
	return ok
}

// Destinations returns the registered destinations in sorted order.
func (r *Routes) Destinations() []Destination {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.addresses))
}

// Pairs is the static detail → master table.
type Pairs struct {
	mu      sync.RWMutex
	masters map[Destination]Destination
}

// NewPairs creates an empty pairing table.
func NewPairs() *Pairs {
	return &Pairs{
		masters: make(map[Destination]Destination),
	}
}

// Pair shows master alongside detail.
func (p *Pairs) Pair(detail, master Destination) *Pairs {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.masters[detail] = master
	return p
}

// Replace swaps the whole table.
func (p *Pairs) Replace(masters map[Destination]Destination) {
	next := make(map[Destination]Destination, len(masters))
	maps.Copy(next, masters)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.masters = next
}

// Master returns the master paired with detail.
func (p *Pairs) Master(detail Destination) (Destination, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	m, ok := p.masters[detail]
	return m, ok
}

// Details returns the paired detail destinations in sorted order.
func (p *Pairs) Details() []Destination {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Sorted(maps.Keys(p.masters))
}
