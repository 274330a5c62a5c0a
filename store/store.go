// Package store is an explicit state container for storefront sessions: a
// State value, a pure reducer over a closed action set, and a Store that
// serializes dispatches. Stores are constructed and injected by callers;
// there is no package-level instance.
package store

import (
	"sync"

	"storefront.GO/cart"
)

// State is one session's storefront state.
type State struct {
	Currency string          `json:"currency"`
	Cart     cart.Collection `json:"cart"`
}

// Action is one element of the closed action set understood by Reduce.
type Action interface{ isAction() }

// SetCurrency switches the active display currency.
type SetCurrency struct {
	Currency string
}

// AddProduct inserts or merges a line item at Key. Currency records the
// display currency the add happened under, mirroring the onAddProduct
// callback payload; the reducer itself does not consume it.
type AddProduct struct {
	Key      string
	Item     cart.LineItem
	Currency string
}

// UpdateProduct shallow-merges Patch into the line at Key.
type UpdateProduct struct {
	Key   string
	Patch cart.Patch
}

// RemoveProduct drops the line at Key.
type RemoveProduct struct {
	Key string
}

func (SetCurrency) isAction()   {}
func (AddProduct) isAction()    {}
func (UpdateProduct) isAction() {}
func (RemoveProduct) isAction() {}

// Reduce is the pure transition function. Actions outside the known set
// return the state unchanged, keeping the function total.
func Reduce(s State, a Action) State {
	switch act := a.(type) {
	case SetCurrency:
		s.Currency = act.Currency
	case AddProduct:
		s.Cart = s.Cart.AddOrMerge(act.Key, act.Item)
	case UpdateProduct:
		s.Cart = s.Cart.Update(act.Key, act.Patch)
	case RemoveProduct:
		s.Cart = s.Cart.Remove(act.Key)
	}
	return s
}

// Store holds a State and serializes all transitions through Dispatch.
type Store struct {
	mu       sync.Mutex
	notifyMu sync.Mutex
	state    State
	nextID   int
	subs     map[int]func(State)
}

// New returns a store with the given initial state.
func New(initial State) *Store {
	if initial.Cart == nil {
		initial.Cart = cart.Collection{}
	}
	return &Store{state: initial}
}

// State returns the current state. Cart is copy-on-write, so the snapshot
// stays valid after further dispatches.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies one action atomically and notifies subscribers with the
// resulting state. Returns that state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	// The notify lock is taken before the state lock is released, so
	// subscribers observe states in dispatch order. A persistence
	// subscriber would otherwise write an older snapshot over a newer one.
	s.notifyMu.Lock()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	s.notifyMu.Unlock()
	return next
}

// Subscribe registers fn to run after every dispatch, in dispatch order.
// fn must not dispatch back into the store. The returned function
// unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]func(State))
	}
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Bind returns callbacks that dispatch into s, the default wiring between
// widgets and a store.
func Bind(s *Store) cart.Callbacks {
	return cart.Callbacks{
		OnAddProduct: func(key string, item cart.LineItem, currency string) {
			s.Dispatch(AddProduct{Key: key, Item: item, Currency: currency})
		},
		OnUpdateProduct: func(key string, patch cart.Patch) {
			s.Dispatch(UpdateProduct{Key: key, Patch: patch})
		},
		OnRemoveProduct: func(key string) {
			s.Dispatch(RemoveProduct{Key: key})
		},
	}
}
