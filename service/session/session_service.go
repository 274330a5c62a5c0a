// Package session owns the live per-session cart stores shared by the
// REST and GraphQL surfaces.
package session

import (
	"log"
	"sync"

	"storefront.GO/config"
	"storefront.GO/core/cache"
	cartRepo "storefront.GO/model/repository/cart"
	"storefront.GO/store"
)

const (
	// CachePrefix keys live stores in the in-process cache.
	CachePrefix = "cart:store:"
	// CacheTTL is how long an idle store stays live, in seconds. Snapshots
	// stay in the database after eviction.
	CacheTTL = 3600
)

// resurrectMu serializes the cache-miss path. Without it two concurrent
// requests for the same cold session each build a store from the same
// snapshot; the loser's store stays live in its handler but is gone from
// the cache, and its persisted dispatches get overwritten by the winner.
var resurrectMu sync.Mutex

// StoreFor returns the session's live store, resurrecting it from the
// persisted snapshot when it is not cached. Every dispatch persists the
// new state through the repository subscriber. Concurrent calls for the
// same session always share one store.
func StoreFor(repo *cartRepo.CartRepository, sid string) (*store.Store, error) {
	key := CachePrefix + sid
	if v, ok := cache.GetInstance().Get(key); ok {
		if s, isStore := v.(*store.Store); isStore {
			return s, nil
		}
	}

	resurrectMu.Lock()
	defer resurrectMu.Unlock()
	// Another request may have resurrected the session while we waited.
	if v, ok := cache.GetInstance().Get(key); ok {
		if s, isStore := v.(*store.Store); isStore {
			return s, nil
		}
	}

	initial := store.State{Currency: config.AppConfig.DefaultCurrency}
	snap, err := repo.Load(sid)
	if err != nil {
		return nil, err
	}
	if snap != nil {
		if snap.Currency != "" {
			initial.Currency = snap.Currency
		}
		initial.Cart = snap.Items
	}

	s := store.New(initial)
	s.Subscribe(func(st store.State) {
		if err := repo.Save(cartRepo.Snapshot{SessionID: sid, Currency: st.Currency, Items: st.Cart}); err != nil {
			log.Printf("cart persist %s: %v", sid, err)
		}
	})
	cache.GetInstance().Set(key, s, CacheTTL, []string{"cart"})
	return s, nil
}
