package cart

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	storecart "storefront.GO/cart"
	cartEntity "storefront.GO/model/entity/cart"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&cartEntity.CartRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testSnapshot() Snapshot {
	return Snapshot{
		SessionID: "sess-1",
		Currency:  "USD",
		Items: storecart.Collection{
			"jacket/colour=yellow": {
				ID:       "jacket",
				Quantity: 2,
				ProductInfo: storecart.ProductInfo{
					Name:   "Jacket",
					Prices: map[string]float64{"USD": 73.5},
				},
			},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	repo := NewCartRepository(testDB(t), nil)
	if err := repo.Save(testSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	snap, err := repo.Load("sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap == nil {
		t.Fatal("Load: want snapshot, got nil")
	}
	if snap.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", snap.Currency)
	}
	line := snap.Items["jacket/colour=yellow"]
	if line.Quantity != 2 || line.ProductInfo.Prices["USD"] != 73.5 {
		t.Errorf("line = %+v, want stored quantities and prices back", line)
	}
}

func TestLoad_MissingSession(t *testing.T) {
	repo := NewCartRepository(testDB(t), nil)
	snap, err := repo.Load("nope")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap != nil {
		t.Errorf("Load = %+v, want nil for unknown session", snap)
	}
}

func TestSave_UpsertsBySession(t *testing.T) {
	repo := NewCartRepository(testDB(t), nil)
	if err := repo.Save(testSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	second := testSnapshot()
	second.Currency = "EUR"
	second.Items = storecart.Collection{}
	if err := repo.Save(second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	snap, err := repo.Load("sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap.Currency != "EUR" || len(snap.Items) != 0 {
		t.Errorf("snapshot = %+v, want second save to win", snap)
	}

	var count int64
	repo.db.Model(&cartEntity.CartRecord{}).Count(&count)
	if count != 1 {
		t.Errorf("rows = %d, want 1 (upsert, not insert)", count)
	}
}

func TestDelete(t *testing.T) {
	repo := NewCartRepository(testDB(t), nil)
	if err := repo.Save(testSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Delete("sess-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	snap, err := repo.Load("sess-1")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap != nil {
		t.Error("Load after Delete: want nil")
	}
}

func TestPruneOlderThan(t *testing.T) {
	db := testDB(t)
	repo := NewCartRepository(db, nil)
	if err := repo.Save(testSnapshot()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	stale := testSnapshot()
	stale.SessionID = "sess-stale"
	if err := repo.Save(stale); err != nil {
		t.Fatalf("Save stale: %v", err)
	}
	// Age the second snapshot directly.
	old := time.Now().Add(-48 * time.Hour)
	if err := db.Model(&cartEntity.CartRecord{}).Where("session_id = ?", "sess-stale").
		UpdateColumn("updated_at", old).Error; err != nil {
		t.Fatalf("age row: %v", err)
	}

	pruned, err := repo.PruneOlderThan(24 * time.Hour)
	if err != nil {
		t.Fatalf("PruneOlderThan: %v", err)
	}
	if pruned != 1 {
		t.Errorf("pruned = %d, want 1", pruned)
	}
	if snap, _ := repo.Load("sess-1"); snap == nil {
		t.Error("fresh session pruned, want kept")
	}
	if snap, _ := repo.Load("sess-stale"); snap != nil {
		t.Error("stale session kept, want pruned")
	}
}
