package jobs

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront.GO/catalog"
	"storefront.GO/core/cache"
	cartEntity "storefront.GO/model/entity/cart"
	productEntity "storefront.GO/model/entity/product"
	cartRepo "storefront.GO/model/repository/cart"
	productRepo "storefront.GO/model/repository/product"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&cartEntity.CartRecord{},
		&productEntity.Product{},
		&productEntity.Price{},
		&productEntity.OptionGroup{},
		&productEntity.OptionValue{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestCartPruneJob(t *testing.T) {
	db := testDB(t)
	Configure(db, nil)
	defer Configure(nil, nil)

	repo := cartRepo.NewCartRepository(db, nil)
	if err := repo.Save(cartRepo.Snapshot{SessionID: "stale", Currency: "USD"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(cartRepo.Snapshot{SessionID: "fresh", Currency: "USD"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	old := time.Now().Add(-48 * time.Hour)
	if err := db.Model(&cartEntity.CartRecord{}).Where("session_id = ?", "stale").UpdateColumn("updated_at", old).Error; err != nil {
		t.Fatalf("age row: %v", err)
	}

	CartPruneJob("24")

	if snap, _ := repo.Load("stale"); snap != nil {
		t.Error("stale cart survived prune")
	}
	if snap, _ := repo.Load("fresh"); snap == nil {
		t.Error("fresh cart was pruned")
	}
}

func TestCartPruneJob_Unconfigured(t *testing.T) {
	Configure(nil, nil)
	CartPruneJob() // must not panic
}

func TestProductFeedJob(t *testing.T) {
	db := testDB(t)
	Configure(db, nil)
	defer Configure(nil, nil)

	repo := productRepo.NewProductRepository(db)
	if err := repo.Save(catalog.Product{
		ID:         "jacket",
		Name:       "Jacket",
		BasePrices: map[string]float64{"USD": 70},
	}); err != nil {
		t.Fatalf("save product: %v", err)
	}

	ProductFeedJob()

	v, ok := cache.GetInstance().Get(FeedCacheKey)
	if !ok {
		t.Fatal("feed not cached")
	}
	feed, ok := v.(string)
	if !ok || !strings.Contains(feed, "jacket") {
		t.Fatalf("feed = %v, want JSON mentioning jacket", v)
	}
	var products []catalog.Product
	if err := json.Unmarshal([]byte(feed), &products); err != nil {
		t.Fatalf("feed is not valid JSON: %v", err)
	}
	if len(products) != 1 || products[0].ID != "jacket" {
		t.Errorf("feed products = %+v, want the saved jacket", products)
	}
}
