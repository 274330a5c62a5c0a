package product

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront.GO/catalog"
	productEntity "storefront.GO/model/entity/product"
	productRepo "storefront.GO/model/repository/product"
)

// File-backed DB because the import flushes modules from parallel
// goroutines; a shared :memory: handle is per-connection in sqlite.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	tmpFile := filepath.Join(os.TempDir(), fmt.Sprintf("import_test_%s_%d.db", t.Name(), time.Now().UnixNano()))
	t.Cleanup(func() { os.Remove(tmpFile) })
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	if err := db.AutoMigrate(
		&productEntity.Product{},
		&productEntity.Price{},
		&productEntity.OptionGroup{},
		&productEntity.OptionValue{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

const importCSV = `id,name,path,image_path,show_in_cart,price:USD,price:EUR,option:colour,option:size,bogus
jacket,Jacket,/products/jacket,/media/catalog/jacket.jpg,colour|size,70,60,red|yellow(+USD:3.5;EUR:3)|blue,S|M|L,x
socks,Wool Socks,/products/socks,,,9.5,8,solid,,
,missing,,,,,,,,
`

func TestImportCatalog(t *testing.T) {
	db := testDB(t)

	result, err := ImportCatalog(db, strings.NewReader(importCSV), ImportOptions{})
	if err != nil {
		t.Fatalf("ImportCatalog: %v", err)
	}

	if result.TotalRows != 3 {
		t.Errorf("TotalRows = %d, want 3", result.TotalRows)
	}
	if result.Created != 2 {
		t.Errorf("Created = %d, want 2", result.Created)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
	if result.Updated != 0 {
		t.Errorf("Updated = %d, want 0", result.Updated)
	}
	if result.Counts["price"] != 4 {
		t.Errorf("price count = %d, want 4", result.Counts["price"])
	}
	if result.Counts["option_group"] != 3 {
		t.Errorf("option_group count = %d, want 3", result.Counts["option_group"])
	}
	if result.Counts["option_value"] != 7 {
		t.Errorf("option_value count = %d, want 7", result.Counts["option_value"])
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "bogus") {
		t.Errorf("Warnings = %v, want one unknown-column warning", result.Warnings)
	}

	repo := productRepo.NewProductRepository(db)
	p, err := repo.GetByProductID("jacket")
	if err != nil {
		t.Fatalf("GetByProductID: %v", err)
	}
	if p.Name != "Jacket" {
		t.Errorf("Name = %q, want Jacket", p.Name)
	}
	if got := p.BasePrices["USD"]; got != 70 {
		t.Errorf("BasePrices[USD] = %v, want 70", got)
	}
	if len(p.OptionGroups) != 2 || p.OptionGroups[0].Name != "colour" || p.OptionGroups[1].Name != "size" {
		t.Fatalf("OptionGroups = %+v, want colour then size", p.OptionGroups)
	}
	colour := p.OptionGroups[0]
	if len(colour.Variants) != 3 {
		t.Fatalf("colour variants = %d, want 3", len(colour.Variants))
	}
	if colour.Variants[1].Value != "yellow" || colour.Variants[1].AdditionalCost["USD"] != 3.5 {
		t.Errorf("yellow variant = %+v, want additional cost USD 3.5", colour.Variants[1])
	}
	if got := p.Price(map[string]int{"colour": 1, "size": 0}, "USD"); got != 73.5 {
		t.Errorf("Price(yellow, USD) = %v, want 73.5", got)
	}
	if want := []string{"colour", "size"}; len(p.PropertiesToShowInCart) != 2 || p.PropertiesToShowInCart[0] != want[0] {
		t.Errorf("PropertiesToShowInCart = %v, want %v", p.PropertiesToShowInCart, want)
	}
}

func TestImportCatalog_Reimport(t *testing.T) {
	db := testDB(t)

	if _, err := ImportCatalog(db, strings.NewReader(importCSV), ImportOptions{}); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := "id,name,price:USD,option:colour\njacket,Jacket Mk2,75,red|green\n"
	result, err := ImportCatalog(db, strings.NewReader(second), ImportOptions{})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if result.Created != 0 || result.Updated != 1 || result.Skipped != 0 {
		t.Errorf("created/updated/skipped = %d/%d/%d, want 0/1/0", result.Created, result.Updated, result.Skipped)
	}

	repo := productRepo.NewProductRepository(db)
	p, err := repo.GetByProductID("jacket")
	if err != nil {
		t.Fatalf("GetByProductID: %v", err)
	}
	if p.Name != "Jacket Mk2" {
		t.Errorf("Name = %q, want Jacket Mk2", p.Name)
	}
	if p.BasePrices["USD"] != 75 {
		t.Errorf("BasePrices[USD] = %v, want 75", p.BasePrices["USD"])
	}
	if p.BasePrices["EUR"] != 60 {
		t.Errorf("BasePrices[EUR] = %v, want 60 kept from first import", p.BasePrices["EUR"])
	}
	if len(p.OptionGroups) != 1 || len(p.OptionGroups[0].Variants) != 2 {
		t.Fatalf("OptionGroups = %+v, want single colour group with red and green", p.OptionGroups)
	}
}

func TestImportCatalog_MissingIDColumn(t *testing.T) {
	db := testDB(t)
	_, err := ImportCatalog(db, strings.NewReader("name,price:USD\nJacket,70\n"), ImportOptions{})
	if err == nil {
		t.Fatal("expected error for CSV without id column")
	}
}

func TestParseVariant(t *testing.T) {
	cases := []struct {
		raw     string
		want    catalog.Variant
		wantErr bool
	}{
		{raw: "red", want: catalog.Scalar("red")},
		{raw: " blue ", want: catalog.Scalar("blue")},
		{raw: "yellow(+USD:3.5;EUR:3)", want: catalog.Option("yellow", map[string]float64{"USD": 3.5, "EUR": 3})},
		{raw: "big(usd:10)", want: catalog.Option("big", map[string]float64{"USD": 10})},
		{raw: "bad(USD)", wantErr: true},
		{raw: "bad(USD:x)", wantErr: true},
		{raw: "bad(USD:1", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseVariant(tc.raw)
		if tc.wantErr {
			if err == nil {
				t.Errorf("parseVariant(%q): expected error", tc.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseVariant(%q): %v", tc.raw, err)
			continue
		}
		if got.Value != tc.want.Value || len(got.AdditionalCost) != len(tc.want.AdditionalCost) {
			t.Errorf("parseVariant(%q) = %+v, want %+v", tc.raw, got, tc.want)
		}
		for cur, amount := range tc.want.AdditionalCost {
			if got.AdditionalCost[cur] != amount {
				t.Errorf("parseVariant(%q)[%s] = %v, want %v", tc.raw, cur, got.AdditionalCost[cur], amount)
			}
		}
	}
}
