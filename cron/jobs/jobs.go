// Package jobs holds the built-in cron jobs listed in config.CronJobs.
//
// Jobs receive their database and Redis handles through Configure instead of
// reading config directly, because config already imports this package for
// the schedule table.
package jobs

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"storefront.GO/core/cache"
	cartRepo "storefront.GO/model/repository/cart"
	productRepo "storefront.GO/model/repository/product"
	searchService "storefront.GO/service/search"
)

// FeedCacheKey is where ProductFeedJob stores the rendered catalog feed.
const FeedCacheKey = "product:feed"

const (
	defaultCartMaxAgeHours = 720
	feedCacheTTLSeconds    = 2 * 3600
)

var (
	jobDB  *gorm.DB
	jobRDB *redis.Client
)

// Configure injects the handles the jobs run against. Call once at startup,
// before the scheduler starts.
func Configure(db *gorm.DB, rdb *redis.Client) {
	jobDB = db
	jobRDB = rdb
}

// CartPruneJob deletes carts untouched for args[0] hours (default 720).
func CartPruneJob(args ...string) {
	if jobDB == nil {
		log.Println("cron cartprunejob: no database configured, skipping")
		return
	}
	hours := defaultCartMaxAgeHours
	if len(args) > 0 && args[0] != "" {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			hours = n
		}
	}
	pruned, err := cartRepo.NewCartRepository(jobDB, jobRDB).PruneOlderThan(time.Duration(hours) * time.Hour)
	if err != nil {
		log.Printf("cron cartprunejob: %v", err)
		return
	}
	if pruned > 0 {
		log.Printf("cron cartprunejob: pruned %d stale carts", pruned)
	}
}

// ProductFeedJob renders the whole catalog as JSON and warms the cached
// feed served by the products API.
func ProductFeedJob(...string) {
	if jobDB == nil {
		log.Println("cron productfeedjob: no database configured, skipping")
		return
	}
	products, err := productRepo.NewProductRepository(jobDB).ListAll()
	if err != nil {
		log.Printf("cron productfeedjob: %v", err)
		return
	}
	payload, err := json.Marshal(products)
	if err != nil {
		log.Printf("cron productfeedjob: %v", err)
		return
	}
	cache.GetInstance().Set(FeedCacheKey, string(payload), feedCacheTTLSeconds, []string{"product"})
	log.Printf("cron productfeedjob: cached %d products", len(products))

	if svc := searchService.GetService(); svc.Enabled() {
		if err := svc.IndexAll(context.Background(), products); err != nil {
			log.Printf("cron productfeedjob: elasticsearch index: %v", err)
		} else {
			log.Printf("cron productfeedjob: indexed %d products", len(products))
		}
	}
}
