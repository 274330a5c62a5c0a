package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	storecart "storefront.GO/cart"
	cartEntity "storefront.GO/model/entity/cart"
)

// Snapshot is one session's persisted cart.
type Snapshot struct {
	SessionID string               `json:"session_id"`
	Currency  string               `json:"currency"`
	Items     storecart.Collection `json:"items"`
	UpdatedAt time.Time            `json:"updated_at"`
}

type CartRepository struct {
	db       *gorm.DB
	rdb      *redis.Client
	redisTTL time.Duration
}

// NewCartRepository returns a repository over db. rdb may be nil; when set
// it is used as a write-through cache in front of the database. Pass
// config.RedisClient to get the globally configured client.
func NewCartRepository(db *gorm.DB, rdb *redis.Client) *CartRepository {
	return &CartRepository{db: db, rdb: rdb, redisTTL: 24 * time.Hour}
}

func redisKey(sessionID string) string {
	return "cart:sess:" + sessionID
}

// Load returns the session's snapshot, or nil when none is stored. Redis is
// consulted first when configured; the database is the source of truth.
func (r *CartRepository) Load(sessionID string) (*Snapshot, error) {
	if r.rdb != nil {
		data, err := r.rdb.Get(context.Background(), redisKey(sessionID)).Bytes()
		if err == nil {
			var snap Snapshot
			if err := json.Unmarshal(data, &snap); err == nil {
				return &snap, nil
			}
			// Corrupt cache entry: fall through to the database.
			log.Printf("cart cache: bad payload for %s, reloading from DB", sessionID)
		}
	}

	var row cartEntity.CartRecord
	err := r.db.Where("session_id = ?", sessionID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	snap := &Snapshot{
		SessionID: row.SessionID,
		Currency:  row.Currency,
		Items:     row.Items.Data(),
		UpdatedAt: row.UpdatedAt,
	}
	r.cache(snap)
	return snap, nil
}

// Save upserts the session's snapshot and writes through to Redis.
func (r *CartRepository) Save(snap Snapshot) error {
	if snap.SessionID == "" {
		return fmt.Errorf("save cart: missing session id")
	}
	row := cartEntity.CartRecord{
		SessionID: snap.SessionID,
		Currency:  snap.Currency,
		Items:     datatypes.NewJSONType(snap.Items),
	}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"currency", "items", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	snap.UpdatedAt = row.UpdatedAt
	r.cache(&snap)
	return nil
}

// Delete removes the session's snapshot from the database and Redis.
func (r *CartRepository) Delete(sessionID string) error {
	if err := r.db.Where("session_id = ?", sessionID).Delete(&cartEntity.CartRecord{}).Error; err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	if r.rdb != nil {
		r.rdb.Del(context.Background(), redisKey(sessionID))
	}
	return nil
}

// PruneOlderThan deletes snapshots untouched for at least age and returns
// how many went. Redis entries expire on their own TTL.
func (r *CartRepository) PruneOlderThan(age time.Duration) (int64, error) {
	cutoff := time.Now().Add(-age)
	res := r.db.Where("updated_at < ?", cutoff).Delete(&cartEntity.CartRecord{})
	if res.Error != nil {
		return 0, fmt.Errorf("prune carts: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (r *CartRepository) cache(snap *Snapshot) {
	if r.rdb == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	if err := r.rdb.Set(context.Background(), redisKey(snap.SessionID), data, r.redisTTL).Err(); err != nil {
		log.Printf("cart cache: set failed for %s: %v", snap.SessionID, err)
	}
}
