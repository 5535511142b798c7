package jobs

import (
	"encoding/json"
	"log"
	"time"

	"foodcourt.GO/config"
	"foodcourt.GO/cron"
	menuRepo "foodcourt.GO/model/repository/menu"
)

func init() {
	cron.Register("catalogwarm", "@every 10m", CatalogWarmJob)
}

// CatalogWarmJob pre-loads every menu item's configurator payload into the
// process cache so the first product-open after a deploy or cache flush does
// not pay the database round trip. When Redis is configured the payloads are
// mirrored there for other instances. Args may carry specific skus; without
// args every item is warmed.
func CatalogWarmJob(args ...string) {
	db, err := config.NewDB()
	if err != nil {
		log.Printf("catalogwarm: database connection failed: %v", err)
		return
	}
	repo := menuRepo.NewMenuRepository(db)

	skus := args
	if len(skus) == 0 {
		items, err := repo.List(0)
		if err != nil {
			log.Printf("catalogwarm: list items: %v", err)
			return
		}
		for _, item := range items {
			skus = append(skus, item.SKU)
		}
	}

	start := time.Now()
	warmed := 0
	for _, sku := range skus {
		payload, err := repo.LoadPayload(sku)
		if err != nil {
			log.Printf("catalogwarm: %s: %v", sku, err)
			continue
		}
		warmed++

		if config.RedisClient != nil {
			raw, err := json.Marshal(payload)
			if err != nil {
				continue
			}
			if err := config.RedisClient.Set(config.RedisCtx(), "catalog:payload:"+sku, raw, 10*time.Minute).Err(); err != nil {
				log.Printf("catalogwarm: redis mirror %s: %v", sku, err)
			}
		}
	}
	log.Printf("catalogwarm: warmed %d/%d items in %s", warmed, len(skus), time.Since(start).Round(time.Millisecond))
}
