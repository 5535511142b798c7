package menu

import (
	"encoding/json"
	"fmt"

	"gorm.io/gorm"

	"foodcourt.GO/core/cache"
	menuEntity "foodcourt.GO/model/entity/menu"
	"foodcourt.GO/service/configurator"
)

// catalogTTL bounds how long a loaded item payload stays cached (seconds).
const catalogTTL = 600

type MenuRepository struct {
	db *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{db: db}
}

// ItemPayload is everything the configurator needs for one menu item,
// already parsed out of the row shapes. Cached under tag "catalog".
type ItemPayload struct {
	Product  configurator.Product
	Raws     []configurator.RawCombination
	Toppings []configurator.ToppingDefinition
}

// FindBySKU returns the bare menu item row.
func (r *MenuRepository) FindBySKU(sku string) (*menuEntity.MenuItem, error) {
	var item menuEntity.MenuItem
	if err := r.db.Where("sku = ?", sku).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns up to limit items for browsing.
func (r *MenuRepository) List(limit int) ([]menuEntity.MenuItem, error) {
	if limit <= 0 {
		limit = 50
	}
	var items []menuEntity.MenuItem
	if err := r.db.Order("entity_id").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// SearchByName is the SQL fallback for menu search.
func (r *MenuRepository) SearchByName(query string, limit int) ([]menuEntity.MenuItem, error) {
	if limit <= 0 {
		limit = 20
	}
	var items []menuEntity.MenuItem
	err := r.db.Where("name LIKE ?", "%"+query+"%").Order("entity_id").Limit(limit).Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// LoadPayload assembles the configurator inputs for one item: its price
// variants in catalog order and the toppings of its group. The payload is
// cached read-through; sessions themselves are always derived fresh per
// product-open.
func (r *MenuRepository) LoadPayload(sku string) (*ItemPayload, error) {
	cacheKey := "menu:payload:" + sku
	if v, ok := cache.GetInstance().Get(cacheKey); ok {
		if payload, isPayload := v.(*ItemPayload); isPayload {
			return payload, nil
		}
	}

	item, err := r.FindBySKU(sku)
	if err != nil {
		return nil, err
	}

	var variants []menuEntity.PriceVariant
	if err := r.db.Where("item_id = ?", item.EntityID).Order("position, value_id").Find(&variants).Error; err != nil {
		return nil, fmt.Errorf("load variants for %s: %w", sku, err)
	}

	var toppingRows []menuEntity.Topping
	if item.ToppingGroupID != "" {
		if err := r.db.Where("group_id = ?", item.ToppingGroupID).Order("topping_id").Find(&toppingRows).Error; err != nil {
			return nil, fmt.Errorf("load toppings for %s: %w", sku, err)
		}
	}

	payload := &ItemPayload{
		Product: configurator.Product{
			ID:              item.SKU,
			Name:            item.Name,
			BasePrice:       item.BasePrice,
			ToppingIncludes: parseIncludes(item.ToppingIncludes),
		},
		Raws:     rawCombinations(variants),
		Toppings: toppingDefinitions(toppingRows),
	}

	cache.GetInstance().Set(cacheKey, payload, catalogTTL, []string{"catalog"})
	return payload, nil
}

// OpenSession derives a fresh configuration session for one product-open
// event.
func (r *MenuRepository) OpenSession(sku string) (*configurator.Session, error) {
	payload, err := r.LoadPayload(sku)
	if err != nil {
		return nil, err
	}
	return configurator.NewSession(payload.Product, payload.Raws, payload.Toppings), nil
}

func rawCombinations(variants []menuEntity.PriceVariant) []configurator.RawCombination {
	raws := make([]configurator.RawCombination, 0, len(variants))
	for _, v := range variants {
		var options interface{}
		if len(v.Options) > 0 {
			// malformed JSON leaves options nil: the combination still
			// prices the bare product
			_ = json.Unmarshal(v.Options, &options)
		}
		raws = append(raws, configurator.RawCombination{
			Amount:      v.Amount,
			IsMandatory: v.IsMandatory,
			Options:     options,
		})
	}
	return raws
}

// tierRow mirrors one entry of the stored price_tiers JSON.
type tierRow struct {
	Amount  interface{} `json:"amount"`
	Options interface{} `json:"options"`
}

func toppingDefinitions(rows []menuEntity.Topping) []configurator.ToppingDefinition {
	defs := make([]configurator.ToppingDefinition, 0, len(rows))
	for _, row := range rows {
		def := configurator.ToppingDefinition{
			ID:               row.Code,
			Name:             row.Name,
			IncludedPortions: row.IncludedPortions,
			FlatPrice:        row.FlatPrice,
		}
		if len(row.PriceTiers) > 0 {
			var tiers []tierRow
			if err := json.Unmarshal(row.PriceTiers, &tiers); err == nil {
				raws := make([]configurator.RawCombination, 0, len(tiers))
				for _, t := range tiers {
					raws = append(raws, configurator.RawCombination{Amount: t.Amount, Options: t.Options})
				}
				def.PriceTiers = configurator.ParseCombinations(raws)
			}
		}
		defs = append(defs, def)
	}
	return defs
}

func parseIncludes(raw []byte) map[string]int {
	if len(raw) == 0 {
		return nil
	}
	var includes map[string]int
	if err := json.Unmarshal(raw, &includes); err != nil {
		return nil
	}
	return includes
}

// InvalidateCatalog drops every cached item payload. Called after imports.
func InvalidateCatalog() {
	cache.GetInstance().DeleteByTag("catalog")
}
