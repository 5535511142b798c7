package menu

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	menuEntity "foodcourt.GO/model/entity/menu"
	menuRepo "foodcourt.GO/model/repository/menu"
)

// ImportOptions configures a menu import run.
type ImportOptions struct {
	// Workers bounds concurrent per-item upserts. Defaults to 4.
	Workers int
	// Replace drops an item's existing price variants before inserting the
	// imported ones. Without it variants are appended.
	Replace bool
}

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	Items       int
	Variants    int
	Toppings    int
	Skipped     int
	Warnings    []string
	ProcessTime time.Duration
	DBTime      time.Duration
	TotalTime   time.Duration
}

// menuFeed is the import document shape: the same raw option-list forms the
// catalog service emits, passed through to storage untouched.
type menuFeed struct {
	Items []struct {
		SKU             string                 `json:"sku"`
		Name            string                 `json:"name"`
		BasePrice       *float64               `json:"base_price"`
		ToppingGroupID  string                 `json:"topping_group_id"`
		ToppingIncludes map[string]int         `json:"topping_includes"`
		Variants        []struct {
			Amount      float64     `json:"amount"`
			IsMandatory bool        `json:"is_mandatory"`
			Options     interface{} `json:"options"`
		} `json:"variants"`
	} `json:"items"`
	Toppings []struct {
		Code             string        `json:"code"`
		GroupID          string        `json:"group_id"`
		Name             string        `json:"name"`
		IncludedPortions int           `json:"included_portions"`
		FlatPrice        *float64      `json:"flat_price"`
		PriceTiers       []interface{} `json:"price_tiers"`
	} `json:"toppings"`
}

// ImportMenu loads a JSON menu feed into the catalog tables and invalidates
// the cached catalog payloads. Items without a sku are skipped with a
// warning rather than failing the run.
func ImportMenu(db *gorm.DB, r io.Reader, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()

	var feed menuFeed
	if err := json.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("decode menu feed: %w", err)
	}

	res := &ImportResult{}
	res.ProcessTime = time.Since(start)

	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	dbStart := time.Now()
	var g errgroup.Group
	g.SetLimit(workers)

	type itemOutcome struct {
		variants int
		warning  string
	}
	outcomes := make([]itemOutcome, len(feed.Items))

	for i, in := range feed.Items {
		if in.SKU == "" {
			res.Skipped++
			res.Warnings = append(res.Warnings, "item without sku skipped")
			continue
		}
		i, in := i, in
		g.Go(func() error {
			item := menuEntity.MenuItem{
				SKU:            in.SKU,
				Name:           in.Name,
				BasePrice:      in.BasePrice,
				ToppingGroupID: in.ToppingGroupID,
			}
			if in.ToppingIncludes != nil {
				raw, err := json.Marshal(in.ToppingIncludes)
				if err == nil {
					item.ToppingIncludes = datatypes.JSON(raw)
				}
			}

			var existing menuEntity.MenuItem
			err := db.Where("sku = ?", in.SKU).First(&existing).Error
			switch {
			case err == nil:
				item.EntityID = existing.EntityID
				if err := db.Save(&item).Error; err != nil {
					return fmt.Errorf("update %s: %w", in.SKU, err)
				}
			case err == gorm.ErrRecordNotFound:
				if err := db.Create(&item).Error; err != nil {
					return fmt.Errorf("create %s: %w", in.SKU, err)
				}
			default:
				return fmt.Errorf("lookup %s: %w", in.SKU, err)
			}

			if opts.Replace {
				if err := db.Where("item_id = ?", item.EntityID).Delete(&menuEntity.PriceVariant{}).Error; err != nil {
					return fmt.Errorf("clear variants %s: %w", in.SKU, err)
				}
			}

			for pos, v := range in.Variants {
				raw, err := json.Marshal(v.Options)
				if err != nil {
					outcomes[i].warning = fmt.Sprintf("%s: unreadable option list at variant %d", in.SKU, pos)
					continue
				}
				variant := menuEntity.PriceVariant{
					ItemID:      item.EntityID,
					Amount:      v.Amount,
					IsMandatory: v.IsMandatory,
					Options:     datatypes.JSON(raw),
					Position:    pos,
				}
				if err := db.Create(&variant).Error; err != nil {
					return fmt.Errorf("variant %s/%d: %w", in.SKU, pos, err)
				}
				outcomes[i].variants++
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, in := range feed.Items {
		if in.SKU != "" {
			res.Items++
		}
	}
	for _, out := range outcomes {
		res.Variants += out.variants
		if out.warning != "" {
			res.Warnings = append(res.Warnings, out.warning)
		}
	}

	for _, in := range feed.Toppings {
		if in.Code == "" {
			res.Skipped++
			res.Warnings = append(res.Warnings, "topping without code skipped")
			continue
		}
		topping := menuEntity.Topping{
			Code:             in.Code,
			GroupID:          in.GroupID,
			Name:             in.Name,
			IncludedPortions: in.IncludedPortions,
			FlatPrice:        in.FlatPrice,
		}
		if in.PriceTiers != nil {
			if raw, err := json.Marshal(in.PriceTiers); err == nil {
				topping.PriceTiers = datatypes.JSON(raw)
			}
		}

		var existing menuEntity.Topping
		err := db.Where("code = ?", in.Code).First(&existing).Error
		switch {
		case err == nil:
			topping.ToppingID = existing.ToppingID
			err = db.Save(&topping).Error
		case err == gorm.ErrRecordNotFound:
			err = db.Create(&topping).Error
		}
		if err != nil {
			return nil, fmt.Errorf("topping %s: %w", in.Code, err)
		}
		res.Toppings++
	}

	res.DBTime = time.Since(dbStart)
	res.TotalTime = time.Since(start)

	menuRepo.InvalidateCatalog()
	return res, nil
}
