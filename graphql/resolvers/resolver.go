package resolvers

import (
	"context"

	"gorm.io/gorm"

	gqlmodels "foodcourt.GO/graphql/models"
	menuRepo "foodcourt.GO/model/repository/menu"
	"foodcourt.GO/service/configurator"
)

// Resolver is created per request with the request's location code.
type Resolver struct {
	db       *gorm.DB
	location string
	repo     *menuRepo.MenuRepository
}

func NewResolver(db *gorm.DB, location string) *Resolver {
	return &Resolver{db: db, location: location, repo: menuRepo.NewMenuRepository(db)}
}

// MenuItems resolves every catalog item with its derived option groups.
func (r *Resolver) MenuItems(ctx context.Context) ([]*gqlmodels.MenuItem, error) {
	items, err := r.repo.List(0)
	if err != nil {
		return nil, err
	}
	out := make([]*gqlmodels.MenuItem, 0, len(items))
	for _, it := range items {
		sess, err := r.repo.OpenSession(it.SKU)
		if err != nil {
			continue
		}
		out = append(out, mapMenuItem(sess))
	}
	return out, nil
}

// MenuItem resolves one item by sku, nil when absent.
func (r *Resolver) MenuItem(ctx context.Context, sku string) (*gqlmodels.MenuItem, error) {
	sess, err := r.repo.OpenSession(sku)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapMenuItem(sess), nil
}

// MenuOptions resolves the option groups narrowed by the given selection.
func (r *Resolver) MenuOptions(ctx context.Context, sku string, selections configurator.Selections) ([]*gqlmodels.OptionGroup, error) {
	sess, err := r.repo.OpenSession(sku)
	if err != nil {
		return nil, err
	}
	return mapGroups(sess.Filtered(selections)), nil
}

// Quote validates and prices a configuration.
func (r *Resolver) Quote(ctx context.Context, sku string, selections configurator.Selections, toppings []configurator.ToppingSelection) (*gqlmodels.Quote, error) {
	sess, err := r.repo.OpenSession(sku)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	quote, charges, err := sess.Quote(selections, toppings)
	if err != nil {
		return nil, err
	}
	return mapQuote(sku, quote, charges), nil
}
