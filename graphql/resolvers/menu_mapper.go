package resolvers

import (
	gqlmodels "foodcourt.GO/graphql/models"
	"foodcourt.GO/service/configurator"
)

func mapMenuItem(sess *configurator.Session) *gqlmodels.MenuItem {
	item := &gqlmodels.MenuItem{
		SKU:       sess.Product.ID,
		Name:      sess.Product.Name,
		BasePrice: sess.Product.BasePrice,
		Groups:    mapGroups(sess.Groups),
		Mandatory: sess.MandatoryKeys(),
	}
	for _, def := range sess.Toppings {
		item.Toppings = append(item.Toppings, &gqlmodels.Topping{
			ID:               def.ID,
			Name:             def.Name,
			IncludedPortions: int32(sess.IncludedPortions(def.ID)),
		})
	}
	if item.Mandatory == nil {
		item.Mandatory = []string{}
	}
	return item
}

func mapGroups(groups []configurator.OptionGroup) []*gqlmodels.OptionGroup {
	out := make([]*gqlmodels.OptionGroup, 0, len(groups))
	for _, g := range groups {
		mg := &gqlmodels.OptionGroup{Key: g.Key, IsRequired: g.IsRequired}
		for _, v := range g.Options {
			mv := &gqlmodels.OptionValue{ID: v.ID, Name: v.Name}
			if v.GroupID != "" {
				gid := v.GroupID
				mv.GroupID = &gid
			}
			mg.Options = append(mg.Options, mv)
		}
		out = append(out, mg)
	}
	return out
}

func mapQuote(sku string, quote configurator.PriceCalculationResult, charges []configurator.ToppingCharge) *gqlmodels.Quote {
	q := &gqlmodels.Quote{
		SKU:           sku,
		BasePrice:     quote.BasePrice,
		OptionsPrice:  quote.OptionsPrice,
		ToppingsPrice: quote.ToppingsPrice,
		Total:         quote.Total,
		Charges:       []*gqlmodels.ToppingCharge{},
	}
	for _, c := range charges {
		q.Charges = append(q.Charges, &gqlmodels.ToppingCharge{
			ID:         c.ID,
			Name:       c.Name,
			Portions:   int32(c.Portions),
			Included:   int32(c.Included),
			Chargeable: int32(c.Chargeable),
			Removed:    int32(c.Removed),
			UnitPrice:  c.UnitPrice,
			Amount:     c.Amount,
		})
	}
	return q
}
