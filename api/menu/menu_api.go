package menu

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"foodcourt.GO/api"
	"foodcourt.GO/config"
	menuRepo "foodcourt.GO/model/repository/menu"
	"foodcourt.GO/service/configurator"
)

func init() {
	api.RegisterModule(RegisterMenuRoutes)
	api.RegisterRoute(RegisterMenuSearchRoute)
}

type optionValueOut struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	GroupID string `json:"group_id,omitempty"`
}

type optionGroupOut struct {
	Key        string           `json:"key"`
	IsRequired bool             `json:"is_required"`
	Options    []optionValueOut `json:"options"`
}

func groupsOut(groups []configurator.OptionGroup) []optionGroupOut {
	out := make([]optionGroupOut, 0, len(groups))
	for _, g := range groups {
		og := optionGroupOut{Key: g.Key, IsRequired: g.IsRequired}
		for _, v := range g.Options {
			og.Options = append(og.Options, optionValueOut{ID: v.ID, Name: v.Name, GroupID: v.GroupID})
		}
		out = append(out, og)
	}
	return out
}

// RegisterMenuRoutes wires the /api/menu group.
func RegisterMenuRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/menu")
	repo := menuRepo.NewMenuRepository(db)

	// GET /api/menu – list all items
	g.GET("", func(c echo.Context) error {
		items, err := repo.List(0)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		type itemOut struct {
			SKU       string   `json:"sku"`
			Name      string   `json:"name"`
			BasePrice *float64 `json:"base_price,omitempty"`
		}
		out := make([]itemOut, 0, len(items))
		for _, it := range items {
			out = append(out, itemOut{SKU: it.SKU, Name: it.Name, BasePrice: it.BasePrice})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
	})

	// GET /api/menu/:sku – item with its full option groups and toppings
	g.GET("/:sku", func(c echo.Context) error {
		sess, err := repo.OpenSession(c.Param("sku"))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		type toppingOut struct {
			ID               string `json:"id"`
			Name             string `json:"name"`
			IncludedPortions int    `json:"included_portions"`
		}
		toppings := make([]toppingOut, 0, len(sess.Toppings))
		for _, def := range sess.Toppings {
			toppings = append(toppings, toppingOut{ID: def.ID, Name: def.Name, IncludedPortions: sess.IncludedPortions(def.ID)})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"sku":       sess.Product.ID,
			"name":      sess.Product.Name,
			"groups":    groupsOut(sess.Groups),
			"mandatory": sess.MandatoryKeys(),
			"toppings":  toppings,
		})
	})

	// GET /api/menu/:sku/options – option groups narrowed by the current
	// selection passed as ?selected=<json map> or repeated sel.<key>=<value>.
	g.GET("/:sku/options", func(c echo.Context) error {
		sess, err := repo.OpenSession(c.Param("sku"))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		selections := configurator.Selections{}
		if raw := c.QueryParam("selected"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &selections); err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "selected must be a JSON object of key to value id"})
			}
		}
		for key, vals := range c.QueryParams() {
			if strings.HasPrefix(key, "sel.") && len(vals) > 0 {
				selections[strings.TrimPrefix(key, "sel.")] = vals[0]
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"sku":       sess.Product.ID,
			"selected":  selections,
			"groups":    groupsOut(sess.Filtered(selections)),
			"mandatory": sess.MandatoryKeys(),
		})
	})
}

// RegisterMenuSearchRoute wires the public /menu/search endpoint. It hits
// Elasticsearch when configured and falls back to a SQL LIKE query otherwise.
func RegisterMenuSearchRoute(e *echo.Echo, db *gorm.DB) {
	repo := menuRepo.NewMenuRepository(db)

	e.GET("/menu/search", func(c echo.Context) error {
		q := strings.TrimSpace(c.QueryParam("q"))
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q parameter is required"})
		}

		if config.ElasticClient != nil {
			if hits, err := searchElastic(q); err == nil {
				return c.JSON(http.StatusOK, echo.Map{"query": q, "items": hits, "source": "elastic"})
			}
			// fall through to SQL on elastic failure
		}

		items, err := repo.SearchByName(q, 50)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}
		type hit struct {
			SKU  string `json:"sku"`
			Name string `json:"name"`
		}
		out := make([]hit, 0, len(items))
		for _, it := range items {
			out = append(out, hit{SKU: it.SKU, Name: it.Name})
		}
		return c.JSON(http.StatusOK, echo.Map{"query": q, "items": out, "source": "sql"})
	})
}

type searchHit struct {
	SKU  string `json:"sku"`
	Name string `json:"name"`
}

func searchElastic(q string) ([]searchHit, error) {
	body := strings.NewReader(`{"query":{"match":{"name":{"query":` + mustJSON(q) + `}}},"size":50}`)
	res, err := config.ElasticClient.Search(
		config.ElasticClient.Search.WithIndex("menu_items"),
		config.ElasticClient.Search.WithBody(body),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, echo.NewHTTPError(http.StatusBadGateway, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source searchHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]searchHit, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func mustJSON(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
