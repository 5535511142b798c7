package configure

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"foodcourt.GO/api"
	menuRepo "foodcourt.GO/model/repository/menu"
	"foodcourt.GO/service/configurator"
)

func init() {
	api.RegisterModule(RegisterConfigureRoutes)
}

type toppingInput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Portions int    `json:"portions"`
}

func toppingSelections(in []toppingInput) []configurator.ToppingSelection {
	out := make([]configurator.ToppingSelection, 0, len(in))
	for _, t := range in {
		out = append(out, configurator.ToppingSelection{ID: t.ID, Name: t.Name, Portions: t.Portions})
	}
	return out
}

// RegisterConfigureRoutes wires the /api/configure group: selection
// validation and price quoting for a configured menu item.
func RegisterConfigureRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/configure")
	repo := menuRepo.NewMenuRepository(db)

	// POST /api/configure/:sku/validate
	g.POST("/:sku/validate", func(c echo.Context) error {
		var body struct {
			Selections configurator.Selections `json:"selections"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		sess, err := repo.OpenSession(c.Param("sku"))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		state := sess.Validate(body.Selections)
		return c.JSON(http.StatusOK, echo.Map{
			"is_valid":         state.IsValid,
			"missing_required": state.MissingRequired,
		})
	})

	// POST /api/configure/:sku/quote – validate then price. A selection
	// that resolves to no price is a 422, not a silent zero.
	g.POST("/:sku/quote", func(c echo.Context) error {
		var body struct {
			Selections configurator.Selections `json:"selections"`
			Toppings   []toppingInput          `json:"toppings"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		sess, err := repo.OpenSession(c.Param("sku"))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "menu item not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		state := sess.Validate(body.Selections)
		if !state.IsValid {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{
				"error":            "selection is incomplete",
				"missing_required": state.MissingRequired,
			})
		}

		quote, charges, err := sess.Quote(body.Selections, toppingSelections(body.Toppings))
		if err == configurator.ErrNoPrice {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no price resolves for this selection"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"sku":             sess.Product.ID,
			"base_price":      quote.BasePrice,
			"options_price":   quote.OptionsPrice,
			"toppings_price":  quote.ToppingsPrice,
			"total":           quote.Total,
			"topping_charges": charges,
		})
	})
}
