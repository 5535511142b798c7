package basket

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"foodcourt.GO/api"
	menuRepo "foodcourt.GO/model/repository/menu"
	"foodcourt.GO/service/basket"
	"foodcourt.GO/service/configurator"
)

// SessionHeader carries the basket session id. The first request without one
// mints a fresh session and echoes it back in the same header.
const SessionHeader = "X-Basket-Session"

func init() {
	api.RegisterModule(RegisterBasketRoutes)
}

func sessionBasket(c echo.Context) *basket.Basket {
	id, b := basket.GetManager().Session(c.Request().Header.Get(SessionHeader))
	c.Response().Header().Set(SessionHeader, id)
	return b
}

type toppingInput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Portions int    `json:"portions"`
}

// RegisterBasketRoutes wires the /api/basket group.
func RegisterBasketRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/basket")
	repo := menuRepo.NewMenuRepository(db)

	// GET /api/basket – current snapshot
	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, sessionBasket(c).Snapshot())
	})

	// POST /api/basket/items – commit a finished configuration. The server
	// re-validates and re-prices; the client never sends money amounts.
	g.POST("/items", func(c echo.Context) error {
		var body struct {
			SKU        string                  `json:"sku"`
			Selections configurator.Selections `json:"selections"`
			Toppings   []toppingInput          `json:"toppings"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.SKU == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku is required"})
		}

		sess, err := repo.OpenSession(body.SKU)
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

		sels := make([]configurator.ToppingSelection, 0, len(body.Toppings))
		for _, t := range body.Toppings {
			sels = append(sels, configurator.ToppingSelection{ID: t.ID, Name: t.Name, Portions: t.Portions})
		}

		quote, charges, err := sess.Quote(body.Selections, sels)
		if err == configurator.ErrNoPrice {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "no price resolves for this selection"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
		}

		options := make([]basket.OptionRef, 0, len(body.Selections))
		for key, val := range body.Selections {
			if val == "" {
				continue
			}
			label := val
			for _, v := range sess.CompatibleFor(key, nil) {
				if v.ID == configurator.ValueRef(val).TrailingID() {
					label = v.Name
					break
				}
			}
			options = append(options, basket.OptionRef{
				CategoryKey: key,
				ValueRef:    configurator.ValueRef(val),
				Label:       label,
				Quantity:    1,
			})
		}

		b := sessionBasket(c)
		line := b.Add(basket.AddInput{
			ProductID: body.SKU,
			UnitPrice: quote.Total,
			Options:   options,
			Toppings:  basket.ToppingRefsFromCharges(charges),
		})
		return c.JSON(http.StatusCreated, echo.Map{"line": line, "basket": b.Snapshot()})
	})

	// PATCH /api/basket/items/:lineId – set quantity (zero removes)
	g.PATCH("/items/:lineId", func(c echo.Context) error {
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		b := sessionBasket(c)
		line, err := b.UpdateQuantity(c.Param("lineId"), body.Quantity)
		if err == basket.ErrLineNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "line not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"line": line, "basket": b.Snapshot()})
	})

	// DELETE /api/basket/items/:lineId
	g.DELETE("/items/:lineId", func(c echo.Context) error {
		b := sessionBasket(c)
		if err := b.Remove(c.Param("lineId")); err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "line not found"})
		}
		return c.JSON(http.StatusOK, b.Snapshot())
	})

	// DELETE /api/basket – clear
	g.DELETE("", func(c echo.Context) error {
		b := sessionBasket(c)
		b.Clear()
		return c.JSON(http.StatusOK, b.Snapshot())
	})
}
