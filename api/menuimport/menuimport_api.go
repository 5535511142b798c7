package menuimport

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"foodcourt.GO/api"
	menuService "foodcourt.GO/service/menu"
)

func init() {
	api.RegisterModule(RegisterImportRoutes)
}

func RegisterImportRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/menu-import")

	// POST /api/menu-import – bulk menu feed upsert (auth required via /api
	// middleware). The request body is the feed document itself.
	g.POST("", func(c echo.Context) error {
		start := time.Now()

		opts := menuService.ImportOptions{
			Replace: c.QueryParam("replace") == "1" || c.QueryParam("replace") == "true",
		}
		if w := c.QueryParam("workers"); w != "" {
			if n, err := strconv.Atoi(w); err == nil {
				opts.Workers = n
			}
		}

		res, err := menuService.ImportMenu(db, c.Request().Body, opts)
		duration := time.Since(start).Milliseconds()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error(), "request_duration_ms": duration})
		}

		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"items":               res.Items,
			"variants":            res.Variants,
			"toppings":            res.Toppings,
			"skipped":             res.Skipped,
			"warnings":            res.Warnings,
			"request_duration_ms": duration,
		})
	})
}
