package html

import (
	"html/template"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"foodcourt.GO/api"
	"foodcourt.GO/config"
	menuRepo "foodcourt.GO/model/repository/menu"
)

func init() {
	api.RegisterHTMLModule(RegisterMenuBoardRoutes)
}

var boardTemplate = template.Must(template.New("board").Parse(`<!DOCTYPE html>
<html>
<head>
	<title>{{.Title}}</title>
	<style>
		body { font-family: sans-serif; background: #1b1b1b; color: #f5f5f5; margin: 2rem; }
		h1 { border-bottom: 2px solid #e0a030; padding-bottom: .5rem; }
		table { width: 100%; border-collapse: collapse; }
		td { padding: .5rem .75rem; border-bottom: 1px solid #333; }
		td.price { text-align: right; white-space: nowrap; }
	</style>
</head>
<body>
	<h1>{{.Title}}</h1>
	<table>
	{{range .Items}}
		<tr>
			<td>{{.Name}}</td>
			<td class="price">{{if .BasePrice}}{{$.Currency}} {{printf "%.2f" .BasePrice}}{{end}}</td>
		</tr>
	{{end}}
	</table>
</body>
</html>`))

type boardRow struct {
	Name      string
	BasePrice *float64
}

// RegisterMenuBoardRoutes serves the public menu board page shown on venue
// display screens.
func RegisterMenuBoardRoutes(e *echo.Echo, db *gorm.DB) {
	repo := menuRepo.NewMenuRepository(db)

	e.GET("/board", func(c echo.Context) error {
		items, err := repo.List(0)
		if err != nil {
			return c.String(http.StatusInternalServerError, "Error loading menu")
		}
		rows := make([]boardRow, 0, len(items))
		for _, it := range items {
			rows = append(rows, boardRow{Name: it.Name, BasePrice: it.BasePrice})
		}

		name, currency := "FoodCourt", "GBP"
		if config.AppConfig != nil {
			if config.AppConfig.AppName != "" {
				name = config.AppConfig.AppName
			}
			currency = config.AppConfig.Currency
		}

		c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
		c.Response().WriteHeader(http.StatusOK)
		return boardTemplate.Execute(c.Response(), map[string]interface{}{
			"Title":    name + " Menu",
			"Currency": currency,
			"Items":    rows,
		})
	})
}
