package html

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	menuEntity "foodcourt.GO/model/entity/menu"
)

func TestMenuBoard(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&menuEntity.MenuItem{}, &menuEntity.PriceVariant{}, &menuEntity.Topping{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	price := 6.5
	db.Create(&menuEntity.MenuItem{SKU: "BOARD-1", Name: "Lamb Gyros", BasePrice: &price})

	e := echo.New()
	RegisterMenuBoardRoutes(e, db)

	req := httptest.NewRequest(http.MethodGet, "/board", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Lamb Gyros") {
		t.Error("item name missing from board")
	}
	if !strings.Contains(body, "6.50") {
		t.Error("price missing from board")
	}
}
