package configure

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	menuEntity "foodcourt.GO/model/entity/menu"
	menuRepo "foodcourt.GO/model/repository/menu"
)

func configureTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&menuEntity.MenuItem{}, &menuEntity.PriceVariant{}, &menuEntity.Topping{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	item := &menuEntity.MenuItem{SKU: "CFG-PIZZA", Name: "Hawaiian", ToppingGroupID: "pizza-toppings"}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	variants := []menuEntity.PriceVariant{
		{ItemID: item.EntityID, Amount: 6.0, IsMandatory: true, Position: 1,
			Options: datatypes.JSON(`{"Size": {"id": "sm", "name": "Small"}}`)},
		{ItemID: item.EntityID, Amount: 8.5, IsMandatory: true, Position: 2,
			Options: datatypes.JSON(`{"Size": {"id": "lg", "name": "Large"}}`)},
	}
	for i := range variants {
		if err := db.Create(&variants[i]).Error; err != nil {
			t.Fatalf("seed variant: %v", err)
		}
	}
	topping := &menuEntity.Topping{
		Code: "pineapple", GroupID: "pizza-toppings", Name: "Pineapple", IncludedPortions: 0,
		PriceTiers: datatypes.JSON(`[{"amount": 0.8, "options": {"Size": "sm"}}, {"amount": 1.2, "options": {"Size": "lg"}}]`),
	}
	if err := db.Create(topping).Error; err != nil {
		t.Fatalf("seed topping: %v", err)
	}
	return db
}

func configureTestServer(db *gorm.DB) *echo.Echo {
	e := echo.New()
	RegisterConfigureRoutes(e.Group("/api"), db)
	return e
}

func doPOST(e *echo.Echo, path string, body interface{}) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestValidate_MissingMandatory(t *testing.T) {
	db := configureTestDB(t)
	defer menuRepo.InvalidateCatalog()
	e := configureTestServer(db)

	rec := doPOST(e, "/api/configure/CFG-PIZZA/validate", map[string]interface{}{
		"selections": map[string]string{},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp struct {
		IsValid         bool     `json:"is_valid"`
		MissingRequired []string `json:"missing_required"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.IsValid {
		t.Error("empty selection should be invalid")
	}
	if len(resp.MissingRequired) != 1 || resp.MissingRequired[0] != "Size" {
		t.Errorf("missing = %v, want [Size]", resp.MissingRequired)
	}
}

func TestValidate_Complete(t *testing.T) {
	db := configureTestDB(t)
	defer menuRepo.InvalidateCatalog()
	e := configureTestServer(db)

	rec := doPOST(e, "/api/configure/CFG-PIZZA/validate", map[string]interface{}{
		"selections": map[string]string{"Size": "lg"},
	})
	var resp struct {
		IsValid bool `json:"is_valid"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.IsValid {
		t.Error("complete selection should be valid")
	}
}

func TestQuote_WithToppings(t *testing.T) {
	db := configureTestDB(t)
	defer menuRepo.InvalidateCatalog()
	e := configureTestServer(db)

	rec := doPOST(e, "/api/configure/CFG-PIZZA/quote", map[string]interface{}{
		"selections": map[string]string{"Size": "lg"},
		"toppings":   []map[string]interface{}{{"id": "pineapple", "name": "Pineapple", "portions": 2}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		BasePrice     float64 `json:"base_price"`
		OptionsPrice  float64 `json:"options_price"`
		ToppingsPrice float64 `json:"toppings_price"`
		Total         float64 `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.BasePrice != 8.5 {
		t.Errorf("base = %v, want 8.5", resp.BasePrice)
	}
	if resp.OptionsPrice != 0 {
		t.Errorf("options price = %v, want 0", resp.OptionsPrice)
	}
	if resp.ToppingsPrice != 2.4 {
		t.Errorf("toppings price = %v, want 2.4 (2 portions at lg tier)", resp.ToppingsPrice)
	}
	if resp.Total != 10.9 {
		t.Errorf("total = %v, want 10.9", resp.Total)
	}
}

func TestQuote_IncompleteSelectionIs422(t *testing.T) {
	db := configureTestDB(t)
	defer menuRepo.InvalidateCatalog()
	e := configureTestServer(db)

	rec := doPOST(e, "/api/configure/CFG-PIZZA/quote", map[string]interface{}{
		"selections": map[string]string{},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestQuote_UnknownSKUIs404(t *testing.T) {
	db := configureTestDB(t)
	e := configureTestServer(db)

	rec := doPOST(e, "/api/configure/GHOST/quote", map[string]interface{}{
		"selections": map[string]string{"Size": "lg"},
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
