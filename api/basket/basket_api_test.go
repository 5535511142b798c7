package basket

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

func basketTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&menuEntity.MenuItem{}, &menuEntity.PriceVariant{}, &menuEntity.Topping{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	item := &menuEntity.MenuItem{SKU: "BK-PIZZA", Name: "Diavola", ToppingGroupID: "pizza-toppings"}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	variants := []menuEntity.PriceVariant{
		{ItemID: item.EntityID, Amount: 6.0, IsMandatory: true, Position: 1,
			Options: datatypes.JSON(`{"Size": {"id": "sm", "name": "Small"}}`)},
		{ItemID: item.EntityID, Amount: 8.0, IsMandatory: true, Position: 2,
			Options: datatypes.JSON(`{"Size": {"id": "lg", "name": "Large"}}`)},
	}
	for i := range variants {
		if err := db.Create(&variants[i]).Error; err != nil {
			t.Fatalf("seed variant: %v", err)
		}
	}
	return db
}

func basketTestServer(db *gorm.DB) *echo.Echo {
	e := echo.New()
	RegisterBasketRoutes(e.Group("/api"), db)
	return e
}

// client carries the basket session header across requests like an app would.
type client struct {
	e       *echo.Echo
	session string
}

func (cl *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cl.session != "" {
		req.Header.Set(SessionHeader, cl.session)
	}
	rec := httptest.NewRecorder()
	cl.e.ServeHTTP(rec, req)
	if s := rec.Header().Get(SessionHeader); s != "" {
		cl.session = s
	}
	return rec
}

func addItem(t *testing.T, cl *client, size string) *httptest.ResponseRecorder {
	t.Helper()
	return cl.do(http.MethodPost, "/api/basket/items", map[string]interface{}{
		"sku":        "BK-PIZZA",
		"selections": map[string]string{"Size": size},
	})
}

func TestBasket_EmptySnapshot(t *testing.T) {
	db := basketTestDB(t)
	defer menuRepo.InvalidateCatalog()
	cl := &client{e: basketTestServer(db)}

	rec := cl.do(http.MethodGet, "/api/basket", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cl.session == "" {
		t.Error("first request should mint a session id")
	}
	var snap struct {
		Total     float64 `json:"total"`
		ItemCount int     `json:"item_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.Total != 0 || snap.ItemCount != 0 {
		t.Errorf("snapshot = %+v, want empty", snap)
	}
}

func TestBasket_AddMergesIdenticalConfiguration(t *testing.T) {
	db := basketTestDB(t)
	defer menuRepo.InvalidateCatalog()
	cl := &client{e: basketTestServer(db)}

	if rec := addItem(t, cl, "lg"); rec.Code != http.StatusCreated {
		t.Fatalf("first add status = %d: %s", rec.Code, rec.Body.String())
	}
	rec := addItem(t, cl, "lg")
	if rec.Code != http.StatusCreated {
		t.Fatalf("second add status = %d", rec.Code)
	}

	var resp struct {
		Basket struct {
			Lines []struct {
				Quantity int     `json:"quantity"`
				Subtotal float64 `json:"subtotal"`
			} `json:"lines"`
			Total     float64 `json:"total"`
			ItemCount int     `json:"item_count"`
		} `json:"basket"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Basket.Lines) != 1 {
		t.Fatalf("lines = %d, want 1 merged line", len(resp.Basket.Lines))
	}
	if resp.Basket.Lines[0].Quantity != 2 || resp.Basket.ItemCount != 2 {
		t.Errorf("quantity = %d itemCount = %d, want 2/2", resp.Basket.Lines[0].Quantity, resp.Basket.ItemCount)
	}
	if resp.Basket.Total != 16.0 {
		t.Errorf("total = %v, want 16", resp.Basket.Total)
	}
}

func TestBasket_DifferentConfigurationsStaySeparate(t *testing.T) {
	db := basketTestDB(t)
	defer menuRepo.InvalidateCatalog()
	cl := &client{e: basketTestServer(db)}

	addItem(t, cl, "sm")
	addItem(t, cl, "lg")

	rec := cl.do(http.MethodGet, "/api/basket", nil)
	var snap struct {
		Lines []struct{} `json:"lines"`
		Total float64    `json:"total"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.Lines) != 2 {
		t.Errorf("lines = %d, want 2", len(snap.Lines))
	}
	if snap.Total != 14.0 {
		t.Errorf("total = %v, want 14", snap.Total)
	}
}

func TestBasket_UpdateAndRemoveLine(t *testing.T) {
	db := basketTestDB(t)
	defer menuRepo.InvalidateCatalog()
	cl := &client{e: basketTestServer(db)}

	rec := addItem(t, cl, "sm")
	var created struct {
		Line struct {
			LineID string `json:"line_id"`
		} `json:"line"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = cl.do(http.MethodPatch, "/api/basket/items/"+created.Line.LineID, map[string]int{"quantity": 3})
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d", rec.Code)
	}
	var patched struct {
		Basket struct {
			Total float64 `json:"total"`
		} `json:"basket"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&patched); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if patched.Basket.Total != 18.0 {
		t.Errorf("total = %v, want 18", patched.Basket.Total)
	}

	rec = cl.do(http.MethodDelete, "/api/basket/items/"+created.Line.LineID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	var snap struct {
		ItemCount int `json:"item_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.ItemCount != 0 {
		t.Errorf("item count = %d, want 0", snap.ItemCount)
	}
}

func TestBasket_UnknownLineIs404(t *testing.T) {
	db := basketTestDB(t)
	cl := &client{e: basketTestServer(db)}

	rec := cl.do(http.MethodPatch, "/api/basket/items/nope", map[string]int{"quantity": 2})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestBasket_IncompleteSelectionIs422(t *testing.T) {
	db := basketTestDB(t)
	defer menuRepo.InvalidateCatalog()
	cl := &client{e: basketTestServer(db)}

	rec := cl.do(http.MethodPost, "/api/basket/items", map[string]interface{}{
		"sku":        "BK-PIZZA",
		"selections": map[string]string{},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
}

func TestBasket_SessionsAreIsolated(t *testing.T) {
	db := basketTestDB(t)
	defer menuRepo.InvalidateCatalog()
	e := basketTestServer(db)
	a := &client{e: e}
	b := &client{e: e}

	addItem(t, a, "lg")

	rec := b.do(http.MethodGet, "/api/basket", nil)
	var snap struct {
		ItemCount int `json:"item_count"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.ItemCount != 0 {
		t.Errorf("second session item count = %d, want 0", snap.ItemCount)
	}
	if a.session == b.session {
		t.Error("sessions should differ")
	}
}
