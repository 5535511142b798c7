package menuimport

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	menuEntity "foodcourt.GO/model/entity/menu"
)

const (
	testUser = "admin"
	testPass = "secret"
)

const feed = `{
	"items": [
		{
			"sku": "IMP-WRAP",
			"name": "Falafel Wrap",
			"variants": [
				{"amount": 4.0, "is_mandatory": true, "options": {"Size": {"id": "reg", "name": "Regular"}}},
				{"amount": 5.5, "is_mandatory": true, "options": {"Size": {"id": "lrg", "name": "Large"}}}
			]
		}
	],
	"toppings": [
		{"code": "hummus", "name": "Hummus", "included_portions": 1, "flat_price": 0.5}
	]
}`

func importTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&menuEntity.MenuItem{}, &menuEntity.PriceVariant{}, &menuEntity.Topping{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func importTestServer(db *gorm.DB) *echo.Echo {
	e := echo.New()
	apiGroup := e.Group("/api")
	apiGroup.Use(middleware.BasicAuth(func(user, pass string, c echo.Context) (bool, error) {
		return user == testUser && pass == testPass, nil
	}))
	RegisterImportRoutes(apiGroup, db)
	return e
}

func basicAuth(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func doImport(e *echo.Echo, body, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/menu-import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestImportAPI_NoAuth_Returns401(t *testing.T) {
	db := importTestDB(t)
	e := importTestServer(db)

	rec := doImport(e, feed, "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestImportAPI_ValidFeed(t *testing.T) {
	db := importTestDB(t)
	e := importTestServer(db)

	rec := doImport(e, feed, basicAuth(testUser, testPass))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Items    int `json:"items"`
		Variants int `json:"variants"`
		Toppings int `json:"toppings"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Items != 1 || resp.Variants != 2 || resp.Toppings != 1 {
		t.Errorf("resp = %+v, want 1 item / 2 variants / 1 topping", resp)
	}

	var count int64
	db.Model(&menuEntity.PriceVariant{}).Count(&count)
	if count != 2 {
		t.Errorf("stored variants = %d, want 2", count)
	}
}

func TestImportAPI_BadFeed_Returns400(t *testing.T) {
	db := importTestDB(t)
	e := importTestServer(db)

	rec := doImport(e, "{not json", basicAuth(testUser, testPass))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
