package realtime

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"foodcourt.GO/api"
	"foodcourt.GO/config"
	menuRepo "foodcourt.GO/model/repository/menu"
	"foodcourt.GO/service/configurator"
)

func init() {
	api.RegisterModule(RegisterRealtimeRoutes)
}

// QuoteItemInput is one configuration in a batch quote request.
type QuoteItemInput struct {
	SKU        string                          `json:"sku"`
	Selections configurator.Selections         `json:"selections"`
	Toppings   []configurator.ToppingSelection `json:"toppings"`
}

// QuoteItemResult is the priced result for one batch entry. Error is set and
// the money fields zero when the entry could not be priced.
type QuoteItemResult struct {
	SKU           string  `json:"sku"`
	BasePrice     float64 `json:"base_price"`
	ToppingsPrice float64 `json:"toppings_price"`
	Total         float64 `json:"total"`
	Error         string  `json:"error,omitempty"`
}

func getCryptKey() string {
	return config.GetEnv("APP_CRYPT_KEY", "")
}

// verifyClientSignature validates an HMAC-SHA256 signature over the client id
// using constant-time comparison.
func verifyClientSignature(clientID, signature, cryptKey string) bool {
	if cryptKey == "" || clientID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(cryptKey))
	mac.Write([]byte(clientID))
	expected := mac.Sum(nil)
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, sig)
}

// RegisterRealtimeRoutes sets up the batch quoting API used by kiosk screens
// that render many configured products at once.
func RegisterRealtimeRoutes(apiGroup *echo.Group, db *gorm.DB) {
	g := apiGroup.Group("/realtime")
	repo := menuRepo.NewMenuRepository(db)

	// POST /api/realtime/quotes – price many configurations in parallel.
	// Signed clients only when APP_CRYPT_KEY is set.
	g.POST("/quotes", func(c echo.Context) error {
		start := time.Now()

		clientID := c.Request().Header.Get("X-Client-ID")
		clientSig := c.Request().Header.Get("X-Client-Sig")
		cryptKey := getCryptKey()
		if cryptKey != "" && !verifyClientSignature(clientID, clientSig, cryptKey) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid signature"})
		}

		var body struct {
			Items []QuoteItemInput `json:"items"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.Items) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "items array is required and must not be empty"})
		}

		results := make([]QuoteItemResult, len(body.Items))
		eg := new(errgroup.Group)
		eg.SetLimit(8)
		for i, item := range body.Items {
			i, item := i, item
			eg.Go(func() error {
				results[i] = quoteOne(repo, item)
				return nil
			})
		}
		_ = eg.Wait()

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{"results": results, "request_duration_ms": duration})
	})

	// GET /api/realtime/price?sku=XXX – fastest path: cached payload, base
	// price only, no configuration applied.
	g.GET("/price", func(c echo.Context) error {
		start := time.Now()

		sku := c.QueryParam("sku")
		if sku == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "sku required"})
		}

		payload, err := repo.LoadPayload(sku)
		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "price not found"})
		}

		sess := configurator.NewSession(payload.Product, payload.Raws, payload.Toppings)
		quote, _, err := sess.Quote(nil, nil)
		if err != nil {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "price not found"})
		}
		return c.JSON(http.StatusOK, echo.Map{"sku": sku, "price": quote.Total})
	})
}

func quoteOne(repo *menuRepo.MenuRepository, item QuoteItemInput) QuoteItemResult {
	out := QuoteItemResult{SKU: item.SKU}
	sess, err := repo.OpenSession(item.SKU)
	if err != nil {
		out.Error = "menu item not found"
		return out
	}
	quote, _, err := sess.Quote(item.Selections, item.Toppings)
	if err != nil {
		out.Error = "no price resolves for this selection"
		return out
	}
	out.BasePrice = quote.BasePrice
	out.ToppingsPrice = quote.ToppingsPrice
	out.Total = quote.Total
	return out
}
