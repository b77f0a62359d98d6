package handlers_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradepost/internal/http/handlers"
	"tradepost/internal/repos"
)

// newTestApp wires the full API over a seeded in-memory database, with the
// same route order as main.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	app := fiber.New()
	app.Use(requestid.New())

	deps := handlers.NewDeps(db)
	api := app.Group("/api/v1")

	api.Get("/items/find", deps.ItemSearchHandler.Find)
	api.Get("/items/find_all", deps.ItemSearchHandler.FindAll)
	api.Get("/merchants/find", deps.MerchantSearchHandler.Find)
	api.Get("/merchants/find_all", deps.MerchantSearchHandler.FindAll)
	api.Get("/merchants/most_items", deps.MerchantsHandler.MostItems)
	api.Get("/revenue/merchants", deps.RevenueHandler.TopMerchants)

	api.Get("/items", deps.ItemsHandler.Index)
	api.Post("/items", deps.ItemsHandler.Create)
	api.Get("/items/:id", deps.ItemsHandler.Show)
	api.Patch("/items/:id", deps.ItemsHandler.Update)
	api.Delete("/items/:id", deps.ItemsHandler.Destroy)
	api.Get("/items/:id/merchant", deps.MerchantsHandler.ShowForItem)

	api.Get("/merchants", deps.MerchantsHandler.Index)
	api.Get("/merchants/:id", deps.MerchantsHandler.Show)
	api.Get("/merchants/:id/items", deps.MerchantsHandler.ItemsIndex)

	return app
}

type resourceBody struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes"`
}

func get(t *testing.T, app *fiber.App, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", url, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decodeOne(t *testing.T, body []byte) resourceBody {
	t.Helper()
	var out struct {
		Data resourceBody `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Data
}

func decodeMany(t *testing.T, body []byte) []resourceBody {
	t.Helper()
	var out struct {
		Data []resourceBody `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Data
}

func TestItemFindAll_ByName(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/items/find_all?name=boot")
	require.Equal(t, 200, resp.StatusCode)

	data := decodeMany(t, body)
	require.Len(t, data, 2)
	got := []string{data[0].Attributes["name"].(string), data[1].Attributes["name"].(string)}
	assert.ElementsMatch(t, []string{"Hiking Boots", "Gumboot"}, got)
}

func TestItemFindAll_ByPriceRange(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/items/find_all?min_price=20&max_price=45")
	require.Equal(t, 200, resp.StatusCode)

	data := decodeMany(t, body)
	require.Len(t, data, 3)
	// ordered by name ascending, not by price
	assert.Equal(t, "Backpack", data[0].Attributes["name"])
	assert.Equal(t, "Harness", data[1].Attributes["name"])
	assert.Equal(t, "Hiking Boots", data[2].Attributes["name"])
}

func TestItemFind_ByPriceRangeReturnsFirstAlphabetically(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/items/find?min_price=20&max_price=45")
	require.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "Backpack", decodeOne(t, body).Attributes["name"])
}

func TestItemSearch_MixedModesRejectedBeforeStoreAccess(t *testing.T) {
	app := newTestApp(t)

	for _, url := range []string{
		"/api/v1/items/find?name=boot&min_price=10",
		"/api/v1/items/find?name=boot&max_price=50",
		"/api/v1/items/find_all?name=boot&min_price=10&max_price=50",
	} {
		resp, body := get(t, app, url)
		assert.Equal(t, 400, resp.StatusCode, url)
		assert.JSONEq(t, `{"data":[],"error":"Bad request"}`, string(body), url)
	}
}

func TestItemSearch_NegativePriceRejected(t *testing.T) {
	app := newTestApp(t)

	for _, url := range []string{
		"/api/v1/items/find?min_price=-5",
		"/api/v1/items/find_all?max_price=-0.5",
	} {
		resp, _ := get(t, app, url)
		assert.Equal(t, 400, resp.StatusCode, url)
	}
}

func TestItemSearch_BlankNameRejected(t *testing.T) {
	app := newTestApp(t)

	resp, _ := get(t, app, "/api/v1/items/find?name=")
	assert.Equal(t, 400, resp.StatusCode)
}

func TestItemFind_NoMatchIsNotFoundSingletonWith200(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/items/find?name=kayak")
	require.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"data":{"error":"Item not found"}}`, string(body))
}

func TestItemFindAll_NoMatchIsEmptyCollectionWith200(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/items/find_all?name=kayak")
	require.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"data":[]}`, string(body))
}

func TestItemFindAll_NoCriteriaIsEmptyCollection(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/items/find_all")
	require.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"data":[]}`, string(body))
}

func TestMerchantFind_FirstAlphabeticalMatch(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/merchants/find?name=and")
	require.Equal(t, 200, resp.StatusCode)

	data := decodeOne(t, body)
	assert.Equal(t, "merchant", data.Type)
	assert.Equal(t, "Crate And Barrel", data.Attributes["name"])
}

func TestMerchantFind_NoMatchMarkerWith200(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/merchants/find?name=cats")
	require.Equal(t, 200, resp.StatusCode)
	assert.JSONEq(t, `{"data":{"errors":"No match was found."}}`, string(body))
}

func TestMerchantFind_MissingOrBlankNameRejected(t *testing.T) {
	app := newTestApp(t)

	for _, url := range []string{
		"/api/v1/merchants/find",
		"/api/v1/merchants/find?name=",
		"/api/v1/merchants/find_all",
	} {
		resp, body := get(t, app, url)
		assert.Equal(t, 400, resp.StatusCode, url)
		assert.JSONEq(t, `{"error":"Bad Request"}`, string(body), url)
	}
}

func TestMerchantFindAll_OrderedCaseInsensitively(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/merchants/find_all?name=AND")
	require.Equal(t, 200, resp.StatusCode)

	data := decodeMany(t, body)
	require.Len(t, data, 2)
	assert.Equal(t, "Crate And Barrel", data[0].Attributes["name"])
	assert.Equal(t, "Lands End", data[1].Attributes["name"])
}

func TestRevenueRanking(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/revenue/merchants?quantity=5")
	require.Equal(t, 200, resp.StatusCode)

	// Seed: REI ships 3x40.99 + 2x35.99 = 194.95; Patagonia ships 99.99;
	// Lands End's transaction failed and Crate's invoice never shipped.
	data := decodeMany(t, body)
	require.Len(t, data, 2)
	assert.Equal(t, "merchant_name_revenue", data[0].Type)
	assert.Equal(t, "REI", data[0].Attributes["name"])
	assert.InDelta(t, 194.95, data[0].Attributes["revenue"].(float64), 0.001)
	assert.Equal(t, "Patagonia", data[1].Attributes["name"])
}

func TestRevenueRanking_HonorsQuantity(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/revenue/merchants?quantity=1")
	require.Equal(t, 200, resp.StatusCode)
	data := decodeMany(t, body)
	require.Len(t, data, 1)
	assert.Equal(t, "REI", data[0].Attributes["name"])
}

func TestRanking_MissingQuantityRejected(t *testing.T) {
	app := newTestApp(t)

	for _, url := range []string{
		"/api/v1/revenue/merchants",
		"/api/v1/revenue/merchants?quantity=abc",
		"/api/v1/merchants/most_items",
	} {
		resp, body := get(t, app, url)
		assert.Equal(t, 400, resp.StatusCode, url)
		assert.JSONEq(t, `{"error":"Bad Request"}`, string(body), url)
	}
}

func TestMostItemsRanking(t *testing.T) {
	app := newTestApp(t)

	resp, body := get(t, app, "/api/v1/merchants/most_items?quantity=10")
	require.Equal(t, 200, resp.StatusCode)

	data := decodeMany(t, body)
	require.Len(t, data, 2)
	assert.Equal(t, "merchant_item_count", data[0].Type)
	assert.Equal(t, "REI", data[0].Attributes["name"])
	assert.Equal(t, float64(5), data[0].Attributes["count"])
	assert.Equal(t, "Patagonia", data[1].Attributes["name"])
	assert.Equal(t, float64(1), data[1].Attributes["count"])
}
