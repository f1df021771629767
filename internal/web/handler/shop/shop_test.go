package shop_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/handler/handlertest"
	"github.com/ajadmin/ajadmin/internal/web/handler/shop"
)

func newApp(t *testing.T) (*handler.Env, *fiber.App) {
	t.Helper()

	env := handlertest.NewEnv(t)
	app := fiber.New()
	require.NoError(t, (&shop.Service{}).Init(app.Group(shop.Path), env))

	return env, app
}

func get(t *testing.T, app *fiber.App, path string) handlertest.Response {
	t.Helper()

	return handlertest.Call(t, app, fiber.MethodGet, shop.Path+path, "", nil)
}

func TestProducts(t *testing.T) {
	env, app := newApp(t)

	shoes := models.Category{Name: "Running Shoes", Status: true}
	hats := models.Category{Name: "Hats", Status: true}
	require.NoError(t, env.DB.Create(&shoes).Error)
	require.NoError(t, env.DB.Create(&hats).Error)

	for _, p := range []models.Product{
		{ProductName: "Racer", Slug: "racer", CategoryID: shoes.ID, IsActive: true},
		{ProductName: "Old Racer", Slug: "old-racer", CategoryID: shoes.ID},
		{ProductName: "Cap", Slug: "cap", CategoryID: hats.ID, IsActive: true},
	} {
		require.NoError(t, env.DB.Create(&p).Error)
	}

	res := get(t, app, "/products/SHOES")
	require.True(t, res.Status(), res.Msg())
	require.Len(t, res.Data(), 1, "inactive products are hidden")

	racer := res.Data()[0].(map[string]any)
	assert.Equal(t, "Racer", racer["product_name"])
	assert.Equal(t, "Running Shoes", racer["category"].(map[string]any)["name"])

	res = get(t, app, "/products/socks")
	require.True(t, res.Status())
	assert.Empty(t, res.Data())

	t.Run("product/get", func(t *testing.T) {
		res := get(t, app, "/product/get")
		assert.False(t, res.Status())
		assert.Equal(t, "Slug or Id is required.", res.Msg())

		res = get(t, app, "/product/get?slug=cap")
		require.True(t, res.Status())
		require.Len(t, res.Data(), 1)

		id := uint64(res.Data()[0].(map[string]any)["_id"].(float64))

		res = get(t, app, fmt.Sprintf("/product/get?id=%d", id))
		require.True(t, res.Status())
		assert.Equal(t, "Cap", res.Body["data"].(map[string]any)["product_name"])

		res = get(t, app, "/product/get?id=9999")
		assert.True(t, res.Status())
		assert.Nil(t, res.Body["data"])
	})
}

func TestBlogs(t *testing.T) {
	env, app := newApp(t)

	news := models.BlogCategory{Name: "News", Slug: "news", Status: true}
	require.NoError(t, env.DB.Create(&news).Error)

	for _, b := range []models.Blog{
		{Title: "Hello", Slug: "hello", BlogCategoryID: news.ID, Published: true, PublishDate: time.Now()},
		{Title: "Draft", Slug: "draft", BlogCategoryID: news.ID},
	} {
		require.NoError(t, env.DB.Create(&b).Error)
	}

	res := get(t, app, "/blogs/get")
	require.True(t, res.Status(), res.Msg())
	require.Len(t, res.Data(), 1)
	assert.Equal(t, "News", res.Data()[0].(map[string]any)["blog_category"].(map[string]any)["name"])

	res = get(t, app, "/blog/get")
	assert.Equal(t, "Slug or Id is required.", res.Msg())

	res = get(t, app, "/blog/get?slug=draft")
	require.True(t, res.Status())
	require.Len(t, res.Data(), 1)
	assert.Equal(t, "Draft", res.Data()[0].(map[string]any)["title"])
}

func TestOrders(t *testing.T) {
	env, app := newApp(t)

	product := models.Product{ProductName: "Racer", Quantity: 10}
	require.NoError(t, env.DB.Create(&product).Error)

	save := func(body fiber.Map) handlertest.Response {
		return handlertest.Call(t, app, fiber.MethodPost, shop.Path+"/orders/save", "", body)
	}

	res := save(fiber.Map{"customer_id": 7})
	assert.Equal(t, "Invalid parameters in request", res.Msg())

	res = save(fiber.Map{
		"customer_id":    7,
		"currency_id":    1,
		"payment_method": "stripe",
		"total_amount":   "20",
		"grand_total":    "20",
		"orderItems":     []fiber.Map{{"_id": product.ID, "quantity": 3, "orderQuantity": 1}},
	})
	require.True(t, res.Status(), res.Msg())
	assert.Equal(t, "Data Added Successfully!", res.Msg())

	require.NoError(t, env.DB.First(&product, product.ID).Error)
	assert.Equal(t, 7, product.Quantity, "storefront orders decrement by quantity")

	tests := []struct {
		name       string
		query      string
		wantStatus bool
		wantMsg    string
		wantLen    int
	}{
		{name: "missing id", query: "", wantMsg: "Id is required."},
		{name: "malformed id", query: "?userid=abc", wantMsg: "Query error:"},
		{name: "customer with orders", query: "?userid=7", wantStatus: true, wantLen: 1},
		{name: "customer without orders", query: "?userid=8", wantStatus: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := get(t, app, "/orders/get"+tt.query)
			assert.Equal(t, tt.wantStatus, res.Status())
			assert.Equal(t, tt.wantMsg, res.Msg())
			assert.Len(t, res.Data(), tt.wantLen)
		})
	}
}
