package order_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ajadmin/ajadmin/internal/auth"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/order"
	"github.com/ajadmin/ajadmin/internal/web/handler/handlertest"
)

const admin = handler.AdminPath

func newProduct(t *testing.T, db *gorm.DB, name string, stock int) models.Product {
	t.Helper()

	p := models.Product{ProductName: name, ModelNumber: name, Price: 5, Quantity: stock, TaxID: 1, CategoryID: 1}
	require.NoError(t, db.Create(&p).Error)

	return p
}

func stockOf(t *testing.T, db *gorm.DB, id uint64) int {
	t.Helper()

	var p models.Product
	require.NoError(t, db.Select("quantity").First(&p, id).Error)

	return p.Quantity
}

func orderBody(customerID uint64, items ...fiber.Map) fiber.Map {
	return fiber.Map{
		"customer_id":    customerID,
		"currency_id":    1,
		"orderItems":     items,
		"payment_method": "cod",
		"total_amount":   "15.00",
		"grand_total":    "15.00",
	}
}

func TestOrderLifecycle(t *testing.T) {
	env := handlertest.NewEnv(t)
	app := handlertest.AdminApp(t, env, &order.Service{})
	token := handlertest.SuperAdmin(t, env)

	customer := models.Customer{FirstName: "Ada", Email: "ada@mail.com", Password: models.HashPassword("x")}
	require.NoError(t, env.DB.Create(&customer).Error)

	shirt := newProduct(t, env.DB, "shirt", 10)
	socks := newProduct(t, env.DB, "socks", 5)

	res := handlertest.Call(t, app, fiber.MethodPost, admin+"/orderAdd", token,
		fiber.Map{"customer_id": customer.ID, "orderItems": []fiber.Map{}})
	require.False(t, res.Status())
	assert.Equal(t, "Invalid parameters in request", res.Msg())

	res = handlertest.Call(t, app, fiber.MethodPost, admin+"/orderAdd", token, orderBody(customer.ID,
		fiber.Map{"_id": shirt.ID, "quantity": 99, "orderQuantity": 2},
		fiber.Map{"_id": socks.ID, "orderQuantity": 1},
	))
	require.True(t, res.Status(), res.Msg())
	assert.Equal(t, "Data Added Successfully!", res.Msg())
	assert.Equal(t, 8, stockOf(t, env.DB, shirt.ID), "admin orders decrement by orderQuantity")
	assert.Equal(t, 4, stockOf(t, env.DB, socks.ID))

	res = handlertest.Call(t, app, fiber.MethodPost, admin+"/orderAdd", token, orderBody(customer.ID))
	require.True(t, res.Status())

	res = handlertest.Call(t, app, fiber.MethodGet, admin+"/orderList?sort=order_id&order=ASC", token, nil)
	require.True(t, res.Status())
	require.Len(t, res.Data(), 2)

	first := res.Data()[0].(map[string]any)
	assert.Equal(t, "1", first["order_id"])
	assert.Equal(t, "Ada", first["customer"].(map[string]any)["first_name"])
	assert.Equal(t, "2", res.Data()[1].(map[string]any)["order_id"])

	id := uint64(first["_id"].(float64))

	edit := orderBody(customer.ID, fiber.Map{"_id": shirt.ID, "orderQuantity": 3})
	edit["oldItemsArr"] = []fiber.Map{
		{"_id": shirt.ID, "quantity": 2},
		{"_id": socks.ID, "quantity": 1},
	}
	edit["order_id"] = "999"

	res = handlertest.Call(t, app, fiber.MethodPut, fmt.Sprintf("%s/orderEdit/%d", admin, id), token, edit)
	require.True(t, res.Status(), res.Msg())
	assert.Equal(t, 7, stockOf(t, env.DB, shirt.ID), "restock 2, then take 3")
	assert.Equal(t, 5, stockOf(t, env.DB, socks.ID))

	var stored models.Order
	require.NoError(t, env.DB.First(&stored, id).Error)
	assert.Equal(t, "1", stored.OrderID, "the order number never changes")
	require.Len(t, stored.OrderItems, 1)

	res = handlertest.Call(t, app, fiber.MethodGet, fmt.Sprintf("%s/orderView/%d", admin, id), token, nil)
	require.True(t, res.Status())
	assert.Equal(t, "1", res.Body["data"].(map[string]any)["order_id"])
}

func TestUpdateOrderStatus(t *testing.T) {
	env := handlertest.NewEnv(t)
	app := handlertest.AdminApp(t, env, &order.Service{})
	token := handlertest.SuperAdmin(t, env)

	o := models.Order{OrderID: "1", CustomerID: 1, CurrencyID: 1, PaymentMethod: "cod", TotalAmount: "1", GrandTotal: "1"}
	require.NoError(t, env.DB.Create(&o).Error)

	shipped := models.OrderStatus{Name: "Shipped"}
	require.NoError(t, env.DB.Create(&shipped).Error)

	path := fmt.Sprintf("%s/updateOrderStatus/%d", admin, o.ID)

	res := handlertest.Call(t, app, fiber.MethodPut, path, token, fiber.Map{})
	assert.Equal(t, "Invalid parameters in request", res.Msg())

	res = handlertest.Call(t, app, fiber.MethodPut, path, token, fiber.Map{"order_statuses_id": shipped.ID})
	require.True(t, res.Status())
	assert.Equal(t, "Data Updated Successfully", res.Msg())

	require.NoError(t, env.DB.Preload("OrderStatus").First(&o, o.ID).Error)
	require.NotNil(t, o.OrderStatus)
	assert.Equal(t, "Shipped", o.OrderStatus.Name)
}

func TestOrderViewNeedsViewGrant(t *testing.T) {
	env := handlertest.NewEnv(t)
	app := handlertest.AdminApp(t, env, &order.Service{})

	_, token := handlertest.Staff(t, env, "clerk@mail.com",
		auth.Grant{Module: auth.ModuleOrders, Actions: []string{auth.ActionRead}})

	res := handlertest.Call(t, app, fiber.MethodGet, admin+"/orderList", token, nil)
	assert.True(t, res.Status())

	res = handlertest.Call(t, app, fiber.MethodGet, admin+"/orderView/1", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.Code)
	assert.Equal(t, auth.DenyMessage(auth.ActionView), res.Msg())
}

func TestStockFailureKeepsOrder(t *testing.T) {
	env := handlertest.NewEnv(t)
	app := handlertest.AdminApp(t, env, &order.Service{})
	token := handlertest.SuperAdmin(t, env)

	require.NoError(t, env.DB.Migrator().DropTable(&models.Product{}))

	res := handlertest.Call(t, app, fiber.MethodPost, admin+"/orderAdd", token,
		orderBody(1, fiber.Map{"_id": 1, "orderQuantity": 1}))
	assert.False(t, res.Status())
	assert.Equal(t, "Failed To Update stock ", res.Msg())

	var orders int64
	require.NoError(t, env.DB.Model(&models.Order{}).Count(&orders).Error)
	assert.EqualValues(t, 1, orders, "orders are not rolled back when the stock change fails")
}
