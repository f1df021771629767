// Package order serves the orders of the admin api.
//
// Adding an order takes its items out of stock by orderQuantity. Editing first puts the
// previous items (oldItemsArr) back by quantity and then takes the new items out again.
package order

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/ajadmin/ajadmin/internal/auth"
	dborder "github.com/ajadmin/ajadmin/internal/db/controller/order"
	dbresource "github.com/ajadmin/ajadmin/internal/db/controller/resource"
	"github.com/ajadmin/ajadmin/internal/db/models"
	"github.com/ajadmin/ajadmin/internal/web/handler"
	"github.com/ajadmin/ajadmin/internal/web/handler/admin/resource"
	"github.com/ajadmin/ajadmin/internal/web/response"
)

const stockFailed resource.Rejection = response.MsgStockFailed

var preloads = []string{"Customer", "Currency", "OrderStatus"}

// Service registers the order routes.
type Service struct {
	handler.Service
	env *handler.Env
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers the order resource, the order view and the status change.
func (s *Service) Init(router fiber.Router, env *handler.Env) error {
	if router == nil || !env.Ready() {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)

		return nil
	}

	s.env = env

	if err := Resource().Init(router, env); err != nil {
		return err
	}

	router.Get("/orderView/:id", auth.RequirePermission(env.Auth, auth.ActionView, auth.ModuleOrders), s.View)
	router.Put("/updateOrderStatus/:id",
		auth.RequirePermission(env.Auth, auth.ActionUpdate, auth.ModuleOrders),
		s.UpdateStatus,
	)

	return nil
}

// Resource returns the list and CRUD routes of orders.
func Resource() *resource.Resource[models.Order, *models.Order] {
	return &resource.Resource[models.Order, *models.Order]{
		Stem:   "order",
		Module: auth.ModuleOrders,
		Table: dbresource.Table{
			Search:  []string{"order_id"},
			Preload: preloads,
		},
		Keep: []string{"order_id", "status"},
		Insert: func(env *handler.Env, rec *models.Order) error {
			return stockError(dborder.Create(env.DB, rec, dborder.ByOrderQuantity))
		},
		AfterUpdate: func(_ *fiber.Ctx, env *handler.Env, id uint64, rec *models.Order) error {
			var found int64
			if err := env.DB.Model(&models.Order{}).Where("id = ?", id).Count(&found).Error; err != nil {
				return fmt.Errorf("failed to look up order: %w", err)
			}

			if found == 0 {
				return nil
			}

			if err := dborder.Restock(env.DB, rec.OldItemsArr); err != nil {
				return stockError(err)
			}

			return stockError(dborder.Decrement(env.DB, rec.OrderItems, dborder.ByOrderQuantity))
		},
	}
}

// stockError turns a failed stock change into the message the admin panel shows.
func stockError(err error) error {
	if errors.Is(err, dborder.ErrStock) {
		log.Error().Err(err).Msg("Stock change failed")

		return stockFailed
	}

	return err
}

// View answers one order with its customer, currency and status.
func (s *Service) View(c *fiber.Ctx) error {
	id, err := resource.PathID(c)
	if err != nil {
		return response.InvalidParams(c)
	}

	o, err := dbresource.Get[models.Order](s.env.DB, id, preloads...)
	if err != nil {
		log.Debug().Err(err).Uint64("id", id).Msg("Order lookup failed")

		return response.ServerError(c, err)
	}

	return response.Data(c, o)
}

type statusRequest struct {
	OrderStatusesID uint64 `json:"order_statuses_id" validate:"required"`
}

// UpdateStatus moves an order to another order status.
func (s *Service) UpdateStatus(c *fiber.Ctx) error {
	id, err := resource.PathID(c)
	if err != nil {
		return response.Fail(c, response.MsgUpdateFailed)
	}

	var req statusRequest
	if err = c.BodyParser(&req); err != nil || s.env.Validator.Struct(&req) != nil {
		return response.InvalidParams(c)
	}

	if _, err = dborder.SetStatus(s.env.DB, id, req.OrderStatusesID); err != nil {
		log.Error().Err(err).Uint64("id", id).Msg("Failed to update order status")

		return response.Fail(c, response.MsgUpdateFailed)
	}

	return response.OK(c, response.MsgUpdated)
}
